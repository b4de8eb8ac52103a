package project

import (
	"path/filepath"
	"strings"

	"github.com/tmewes/pymeta/pkg/errors"
)

// contentTypes maps readme file extensions to their declared content type.
var contentTypes = map[string]string{
	".md":  "text/markdown",
	".rst": "text/x-rst",
	".txt": "text/plain",
}

// InferReadmeContentType derives the content type of a readme from its file
// extension. Used for the string form of project.readme, where no explicit
// content-type can be declared.
func InferReadmeContentType(filename string) (string, error) {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct, nil
	}
	return "", errors.NewField(errors.ErrCodeInvalidFormat, "project.readme",
		"could not infer content type for readme file %q", filename)
}

func (x *extraction) readme(v any) error {
	switch vv := v.(type) {
	case string:
		ct, err := InferReadmeContentType(vv)
		if err != nil {
			return err
		}
		x.meta.Readme = &Readme{File: vv, ContentType: ct}
		return nil
	case map[string]any:
		return x.readmeTable(vv)
	}
	return errors.NewField(errors.ErrCodeInvalidType, "project.readme",
		"invalid type, expecting either a string or dictionary of strings (got %q)", describe(v))
}

func (x *extraction) readmeTable(tab map[string]any) error {
	for _, k := range sortedKeys(tab) {
		switch k {
		case "file", "text", "content-type":
		default:
			return errors.NewField(errors.ErrCodeUnknownField, "project.readme."+k,
				"unexpected field")
		}
	}

	_, hasFile := tab["file"]
	_, hasText := tab["text"]
	if hasFile == hasText {
		// Neither or both: the reference must be exactly one of the two.
		return errors.NewField(errors.ErrCodeExclusiveFields, "project.readme",
			"expecting either %q or %q (got %q)", "file", "text", describe(tab))
	}

	r := &Readme{}
	var err error
	if hasFile {
		if r.File, err = fetchStr(tab["file"], "project.readme.file"); err != nil {
			return err
		}
	}
	if hasText {
		if r.Text, err = fetchStr(tab["text"], "project.readme.text"); err != nil {
			return err
		}
	}

	ct, hasCT := tab["content-type"]
	if !hasCT {
		return errors.NewField(errors.ErrCodeMissingField, "project.readme.content-type", "missing")
	}
	if r.ContentType, err = fetchStr(ct, "project.readme.content-type"); err != nil {
		return err
	}

	x.meta.Readme = r
	return nil
}
