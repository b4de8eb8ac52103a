package project

import (
	"strings"

	"github.com/tmewes/pymeta/pkg/errors"
)

func (x *extraction) license(v any) error {
	switch vv := v.(type) {
	case string:
		// PEP 639 form: an SPDX license expression.
		expr := strings.TrimSpace(vv)
		if expr == "" {
			return errors.NewField(errors.ErrCodeInvalidFormat, "project.license",
				"license expression must not be empty")
		}
		x.meta.License = &License{Expression: expr}
		return nil
	case map[string]any:
		return x.licenseTable(vv)
	}
	return errors.NewField(errors.ErrCodeInvalidType, "project.license",
		"invalid type, expecting a string or dictionary of strings (got %q)", describe(v))
}

func (x *extraction) licenseTable(tab map[string]any) error {
	for _, k := range sortedKeys(tab) {
		switch k {
		case "file", "text":
		default:
			return errors.NewField(errors.ErrCodeUnknownField, "project.license."+k,
				"unexpected field")
		}
	}

	_, hasFile := tab["file"]
	_, hasText := tab["text"]
	if hasFile == hasText {
		return errors.NewField(errors.ErrCodeExclusiveFields, "project.license",
			"expecting either %q or %q (got %q)", "file", "text", describe(tab))
	}

	l := &License{}
	var err error
	if hasFile {
		if l.File, err = fetchStr(tab["file"], "project.license.file"); err != nil {
			return err
		}
	}
	if hasText {
		if l.Text, err = fetchStr(tab["text"], "project.license.text"); err != nil {
			return err
		}
	}

	x.meta.License = l
	return nil
}
