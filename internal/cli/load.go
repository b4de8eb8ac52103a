package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tmewes/pymeta/pkg/errors"
	"github.com/tmewes/pymeta/pkg/project"
)

// manifestName is the standard Python project manifest file.
const manifestName = "pyproject.toml"

// loadedProject is a validated manifest plus the directory its file
// references resolve against.
type loadedProject struct {
	Dir  string
	Path string
	Meta *project.Metadata
}

// locateManifest resolves the command argument to a pyproject.toml path.
// An empty argument means the current directory; a directory argument means
// the manifest inside it.
func locateManifest(arg string) (string, error) {
	if arg == "" {
		arg = "."
	}
	info, err := os.Stat(arg)
	switch {
	case err != nil:
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read %q", arg)
	case info.IsDir():
		path := filepath.Join(arg, manifestName)
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "no %s in %q", manifestName, arg)
		}
		return path, nil
	}
	return arg, nil
}

// loadProject reads, decodes and validates the manifest named by arg, then
// resolves readme and license file references against the project directory.
// This is the only place the tool touches the filesystem for metadata.
func loadProject(ctx context.Context, arg string) (*loadedProject, error) {
	logger := loggerFromContext(ctx)

	path, err := locateManifest(arg)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Reading %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read %q", path)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid TOML in %q", path)
	}

	meta, err := project.Extract(doc)
	if err != nil {
		return nil, err
	}

	p := &loadedProject{Dir: filepath.Dir(path), Path: path, Meta: meta}
	if err := p.resolveFiles(); err != nil {
		return nil, err
	}
	return p, nil
}

// resolveFiles loads readme and license file references into the record so
// downstream rendering never needs filesystem access. The record is cloned
// before filling in content; Extract results stay read-only.
func (p *loadedProject) resolveFiles() error {
	meta := *p.Meta

	if r := meta.Readme; r != nil && r.File != "" {
		text, err := p.readRef(r.File, "project.readme.file")
		if err != nil {
			return err
		}
		clone := *r
		clone.Text = text
		meta.Readme = &clone
	}
	if l := meta.License; l != nil && l.File != "" {
		text, err := p.readRef(l.File, "project.license.file")
		if err != nil {
			return err
		}
		clone := *l
		clone.Text = text
		meta.License = &clone
	}

	p.Meta = &meta
	return nil
}

// readRef reads a file referenced by the manifest. References must stay
// inside the project directory.
func (p *loadedProject) readRef(ref, field string) (string, error) {
	if filepath.IsAbs(ref) || !filepath.IsLocal(ref) {
		return "", errors.NewField(errors.ErrCodeInvalidPath, field,
			"path %q must be relative to the project directory", ref)
	}
	data, err := os.ReadFile(filepath.Join(p.Dir, ref))
	if err != nil {
		return "", errors.WrapField(errors.ErrCodeFileNotFound, field, err,
			"referenced file %q not found", ref)
	}
	return string(data), nil
}
