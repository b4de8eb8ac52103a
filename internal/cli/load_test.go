package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tmewes/pymeta/pkg/errors"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLocateManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[project]\nname = 'pkg'\nversion = '1.0'\n")

	t.Run("directory argument", func(t *testing.T) {
		got, err := locateManifest(dir)
		if err != nil {
			t.Fatal(err)
		}
		if got != path {
			t.Errorf("locateManifest(%q) = %q, want %q", dir, got, path)
		}
	})

	t.Run("file argument", func(t *testing.T) {
		got, err := locateManifest(path)
		if err != nil {
			t.Fatal(err)
		}
		if got != path {
			t.Errorf("locateManifest(%q) = %q, want %q", path, got, path)
		}
	})

	t.Run("missing manifest", func(t *testing.T) {
		_, err := locateManifest(t.TempDir())
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("expected FILE_NOT_FOUND, got %v", err)
		}
	})
}

func TestLoadProject(t *testing.T) {
	ctx := context.Background()

	t.Run("valid manifest", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, `[project]
name = 'pkg'
version = '1.0'
dependencies = ['requests>=2.0']
`)
		p, err := loadProject(ctx, dir)
		if err != nil {
			t.Fatal(err)
		}
		if p.Meta.Name != "pkg" {
			t.Errorf("Name = %q, want %q", p.Meta.Name, "pkg")
		}
		if len(p.Meta.Dependencies) != 1 {
			t.Errorf("got %d dependencies, want 1", len(p.Meta.Dependencies))
		}
	})

	t.Run("invalid TOML", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, "[project\nname =")
		_, err := loadProject(ctx, dir)
		if !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("expected INVALID_FORMAT, got %v", err)
		}
	})

	t.Run("validation failure surfaces field", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, "[project]\nname = 'pkg'\n")
		_, err := loadProject(ctx, dir)
		if !errors.Is(err, errors.ErrCodeMissingField) {
			t.Fatalf("expected MISSING_FIELD, got %v", err)
		}
		if field := errors.GetField(err); field != "project.version" {
			t.Errorf("field = %q, want %q", field, "project.version")
		}
	})

	t.Run("readme file resolved", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello readme\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		writeManifest(t, dir, `[project]
name = 'pkg'
version = '1.0'
readme = 'README.md'
`)
		p, err := loadProject(ctx, dir)
		if err != nil {
			t.Fatal(err)
		}
		if p.Meta.Readme == nil || p.Meta.Readme.Text != "hello readme\n" {
			t.Errorf("readme text not resolved: %+v", p.Meta.Readme)
		}
		if p.Meta.Readme.ContentType != "text/markdown" {
			t.Errorf("ContentType = %q, want text/markdown", p.Meta.Readme.ContentType)
		}
	})

	t.Run("readme file missing", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, `[project]
name = 'pkg'
version = '1.0'
readme = 'README.md'
`)
		_, err := loadProject(ctx, dir)
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Fatalf("expected FILE_NOT_FOUND, got %v", err)
		}
		if field := errors.GetField(err); field != "project.readme.file" {
			t.Errorf("field = %q, want %q", field, "project.readme.file")
		}
	})

	t.Run("license file escaping project dir", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, `[project]
name = 'pkg'
version = '1.0'
license = { file = '../LICENSE' }
`)
		_, err := loadProject(ctx, dir)
		if !errors.Is(err, errors.ErrCodeInvalidPath) {
			t.Errorf("expected INVALID_PATH, got %v", err)
		}
	})

	t.Run("license file resolved", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "LICENSE"), []byte("MIT terms"), 0o644); err != nil {
			t.Fatal(err)
		}
		writeManifest(t, dir, `[project]
name = 'pkg'
version = '1.0'
license = { file = 'LICENSE' }
`)
		p, err := loadProject(ctx, dir)
		if err != nil {
			t.Fatal(err)
		}
		if p.Meta.License == nil || p.Meta.License.Text != "MIT terms" {
			t.Errorf("license text not resolved: %+v", p.Meta.License)
		}
	})
}
