package coremeta

import (
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmewes/pymeta/pkg/errors"
	"github.com/tmewes/pymeta/pkg/project"
)

func extract(t *testing.T, doc string) *project.Metadata {
	t.Helper()
	var m map[string]any
	require.NoError(t, toml.Unmarshal([]byte(doc), &m))
	meta, err := project.Extract(m)
	require.NoError(t, err)
	return meta
}

const fullMetadata = `
[project]
name = 'full_metadata'
version = '3.2.1'
description = 'A package with all the metadata :)'
readme = { text = 'some readme', content-type = 'text/markdown' }
requires-python = '>=3.8'
license = { text = 'some license text' }
keywords = ['trampolim', 'is', 'interesting']
authors = [
  { email = 'example@example.com' },
  { name = 'Example!' },
]
maintainers = [
  { name = 'Other Example', email = 'other@example.com' },
]
classifiers = [
  'Development Status :: 4 - Beta',
  'Programming Language :: Python',
]
dependencies = [
  'dependency1',
  'dependency2>1.0.0',
  'dependency3[extra]',
  'dependency4; os_name != "nt"',
  'dependency5[other-extra]>1.0; os_name == "nt"',
]

[project.optional-dependencies]
test = [
  'test_dependency',
  'test_dependency[test_extra]',
  'test_dependency[test_extra2]>3.0; os_name == "nt"',
]

[project.urls]
homepage = 'example.com'
documentation = 'readthedocs.org'
repository = 'github.com/some/repo'
changelog = 'github.com/some/repo/blob/master/CHANGELOG.rst'

[project.scripts]
full-metadata = 'full_metadata:main_cli'
`

func TestRender_FullMetadata(t *testing.T) {
	out, err := Render(extract(t, fullMetadata), Options{})
	require.NoError(t, err)

	want := strings.Join([]string{
		"Metadata-Version: 2.1",
		"Name: full_metadata",
		"Version: 3.2.1",
		"Summary: A package with all the metadata :)",
		"Keywords: trampolim,is,interesting",
		"Home-page: example.com",
		"Author: Example!",
		"Author-Email: Unknown <example@example.com>",
		"Maintainer-Email: Other Example <other@example.com>",
		"License: some license text",
		"Classifier: Development Status :: 4 - Beta",
		"Classifier: Programming Language :: Python",
		"Project-URL: Changelog, github.com/some/repo/blob/master/CHANGELOG.rst",
		"Project-URL: Documentation, readthedocs.org",
		"Project-URL: Homepage, example.com",
		"Project-URL: Repository, github.com/some/repo",
		"Requires-Python: >=3.8",
		"Provides-Extra: test",
		"Requires-Dist: dependency1",
		"Requires-Dist: dependency2>1.0.0",
		"Requires-Dist: dependency3[extra]",
		`Requires-Dist: dependency4; os_name != "nt"`,
		`Requires-Dist: dependency5[other-extra]>1.0; os_name == "nt"`,
		`Requires-Dist: test_dependency; extra == "test"`,
		`Requires-Dist: test_dependency[test_extra]; extra == "test"`,
		`Requires-Dist: test_dependency[test_extra2]>3.0; os_name == "nt" and extra == "test"`,
		"Description-Content-Type: text/markdown",
		"",
		"some readme",
	}, "\n")
	assert.Equal(t, want, string(out))
}

func TestRender_DynamicDescription(t *testing.T) {
	m := extract(t, `[project]
name = 'dynamic-description'
version = '1.0.0'
dynamic = ['description']`)

	out, err := Render(m, Options{})
	require.NoError(t, err)

	want := strings.Join([]string{
		"Metadata-Version: 2.2",
		"Name: dynamic-description",
		"Version: 1.0.0",
		"Dynamic: description",
		"",
	}, "\n")
	assert.Equal(t, want, string(out))
}

func TestRender_ExtraNameNormalization(t *testing.T) {
	m := extract(t, `[project]
name = 'hi'
version = '1.2'

[project.optional-dependencies]
under_score = ['some_package']
da-sh = ['some-package']
'do.t' = ['some.package']
empty = []`)

	for _, version := range []string{V21, V22, V23} {
		out, err := Render(m, Options{MetadataVersion: version})
		require.NoError(t, err)
		s := string(out)

		assert.Contains(t, s, "Metadata-Version: "+version)
		assert.Contains(t, s, "Provides-Extra: under-score")
		assert.Contains(t, s, "Provides-Extra: da-sh")
		assert.Contains(t, s, "Provides-Extra: do-t")
		assert.Contains(t, s, "Provides-Extra: empty")
		assert.Contains(t, s, `Requires-Dist: some_package; extra == "under-score"`)
		assert.Contains(t, s, `Requires-Dist: some-package; extra == "da-sh"`)
		assert.Contains(t, s, `Requires-Dist: some.package; extra == "do-t"`)
	}
}

func TestRender_EmailOnlyPerson(t *testing.T) {
	m := extract(t, `[project]
name = 'pkg'
version = '1.0'
authors = [{ email = 'example@example.com' }]
maintainers = [{ name = 'Named', email = 'named@example.com' }]`)

	out, err := Render(m, Options{})
	require.NoError(t, err)
	s := string(out)

	// An address without a display name gets the Unknown placeholder.
	assert.Contains(t, s, "Author-Email: Unknown <example@example.com>\n")
	assert.Contains(t, s, "Maintainer-Email: Named <named@example.com>\n")
	assert.NotContains(t, s, "Author: ")
}

func TestRender_MultilineLicense(t *testing.T) {
	m := extract(t, `[project]
name = 'pkg'
version = '1.0'
license = { text = "line one\nline two" }`)

	out, err := Render(m, Options{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "License: line one\n        line two\n")
}

func TestRender_Errors(t *testing.T) {
	t.Run("unknown metadata version", func(t *testing.T) {
		m := extract(t, `[project]
name = 'hi'
version = '1.2'`)
		_, err := Render(m, Options{MetadataVersion: "2.0"})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidFormat, errors.GetCode(err))
		assert.Contains(t, err.Error(), `"2.1"`)
		assert.Contains(t, err.Error(), `"2.2"`)
		assert.Contains(t, err.Error(), `"2.3"`)
	})

	t.Run("version still dynamic", func(t *testing.T) {
		m := extract(t, `[project]
name = 'hi'
dynamic = ['version']`)
		_, err := Render(m, Options{})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeUnsupportedDynamic, errors.GetCode(err))
		assert.Contains(t, err.Error(), `cannot be dynamic in core metadata: "version"`)
	})

	t.Run("version missing", func(t *testing.T) {
		_, err := Render(&project.Metadata{Name: "something"}, Options{})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeMissingField, errors.GetCode(err))
		assert.Equal(t, "project.version", errors.GetField(err))
	})

	t.Run("dynamic fields under 2.1", func(t *testing.T) {
		m := extract(t, `[project]
name = 'hi'
version = '1.2'
dynamic = ['description']`)
		_, err := Render(m, Options{MetadataVersion: V21})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidFormat, errors.GetCode(err))
	})
}
