// Package coremeta renders a validated project metadata record as a
// core-metadata (RFC 822) message, the format found in METADATA files of
// wheels and PKG-INFO files of sdists.
//
// Rendering is pure: file-backed readme or license content must already be
// loaded into the record's Text fields by the caller. A record whose readme
// or license still only names a file is rendered without that content.
package coremeta

import (
	"bytes"
	"net/mail"
	"sort"
	"strings"

	"github.com/tmewes/pymeta/pkg/errors"
	"github.com/tmewes/pymeta/pkg/pep508"
	"github.com/tmewes/pymeta/pkg/project"
)

// Supported Metadata-Version values.
const (
	V21 = "2.1"
	V22 = "2.2"
	V23 = "2.3"
)

// Options configures rendering.
type Options struct {
	// MetadataVersion selects the emitted Metadata-Version. Empty picks
	// the lowest version able to express the record: 2.2 when dynamic
	// fields are declared, 2.1 otherwise.
	MetadataVersion string
}

// DefaultVersion returns the Metadata-Version Render picks for m when none
// is requested.
func DefaultVersion(m *project.Metadata) string {
	if len(m.Dynamic) > 0 {
		return V22
	}
	return V21
}

// Render emits the core-metadata message for m.
func Render(m *project.Metadata, opts Options) ([]byte, error) {
	version := opts.MetadataVersion
	if version == "" {
		version = DefaultVersion(m)
	}
	switch version {
	case V21, V22, V23:
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"metadata version must be one of %q, %q or %q (got %q)", V21, V22, V23, version)
	}

	for _, f := range m.Dynamic {
		if f == "name" || f == "version" {
			return nil, errors.NewField(errors.ErrCodeUnsupportedDynamic, "project.dynamic",
				"field cannot be dynamic in core metadata: %q", f)
		}
	}
	if len(m.Dynamic) > 0 && version == V21 {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"dynamic fields require metadata version %s or later (got %s)", V22, version)
	}
	if m.Version == nil {
		return nil, errors.NewField(errors.ErrCodeMissingField, "project.version",
			"version is required to emit core metadata")
	}

	msg := &message{}
	msg.add("Metadata-Version", version)
	msg.add("Name", m.Name)
	msg.add("Version", m.Version.String())

	if version != V21 {
		for _, f := range m.Dynamic {
			msg.add("Dynamic", f)
		}
	}

	if m.Description != "" {
		msg.add("Summary", m.Description)
	}
	if len(m.Keywords) > 0 {
		msg.add("Keywords", strings.Join(m.Keywords, ","))
	}
	if home, ok := homepage(m.URLs); ok {
		msg.add("Home-page", home)
	}

	if names := nameList(m.Authors); names != "" {
		msg.add("Author", names)
	}
	if emails := emailList(m.Authors); emails != "" {
		msg.add("Author-Email", emails)
	}
	if names := nameList(m.Maintainers); names != "" {
		msg.add("Maintainer", names)
	}
	if emails := emailList(m.Maintainers); emails != "" {
		msg.add("Maintainer-Email", emails)
	}

	if m.License != nil {
		switch {
		case m.License.Text != "":
			msg.add("License", m.License.Text)
		case m.License.Expression != "":
			msg.add("License", m.License.Expression)
		}
	}
	for _, c := range m.Classifiers {
		msg.add("Classifier", c)
	}
	for _, label := range sortedLabels(m.URLs) {
		msg.add("Project-URL", capitalize(label)+", "+m.URLs[label])
	}
	if m.RequiresPython != nil {
		msg.add("Requires-Python", m.RequiresPython.String())
	}

	extras := sortedExtras(m.OptionalDependencies)
	for _, extra := range extras {
		msg.add("Provides-Extra", pep508.CanonicalName(extra))
	}
	for _, r := range m.Dependencies {
		msg.add("Requires-Dist", r.String())
	}
	for _, extra := range extras {
		for _, r := range m.OptionalDependencies[extra] {
			msg.add("Requires-Dist", r.WithExtra(extra).String())
		}
	}

	if m.Readme != nil {
		msg.add("Description-Content-Type", m.Readme.ContentType)
		msg.body = m.Readme.Text
	}

	return msg.render(), nil
}

type header struct {
	key, value string
}

// message accumulates headers in emission order plus an optional body.
type message struct {
	headers []header
	body    string
}

func (m *message) add(key, value string) {
	m.headers = append(m.headers, header{key, value})
}

func (m *message) render() []byte {
	var buf bytes.Buffer
	for _, h := range m.headers {
		buf.WriteString(h.key)
		buf.WriteString(": ")
		// Continuation lines of multi-line values are indented.
		buf.WriteString(strings.ReplaceAll(h.value, "\n", "\n        "))
		buf.WriteByte('\n')
	}
	if m.body != "" {
		buf.WriteByte('\n')
		buf.WriteString(m.body)
	}
	return buf.Bytes()
}

// homepage looks up the conventional home page URL, whatever the label case.
func homepage(urls map[string]string) (string, bool) {
	for label, url := range urls {
		if strings.EqualFold(label, "homepage") {
			return url, true
		}
	}
	return "", false
}

// nameList joins the display names of entries that carry no email address;
// entries with an address are covered by the -Email header instead.
func nameList(people []project.Person) string {
	var names []string
	for _, p := range people {
		if p.Email == "" {
			names = append(names, p.Name)
		}
	}
	return strings.Join(names, ", ")
}

// emailList joins entries with an address as RFC 5322 "Name <email>" pairs.
// Entries without a display name get the "Unknown" placeholder, matching
// what setuptools-era tooling writes into PKG-INFO.
func emailList(people []project.Person) string {
	var addrs []string
	for _, p := range people {
		if p.Email == "" {
			continue
		}
		name := p.Name
		if name == "" {
			name = "Unknown"
		}
		addrs = append(addrs, (&mail.Address{Name: name, Address: p.Email}).String())
	}
	return strings.Join(addrs, ", ")
}

func sortedLabels(m map[string]string) []string {
	labels := make([]string, 0, len(m))
	for k := range m {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return labels
}

func sortedExtras(m map[string][]*pep508.Requirement) []string {
	extras := make([]string, 0, len(m))
	for k := range m {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	return extras
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
