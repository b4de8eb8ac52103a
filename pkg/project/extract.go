package project

import (
	"strings"

	"github.com/tmewes/pymeta/pkg/errors"
	"github.com/tmewes/pymeta/pkg/pep440"
	"github.com/tmewes/pymeta/pkg/pep508"
)

// fieldSpec binds one project-table key to its validator/normalizer.
// The table is fixed at init and walked in declaration order, giving the
// extractor its single-pass, deterministic shape.
type fieldSpec struct {
	name    string
	extract func(x *extraction, v any) error
}

// projectFields lists every recognized key of the [project] table except
// "dynamic", which is reconciled before the walk.
var projectFields = []fieldSpec{
	{"name", (*extraction).name},
	{"version", (*extraction).version},
	{"description", (*extraction).description},
	{"readme", (*extraction).readme},
	{"license", (*extraction).license},
	{"keywords", (*extraction).keywords},
	{"classifiers", (*extraction).classifiers},
	{"urls", (*extraction).urls},
	{"authors", (*extraction).authors},
	{"maintainers", (*extraction).maintainers},
	{"scripts", (*extraction).scripts},
	{"gui-scripts", (*extraction).guiScripts},
	{"entry-points", (*extraction).entryPoints},
	{"dependencies", (*extraction).dependencies},
	{"optional-dependencies", (*extraction).optionalDependencies},
	{"requires-python", (*extraction).requiresPython},
}

var fieldIndex = func() map[string]bool {
	idx := make(map[string]bool, len(projectFields)+1)
	for _, f := range projectFields {
		idx[f.name] = true
	}
	idx["dynamic"] = true
	return idx
}()

// extraction carries the state of one Extract call.
type extraction struct {
	proj    map[string]any
	dynamic map[string]bool
	meta    *Metadata
}

// Extract validates doc, the decoded pyproject.toml mapping, and returns
// the normalized metadata record. doc is never mutated. The first
// validation failure is returned as a *errors.Error with the offending
// field path.
func Extract(doc map[string]any) (*Metadata, error) {
	rawProj, ok := doc["project"]
	if !ok {
		return nil, errors.NewField(errors.ErrCodeMissingField, "project",
			"section missing in pyproject.toml")
	}
	proj, err := fetchTable(rawProj, "project", "a table")
	if err != nil {
		return nil, err
	}

	x := &extraction{proj: proj, dynamic: map[string]bool{}, meta: &Metadata{}}

	if err := x.reconcileDynamic(); err != nil {
		return nil, err
	}

	// Strict schema: no silent pass-through of unrecognized keys.
	for _, k := range sortedKeys(proj) {
		if !fieldIndex[k] {
			return nil, errors.NewField(errors.ErrCodeUnknownField, "project."+k,
				"unrecognized field")
		}
	}

	for _, f := range projectFields {
		v, present := proj[f.name]
		path := "project." + f.name

		if present && x.dynamic[f.name] {
			return nil, errors.NewField(errors.ErrCodeDynamicConflict, path,
				"declared as dynamic in %q but is statically defined", "project.dynamic")
		}
		if !present {
			switch f.name {
			case "name":
				return nil, errors.NewField(errors.ErrCodeMissingField, path, "missing")
			case "version":
				if !x.dynamic["version"] {
					return nil, errors.NewField(errors.ErrCodeMissingField, path,
						"missing and %q not specified in %q", "version", "project.dynamic")
				}
			}
			continue
		}
		if err := f.extract(x, v); err != nil {
			return nil, err
		}
	}

	if err := x.checkLicenseExclusivity(); err != nil {
		return nil, err
	}

	// The free-form extension namespace is preserved without validation.
	if tool, ok := asTable(doc["tool"]); ok {
		x.meta.Tool = tool
	}

	return x.meta, nil
}

// reconcileDynamic parses project.dynamic and checks each entry is a field
// the standard permits to be dynamic (every recognized field but "name").
func (x *extraction) reconcileDynamic() error {
	v, ok := x.proj["dynamic"]
	if !ok {
		return nil
	}
	list, err := fetchStrList(v, "project.dynamic")
	if err != nil {
		return err
	}
	for _, f := range list {
		if f == "name" || f == "dynamic" || !fieldIndex[f] {
			return errors.NewField(errors.ErrCodeUnsupportedDynamic, "project.dynamic",
				"unsupported field %q", f)
		}
		x.dynamic[f] = true
	}
	x.meta.Dynamic = list
	return nil
}

// checkLicenseExclusivity rejects a license expression combined with the
// classifier-derived legacy form; the two generations of license metadata
// are mutually exclusive.
func (x *extraction) checkLicenseExclusivity() error {
	if x.meta.License == nil || x.meta.License.Expression == "" {
		return nil
	}
	for _, c := range x.meta.Classifiers {
		if strings.HasPrefix(c, "License ::") {
			return errors.NewField(errors.ErrCodeExclusiveFields, "project.license",
				"license expression and license classifier %q are mutually exclusive", c)
		}
	}
	return nil
}

func (x *extraction) name(v any) error {
	s, err := fetchStr(v, "project.name")
	if err != nil {
		return err
	}
	if err := pep508.CheckName(s); err != nil {
		return errors.WrapField(errors.ErrCodeInvalidFormat, "project.name", err, "invalid name")
	}
	x.meta.Name = s
	return nil
}

func (x *extraction) version(v any) error {
	s, err := fetchStr(v, "project.version")
	if err != nil {
		return err
	}
	ver, err := pep440.Parse(s)
	if err != nil {
		return errors.NewField(errors.ErrCodeInvalidFormat, "project.version",
			"invalid PEP 440 version %q", s)
	}
	x.meta.Version = ver
	return nil
}

func (x *extraction) description(v any) error {
	s, err := fetchStr(v, "project.description")
	if err != nil {
		return err
	}
	x.meta.Description = s
	return nil
}

func (x *extraction) keywords(v any) error {
	list, err := fetchStrList(v, "project.keywords")
	if err != nil {
		return err
	}
	x.meta.Keywords = list
	return nil
}

func (x *extraction) classifiers(v any) error {
	list, err := fetchStrList(v, "project.classifiers")
	if err != nil {
		return err
	}
	x.meta.Classifiers = list
	return nil
}

func (x *extraction) urls(v any) error {
	tab, err := fetchStrTable(v, "project.urls", "a dictionary of strings")
	if err != nil {
		return err
	}
	for label := range tab {
		if strings.TrimSpace(label) == "" {
			return errors.NewField(errors.ErrCodeInvalidFormat, "project.urls",
				"URL label must not be empty")
		}
	}
	x.meta.URLs = tab
	return nil
}

func (x *extraction) scripts(v any) error {
	tab, err := fetchStrTable(v, "project.scripts", "a dictionary of strings")
	if err != nil {
		return err
	}
	x.meta.Scripts = tab
	return nil
}

func (x *extraction) guiScripts(v any) error {
	tab, err := fetchStrTable(v, "project.gui-scripts", "a dictionary of strings")
	if err != nil {
		return err
	}
	x.meta.GUIScripts = tab
	return nil
}

func (x *extraction) entryPoints(v any) error {
	tab, err := fetchTable(v, "project.entry-points", "a dictionary of entrypoint sections")
	if err != nil {
		return err
	}
	out := make(map[string]map[string]string, len(tab))
	for _, group := range sortedKeys(tab) {
		eps, err := fetchStrTable(tab[group], "project.entry-points."+group,
			"a dictionary of entrypoints")
		if err != nil {
			return err
		}
		out[group] = eps
	}
	x.meta.EntryPoints = out
	return nil
}

func (x *extraction) dependencies(v any) error {
	list, err := fetchStrList(v, "project.dependencies")
	if err != nil {
		return err
	}
	reqs, err := parseRequirements(list, "project.dependencies")
	if err != nil {
		return err
	}
	x.meta.Dependencies = reqs
	return nil
}

func (x *extraction) optionalDependencies(v any) error {
	tab, err := fetchTable(v, "project.optional-dependencies",
		"a dictionary of PEP 508 requirement string lists")
	if err != nil {
		return err
	}
	out := make(map[string][]*pep508.Requirement, len(tab))
	for _, group := range sortedKeys(tab) {
		path := "project.optional-dependencies." + group
		if !pep508.ValidName(group) {
			return errors.NewField(errors.ErrCodeInvalidFormat, "project.optional-dependencies",
				"invalid extra group name %q", group)
		}
		arr, ok := asArray(tab[group])
		if !ok {
			return errors.NewField(errors.ErrCodeInvalidType, path,
				"invalid type, expecting a list of PEP 508 requirement strings (got %q)",
				describe(tab[group]))
		}
		items := make([]string, 0, len(arr))
		for _, item := range arr {
			s, ok := item.(string)
			if !ok {
				return errors.NewField(errors.ErrCodeInvalidType, path,
					"invalid type, expecting a PEP 508 requirement string (got %q)", describe(item))
			}
			items = append(items, s)
		}
		reqs, err := parseRequirements(items, path)
		if err != nil {
			return err
		}
		out[group] = reqs
	}
	x.meta.OptionalDependencies = out
	return nil
}

func parseRequirements(items []string, path string) ([]*pep508.Requirement, error) {
	reqs := make([]*pep508.Requirement, 0, len(items))
	for _, s := range items {
		r, err := pep508.Parse(s)
		if err != nil {
			return nil, errors.NewField(errors.ErrCodeInvalidFormat, path,
				"contains an invalid PEP 508 requirement string %q", s)
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

func (x *extraction) requiresPython(v any) error {
	s, err := fetchStr(v, "project.requires-python")
	if err != nil {
		return err
	}
	specs, err := pep440.ParseSpecifiers(s)
	if err != nil {
		return errors.NewField(errors.ErrCodeInvalidFormat, "project.requires-python",
			"invalid version specifier %q", s)
	}
	x.meta.RequiresPython = specs
	return nil
}
