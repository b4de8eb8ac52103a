package project

import (
	"sort"

	"github.com/tmewes/pymeta/pkg/errors"
)

// The fetch helpers convert a raw value at a known field path into its
// expected shape, producing the standard schema-error wording on mismatch.

func fetchStr(v any, path string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.NewField(errors.ErrCodeInvalidType, path,
			"invalid type, expecting a string (got %q)", describe(v))
	}
	return s, nil
}

func fetchStrList(v any, path string) ([]string, error) {
	arr, ok := asArray(v)
	if !ok {
		return nil, errors.NewField(errors.ErrCodeInvalidType, path,
			"invalid type, expecting a list of strings (got %q)", describe(v))
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, errors.NewField(errors.ErrCodeInvalidType, path,
				"contains item with invalid type, expecting a string (got %q)", describe(item))
		}
		out = append(out, s)
	}
	return out, nil
}

// fetchStrTable converts a table of string values, visiting keys in sorted
// order so the first error is deterministic. expecting names the value
// shape in error messages ("a dictionary of strings", "a dictionary of
// entrypoints", ...).
func fetchStrTable(v any, path, expecting string) (map[string]string, error) {
	tab, ok := asTable(v)
	if !ok {
		return nil, errors.NewField(errors.ErrCodeInvalidType, path,
			"invalid type, expecting %s (got %q)", expecting, describe(v))
	}
	out := make(map[string]string, len(tab))
	for _, k := range sortedKeys(tab) {
		s, ok := tab[k].(string)
		if !ok {
			return nil, errors.NewField(errors.ErrCodeInvalidType, path+"."+k,
				"invalid type, expecting a string (got %q)", describe(tab[k]))
		}
		out[k] = s
	}
	return out, nil
}

func fetchTable(v any, path, expecting string) (map[string]any, error) {
	tab, ok := asTable(v)
	if !ok {
		return nil, errors.NewField(errors.ErrCodeInvalidType, path,
			"invalid type, expecting %s (got %q)", expecting, describe(v))
	}
	return tab, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
