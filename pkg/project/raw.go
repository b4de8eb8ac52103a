package project

import "fmt"

// describe renders a raw value for error messages, e.g. (got "true").
// fmt prints maps in sorted key order, so the output is deterministic.
func describe(v any) string {
	return fmt.Sprintf("%v", v)
}

// asArray normalizes the slice shapes a TOML decoder may produce into []any.
func asArray(v any) ([]any, bool) {
	switch vv := v.(type) {
	case []any:
		return vv, true
	case []string:
		out := make([]any, len(vv))
		for i, s := range vv {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(vv))
		for i, t := range vv {
			out[i] = t
		}
		return out, true
	}
	return nil, false
}

// asTable returns v as a string-keyed table.
func asTable(v any) (map[string]any, bool) {
	t, ok := v.(map[string]any)
	return t, ok
}
