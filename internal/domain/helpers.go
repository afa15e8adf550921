package domain

import "strings"

func set[V any](m map[string]any, col string, v *V) {
	if v != nil {
		m[col] = *v
	}
}

// blankToNil keeps empty optional strings out of unique indexes.
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func upper(s string) string { return strings.ToUpper(s) }
