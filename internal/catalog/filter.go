package catalog

import "strings"

// BuildFilter returns the predicate used by Search.
//
// A non-empty q matches case-insensitively as a substring of the name, the
// description or the SKU. A non-empty vendor must match exactly. Both are
// ANDed; with neither set every product matches.
func BuildFilter(q, vendor string) func(Product) bool {
	needle := strings.ToLower(q)
	return func(p Product) bool {
		if vendor != "" && p.Vendor != vendor {
			return false
		}
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.SKU), needle)
	}
}
