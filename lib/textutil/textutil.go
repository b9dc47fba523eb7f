package textutil

import (
	"strings"
)

// NormalizeQuery trims surrounding whitespace and lowercases a free-text query.
// Inner whitespace is kept since place names like "new york" depend on it.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// EqualNames reports whether a display name from the remote matches an already
// normalized query. Only case is folded on the display name.
func EqualNames(name, normalizedQuery string) bool {
	return strings.ToLower(name) == normalizedQuery
}
