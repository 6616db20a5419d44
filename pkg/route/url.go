package route

import (
	"net/url"
	"strings"
)

// URL builds a path from route segments: URL("category", "edit", "3") is
// "/category/edit/3". Segments are trimmed and escaped, empty ones are skipped.
func URL(args ...string) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			parts = append(parts, url.PathEscape(a))
		}
	}
	return "/" + strings.Join(parts, "/")
}

// URLWithQuery builds a path like URL and appends the encoded query.
func URLWithQuery(args []string, query url.Values) string {
	u := URL(args...)
	if len(query) == 0 {
		return u
	}
	return u + "?" + query.Encode()
}
