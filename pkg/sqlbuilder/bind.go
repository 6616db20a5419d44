package sqlbuilder

import (
	"fmt"
	"strings"
)

// Bind rewrites the named parameters of query into d's positional
// placeholders and returns the matching argument list. Quoted literals and
// PostgreSQL "::" casts are left untouched.
func Bind(d Dialect, query string, params map[string]any) (string, []any, error) {
	var args []any
	out, err := rewriteParams(query, func(name string) (string, error) {
		v, ok := params[name]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingParam, name)
		}
		args = append(args, v)
		return d.Placeholder(len(args)), nil
	})
	if err != nil {
		return "", nil, err
	}
	return out, args, nil
}

// rewriteParams replaces each ":name" placeholder of query with the result of
// fn, skipping quoted literals and "::" casts.
func rewriteParams(query string, fn func(name string) (string, error)) (string, error) {
	var (
		b strings.Builder
		n = len(query)
	)
	b.Grow(n)

	for i := 0; i < n; i++ {
		c := query[i]

		switch {
		case c == '\'' || c == '"' || c == '`':
			end := closingQuote(query, i)
			b.WriteString(query[i:end])
			i = end - 1

		case c == ':' && i+1 < n && query[i+1] == ':':
			b.WriteString("::")
			i++

		case c == ':' && i+1 < n && isIdentStart(query[i+1]):
			j := i + 1
			for j < n && isIdentPart(query[j]) {
				j++
			}
			r, err := fn(query[i+1 : j])
			if err != nil {
				return "", err
			}
			b.WriteString(r)
			i = j - 1

		default:
			b.WriteByte(c)
		}
	}

	return b.String(), nil
}

// closingQuote returns the index just past the literal opened at start.
// Doubled quotes inside the literal are treated as escapes.
func closingQuote(s string, start int) int {
	q := s[start]
	for i := start + 1; i < len(s); i++ {
		if s[i] != q {
			continue
		}
		if i+1 < len(s) && s[i+1] == q {
			i++
			continue
		}
		return i + 1
	}
	return len(s)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
