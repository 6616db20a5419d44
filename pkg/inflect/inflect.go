package inflect

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var wordPattern = regexp.MustCompile(`[_\- ]?[a-zA-Z0-9]+`)

// Pluralize returns the plural form of s.
// Words ending in "y" become "ies", words ending in "s" get "es", all others get "s".
func Pluralize(s string) string {
	switch {
	case s == "":
		return ""
	case strings.HasSuffix(s, "y"):
		return s[:len(s)-1] + "ies"
	case strings.HasSuffix(s, "s"):
		return s + "es"
	default:
		return s + "s"
	}
}

// Pascalize converts s to PascalCase. Words are separated by "_", "-" or a space;
// each word keeps an uppercase first letter and a lowercased remainder.
func Pascalize(s string) string {
	// cases.Caser keeps state and is not safe for concurrent use.
	title := cases.Title(language.Und)
	return wordPattern.ReplaceAllStringFunc(s, func(word string) string {
		word = strings.TrimLeft(word, "_- ")
		return title.String(word)
	})
}

// Camelize converts s to camelCase.
func Camelize(s string) string {
	p := Pascalize(s)
	if p == "" {
		return ""
	}
	r := []rune(p)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// SnakeCase converts a PascalCase or camelCase identifier to snake_case.
// Uppercase runs are treated as one word, so "CategoryID" becomes "category_id".
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// TableName returns the table name for an entity: the snake_cased plural.
func TableName(entity string) string {
	return SnakeCase(Pluralize(entity))
}

// ColumnName returns the column name for an entity attribute.
func ColumnName(attr string) string {
	return SnakeCase(attr)
}

// Normalize lowercases s and drops word separators so that "category_id",
// "categoryId" and "CategoryID" compare equal.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '_', '-', ' ':
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
