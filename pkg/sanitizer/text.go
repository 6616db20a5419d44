package sanitizer

import (
	"strings"
	"unicode"
)

// Filter transforms a raw submitted value before it is validated or bound.
type Filter func(string) string

// Raw returns s unchanged.
func Raw(s string) string { return s }

// Trim removes leading and trailing whitespace.
func Trim(s string) string { return strings.TrimSpace(s) }

// Int keeps digits and a leading sign.
func Int(s string) string {
	s = StripTags(s)
	var b strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case (r == '-' || r == '+') && i == 0:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "-" || out == "+" {
		return ""
	}
	return out
}

// Float keeps digits, a leading sign and one decimal separator.
// A comma is accepted as the decimal separator and normalized to a dot.
func Float(s string) string {
	s = StripTags(s)
	var b strings.Builder
	dot := false
	for i, r := range s {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case (r == '-' || r == '+') && i == 0:
			b.WriteRune(r)
		case (r == '.' || r == ',') && !dot:
			dot = true
			b.WriteRune('.')
		}
	}
	out := b.String()
	if strings.Trim(out, "+-.") == "" {
		return ""
	}
	return out
}

// Email removes every character that cannot appear in an e-mail address
// and lowercases the result.
func Email(s string) string {
	s = StripTags(s)
	var b strings.Builder
	for _, r := range s {
		if r > unicode.MaxASCII {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("!#$%&'*+-=?^_`{|}~@.[]", r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Bool normalizes checkbox style values to "1" or "0".
func Bool(s string) string {
	switch strings.ToLower(StripTags(s)) {
	case "1", "on", "true", "yes", "y":
		return "1"
	default:
		return "0"
	}
}
