package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = sync.OnceValue(bluemonday.StrictPolicy)

	// formattingPolicy keeps paragraphs, emphasis, lists, code and links.
	formattingPolicy = sync.OnceValue(func() *bluemonday.Policy {
		p := bluemonday.NewPolicy()
		p.AllowStandardURLs()
		p.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		return p
	})
)

// StripTags removes every HTML element from s and returns the trimmed text.
// Entities produced by the sanitizer are decoded back, so "Tom & Jerry"
// survives unchanged. This is the default form field filter.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strictPolicy().Sanitize(s)))
}

// SanitizeHTML keeps basic formatting and drops everything else, including
// scripts, event handlers and javascript: URLs. It is the default filter of
// textarea fields.
func SanitizeHTML(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(formattingPolicy().Sanitize(s))
}
