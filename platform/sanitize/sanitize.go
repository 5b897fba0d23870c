// Package sanitize strips markup from user-supplied free text such as
// inquiry messages and note bodies before it is stored.
package sanitize

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", `"`,
	"&#39;", "'",
)

// StripHTML drops HTML tags from s. Entities are decoded and the result
// stripped again so an encoded tag cannot survive the first pass.
func StripHTML(s string) string {
	out := tagPattern.ReplaceAllString(s, "")
	out = entityReplacer.Replace(out)
	out = tagPattern.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// Text cleans a free-text value for storage.
func Text(s string) string {
	return StripHTML(s)
}

// TextPtr applies Text to an optional value, preserving nil.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := Text(*s)
	return &out
}
