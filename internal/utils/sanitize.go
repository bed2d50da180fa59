package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds how many entity layers are peeled off.
const maxSanitizePasses = 4

// Sanitize trims s and strips any markup, leaving plain text. Entity-encoded
// markup is decoded and stripped again until the text is stable, so the
// result never carries a tag.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	for i := 0; i < maxSanitizePasses && s != ""; i++ {
		next := strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
		if next == s {
			return s
		}
		s = next
	}
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
