package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizer = bluemonday.UGCPolicy()
	stripper  = bluemonday.StrictPolicy()
)

// Sanitize cleans HTML content to prevent XSS attacks. Used for free text such as notes,
// journals and test feedback.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

// PlainText removes all markup and surrounding space. Used for names and titles.
func PlainText(input string) string {
	return strings.TrimSpace(stripper.Sanitize(input))
}
