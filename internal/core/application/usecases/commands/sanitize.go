package commands

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// plainText strips every HTML element from free text typed by operators. The
// policy escapes what remains, so entities are decoded again before storage.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}
