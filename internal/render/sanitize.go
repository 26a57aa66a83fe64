package render

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	editedPolicy = newEditedPolicy()
	plainPolicy  = bluemonday.StrictPolicy()
)

// newEditedPolicy keeps simple inline formatting typed into a cell. Scripts,
// event handler attributes and javascript: URLs never survive it.
func newEditedPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowStandardURLs()
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// SanitizeEdited cleans markup produced by editing a cell in place.
func SanitizeEdited(s string) string {
	return strings.TrimSpace(editedPolicy.Sanitize(s))
}

// PlainText reduces pasted or edited content to its text.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(s)))
}
