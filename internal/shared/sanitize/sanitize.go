package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text strips all markup from user supplied free text (reasons, notes) and
// trims surrounding whitespace. Entities escaped by the policy are decoded
// again so plain punctuation survives storage unchanged.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
