package folio

import (
	"strings"
	"unicode"
)

// Slugify converts text to a URL- and filename-safe slug.
// Letters, digits and underscores are kept (lowercased), runs of spaces
// and hyphens collapse to a single hyphen, and everything else is dropped.
// Example: "Tabstats - Design System" → "tabstats-design-system".
func Slugify(text string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			sb.WriteRune(r)
			prevHyphen = false
		case unicode.IsSpace(r) || r == '-':
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
