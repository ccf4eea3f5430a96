package validators

import "strings"

// SanitizeString trims whitespace and hard-caps length. Search and filter
// params run through this before reaching any query.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
