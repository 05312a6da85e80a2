package assistant

import (
	"regexp"
	"strings"
)

// profilePatterns drives the free-text profile scan. Each entry is matched
// independently against the lowered message; only the leftmost match per
// field is kept.
var profilePatterns = []struct {
	Field   string
	Pattern *regexp.Regexp
}{
	{"age", regexp.MustCompile(`(\d+)\s*(?:years? old|yo|age)`)},
	{"weight", regexp.MustCompile(`(\d+)\s*(?:kg|kilos|kilograms?|pounds?|lbs)`)},
	{"height", regexp.MustCompile(`(\d+'?\d*)\s*(?:cm|meters?|'|ft|feet)`)},
}

// ExtractProfileInfo scans a chat message for age/weight/height mentions.
// The second return value reports whether anything matched at all, so
// callers can skip the suggestion step entirely on a miss. The extractor
// never mutates stored state; committing a suggestion is a separate,
// explicit profile update.
func ExtractProfileInfo(message string) (map[string]string, bool) {
	lowered := strings.ToLower(message)
	extracted := make(map[string]string)
	for _, entry := range profilePatterns {
		match := entry.Pattern.FindStringSubmatch(lowered)
		if len(match) > 1 {
			extracted[entry.Field] = match[1]
		}
	}
	if len(extracted) == 0 {
		return nil, false
	}
	return extracted, true
}
