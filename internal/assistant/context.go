package assistant

import (
	"strconv"
	"strings"
)

const notSpecified = "Not specified"

// AssembleContext renders the profile snapshot plus the requested category
// into the context block handed to prompt construction. Field order and the
// "Not specified" fallback are kept stable so the model sees consistent
// framing across turns.
func AssembleContext(profile UserProfile, category string) string {
	lines := []string{
		"User Profile (if available):",
		"- Age: " + renderInt(profile.Age),
		"- Gender: " + renderString(profile.Gender),
		"- Weight: " + renderFloat(profile.WeightKg),
		"- Height: " + renderFloat(profile.HeightCm),
		"- Medical Conditions: " + renderList(profile.Conditions),
		"- Allergies: " + renderList(profile.Allergies),
		"- Medications: " + renderList(profile.Medications),
		"",
		"Health Category: " + category,
		"Category Description: " + CategoryDescription(category),
	}
	return strings.Join(lines, "\n")
}

func renderString(value string) string {
	if strings.TrimSpace(value) == "" {
		return notSpecified
	}
	return value
}

func renderInt(value *int) string {
	if value == nil {
		return notSpecified
	}
	return strconv.Itoa(*value)
}

func renderFloat(value *float64) string {
	if value == nil {
		return notSpecified
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func renderList(items []string) string {
	if len(items) == 0 {
		return notSpecified
	}
	return strings.Join(items, ", ")
}
