package assistant

import "strings"

const (
	CategoryGeneral   = "general"
	CategorySymptoms  = "symptoms"
	CategoryEmergency = "emergency"
)

const defaultCategoryDescription = "General health advice"

// Categories maps every known health-topic identifier to the description
// used to frame model responses. Unknown identifiers are tolerated and fall
// back to defaultCategoryDescription.
var Categories = map[string]string{
	CategoryGeneral:   "General health advice and wellness tips",
	"nutrition":       "Diet planning, nutrition advice, meal suggestions",
	"fitness":         "Exercise routines, workout plans, fitness tips",
	"mental":          "Mental health, stress management, mindfulness",
	CategorySymptoms:  "Symptom analysis and recommendations",
	"chronic":         "Chronic condition management",
	"sleep":           "Sleep hygiene and improvement tips",
	CategoryEmergency: "Emergency guidance and when to seek help",
}

func CategoryDescription(category string) string {
	if description, ok := Categories[category]; ok {
		return description
	}
	return defaultCategoryDescription
}

func normalizeCategory(category string) string {
	normalized := strings.ToLower(strings.TrimSpace(category))
	if normalized == "" {
		return CategoryGeneral
	}
	return normalized
}
