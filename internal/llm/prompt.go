package llm

import "strings"

// buildAdvicePrompt frames a chat turn: assistant persona, the assembled
// profile/category context, the user's message, and the response format
// rules. The context block arrives pre-assembled and is passed through
// opaquely.
func buildAdvicePrompt(promptContext, userMessage string) string {
	lines := []string{
		"You are a professional, empathetic, and knowledgeable Personal Health Assistant.",
		"",
		promptContext,
		"",
		"User's message: " + userMessage,
		"",
		"Please provide:",
		"1. Clear, evidence-based health advice",
		"2. Specific recommendations when appropriate",
		"3. Safety precautions and disclaimers",
		"4. Suggestions for when to consult a healthcare professional",
		"5. Encouraging and supportive tone",
		"",
		"IMPORTANT: Always include a disclaimer that you are an AI assistant and not a substitute for professional medical advice.",
		"",
		"Format your response with clear headings, bullet points for lists, and emphasize important points with **bold text**.",
	}
	return strings.Join(lines, "\n")
}

func buildSymptomPrompt(symptoms string) string {
	lines := []string{
		"User reports these symptoms: " + symptoms,
		"",
		"Please provide:",
		"1. Possible conditions these symptoms might indicate",
		"2. Immediate actions to take",
		"3. When to seek emergency care",
		"4. Home remedies that might help",
		"5. Questions to ask a healthcare provider",
		"",
		"Remember to emphasize that this is not a diagnosis and professional medical evaluation is essential.",
	}
	return strings.Join(lines, "\n")
}

func buildTipsPrompt(category, description string) string {
	lines := []string{
		"Provide 3-5 actionable health tips for the " + category + " category (" + description + ").",
		"Format as a numbered list with clear, practical advice.",
	}
	return strings.Join(lines, "\n")
}
