package llm

import (
	"context"
	"strings"
)

// MockClient stands in for the model during tests and local runs without an
// API key. Answers are canned but keyword-sensitive enough to exercise the
// surrounding flow.
type MockClient struct{}

func (MockClient) Generate(_ context.Context, _ string, userMessage string) (string, error) {
	question := strings.TrimSpace(userMessage)
	if question == "" {
		question = "No message provided."
	}
	lowered := strings.ToLower(question)

	answer := "Mock advice: " + question
	switch {
	case strings.Contains(lowered, "sleep"):
		answer = "Mock advice: a consistent bedtime and a dark, cool room improve sleep quality."
	case strings.Contains(lowered, "headache") || strings.Contains(lowered, "pain"):
		answer = "Mock advice: hydrate, rest, and see a clinician if the pain persists or worsens."
	}
	return answer + "\n\nThis is an AI assistant, not a substitute for professional medical advice.", nil
}

func (MockClient) AnalyzeSymptoms(_ context.Context, symptoms string) (string, error) {
	return "Mock analysis of: " + strings.TrimSpace(symptoms) +
		"\nThis is not a diagnosis; a professional medical evaluation is essential.", nil
}

func (MockClient) HealthTips(_ context.Context, category, _ string) (string, error) {
	return "1. Mock tip for " + category + ": stay hydrated.\n2. Mock tip: move a little every hour.", nil
}
