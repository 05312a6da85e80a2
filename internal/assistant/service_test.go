package assistant

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"healthassist/backend/internal/session"
)

// stubGenerator records the prompt context it was handed and can be forced
// to fail, so tests can assert both framing and append atomicity.
type stubGenerator struct {
	answer      string
	err         error
	lastContext string
	lastMessage string
	calls       int
}

func (g *stubGenerator) Generate(_ context.Context, promptContext, userMessage string) (string, error) {
	g.calls++
	g.lastContext = promptContext
	g.lastMessage = userMessage
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func (g *stubGenerator) AnalyzeSymptoms(_ context.Context, symptoms string) (string, error) {
	g.calls++
	g.lastMessage = symptoms
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func (g *stubGenerator) HealthTips(_ context.Context, category, description string) (string, error) {
	g.calls++
	g.lastContext = description
	g.lastMessage = category
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func newTestService(gen *stubGenerator) *Service {
	svc := New(session.NewMemoryStore(), gen)
	svc.now = func() time.Time {
		return time.Date(2026, 2, 15, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestChatAppendsHistoryEntry(t *testing.T) {
	gen := &stubGenerator{answer: "drink more water"}
	svc := newTestService(gen)
	ctx := context.Background()

	result, err := svc.Chat(ctx, "s1", ChatRequest{Message: "any hydration advice?", Category: "nutrition"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if result.Response != "drink more water" {
		t.Fatalf("unexpected response: %q", result.Response)
	}

	history, err := svc.History(ctx, "s1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(history))
	}
	entry := history[0]
	if entry.User != "any hydration advice?" || entry.Assistant != "drink more water" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Category != "nutrition" {
		t.Fatalf("expected nutrition category, got %q", entry.Category)
	}
	if entry.Timestamp != "2026-02-15 10:30:00" {
		t.Fatalf("unexpected timestamp format: %q", entry.Timestamp)
	}
}

func TestChatEmptyMessageIsValidationError(t *testing.T) {
	gen := &stubGenerator{answer: "unused"}
	svc := newTestService(gen)

	_, err := svc.Chat(context.Background(), "s1", ChatRequest{Message: "   "})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("expected no model call for invalid input, got %d", gen.calls)
	}
}

func TestChatGenerationFailureRecordsNothing(t *testing.T) {
	gen := &stubGenerator{answer: "first answer"}
	svc := newTestService(gen)
	ctx := context.Background()

	if _, err := svc.Chat(ctx, "s1", ChatRequest{Message: "first question"}); err != nil {
		t.Fatalf("seed chat failed: %v", err)
	}

	gen.err = errors.New("provider unavailable")
	_, err := svc.Chat(ctx, "s1", ChatRequest{Message: "second question"})
	var generationErr *GenerationError
	if !errors.As(err, &generationErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}

	history, err := svc.History(ctx, "s1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected failed turn to record nothing, got %d entries", len(history))
	}
	if history[0].User != "first question" {
		t.Fatalf("unexpected surviving entry: %+v", history[0])
	}
}

func TestChatSuggestsProfileUpdateWithoutCommitting(t *testing.T) {
	gen := &stubGenerator{answer: "noted"}
	svc := newTestService(gen)
	ctx := context.Background()

	result, err := svc.Chat(ctx, "s1", ChatRequest{Message: "I am 34 years old and weigh 70 kg"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if !result.SuggestProfileUpdate {
		t.Fatalf("expected a profile-update suggestion")
	}
	if result.ExtractedInfo["age"] != "34" || result.ExtractedInfo["weight"] != "70" {
		t.Fatalf("unexpected extraction: %v", result.ExtractedInfo)
	}

	// Detection never commits: the stored profile stays at defaults.
	profile, err := svc.Profile(ctx, "s1")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if profile.Age != nil || profile.WeightKg != nil {
		t.Fatalf("expected untouched profile, got %+v", profile)
	}
}

func TestChatNoSuggestionOnPlainMessage(t *testing.T) {
	gen := &stubGenerator{answer: "hello"}
	svc := newTestService(gen)

	result, err := svc.Chat(context.Background(), "s1", ChatRequest{Message: "hello there"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if result.SuggestProfileUpdate || result.ExtractedInfo != nil {
		t.Fatalf("expected no suggestion, got %+v", result)
	}
}

func TestChatAppliesPatchBeforeAssemblingContext(t *testing.T) {
	gen := &stubGenerator{answer: "ok"}
	svc := newTestService(gen)
	ctx := context.Background()

	_, err := svc.Chat(ctx, "s1", ChatRequest{
		Message:  "plan my meals",
		Category: "nutrition",
		Patch:    &ProfilePatch{Age: intPtr(41), Conditions: listPtr("diabetes")},
	})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if !strings.Contains(gen.lastContext, "- Age: 41") {
		t.Fatalf("expected patched age in context, got:\n%s", gen.lastContext)
	}
	if !strings.Contains(gen.lastContext, "- Medical Conditions: diabetes") {
		t.Fatalf("expected patched conditions in context, got:\n%s", gen.lastContext)
	}

	profile, err := svc.Profile(ctx, "s1")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if profile.Age == nil || *profile.Age != 41 {
		t.Fatalf("expected patch committed through explicit path, got %+v", profile)
	}
}

func TestClearHistoryKeepsProfile(t *testing.T) {
	gen := &stubGenerator{answer: "ok"}
	svc := newTestService(gen)
	ctx := context.Background()

	if _, err := svc.UpdateProfile(ctx, "s1", ProfilePatch{Age: intPtr(52), Gender: strPtr("male")}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := svc.Chat(ctx, "s1", ChatRequest{Message: "how do I sleep better?"}); err != nil {
		t.Fatalf("chat failed: %v", err)
	}

	if err := svc.ClearHistory(ctx, "s1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	history, err := svc.History(ctx, "s1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history after clear, got %d entries", len(history))
	}

	profile, err := svc.Profile(ctx, "s1")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if profile.Age == nil || *profile.Age != 52 || profile.Gender != "male" {
		t.Fatalf("expected profile to survive history clear, got %+v", profile)
	}
}

func TestSessionInitializationIsIdempotent(t *testing.T) {
	gen := &stubGenerator{answer: "ok"}
	svc := newTestService(gen)
	ctx := context.Background()

	first, err := svc.Profile(ctx, "fresh")
	if err != nil {
		t.Fatalf("first profile failed: %v", err)
	}
	second, err := svc.Profile(ctx, "fresh")
	if err != nil {
		t.Fatalf("second profile failed: %v", err)
	}
	if !profilesEqual(first, second) {
		t.Fatalf("expected identical defaults, got %+v vs %+v", first, second)
	}
	if !profilesEqual(first, NewUserProfile()) {
		t.Fatalf("expected default profile, got %+v", first)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	gen := &stubGenerator{answer: "ok"}
	svc := newTestService(gen)
	ctx := context.Background()

	if _, err := svc.UpdateProfile(ctx, "a", ProfilePatch{Age: intPtr(20)}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	other, err := svc.Profile(ctx, "b")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if other.Age != nil {
		t.Fatalf("expected session b to be untouched, got %+v", other)
	}
}

func TestAnalyzeSymptomsRecordsMarkedEntry(t *testing.T) {
	gen := &stubGenerator{answer: "rest and fluids"}
	svc := newTestService(gen)
	ctx := context.Background()

	analysis, err := svc.AnalyzeSymptoms(ctx, "s1", "sore throat and fever")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if analysis != "rest and fluids" {
		t.Fatalf("unexpected analysis: %q", analysis)
	}

	history, err := svc.History(ctx, "s1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(history))
	}
	if history[0].User != "Symptom analysis request: sore throat and fever" {
		t.Fatalf("expected request marker, got %q", history[0].User)
	}
	if history[0].Category != CategorySymptoms {
		t.Fatalf("expected symptoms category, got %q", history[0].Category)
	}
}

func TestAnalyzeSymptomsEmptyInput(t *testing.T) {
	gen := &stubGenerator{answer: "unused"}
	svc := newTestService(gen)

	_, err := svc.AnalyzeSymptoms(context.Background(), "s1", "  ")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestHealthTipsUsesCategoryDescription(t *testing.T) {
	gen := &stubGenerator{answer: "1. walk daily"}
	svc := newTestService(gen)

	tips, err := svc.HealthTips(context.Background(), "Fitness")
	if err != nil {
		t.Fatalf("tips failed: %v", err)
	}
	if tips != "1. walk daily" {
		t.Fatalf("unexpected tips: %q", tips)
	}
	if gen.lastMessage != "fitness" {
		t.Fatalf("expected normalized category, got %q", gen.lastMessage)
	}
	if gen.lastContext != Categories["fitness"] {
		t.Fatalf("expected fitness description, got %q", gen.lastContext)
	}
}

func profilesEqual(a, b UserProfile) bool {
	return reflect.DeepEqual(a, b)
}
