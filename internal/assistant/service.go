package assistant

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"healthassist/backend/internal/session"
)

const (
	profileKey = "user_profile"
	historyKey = "conversation_history"
)

// Generator is the prompt-construction plus generation collaborator. It
// receives the assembled profile context and the raw user message and
// returns the model completion; it may fail with a provider error.
type Generator interface {
	Generate(ctx context.Context, promptContext, userMessage string) (string, error)
	AnalyzeSymptoms(ctx context.Context, symptoms string) (string, error)
	HealthTips(ctx context.Context, category, description string) (string, error)
}

// Service owns per-session profile and conversation state on top of an
// injected key-value store. Each session is single-writer; the store is
// expected to be sequentially consistent for a given session.
type Service struct {
	store session.Store
	ai    Generator
	now   func() time.Time
}

func New(store session.Store, ai Generator) *Service {
	return &Service{
		store: store,
		ai:    ai,
		now:   time.Now,
	}
}

type ChatRequest struct {
	Message  string
	Category string
	Patch    *ProfilePatch
}

type ChatResult struct {
	Response             string
	Category             string
	SuggestProfileUpdate bool
	ExtractedInfo        map[string]string
}

// Chat runs one conversational turn: merge an optional profile patch,
// assemble context, call the model, record the exchange, and surface any
// profile fields spotted in the message as a suggestion. A failed model
// call records nothing.
func (s *Service) Chat(ctx context.Context, sessionID string, req ChatRequest) (ChatResult, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return ChatResult{}, &ValidationError{Detail: "message is required"}
	}
	category := normalizeCategory(req.Category)

	profile, err := s.loadProfile(ctx, sessionID)
	if err != nil {
		return ChatResult{}, err
	}
	if req.Patch != nil {
		profile = ApplyPatch(profile, *req.Patch)
		if err := s.saveProfile(ctx, sessionID, profile); err != nil {
			return ChatResult{}, err
		}
	}

	promptContext := AssembleContext(profile, category)
	answer, err := s.ai.Generate(ctx, promptContext, message)
	if err != nil {
		return ChatResult{}, &GenerationError{Err: err}
	}

	if err := s.appendHistory(ctx, sessionID, ConversationEntry{
		Timestamp: s.now().Format(TimestampLayout),
		User:      message,
		Assistant: answer,
		Category:  category,
	}); err != nil {
		return ChatResult{}, err
	}

	result := ChatResult{
		Response: answer,
		Category: category,
	}
	if extracted, ok := ExtractProfileInfo(message); ok {
		result.SuggestProfileUpdate = true
		result.ExtractedInfo = extracted
	}
	return result, nil
}

// AnalyzeSymptoms is the non-chat entry point: it runs the symptom prompt
// and records the exchange under the symptoms category with a request
// marker as the user text.
func (s *Service) AnalyzeSymptoms(ctx context.Context, sessionID, symptoms string) (string, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return "", &ValidationError{Detail: "symptoms are required"}
	}
	if _, err := s.loadProfile(ctx, sessionID); err != nil {
		return "", err
	}

	answer, err := s.ai.AnalyzeSymptoms(ctx, symptoms)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	if err := s.appendHistory(ctx, sessionID, ConversationEntry{
		Timestamp: s.now().Format(TimestampLayout),
		User:      "Symptom analysis request: " + symptoms,
		Assistant: answer,
		Category:  CategorySymptoms,
	}); err != nil {
		return "", err
	}
	return answer, nil
}

// HealthTips asks the model for actionable tips in one category. Stateless:
// nothing is read from or written to the session.
func (s *Service) HealthTips(ctx context.Context, category string) (string, error) {
	category = normalizeCategory(category)
	answer, err := s.ai.HealthTips(ctx, category, CategoryDescription(category))
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	return answer, nil
}

// UpdateProfile applies a partial update and returns the merged profile.
// This is the only path that commits data into the stored profile.
func (s *Service) UpdateProfile(ctx context.Context, sessionID string, patch ProfilePatch) (UserProfile, error) {
	profile, err := s.loadProfile(ctx, sessionID)
	if err != nil {
		return UserProfile{}, err
	}
	profile = ApplyPatch(profile, patch)
	if err := s.saveProfile(ctx, sessionID, profile); err != nil {
		return UserProfile{}, err
	}
	return profile, nil
}

func (s *Service) Profile(ctx context.Context, sessionID string) (UserProfile, error) {
	return s.loadProfile(ctx, sessionID)
}

func (s *Service) History(ctx context.Context, sessionID string) ([]ConversationEntry, error) {
	return s.loadHistory(ctx, sessionID)
}

// ClearHistory resets the conversation to empty. The profile is untouched.
func (s *Service) ClearHistory(ctx context.Context, sessionID string) error {
	return s.saveHistory(ctx, sessionID, []ConversationEntry{})
}

// loadProfile lazily initializes the session profile on first access.
// Calling it repeatedly on a fresh session yields the same defaults.
func (s *Service) loadProfile(ctx context.Context, sessionID string) (UserProfile, error) {
	raw, ok, err := s.store.Get(ctx, sessionID, profileKey)
	if err != nil {
		return UserProfile{}, err
	}
	if ok {
		var profile UserProfile
		if err := json.Unmarshal(raw, &profile); err == nil {
			if profile.Conditions == nil {
				profile.Conditions = []string{}
			}
			if profile.Allergies == nil {
				profile.Allergies = []string{}
			}
			if profile.Medications == nil {
				profile.Medications = []string{}
			}
			return profile, nil
		}
		// Unreadable stored value: fall through and re-seed defaults.
	}
	profile := NewUserProfile()
	if err := s.saveProfile(ctx, sessionID, profile); err != nil {
		return UserProfile{}, err
	}
	return profile, nil
}

func (s *Service) saveProfile(ctx context.Context, sessionID string, profile UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, sessionID, profileKey, raw)
}

func (s *Service) loadHistory(ctx context.Context, sessionID string) ([]ConversationEntry, error) {
	raw, ok, err := s.store.Get(ctx, sessionID, historyKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var history []ConversationEntry
		if err := json.Unmarshal(raw, &history); err == nil && history != nil {
			return history, nil
		}
	}
	history := []ConversationEntry{}
	if err := s.saveHistory(ctx, sessionID, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *Service) saveHistory(ctx context.Context, sessionID string, history []ConversationEntry) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, sessionID, historyKey, raw)
}

// appendHistory writes the entry only after a successful model call, so a
// turn is either fully recorded or absent.
func (s *Service) appendHistory(ctx context.Context, sessionID string, entry ConversationEntry) error {
	history, err := s.loadHistory(ctx, sessionID)
	if err != nil {
		return err
	}
	history = append(history, entry)
	return s.saveHistory(ctx, sessionID, history)
}
