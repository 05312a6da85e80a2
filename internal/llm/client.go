package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"healthassist/backend/internal/config"
)

// GeminiClient calls the Gemini generateContent endpoint over plain HTTP.
// One prompt in, one completion out; failures are surfaced to the caller
// without internal retries.
type GeminiClient struct {
	apiKey          string
	baseURL         string
	model           string
	maxOutputTokens int
	httpClient      *http.Client
}

func NewGeminiClient(cfg config.Config) *GeminiClient {
	timeoutSeconds := cfg.AITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 20
	}
	return &GeminiClient{
		apiKey:          strings.TrimSpace(cfg.GeminiAPIKey),
		baseURL:         strings.TrimRight(strings.TrimSpace(cfg.GeminiBaseURL), "/"),
		model:           strings.TrimSpace(cfg.GeminiModel),
		maxOutputTokens: cfg.AIMaxOutputTokens,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func (c *GeminiClient) Generate(ctx context.Context, promptContext, userMessage string) (string, error) {
	return c.generate(ctx, buildAdvicePrompt(promptContext, userMessage))
}

func (c *GeminiClient) AnalyzeSymptoms(ctx context.Context, symptoms string) (string, error) {
	return c.generate(ctx, buildSymptomPrompt(symptoms))
}

func (c *GeminiClient) HealthTips(ctx context.Context, category, description string) (string, error) {
	return c.generate(ctx, buildTipsPrompt(category, description))
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig struct {
		MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      generateContent `json:"content"`
		FinishReason string          `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY is not configured")
	}
	if c.baseURL == "" {
		return "", errors.New("GEMINI_BASE_URL is not configured")
	}
	if c.model == "" {
		return "", errors.New("GEMINI_MODEL is not configured")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("generation prompt is empty")
	}

	payload := generateRequest{
		Contents: []generateContent{
			{
				Role:  "user",
				Parts: []generatePart{{Text: prompt}},
			},
		},
	}
	payload.GenerationConfig.MaxOutputTokens = c.maxOutputTokens

	bodyRaw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyRaw))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("x-goog-api-key", c.apiKey)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("gemini error (%d): %s", response.StatusCode, truncateForLog(string(responseBody), 600))
	}

	var parsed generateResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return "", fmt.Errorf("gemini response unreadable: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini error (%d): %s", parsed.Error.Code, parsed.Error.Message)
	}

	answer := extractAnswer(parsed)
	if answer == "" {
		return "", errors.New("gemini response answer is empty")
	}
	return answer, nil
}

func extractAnswer(parsed generateResponse) string {
	parts := make([]string, 0, 4)
	for _, candidate := range parsed.Candidates {
		for _, part := range candidate.Content.Parts {
			text := strings.TrimSpace(part.Text)
			if text != "" {
				parts = append(parts, text)
			}
		}
		if len(parts) > 0 {
			break
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func truncateForLog(value string, limit int) string {
	trimmed := strings.TrimSpace(value)
	if limit <= 0 || len(trimmed) <= limit {
		return trimmed
	}
	return trimmed[:limit] + "...(truncated)"
}
