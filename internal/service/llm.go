package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/questgen-flow/backend/internal/domain"
	"github.com/questgen-flow/backend/internal/prompts"
)

// QuestionGenerator is the contract the orchestrator consumes for
// producing exam questions from a text chunk. It may return fewer items
// than requested; malformed items are already filtered out.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, chunk, language string, count, startID int) ([]domain.Question, error)
}

// Translator is the contract for translating explanation text. Callers
// treat any failure as "keep the original text".
type Translator interface {
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)
}

// LLMService calls an OpenAI-compatible chat completion endpoint for both
// question generation and explanation translation.
type LLMService struct {
	client   *resty.Client
	model    string
	endpoint string
}

// LLMConfig holds configuration for the LLM client.
type LLMConfig struct {
	Model   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewLLMService creates a new LLM client wrapper.
func NewLLMService(cfg *LLMConfig) *LLMService {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")

	// Bounded timeout so a hung upstream call cannot stall the pipeline
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	client.SetTimeout(timeout)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &LLMService{
		client:   client,
		model:    cfg.Model,
		endpoint: baseURL + "/chat/completions",
	}
}

// GetModel returns the model name being used.
func (s *LLMService) GetModel() string {
	return s.model
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// complete sends one chat completion request and returns the message text.
func (s *LLMService) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	req := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	}

	var resp chatResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.endpoint)

	if err != nil {
		return "", fmt.Errorf("failed to call LLM API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if resp.Error != nil {
			return "", fmt.Errorf("LLM API error: HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		}
		return "", fmt.Errorf("LLM API error: HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
	}
	if resp.Error != nil {
		return "", fmt.Errorf("LLM API error: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateQuestions asks the model for count questions built from the
// chunk, parses the JSON array reply, drops malformed items, and assigns
// provisional sequential IDs starting at startID. The result may be
// shorter than count; the caller owns retry behavior.
func (s *LLMService) GenerateQuestions(ctx context.Context, chunk, language string, count, startID int) ([]domain.Question, error) {
	maxTokens := 1000
	if count > 5 {
		maxTokens = 2000
	}

	content, err := s.complete(ctx, prompts.GenerationPrompt(chunk, language, count), maxTokens)
	if err != nil {
		return nil, err
	}

	var items []domain.Question
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &items); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}

	valid := make([]domain.Question, 0, len(items))
	for _, q := range items {
		if !q.Valid() {
			continue
		}
		q.ID = startID + len(valid)
		valid = append(valid, q)
	}

	return valid, nil
}

// Translate translates explanation text between languages. Errors are
// returned so the caller can fall back to the original text.
func (s *LLMService) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	translated, err := s.complete(ctx, prompts.TranslationPrompt(text, sourceLanguage, targetLanguage), 200)
	if err != nil {
		return "", err
	}
	if translated == "" {
		return "", fmt.Errorf("empty translation result")
	}
	return translated, nil
}

// stripCodeFence removes a surrounding markdown code fence that some
// models wrap around JSON output.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
