package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fadilmartias/interview-quiz/internal/config"
	"google.golang.org/genai"
)

var (
	ErrEmptyPrompt   = errors.New("prompt cannot be empty")
	ErrEmptyResponse = errors.New("model returned no text")
)

// GeminiServiceInterface is the text-generation model as seen by the use
// cases: a prompt goes in, completion text comes out.
type GeminiServiceInterface interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// APIError is a non-2xx reply from the Gemini API.
type APIError struct {
	Code      int
	Retryable bool
	Err       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini api error (code %d): %v", e.Code, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

type GeminiService struct {
	Client         *genai.Client
	Model          string
	RequestTimeout time.Duration
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:         client,
		Model:          cfg.Model,
		RequestTimeout: cfg.RequestTimeout,
	}, nil
}

// GenerateText makes exactly one model call. Callers own any retry policy.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	if s.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.RequestTimeout)
		defer cancel()
	}

	result, err := s.Client.Models.GenerateContent(ctx, s.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", mapGeminiError(err)
	}
	if err := validateGenerateResponse(result); err != nil {
		return "", fmt.Errorf("invalid response: %w", err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{Code: apiErr.Code, Retryable: isRetryableCode(apiErr.Code), Err: err}
	}
	return fmt.Errorf("generate content failed: %w", err)
}

func isRetryableCode(code int) bool {
	switch {
	case code == http.StatusTooManyRequests:
		return true
	case code >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}
