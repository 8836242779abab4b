// internal/ai/client.go
//
// Package ai implements the generative-model planning strategies: model-
// estimated order quantities and a model-produced full allocation plan. Both
// go through the same boundary rules as the rule-based path: quantities are
// clamped to stock bounds, zero lines are suppressed, and malformed output is
// skipped per line. A model that cannot be reached at all fails the run.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arisathang/Stock-management/internal/config"
	generativelanguage "google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"
)

// TextGenerator is the single model operation the strategies need. Tests
// substitute a canned implementation.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiClient talks to the Gemini API. It is constructed explicitly from
// config; nothing in this package keeps a global model handle.
type GeminiClient struct {
	svc   *generativelanguage.Service
	model string
}

func NewGeminiClient(ctx context.Context, cfg config.AIConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ai: api key must be provided")
	}

	svc, err := generativelanguage.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("ai: create client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "models/gemini-2.5-pro"
	}

	return &GeminiClient{svc: svc, model: model}, nil
}

func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{{
			Role:  "user",
			Parts: []*generativelanguage.Part{{Text: prompt}},
		}},
	}

	resp, err := c.svc.Models.GenerateContent(c.model, req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("ai: generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("ai: empty model response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// CleanModelJSON strips the markdown code fences models like to wrap JSON in.
func CleanModelJSON(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
