package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sauhard98/sirion/config"
	"google.golang.org/genai"
)

// TextGenerator is the minimal surface of the upstream model: one
// prompt in, one text completion out.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiService sends completion requests to Gemini with a bounded wait.
type GeminiService struct {
	generator TextGenerator
	timeout   time.Duration
}

type geminiModel struct {
	client *genai.Client
	model  string
}

func (m *geminiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// NewGeminiService creates the client for the configured model.
func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiService{
		generator: &geminiModel{client: client, model: cfg.Model},
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// NewCompletionService wraps an arbitrary generator with the timeout bound.
func NewCompletionService(gen TextGenerator, timeout time.Duration) *GeminiService {
	return &GeminiService{generator: gen, timeout: timeout}
}

// Complete races the model request against the timeout and returns the
// raw completion text. A response arriving after the timer fired is
// discarded; the buffered channel lets the request goroutine finish
// without a receiver.
func (s *GeminiService) Complete(ctx context.Context, prompt string) (string, error) {
	type outcome struct {
		text string
		err  error
	}

	ch := make(chan outcome, 1)
	go func() {
		text, err := s.generator.GenerateText(ctx, prompt)
		ch <- outcome{text: text, err: err}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		if out.err != nil {
			return "", fmt.Errorf("gemini request failed: %w", out.err)
		}
		if strings.TrimSpace(out.text) == "" {
			return "", ErrEmptyResponse
		}
		return out.text, nil
	case <-timer.C:
		return "", ErrTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
