// Package llm sends generation prompts to a hosted language model.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"quiz-practice/internal/config"
	"quiz-practice/internal/domain"
	"quiz-practice/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const defaultTemperature = 0.7

// Invoker makes exactly one model call per Invoke. It never retries.
type Invoker struct {
	model   llms.Model
	timeout time.Duration
}

// NewInvoker wraps an already constructed model. A zero timeout leaves the
// caller's deadline in charge.
func NewInvoker(model llms.Model, timeout time.Duration) *Invoker {
	return &Invoker{model: model, timeout: timeout}
}

// NewModel builds the configured langchaingo backend.
func NewModel(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case "ollama":
		httpClient := &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		}
		return ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
	case "", "googleai":
		if cfg.APIKey == "" {
			return nil, errors.New("llm.api_key (or GEMINI_API_KEY) is required for the googleai provider")
		}
		return googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// Invoke returns the raw model text. Every failure, including a deadline,
// is reported as an invocation error wrapping the cause.
func (i *Invoker) Invoke(ctx context.Context, prompt string) (string, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	l := logger.Get()
	start := time.Now()
	response, err := llms.GenerateFromSinglePrompt(ctx, i.model, prompt, llms.WithTemperature(defaultTemperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			l.Error("Model request timed out", zap.Duration("timeout", i.timeout), zap.Error(err))
		} else {
			l.Error("Model request failed", zap.Error(err))
		}
		return "", domain.NewInvocationError(err)
	}

	l.Debug("Model responded",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("promptLength", len(prompt)),
		zap.Int("responseLength", len(response)))
	return response, nil
}
