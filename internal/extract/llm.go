package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/radlab-hd/laextract/internal/lae"
	"github.com/radlab-hd/laextract/internal/logger"
	"github.com/radlab-hd/laextract/internal/provider"
	"github.com/radlab-hd/laextract/internal/report"
)

const (
	// llmMaxRetries is the number of extra attempts after the first
	// failed completion call.
	llmMaxRetries = 2

	// llmRetryDelay is the pause between attempts.
	llmRetryDelay = 2 * time.Second
)

// LLMStrategy extracts structured data by prompting a chat-completion
// backend with the report body and a JSON-schema output constraint.
type LLMStrategy struct {
	client     provider.ChatClient
	model      string
	retryDelay time.Duration
}

// NewLLMStrategy builds the LLM strategy over an already resolved client.
func NewLLMStrategy(client provider.ChatClient, model string) *LLMStrategy {
	return &LLMStrategy{
		client:     client,
		model:      model,
		retryDelay: llmRetryDelay,
	}
}

// Name returns the strategy identifier.
func (s *LLMStrategy) Name() string {
	return "llm"
}

// Extract prompts the model with one report. Transport and API failures are
// retried up to llmMaxRetries times; a response that decodes badly or
// violates the schema is not retried, since the model already answered.
func (s *LLMStrategy) Extract(ctx context.Context, r report.StudyReport) (Result, error) {
	req := provider.Request{
		System:      lae.SystemPrompt,
		User:        r.Body,
		JSONSchema:  lae.JSONSchema(),
		Temperature: 0,
	}

	var lastErr error
	for attempt := 0; attempt <= llmMaxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn("retrying completion",
				"study_id", r.StudyID, "model", s.model, "attempt", attempt+1, "error", lastErr)
			if err := sleepCtx(ctx, s.retryDelay); err != nil {
				return Result{}, &ProviderError{StudyID: r.StudyID, Model: s.model, Err: err}
			}
		}

		resp, err := s.client.Complete(ctx, req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return Result{}, &ProviderError{StudyID: r.StudyID, Model: s.model, Err: ctx.Err()}
			}
			continue
		}

		data, err := decodeResponse(resp.Content)
		if err != nil {
			return Result{}, &MalformedResponseError{
				StudyID: r.StudyID,
				Model:   s.model,
				Err:     err,
				Raw:     truncateRaw(resp.Content),
			}
		}

		calc := lae.ClotBurdenScore(data.Findings)
		return Result{
			StudyID:             r.StudyID,
			Strategy:            s.Name(),
			Model:               s.model,
			ExtractedAt:         time.Now().UTC(),
			Data:                data,
			ClotBurdenScoreCalc: &calc,
			PromptTokens:        resp.Usage.PromptTokens,
			CompletionTokens:    resp.Usage.CompletionTokens,
			Duration:            resp.Duration,
		}, nil
	}

	return Result{}, &ProviderError{StudyID: r.StudyID, Model: s.model, Err: lastErr}
}

// decodeResponse parses and validates one completion payload.
func decodeResponse(content string) (*lae.ExtractedData, error) {
	var data lae.ExtractedData
	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if err := lae.Validate(&data); err != nil {
		return nil, fmt.Errorf("response violates schema: %w", err)
	}
	return &data, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
