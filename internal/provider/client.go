package provider

import (
	"context"
	"fmt"
	"time"
)

// Request is a chat-completion request built from one study report.
type Request struct {
	System      string
	User        string
	JSONSchema  map[string]any // structured-output constraint
	Temperature float64
	MaxTokens   int
}

// Usage tracks token consumption of one completion.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// TotalTokens returns the combined token count.
func (u Usage) TotalTokens() int {
	return u.PromptTokens + u.CompletionTokens
}

// Response is the raw completion returned by a backend.
type Response struct {
	Content  string
	Usage    Usage
	Duration time.Duration
}

// ChatClient is the uniform chat-completion capability over both backends.
type ChatClient interface {
	// Complete sends one completion request and returns the raw response.
	Complete(ctx context.Context, req Request) (Response, error)

	// Name returns the backend identifier for logging and provenance.
	Name() string
}

// NewClient builds the concrete client for a binding.
func NewClient(b Binding, timeout time.Duration) (ChatClient, error) {
	switch b.Kind {
	case KindCloud:
		return newCloudClient(b), nil
	case KindLocal:
		return newLocalClient(b, timeout), nil
	default:
		return nil, fmt.Errorf("unknown provider kind: %s", b.Kind)
	}
}
