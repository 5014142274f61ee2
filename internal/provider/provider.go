// Package provider routes a model name to the backend that serves it and
// builds the chat-completion client for that backend.
package provider

import (
	"fmt"
	"strings"

	"github.com/radlab-hd/laextract/internal/config"
)

// Kind is the closed set of provider backends.
type Kind string

const (
	// KindCloud is the hosted chat-completion API.
	KindCloud Kind = "cloud"
	// KindLocal is the locally hosted model server.
	KindLocal Kind = "local"
)

// Binding pairs a model name with the backend that serves it and the
// endpoint configuration the client needs. A binding carries configuration
// only; no connection is opened until the first completion call.
type Binding struct {
	Kind    Kind
	Model   string
	APIKey  string // cloud only
	BaseURL string // cloud override or local host
}

// UnavailableError means a model cannot be bound to a usable client, e.g.
// the credential or base URL for the decided backend is missing.
type UnavailableError struct {
	Model  string
	Reason string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("no usable provider for model %s: %s", e.Model, e.Reason)
}

// Classify decides which backend serves a model name. Patterns are exact
// names, or prefixes when they end in '*'. Anything that matches no cloud
// pattern is served locally.
func Classify(model string, cloudPatterns []string) Kind {
	for _, p := range cloudPatterns {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(model, prefix) {
				return KindCloud
			}
			continue
		}
		if model == p {
			return KindCloud
		}
	}
	return KindLocal
}

// Resolve binds a model name to its backend, failing fast when the backend
// cannot be configured. Resolution never performs network I/O.
func Resolve(model string, cfg config.Config) (Binding, error) {
	if model == "" {
		return Binding{}, &UnavailableError{Model: model, Reason: "model name is empty"}
	}

	switch Classify(model, cfg.CloudModels) {
	case KindCloud:
		if cfg.OpenAIKey == "" {
			return Binding{}, &UnavailableError{Model: model, Reason: "OPEN_AI_KEY is not set"}
		}
		return Binding{
			Kind:    KindCloud,
			Model:   model,
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
		}, nil
	default:
		if cfg.OllamaHost == "" {
			return Binding{}, &UnavailableError{Model: model, Reason: "OLLAMA_HOST is not set"}
		}
		return Binding{
			Kind:    KindLocal,
			Model:   model,
			BaseURL: cfg.OllamaHost,
		}, nil
	}
}
