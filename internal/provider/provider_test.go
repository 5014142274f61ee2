package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/radlab-hd/laextract/internal/config"
)

var testPatterns = []string{"gpt-4o", "gpt-4o-mini", "o3-mini", "gpt-*"}

func TestClassify(t *testing.T) {
	tests := []struct {
		model string
		want  Kind
	}{
		{"gpt-4o", KindCloud},
		{"gpt-4o-mini", KindCloud},
		{"o3-mini", KindCloud},
		{"gpt-4.1-nano", KindCloud}, // matches the gpt-* prefix pattern
		{"falcon3:70b", KindLocal},
		{"llama3.3:70b", KindLocal},
		{"qwen2.5:72b", KindLocal},
		{"", KindLocal},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			if got := Classify(tt.model, testPatterns); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestResolve_CloudNeedsKey(t *testing.T) {
	cfg := config.Config{CloudModels: testPatterns, OllamaHost: "http://localhost:11434"}

	_, err := Resolve("gpt-4o", cfg)

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
	if unavailable.Model != "gpt-4o" {
		t.Errorf("UnavailableError.Model = %q, want gpt-4o", unavailable.Model)
	}
}

func TestResolve_LocalIgnoresMissingCloudKey(t *testing.T) {
	cfg := config.Config{CloudModels: testPatterns, OllamaHost: "http://localhost:11434"}

	b, err := Resolve("falcon3:70b", cfg)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if b.Kind != KindLocal {
		t.Errorf("Kind = %v, want local", b.Kind)
	}
	if b.BaseURL != "http://localhost:11434" {
		t.Errorf("BaseURL = %q, want the configured host", b.BaseURL)
	}
}

func TestResolve_LocalNeedsHost(t *testing.T) {
	cfg := config.Config{CloudModels: testPatterns}

	_, err := Resolve("falcon3:70b", cfg)

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
}

func TestResolve_CloudBinding(t *testing.T) {
	cfg := config.Config{
		CloudModels:   testPatterns,
		OpenAIKey:     "sk-test",
		OpenAIBaseURL: "https://example.invalid/v1",
	}

	b, err := Resolve("gpt-4o", cfg)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if b.Kind != KindCloud || b.APIKey != "sk-test" || b.BaseURL != "https://example.invalid/v1" {
		t.Errorf("unexpected binding: %+v", b)
	}
}

func TestResolve_EmptyModel(t *testing.T) {
	cfg := config.Config{CloudModels: testPatterns, OllamaHost: "http://localhost:11434"}

	var unavailable *UnavailableError
	if _, err := Resolve("", cfg); !errors.As(err, &unavailable) {
		t.Fatalf("expected UnavailableError for empty model, got %v", err)
	}
}

func TestNewClient_KindSelectsBackend(t *testing.T) {
	cloud, err := NewClient(Binding{Kind: KindCloud, Model: "gpt-4o", APIKey: "sk-test"}, time.Second)
	if err != nil {
		t.Fatalf("NewClient(cloud) error = %v", err)
	}
	if cloud.Name() != "cloud" {
		t.Errorf("cloud client Name() = %q, want cloud", cloud.Name())
	}

	local, err := NewClient(Binding{Kind: KindLocal, Model: "falcon3:70b", BaseURL: "http://localhost:11434"}, time.Second)
	if err != nil {
		t.Fatalf("NewClient(local) error = %v", err)
	}
	if local.Name() != "local" {
		t.Errorf("local client Name() = %q, want local", local.Name())
	}
}

func TestLocalClient_Complete(t *testing.T) {
	var captured localRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(localResponse{
			Message:         localMessage{Role: "assistant", Content: `{"ok":true}`},
			Done:            true,
			PromptEvalCount: 100,
			EvalCount:       20,
		})
	}))
	defer srv.Close()

	client := newLocalClient(Binding{Kind: KindLocal, Model: "falcon3:70b", BaseURL: srv.URL}, 5*time.Second)

	resp, err := client.Complete(context.Background(), Request{
		System:     "system",
		User:       "user",
		JSONSchema: map[string]any{"type": "object"},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if resp.Content != `{"ok":true}` {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Usage.PromptTokens != 100 || resp.Usage.CompletionTokens != 20 {
		t.Errorf("Usage = %+v", resp.Usage)
	}
	if resp.Usage.TotalTokens() != 120 {
		t.Errorf("TotalTokens() = %d, want 120", resp.Usage.TotalTokens())
	}

	if captured.Model != "falcon3:70b" {
		t.Errorf("request model = %q", captured.Model)
	}
	if captured.Stream {
		t.Error("streaming must be disabled")
	}
	if captured.Options.NumCtx != localNumCtx {
		t.Errorf("num_ctx = %d, want %d", captured.Options.NumCtx, localNumCtx)
	}
	if len(captured.Format) == 0 {
		t.Error("expected format constraint in request")
	}
}

func TestLocalClient_CompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := newLocalClient(Binding{Kind: KindLocal, Model: "missing", BaseURL: srv.URL}, 5*time.Second)

	if _, err := client.Complete(context.Background(), Request{User: "user"}); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
