package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// localNumCtx is the context window requested from the local model server.
// The schema plus a full report does not fit the common 2k default.
const localNumCtx = 8192

// localClient talks to a locally hosted Ollama-compatible model server.
type localClient struct {
	baseURL string
	model   string
	client  *http.Client
}

func newLocalClient(b Binding, timeout time.Duration) *localClient {
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}

	return &localClient{
		baseURL: b.BaseURL,
		model:   b.Model,
		client:  client,
	}
}

type localRequest struct {
	Model    string          `json:"model"`
	Messages []localMessage  `json:"messages"`
	Format   json.RawMessage `json:"format,omitempty"`
	Stream   bool            `json:"stream"`
	Options  localOptions    `json:"options"`
}

type localMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type localOptions struct {
	Temperature float64 `json:"temperature"`
	NumCtx      int     `json:"num_ctx,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type localResponse struct {
	Message         localMessage `json:"message"`
	Done            bool         `json:"done"`
	PromptEvalCount int          `json:"prompt_eval_count"`
	EvalCount       int          `json:"eval_count"`
}

// Complete sends a completion request to the local model server.
func (c *localClient) Complete(ctx context.Context, req Request) (Response, error) {
	localReq := localRequest{
		Model: c.model,
		Messages: []localMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Stream: false,
		Options: localOptions{
			Temperature: req.Temperature,
			NumCtx:      localNumCtx,
			NumPredict:  req.MaxTokens,
		},
	}

	if req.JSONSchema != nil {
		schemaBytes, err := json.Marshal(req.JSONSchema)
		if err != nil {
			return Response{}, fmt.Errorf("failed to marshal JSON schema: %w", err)
		}
		localReq.Format = schemaBytes
	}

	body, err := json.Marshal(localReq)
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("local model server request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return Response{}, fmt.Errorf("local model server returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var localResp localResponse
	if err := json.NewDecoder(resp.Body).Decode(&localResp); err != nil {
		return Response{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return Response{
		Content: localResp.Message.Content,
		Usage: Usage{
			PromptTokens:     localResp.PromptEvalCount,
			CompletionTokens: localResp.EvalCount,
		},
		Duration: time.Since(start),
	}, nil
}

// Name returns the backend identifier.
func (c *localClient) Name() string {
	return string(KindLocal)
}
