package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// cloudClient wraps the OpenAI SDK for the hosted chat-completion API.
type cloudClient struct {
	client openai.Client
	model  string
}

func newCloudClient(b Binding) *cloudClient {
	opts := []option.RequestOption{option.WithAPIKey(b.APIKey)}
	if b.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(b.BaseURL))
	}

	return &cloudClient{
		client: openai.NewClient(opts...),
		model:  b.Model,
	}
}

// Complete sends a completion request to the cloud API.
func (c *cloudClient) Complete(ctx context.Context, req Request) (Response, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	if req.JSONSchema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "extracted_data",
					Schema: req.JSONSchema,
					Strict: openai.Bool(true),
				},
			},
		}
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("cloud API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("no choices in response")
	}

	return Response{
		Content: resp.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
		},
		Duration: time.Since(start),
	}, nil
}

// Name returns the backend identifier.
func (c *cloudClient) Name() string {
	return string(KindCloud)
}
