package chatgpt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	defaultTimeout = 60 * time.Second
)

// ChatCompletionRequest and ChatCompletionResponse alias the go-openai wire types.
type (
	ChatCompletionRequest  = openai.ChatCompletionRequest
	ChatCompletionResponse = openai.ChatCompletionResponse
	Message                = openai.ChatCompletionMessage
)

// Client performs chat-completion calls against any OpenAI-compatible API.
type Client struct {
	api *openai.Client
}

// NewClient constructs a client. A zero timeout falls back to 60s.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("chatgpt api key cannot be empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{api: openai.NewClientWithConfig(cfg)}, nil
}

// CreateChatCompletion triggers a sync chat-completion call.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return ChatCompletionResponse{}, fmt.Errorf("request chat completion: %w", err)
	}
	return resp, nil
}
