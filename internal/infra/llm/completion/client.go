package completion

import (
	"context"
	"errors"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yanqian/ai-health-assistant/internal/domain/assistant"
	"github.com/yanqian/ai-health-assistant/internal/infra/llm/chatgpt"
	"github.com/yanqian/ai-health-assistant/pkg/metrics"
)

// ErrNoChoices is returned when the backend answers without any choice.
var ErrNoChoices = errors.New("chat completion returned no choices")

// ChatCompleter is the transport used to reach the chat-completions API.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// Config selects the model used for every prompt.
type Config struct {
	Model       string
	Temperature float32
}

// Client adapts a ChatCompleter to the assistant's single-turn completion port.
type Client struct {
	cfg       Config
	api       ChatCompleter
	estimator TokenEstimator
	logger    *slog.Logger
}

var _ assistant.CompletionClient = (*Client)(nil)

// NewClient constructs the completion adapter.
func NewClient(cfg Config, api ChatCompleter, estimator TokenEstimator, logger *slog.Logger) *Client {
	return &Client{
		cfg:       cfg,
		api:       api,
		estimator: estimator,
		logger:    logger.With("component", "completion.client"),
	}
}

// Complete sends prompt as one user message and returns the first choice verbatim.
func (c *Client) Complete(ctx context.Context, prompt string) (assistant.Completion, error) {
	resp, err := c.api.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		Messages: []chatgpt.Message{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return assistant.Completion{}, err
	}
	if len(resp.Choices) == 0 {
		return assistant.Completion{}, ErrNoChoices
	}

	text := resp.Choices[0].Message.Content
	usage := metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	if usage.IsZero() {
		usage = c.estimate(prompt, text)
		c.logger.Debug("backend reported no usage, estimated locally", "total_tokens", usage.TotalTokens)
	}
	return assistant.Completion{Text: text, Usage: usage}, nil
}

func (c *Client) estimate(prompt, text string) metrics.TokenUsage {
	if c.estimator == nil {
		return metrics.TokenUsage{}
	}
	promptTokens := c.estimator.CountTokens(prompt)
	completionTokens := c.estimator.CountTokens(text)
	return metrics.TokenUsage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		Estimated:        true,
	}
}
