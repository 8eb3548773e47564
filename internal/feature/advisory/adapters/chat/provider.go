// Package chat talks to OpenAI compatible chat completion endpoints.
// DeepSeek exposes the same API under its own base URL.
package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"etf_advisor/internal/feature/advisory/usecase"
)

const (
	OpenAIBaseURL = "https://api.openai.com/v1"
	OpenAIModel   = "gpt-3.5-turbo"

	DeepSeekBaseURL = "https://api.deepseek.com"
	DeepSeekModel   = "deepseek-chat"

	maxTokens   = 500
	temperature = 0.7
)

// Config selects the endpoint and credentials.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAI returns a Config for api.openai.com, keeping any non-empty overrides.
func OpenAI(apiKey, baseURL, model string) Config {
	return withDefaults(Config{APIKey: apiKey, BaseURL: baseURL, Model: model}, OpenAIBaseURL, OpenAIModel)
}

// DeepSeek returns a Config for api.deepseek.com, keeping any non-empty overrides.
func DeepSeek(apiKey, baseURL, model string) Config {
	return withDefaults(Config{APIKey: apiKey, BaseURL: baseURL, Model: model}, DeepSeekBaseURL, DeepSeekModel)
}

func withDefaults(c Config, baseURL, model string) Config {
	if c.BaseURL == "" {
		c.BaseURL = baseURL
	}
	if c.Model == "" {
		c.Model = model
	}
	return c
}

// ChatProvider generates advice through a chat completion endpoint.
type ChatProvider struct {
	cfg    Config
	client openai.Client
}

var _ usecase.Provider = (*ChatProvider)(nil)

// NewChatProvider builds a provider on the openai-go client. Retries are left
// to the caller, which wraps providers in a circuit breaker.
func NewChatProvider(cfg Config, httpClient *http.Client) *ChatProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &ChatProvider{cfg: cfg, client: openai.NewClient(opts...)}
}

// Generate returns usecase.ErrProviderUnavailable when no API key is set.
func (p *ChatProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.cfg.APIKey == "" {
		return "", usecase.ErrProviderUnavailable
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(usecase.SystemInstruction),
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("chat API error: status=%d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
