package di

import (
	"context"
	"fmt"
	"net/http"

	"etf_advisor/internal/feature/advisory/adapters/breaker"
	"etf_advisor/internal/feature/advisory/adapters/chat"
	"etf_advisor/internal/feature/advisory/adapters/deterministic"
	"etf_advisor/internal/feature/advisory/adapters/gemini"
	advisoryusecase "etf_advisor/internal/feature/advisory/usecase"
	"etf_advisor/internal/platform/config"
)

// NewProvider builds the configured advice provider. Remote providers are
// wrapped in a circuit breaker. "none" yields a nil provider, which makes
// the advisory usecase answer with rule-based advice only.
func NewProvider(ctx context.Context, cfg config.LLMConfig, client *http.Client) (advisoryusecase.Provider, error) {
	var p advisoryusecase.Provider
	switch cfg.Provider {
	case "none":
		return nil, nil
	case "deterministic", "":
		return deterministic.New(), nil
	case "gemini":
		g, err := gemini.NewGeminiProvider(ctx, gemini.Config{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL, Model: cfg.Model})
		if err != nil {
			return nil, err
		}
		p = g
	case "openai":
		p = chat.NewChatProvider(chat.OpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model), client)
	case "deepseek":
		p = chat.NewChatProvider(chat.DeepSeek(cfg.APIKey, cfg.BaseURL, cfg.Model), client)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	return breaker.New(cfg.Provider, p, breaker.DefaultSettings), nil
}
