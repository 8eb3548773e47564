// Package deterministic provides canned advice without any network access.
package deterministic

import (
	"context"
	"strings"

	"etf_advisor/internal/feature/advisory/usecase"
	strategyentity "etf_advisor/internal/feature/strategy/domain/entity"
)

const (
	buyText = "Technical indicators show strong short-term upward momentum. " +
		"The moving averages have crossed upward, RSI is firm and price is above the middle Bollinger band. " +
		"Consider buying on dips with a position of 30%-50%."
	sellText = "Technical indicators show short-term correction risk. " +
		"RSI is in overbought territory, so watch for a pullback. " +
		"Consider trimming to lock in profit and keep the position under 20%."
	holdText = "Market direction is unclear and the indicators disagree. " +
		"Keep the current position, avoid chasing moves and wait for a clearer signal."
)

// Provider answers from the final action named in the prompt.
type Provider struct{}

var _ usecase.Provider = Provider{}

func New() Provider { return Provider{} }

func (Provider) Generate(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, actionLine(strategyentity.ActionBuy)):
		return buyText, nil
	case strings.Contains(prompt, actionLine(strategyentity.ActionSell)):
		return sellText, nil
	default:
		return holdText, nil
	}
}

func actionLine(a strategyentity.Action) string {
	return "Final action: " + string(a) + "\n"
}
