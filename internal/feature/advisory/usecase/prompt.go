package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	strategyentity "etf_advisor/internal/feature/strategy/domain/entity"
)

// SystemInstruction is sent as the system role by providers that support one.
const SystemInstruction = "You are a professional ETF quantitative investment assistant. Analyze strategies in concise, clear language."

// BuildPrompt renders a strategy result into the provider prompt.
// The output is deterministic so identical results share a cache key.
func BuildPrompt(r strategyentity.StrategyResult) string {
	var b strings.Builder
	b.WriteString("\nAnalyze the following ETF strategy signals and give investment advice:\n\n")
	fmt.Fprintf(&b, "Final action: %s\n", r.FinalAction)
	fmt.Fprintf(&b, "Overall confidence: %s\n\n", percent(r.Confidence))
	b.WriteString("Strategy signals:\n")
	for _, s := range r.Signals {
		fmt.Fprintf(&b, "- %s: %s (confidence %s) - %s\n", s.Name, s.Action, percent(s.Confidence), s.Details)
	}
	b.WriteString(`
Summarize briefly and clearly:
1. Current market state
2. Reasons for the action
3. Risk warnings
4. Suggested position size

Keep the reply under 100 words.
`)
	return b.String()
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

// CacheKey is the hex sha256 digest of the exact prompt text.
func CacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

var actionAdvice = map[strategyentity.Action]string{
	strategyentity.ActionBuy:  "Indicators point upward; consider building a position gradually",
	strategyentity.ActionSell: "Indicators warn of a pullback; consider trimming the position",
	strategyentity.ActionHold: "Direction is unclear; wait and watch",
}

// RuleBasedAdvice maps the final action and confidence to canned advice.
// It never calls a provider.
func RuleBasedAdvice(r strategyentity.StrategyResult) string {
	advice, ok := actionAdvice[r.FinalAction]
	if !ok {
		advice = "Wait and watch"
	}

	switch {
	case r.Confidence > 0.75:
		advice += ", strong signal."
	case r.Confidence < 0.55:
		advice += ", weak signal, act with caution."
	default:
		advice += "."
	}

	switch r.FinalAction {
	case strategyentity.ActionBuy:
		advice += " Keep the position size under control and set a stop loss."
	case strategyentity.ActionSell:
		advice += " Consider scaling out in batches and buying back after a pullback."
	}
	return advice
}
