// Package entity defines the domain models for the strategy feature.
package entity

import "strings"

// Action is the discrete recommendation produced by a strategy or by the vote.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// Actions lists every action in tie-break priority order.
var Actions = []Action{ActionBuy, ActionSell, ActionHold}

// ParseAction converts user input into an Action.
func ParseAction(s string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ActionBuy, ActionSell, ActionHold:
		return a, true
	}
	return "", false
}

// Signal is one strategy's opinion about a price history.
type Signal struct {
	Name       string  // Strategy name (e.g. "Dual MA")
	Action     Action  // Recommended action
	Confidence float64 // Heuristic strength in [0,1]
	Details    string  // Human readable explanation
}

// StrategyResult is the fused decision over all strategies.
type StrategyResult struct {
	Signals     []Signal       // One per strategy, in engine order
	FinalAction Action         // Winning action of the vote
	Confidence  float64        // Average confidence of the winning voters
	Votes       map[Action]int // Vote count per action, every action present
}
