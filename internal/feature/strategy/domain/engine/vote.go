package engine

import "etf_advisor/internal/feature/strategy/domain/entity"

// defaultConfidence is reported when the winning action received no votes.
const defaultConfidence = 0.5

// Vote tallies signals per action and picks the winner by vote count, breaking
// ties on the summed (not averaged) confidence of each action's voters. Equal
// pairs keep the earlier action in entity.Actions order.
// The reported confidence is the average confidence of the winning voters.
func Vote(signals []entity.Signal) entity.StrategyResult {
	votes := make(map[entity.Action]int, len(entity.Actions))
	sums := make(map[entity.Action]float64, len(entity.Actions))
	for _, a := range entity.Actions {
		votes[a] = 0
	}
	for _, s := range signals {
		if _, ok := votes[s.Action]; !ok {
			continue
		}
		votes[s.Action]++
		sums[s.Action] += s.Confidence
	}

	winner := entity.Actions[0]
	for _, a := range entity.Actions[1:] {
		if votes[a] > votes[winner] || (votes[a] == votes[winner] && sums[a] > sums[winner]) {
			winner = a
		}
	}

	confidence := defaultConfidence
	if votes[winner] > 0 {
		confidence = sums[winner] / float64(votes[winner])
	}

	return entity.StrategyResult{
		Signals:     signals,
		FinalAction: winner,
		Confidence:  confidence,
		Votes:       votes,
	}
}
