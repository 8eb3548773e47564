package entity

import "time"

// Decision is a persisted daily strategy record for a fund.
// ActualAction is empty until the user records what they did.
type Decision struct {
	ID              uint
	FundCode        string
	Date            time.Time
	Signals         []Signal
	FinalAction     Action
	SuggestedAmount float64
	Advice          string
	ActualAction    Action
	ActualAmount    float64
	Remark          string
	CreatedAt       time.Time
}

// Followed reports whether the user recorded an actual action.
func (d Decision) Followed() bool {
	return d.ActualAction != ""
}

// Performance summarises how often recommendations were followed.
type Performance struct {
	Total       int
	Followed    int
	NotFollowed int
	Accuracy    float64
}
