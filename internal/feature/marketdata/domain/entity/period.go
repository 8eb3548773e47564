package entity

// Period is a client-facing lookback window such as "6m".
type Period string

const (
	Period1W Period = "1w"
	Period1M Period = "1m"
	Period3M Period = "3m"
	Period6M Period = "6m"
	Period1Y Period = "1y"
)

// DefaultPeriod is used when the client sends nothing or an unknown value.
const DefaultPeriod = Period6M

// PeriodSpec is the bar interval and day count a Period maps to.
type PeriodSpec struct {
	Interval string
	Days     int
}

var periodSpecs = map[Period]PeriodSpec{
	Period1W: {Interval: "1week", Days: 7},
	Period1M: {Interval: "1month", Days: 30},
	Period3M: {Interval: "1month", Days: 90},
	Period6M: {Interval: "1day", Days: 180},
	Period1Y: {Interval: "1day", Days: 365},
}

// ParsePeriod maps s to a known Period, falling back to DefaultPeriod.
func ParsePeriod(s string) Period {
	p := Period(s)
	if _, ok := periodSpecs[p]; ok {
		return p
	}
	return DefaultPeriod
}

// Spec returns the interval and day count for p.
func (p Period) Spec() PeriodSpec {
	if spec, ok := periodSpecs[p]; ok {
		return spec
	}
	return periodSpecs[DefaultPeriod]
}
