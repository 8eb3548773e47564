package cache

import (
	"time"
)

// Daily bars are final once the Shanghai and Shenzhen exchanges close.
const (
	refreshHour   = 15
	refreshMinute = 30
)

var marketLocation = loadMarketLocation()

func loadMarketLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}

// TimeUntilNextRefresh returns the time from now until the next 15:30 China
// Standard Time.
func TimeUntilNextRefresh(now time.Time) time.Duration {
	local := now.In(marketLocation)
	next := time.Date(local.Year(), local.Month(), local.Day(), refreshHour, refreshMinute, 0, 0, marketLocation)
	if !local.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(local)
}
