// Package entity defines the domain models for the advisory feature.
package entity

import "time"

// CacheEntry is a stored provider response keyed by the hash of its prompt.
type CacheEntry struct {
	Key       string
	Prompt    string
	Response  string
	ExpiresAt time.Time
}

// Fresh reports whether the entry may still be served at now.
// An entry expiring exactly at now is still fresh.
func (e CacheEntry) Fresh(now time.Time) bool {
	return !now.After(e.ExpiresAt)
}
