// Package entity defines the domain models for the fund feature.
package entity

import (
	"strings"
	"time"
)

// Fund is an exchange-traded fund tracked by the advisor.
type Fund struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:16;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Exchange  string    `gorm:"size:16;not null"`
	Category  string    `gorm:"size:32;not null;default:ETF"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Fund) TableName() string {
	return "funds"
}

// ValidCode reports whether code is a six-digit fund code.
func ValidCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ExchangeOf derives the listing exchange from a fund code prefix.
func ExchangeOf(code string) string {
	switch {
	case strings.HasPrefix(code, "5"):
		return "SSE"
	case strings.HasPrefix(code, "1"):
		return "SZSE"
	default:
		return "SSE/SZSE"
	}
}
