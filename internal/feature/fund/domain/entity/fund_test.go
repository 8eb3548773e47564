package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want bool
	}{
		{"510300", true},
		{"159915", true},
		{"51030", false},
		{"5103000", false},
		{"51030a", false},
		{"", false},
		{"５１０３００", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidCode(tt.code), tt.code)
	}
}

func TestExchangeOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "SSE", ExchangeOf("510300"))
	assert.Equal(t, "SZSE", ExchangeOf("159915"))
	assert.Equal(t, "SSE/SZSE", ExchangeOf("000001"))
}

func TestPresets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "沪深300ETF", PresetName("510300"))
	assert.Equal(t, "999999", PresetName("999999"))

	defaults := DefaultFunds()
	assert.Len(t, defaults, 2)
	assert.Equal(t, "510300", defaults[0].Code)
	assert.Equal(t, "512880", defaults[1].Code)
	assert.Equal(t, "证券ETF", defaults[1].Name)

	common := CommonFunds()
	assert.Len(t, common, 5)
	for _, f := range common {
		assert.True(t, f.IsActive)
		assert.Equal(t, "ETF", f.Category)
	}
}
