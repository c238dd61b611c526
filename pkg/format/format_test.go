package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"whole number", 60, "60.0%"},
		{"fractional", 33.333333, "33.3%"},
		{"zero", 0, "0.0%"},
		{"negative", -2, "-2.0%"},
		{"above hundred", 150.05, "150.1%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Percentage(tt.value))
		})
	}
}

func TestPercentagePrecision(t *testing.T) {
	assert.Equal(t, "12.35%", PercentagePrecision(12.345, 2))
	assert.Equal(t, "12%", PercentagePrecision(12.345, 0))
}

func TestValue(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"small amount", 999, "$999.00"},
		{"exactly one thousand", 1000, "$1.00K"},
		{"thousands", 1500, "$1.50K"},
		{"just below a million", 999999, "$1000.00K"},
		{"millions", 2345000, "$2.35M"},
		{"zero", 0, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Value(tt.value))
		})
	}
}
