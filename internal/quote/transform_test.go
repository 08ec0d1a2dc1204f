package quote

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariation_TruncatesTowardZero(t *testing.T) {
	tests := []struct {
		name        string
		last, open  float64
		want        float64
		wantFalling bool
	}{
		{"small gain truncated", 101.004, 100, 1.00, false},
		{"small loss truncated to zero", 99.996, 100, 0, false},
		{"two decimal gain", 150, 148, math.Trunc(-(1-150.0/148.0)*10000) / 100, false},
		{"loss", 95.5, 100, -4.5, true},
		{"loss truncated not rounded", 98.7654, 100, -1.23, true},
		{"unchanged", 100, 100, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Variation(tt.last, tt.open)

			v, ok := got.Value()
			require.True(t, ok)
			require.Equal(t, tt.want, v)
			require.False(t, math.Signbit(v) && v == 0, "variation must not be negative zero")

			snap := Snapshot{Variation: got}
			require.Equal(t, tt.wantFalling, snap.Falling())
		})
	}
}

func TestVariation_ExampleValues(t *testing.T) {
	require.Equal(t, "1.00", Variation(101.004, 100).Format(2))
	require.Equal(t, "0.00", Variation(99.996, 100).Format(2))
	require.Equal(t, "1.35", Variation(150, 148).Format(2))
}

func TestVariation_ZeroOpenIsUnset(t *testing.T) {
	got := Variation(10, 0)
	require.False(t, got.IsSet())
	require.Equal(t, Placeholder, got.Format(2))
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-01T10:00:00", "2024-01-01 10:00"},
		{"2024-01-01T10:00:00+0000", "2024-01-01 10:00"},
		{"2024-03-15T15:45:00-0400", "2024-03-15 15:45"},
		{"2024-03-15T15:45:00Z", "2024-03-15 15:45"},
		{"2024-03-15T15:45:30.250+02:00", "2024-03-15 15:45"},
		{"2024-03-15 09:30:00", "2024-03-15 09:30"},
		{"2024-03-15", "2024-03-15 00:00"},
		{"not a date", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, FormatTime(tt.in))
		})
	}
}

func TestTransform(t *testing.T) {
	rec := Record{Symbol: "TEST", Last: 150, Open: 148, Date: "2024-01-01T10:00:00"}

	got := Transform(rec)

	price, ok := got.Price.Value()
	require.True(t, ok)
	require.Equal(t, 150.0, price)
	require.Equal(t, "1.35", got.Variation.Format(2))
	require.Equal(t, "2024-01-01 10:00", got.Time)
	require.False(t, got.Falling())
}

func TestTransform_Idempotent(t *testing.T) {
	rec := Record{Last: 99.996, Open: 100, Date: "2024-01-01T10:00:00+0000"}

	require.Equal(t, Transform(rec), Transform(rec))
}

func TestSnapshot_ZeroValueIsPlaceholders(t *testing.T) {
	var s Snapshot

	require.True(t, s.IsEmpty())
	require.Equal(t, Placeholder, s.Price.Format(-1))
	require.Equal(t, Placeholder, s.Variation.Format(2))
	require.Equal(t, Placeholder, s.TimeOrPlaceholder())
	require.False(t, s.Falling())
}

func TestNewExchangeInfo(t *testing.T) {
	require.Equal(t, ExchangeInfo{Acronym: "N/A", Name: "N/A"}, DefaultExchange())
	require.Equal(t, ExchangeInfo{Acronym: "N/A", Name: "Unknown"}, NewExchangeInfo("", ""))
	require.Equal(t, ExchangeInfo{Acronym: "XNAS", Name: "Apple Inc"}, NewExchangeInfo("XNAS", "Apple Inc"))
}
