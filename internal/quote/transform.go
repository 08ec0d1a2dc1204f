package quote

import (
	"math"
	"time"
)

// TimeLayout is the display format of the quote time.
const TimeLayout = "2006-01-02 15:04"

// dateLayouts are tried in order. Offsets are kept as parsed, so formatting
// shows the source wall clock.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Transform converts a raw record into a display snapshot.
func Transform(r Record) Snapshot {
	return Snapshot{
		Price:     Some(r.Last),
		Variation: Variation(r.Last, r.Open),
		Time:      FormatTime(r.Date),
	}
}

// Variation is the percent change from open to last, truncated toward zero
// at two decimals: trunc(-(1 - last/open) * 10000) / 100.
func Variation(last, open float64) Number {
	if open == 0 {
		return Number{}
	}

	v := math.Trunc(-(1-last/open)*10000) / 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	if v == 0 {
		// -0 must not render as "-0.00"
		v = 0
	}
	return Some(v)
}

// FormatTime reformats an ISO-8601 timestamp as YYYY-MM-DD HH:mm without
// converting it to another zone. It returns "" when date cannot be parsed.
func FormatTime(date string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format(TimeLayout)
		}
	}
	return ""
}
