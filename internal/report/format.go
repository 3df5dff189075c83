package report

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Count formats n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Date formats t as a calendar date followed by a relative age, or "unknown" for the
// zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format("2006-01-02") + " (" + humanize.Time(t) + ")"
}

// Percent formats part/whole as a percentage with one decimal.
func Percent(part, whole int) string {
	if whole <= 0 {
		return "n/a"
	}
	return humanize.FtoaWithDigits(float64(part)*100/float64(whole), 1) + "%"
}
