package validation

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultTolerance is the absolute amount discrepancy treated as equal.
const DefaultTolerance = 1000

// DefaultUsageRateMargin is the allowed divergence between a category usage
// rate and the overall usage rate.
const DefaultUsageRateMargin = 0.30

var amountPrinter = message.NewPrinter(language.Korean)

// FormatAmount renders an amount with thousand separators for diagnostics.
func FormatAmount(v float64) string {
	return amountPrinter.Sprintf("%.0f원", v)
}

// RangesOverlap reports whether two inclusive date ranges overlap. Ranges
// touching at a single day count as overlapping.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// OverlapWindow clamps range a to range b, reporting whether they overlap.
func OverlapWindow(aStart, aEnd, bStart, bEnd time.Time) (time.Time, time.Time, bool) {
	if !RangesOverlap(aStart, aEnd, bStart, bEnd) {
		return time.Time{}, time.Time{}, false
	}
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	return start, end, true
}

// MonthsBetween counts whole calendar months covered by the inclusive range,
// derived from the year/month difference of its endpoints. Jan 1 through
// Mar 31 counts as 3 months; day-of-month is not prorated.
func MonthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if months < 0 {
		return 0
	}
	return months
}

// WithinTolerance reports whether two amounts differ by at most tolerance.
func WithinTolerance(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
