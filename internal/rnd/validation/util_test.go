package validation

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(1000, 1050, 100) {
		t.Fatalf("expected 1000 and 1050 within tolerance 100")
	}
	if WithinTolerance(1000, 1200, 100) {
		t.Fatalf("expected 1000 and 1200 outside tolerance 100")
	}
	if !WithinTolerance(1000, 1100, 100) {
		t.Fatalf("expected boundary difference to count as within tolerance")
	}
}

func TestRangesOverlapInclusive(t *testing.T) {
	// Touching at a single day counts as overlapping.
	if !RangesOverlap(date(2025, 1, 1), date(2025, 1, 31), date(2025, 1, 31), date(2025, 2, 28)) {
		t.Fatalf("expected touching ranges to overlap")
	}
	if RangesOverlap(date(2025, 1, 1), date(2025, 1, 31), date(2025, 2, 1), date(2025, 2, 28)) {
		t.Fatalf("expected disjoint ranges not to overlap")
	}
}

func TestMonthsBetween(t *testing.T) {
	if got := MonthsBetween(date(2025, 1, 1), date(2025, 3, 31)); got != 3 {
		t.Fatalf("expected 3 months, got %d", got)
	}
	if got := MonthsBetween(date(2025, 1, 15), date(2025, 1, 20)); got != 1 {
		t.Fatalf("expected 1 month within same calendar month, got %d", got)
	}
	if got := MonthsBetween(date(2024, 11, 1), date(2025, 2, 28)); got != 4 {
		t.Fatalf("expected 4 months across year boundary, got %d", got)
	}
}

func TestOverlapWindow(t *testing.T) {
	start, end, ok := OverlapWindow(date(2025, 1, 1), date(2025, 6, 30), date(2025, 3, 1), date(2025, 12, 31))
	if !ok {
		t.Fatalf("expected overlap")
	}
	if !start.Equal(date(2025, 3, 1)) || !end.Equal(date(2025, 6, 30)) {
		t.Fatalf("unexpected window %s..%s", start, end)
	}
}
