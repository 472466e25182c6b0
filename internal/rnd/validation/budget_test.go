package validation

import (
	"strings"
	"testing"
)

func TestBudgetConsistency(t *testing.T) {
	project := Project{Title: "차세대 소재 연구", TotalBudget: 10_000_000}
	budgets := []Budget{
		{PeriodNumber: 1, TotalBudget: 5_000_000},
		{PeriodNumber: 2, TotalBudget: 5_000_000},
	}
	if res := BudgetConsistency(project, budgets, DefaultTolerance); !res.Valid {
		t.Fatalf("expected matching totals to pass: %+v", res)
	}
}

func TestBudgetConsistencyMismatch(t *testing.T) {
	project := Project{Title: "차세대 소재 연구", TotalBudget: 10_000_000}
	budgets := []Budget{
		{PeriodNumber: 1, TotalBudget: 3_000_000},
		{PeriodNumber: 2, TotalBudget: 4_000_000},
	}
	res := BudgetConsistency(project, budgets, DefaultTolerance)
	if res.Valid {
		t.Fatalf("expected mismatch to fail")
	}
	if res.Reason != ReasonBudgetInconsistency {
		t.Fatalf("unexpected reason %s", res.Reason)
	}
	joined := strings.Join(res.Issues, " ")
	if !strings.Contains(joined, "10,000,000") || !strings.Contains(joined, "7,000,000") {
		t.Fatalf("expected both totals reported, got %v", res.Issues)
	}
}
