package validation

import "testing"

func quarterBudget() Budget {
	return Budget{
		PeriodNumber:  1,
		StartDate:     date(2025, 1, 1),
		EndDate:       date(2025, 3, 31),
		TotalBudget:   10_000_000,
		PersonnelCost: 1_500_000,
	}
}

func TestActualPersonnelCost(t *testing.T) {
	members := []Member{{
		FirstName:         "철수",
		LastName:          "김",
		StartDate:         date(2025, 1, 1),
		EndDate:           date(2025, 3, 31),
		MonthlyAmount:     1_000_000,
		ParticipationRate: 50,
	}}
	got := ActualPersonnelCost(members, quarterBudget())
	if got != 1_500_000 {
		t.Fatalf("expected 1,500,000 got %.0f", got)
	}
}

func TestActualPersonnelCostExcludesNonOverlapping(t *testing.T) {
	members := []Member{
		{
			FirstName:         "철수",
			LastName:          "김",
			StartDate:         date(2025, 1, 1),
			EndDate:           date(2025, 3, 31),
			MonthlyAmount:     1_000_000,
			ParticipationRate: 50,
		},
		{
			FirstName:         "영희",
			LastName:          "이",
			StartDate:         date(2025, 4, 1),
			EndDate:           date(2025, 12, 31),
			MonthlyAmount:     2_000_000,
			ParticipationRate: 100,
		},
	}
	got := ActualPersonnelCost(members, quarterBudget())
	if got != 1_500_000 {
		t.Fatalf("expected member outside the period to contribute nothing, got %.0f", got)
	}
}

func TestActualPersonnelCostClampsPartialOverlap(t *testing.T) {
	members := []Member{{
		FirstName:         "철수",
		LastName:          "김",
		StartDate:         date(2025, 3, 1),
		EndDate:           date(2025, 12, 31),
		MonthlyAmount:     1_000_000,
		ParticipationRate: 100,
	}}
	// Only March overlaps the first-quarter budget.
	got := ActualPersonnelCost(members, quarterBudget())
	if got != 1_000_000 {
		t.Fatalf("expected 1,000,000 for one overlapping month, got %.0f", got)
	}
}

func TestPersonnelCost(t *testing.T) {
	budget := quarterBudget()
	res := PersonnelCost(budget, 1_500_000, DefaultTolerance)
	if !res.Valid {
		t.Fatalf("expected matching cost to pass: %+v", res)
	}

	res = PersonnelCost(budget, 2_500_000, DefaultTolerance)
	if res.Valid {
		t.Fatalf("expected mismatch to fail")
	}
	if res.Reason != ReasonPersonnelCostMismatch {
		t.Fatalf("unexpected reason %s", res.Reason)
	}
	if len(res.Issues) != 2 {
		t.Fatalf("expected budgeted and actual amounts in issues, got %v", res.Issues)
	}
	if res.Details["difference"].(float64) != 1_000_000 {
		t.Fatalf("unexpected difference %v", res.Details["difference"])
	}
}
