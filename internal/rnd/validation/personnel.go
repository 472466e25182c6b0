package validation

import "math"

// ActualPersonnelCost computes the personnel cost implied by member
// participation during the budget period. Each member overlapping the period
// contributes whole-months-in-overlap x monthly amount x participation rate;
// members outside the period contribute nothing.
func ActualPersonnelCost(members []Member, budget Budget) float64 {
	var total float64
	for _, m := range members {
		start, end, ok := OverlapWindow(m.StartDate, m.EndDate, budget.StartDate, budget.EndDate)
		if !ok {
			continue
		}
		months := MonthsBetween(start, end)
		total += float64(months) * m.MonthlyAmount * m.ParticipationRate / 100
	}
	return total
}

// PersonnelCost checks the budgeted personnel cost against the cost implied
// by member participation, within an absolute tolerance.
func PersonnelCost(budget Budget, actualCost, tolerance float64) Result {
	if WithinTolerance(budget.PersonnelCost, actualCost, tolerance) {
		return Pass("인건비가 일치합니다")
	}
	return Fail(ReasonPersonnelCostMismatch, "인건비가 일치하지 않습니다",
		[]string{
			"편성 인건비: " + FormatAmount(budget.PersonnelCost),
			"산출 인건비: " + FormatAmount(actualCost),
		},
		map[string]any{
			"budgeted_cost": budget.PersonnelCost,
			"actual_cost":   actualCost,
			"difference":    math.Abs(budget.PersonnelCost - actualCost),
		})
}
