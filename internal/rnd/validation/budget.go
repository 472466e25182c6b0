package validation

import "math"

// BudgetConsistency checks that period budgets sum to the project's total
// budget within an absolute tolerance.
func BudgetConsistency(project Project, budgets []Budget, tolerance float64) Result {
	var periodTotal float64
	for _, b := range budgets {
		periodTotal += b.TotalBudget
	}
	if WithinTolerance(project.TotalBudget, periodTotal, tolerance) {
		return Pass("연구비 편성이 일치합니다")
	}
	return Fail(ReasonBudgetInconsistency, "연구비 편성이 일치하지 않습니다",
		[]string{
			"과제 총 연구비: " + FormatAmount(project.TotalBudget),
			"연차별 연구비 합계: " + FormatAmount(periodTotal),
		},
		map[string]any{
			"project_total": project.TotalBudget,
			"period_total":  periodTotal,
			"difference":    math.Abs(project.TotalBudget - periodTotal),
		})
}
