package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// personnelCategory matches the personnel cost category in either locale.
func personnelCategory(name string) bool {
	return name == "인건비" || strings.EqualFold(name, "personnel")
}

// categoryBudget resolves the budgeted denominator for a cost category. The
// personnel category draws on the personnel cost line; every other category
// draws on the non-personnel pool.
func categoryBudget(budget Budget, category string) float64 {
	if personnelCategory(category) {
		return budget.PersonnelCost
	}
	return budget.TotalBudget - budget.PersonnelCost
}

// UsageRate flags cost categories whose usage rate diverges from the budget's
// overall usage rate by more than the allowed margin. This is a heuristic
// consistency signal, not a hard accounting rule: a divergent category is
// being drawn down disproportionately against the declared burn rate.
func UsageRate(budget Budget, items []Evidence, margin float64) Result {
	if budget.TotalBudget <= 0 {
		return Pass("편성 연구비가 없어 집행률을 확인하지 않습니다")
	}
	overall := budget.SpentAmount / budget.TotalBudget

	spentByCategory := make(map[string]float64)
	for _, item := range items {
		if item.PeriodNumber != budget.PeriodNumber {
			continue
		}
		spentByCategory[item.CategoryName] += item.SpentAmount
	}

	categories := make([]string, 0, len(spentByCategory))
	for name := range spentByCategory {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	var issues []string
	rates := map[string]any{"overall_rate": overall}
	for _, name := range categories {
		denominator := categoryBudget(budget, name)
		if denominator <= 0 {
			continue
		}
		rate := spentByCategory[name] / denominator
		rates[name] = rate
		if math.Abs(rate-overall) > margin {
			issues = append(issues, fmt.Sprintf("%s: 집행률 %.0f%%가 전체 집행률 %.0f%%와 크게 다릅니다",
				name, rate*100, overall*100))
		}
	}

	if len(issues) > 0 {
		return Fail(ReasonUsageRateInconsistency, "비목별 집행률이 일관되지 않습니다", issues, rates)
	}
	return Pass("비목별 집행률이 일관됩니다")
}
