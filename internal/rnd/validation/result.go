package validation

// Reason codes carried by failed results.
const (
	ReasonPersonnelCostMismatch    = "PERSONNEL_COST_MISMATCH"
	ReasonEmployeeNotFound         = "EMPLOYEE_NOT_FOUND"
	ReasonEmploymentPeriodInvalid  = "EMPLOYMENT_PERIOD_INVALID"
	ReasonParticipationRateInvalid = "PARTICIPATION_RATE_INVALID"
	ReasonBudgetInconsistency      = "BUDGET_INCONSISTENCY"
	ReasonUsageRateInconsistency   = "USAGE_RATE_INCONSISTENCY"
)

// Result is the uniform output contract for every validator.
type Result struct {
	Valid   bool           `json:"is_valid"`
	Reason  string         `json:"reason,omitempty"`
	Message string         `json:"message"`
	Issues  []string       `json:"issues,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Pass builds a successful result.
func Pass(message string) Result {
	return Result{Valid: true, Message: message}
}

// Fail builds a failed result with its reason code and diagnostics.
func Fail(reason, message string, issues []string, details map[string]any) Result {
	return Result{Valid: false, Reason: reason, Message: message, Issues: issues, Details: details}
}

// Check names one executed rule.
type Check struct {
	Name   string `json:"name"`
	Result Result `json:"result"`
}

// Summary aggregates many results into an overall pass/fail view.
type Summary struct {
	Valid  bool `json:"is_valid"`
	Total  int  `json:"total"`
	Passed int  `json:"passed"`
	Failed int  `json:"failed"`
}

// Summarize counts passed and failed checks.
func Summarize(checks []Check) Summary {
	summary := Summary{Valid: true, Total: len(checks)}
	for _, check := range checks {
		if check.Result.Valid {
			summary.Passed++
			continue
		}
		summary.Failed++
		summary.Valid = false
	}
	return summary
}
