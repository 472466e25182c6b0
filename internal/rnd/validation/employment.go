package validation

import "time"

// MemberEmploymentPeriod checks that a member's declared participation lies
// fully within their employment window.
func MemberEmploymentPeriod(member Member) Result {
	if member.FirstName == "" && member.LastName == "" {
		return Fail(ReasonEmployeeNotFound, "참여연구원 정보를 찾을 수 없습니다", nil, nil)
	}
	var issues []string
	if member.HireDate != nil && member.StartDate.Before(*member.HireDate) {
		issues = append(issues, member.DisplayName()+": 참여 시작일이 입사일보다 빠릅니다")
	}
	if member.TerminationDate != nil && member.TerminationDate.Before(member.EndDate) {
		issues = append(issues, member.DisplayName()+": 참여 종료일이 퇴사일 이후입니다")
	}
	if len(issues) > 0 {
		return Fail(ReasonEmploymentPeriodInvalid, "참여기간이 재직기간을 벗어났습니다", issues, map[string]any{
			"start_date": member.StartDate,
			"end_date":   member.EndDate,
		})
	}
	return Pass("참여기간이 재직기간 내에 있습니다")
}

// EvidenceEmploymentPeriod checks that the period implied by a spending
// record lies within the employee's employment window.
func EvidenceEmploymentPeriod(item Evidence, periodStart, periodEnd time.Time, employee *Employee) Result {
	if employee == nil {
		return Fail(ReasonEmployeeNotFound, "직원 정보를 찾을 수 없습니다", nil, map[string]any{
			"evidence_id": item.ID,
		})
	}
	var issues []string
	if periodStart.Before(employee.HireDate) {
		issues = append(issues, item.CategoryName+": 증빙 기간 시작일이 입사일보다 빠릅니다")
	}
	if employee.TerminationDate != nil && employee.TerminationDate.Before(periodEnd) {
		issues = append(issues, item.CategoryName+": 증빙 기간 종료일이 퇴사일 이후입니다")
	}
	if len(issues) > 0 {
		return Fail(ReasonEmploymentPeriodInvalid, "증빙 기간이 재직기간을 벗어났습니다", issues, map[string]any{
			"evidence_id":   item.ID,
			"period_number": item.PeriodNumber,
		})
	}
	return Pass("증빙 기간이 재직기간 내에 있습니다")
}
