package validation

import (
	"fmt"
	"sort"
	"strings"
)

// ParticipationRate checks that no member exceeds full-time allocation and
// that no set of concurrently participating members sums over 100%.
//
// Concurrency is evaluated at every distinct interval start date: the sum of
// rates over members active on such a date attains the maximum of every
// maximal overlapping group, so a boundary sweep is sufficient to catch any
// overlapping subset summing over 100.
func ParticipationRate(members []Member) Result {
	var issues []string
	for _, m := range members {
		if m.ParticipationRate > 100 {
			issues = append(issues, fmt.Sprintf("%s: 참여율 %.0f%%가 100%%를 초과합니다", m.DisplayName(), m.ParticipationRate))
		}
	}

	seen := make(map[string]struct{})
	for _, m := range members {
		at := m.StartDate
		key := at.Format("2006-01-02")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		var (
			sum   float64
			names []string
		)
		for _, o := range members {
			if !o.StartDate.After(at) && !at.After(o.EndDate) {
				sum += o.ParticipationRate
				names = append(names, o.DisplayName())
			}
		}
		if sum > 100 {
			sort.Strings(names)
			issues = append(issues, fmt.Sprintf("%s: 동시 참여율 합계 %.0f%%가 100%%를 %.0f%%p 초과합니다",
				strings.Join(names, ", "), sum, sum-100))
		}
	}

	if len(issues) > 0 {
		return Fail(ReasonParticipationRateInvalid, "참여율이 올바르지 않습니다", issues, nil)
	}
	return Pass("참여율이 올바릅니다")
}
