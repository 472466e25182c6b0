package validation

import "testing"

func TestMemberEmploymentPeriodMissingIdentity(t *testing.T) {
	res := MemberEmploymentPeriod(Member{StartDate: date(2025, 1, 1), EndDate: date(2025, 12, 31)})
	if res.Valid || res.Reason != ReasonEmployeeNotFound {
		t.Fatalf("expected EMPLOYEE_NOT_FOUND, got %+v", res)
	}
}

func TestMemberEmploymentPeriodBeforeHire(t *testing.T) {
	hire := date(2025, 3, 1)
	res := MemberEmploymentPeriod(Member{
		FirstName: "철수",
		LastName:  "김",
		StartDate: date(2025, 1, 1),
		EndDate:   date(2025, 12, 31),
		HireDate:  &hire,
	})
	if res.Valid || res.Reason != ReasonEmploymentPeriodInvalid {
		t.Fatalf("expected participation before hire date to fail, got %+v", res)
	}
}

func TestMemberEmploymentPeriodAfterTermination(t *testing.T) {
	hire := date(2024, 1, 1)
	term := date(2025, 6, 30)
	res := MemberEmploymentPeriod(Member{
		FirstName:       "철수",
		LastName:        "김",
		StartDate:       date(2025, 1, 1),
		EndDate:         date(2025, 12, 31),
		HireDate:        &hire,
		TerminationDate: &term,
	})
	if res.Valid || res.Reason != ReasonEmploymentPeriodInvalid {
		t.Fatalf("expected participation past termination to fail, got %+v", res)
	}
}

func TestMemberEmploymentPeriodContained(t *testing.T) {
	hire := date(2024, 1, 1)
	res := MemberEmploymentPeriod(Member{
		FirstName: "철수",
		LastName:  "김",
		StartDate: date(2025, 1, 1),
		EndDate:   date(2025, 12, 31),
		HireDate:  &hire,
	})
	if !res.Valid {
		t.Fatalf("expected contained participation to pass: %+v", res)
	}
}

func TestEvidenceEmploymentPeriod(t *testing.T) {
	item := Evidence{ID: 7, PeriodNumber: 1, CategoryName: "인건비", SpentAmount: 500_000}

	res := EvidenceEmploymentPeriod(item, date(2025, 1, 1), date(2025, 3, 31), nil)
	if res.Valid || res.Reason != ReasonEmployeeNotFound {
		t.Fatalf("expected missing employee to fail, got %+v", res)
	}

	term := date(2025, 2, 28)
	emp := &Employee{ID: 3, FirstName: "철수", LastName: "김", HireDate: date(2024, 1, 1), TerminationDate: &term}
	res = EvidenceEmploymentPeriod(item, date(2025, 1, 1), date(2025, 3, 31), emp)
	if res.Valid || res.Reason != ReasonEmploymentPeriodInvalid {
		t.Fatalf("expected period past termination to fail, got %+v", res)
	}

	emp.TerminationDate = nil
	res = EvidenceEmploymentPeriod(item, date(2025, 1, 1), date(2025, 3, 31), emp)
	if !res.Valid {
		t.Fatalf("expected contained period to pass: %+v", res)
	}
}
