package rnd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/rnd/validation"
)

type memoryRndRepo struct {
	projects  map[int64]validation.Project
	budgets   map[int64][]validation.Budget
	members   map[int64][]validation.Member
	evidence  map[int64][]validation.Evidence
	employees map[int64]validation.Employee
	runs      []ValidationRun
}

func newMemoryRndRepo() *memoryRndRepo {
	return &memoryRndRepo{
		projects:  make(map[int64]validation.Project),
		budgets:   make(map[int64][]validation.Budget),
		members:   make(map[int64][]validation.Member),
		evidence:  make(map[int64][]validation.Evidence),
		employees: make(map[int64]validation.Employee),
	}
}

func (r *memoryRndRepo) GetProject(ctx context.Context, id int64) (validation.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return validation.Project{}, ErrProjectNotFound
	}
	return project, nil
}

func (r *memoryRndRepo) ListBudgets(ctx context.Context, projectID int64) ([]validation.Budget, error) {
	return r.budgets[projectID], nil
}

func (r *memoryRndRepo) ListMembers(ctx context.Context, projectID int64) ([]validation.Member, error) {
	return r.members[projectID], nil
}

func (r *memoryRndRepo) ListEvidence(ctx context.Context, projectID int64) ([]validation.Evidence, error) {
	return r.evidence[projectID], nil
}

func (r *memoryRndRepo) ListEmployees(ctx context.Context, projectID int64) (map[int64]validation.Employee, error) {
	referenced := make(map[int64]validation.Employee)
	for _, item := range r.evidence[projectID] {
		if item.EmployeeID == nil {
			continue
		}
		if e, ok := r.employees[*item.EmployeeID]; ok {
			referenced[e.ID] = e
		}
	}
	return referenced, nil
}

func (r *memoryRndRepo) ListProjectIDs(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(r.projects))
	for id := range r.projects {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *memoryRndRepo) InsertValidationRun(ctx context.Context, run ValidationRun) error {
	r.runs = append(r.runs, run)
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedProject(repo *memoryRndRepo) {
	repo.projects[1] = validation.Project{ID: 1, Title: "차세대 소재 연구", TotalBudget: 10_000_000, StartDate: date(2025, 1, 1), EndDate: date(2025, 12, 31)}
	repo.budgets[1] = []validation.Budget{
		{ID: 1, ProjectID: 1, PeriodNumber: 1, StartDate: date(2025, 1, 1), EndDate: date(2025, 3, 31), TotalBudget: 5_000_000, PersonnelCost: 1_500_000, SpentAmount: 2_500_000},
		{ID: 2, ProjectID: 1, PeriodNumber: 2, StartDate: date(2025, 4, 1), EndDate: date(2025, 12, 31), TotalBudget: 5_000_000, PersonnelCost: 0, SpentAmount: 0},
	}
	hire := date(2024, 1, 1)
	repo.members[1] = []validation.Member{
		{ID: 1, ProjectID: 1, FirstName: "철수", LastName: "김", StartDate: date(2025, 1, 1), EndDate: date(2025, 3, 31), MonthlyAmount: 1_000_000, ParticipationRate: 50, HireDate: &hire},
	}
	repo.evidence[1] = []validation.Evidence{
		{ID: 1, ProjectID: 1, PeriodNumber: 1, CategoryName: "인건비", SpentAmount: 750_000},
		{ID: 2, ProjectID: 1, PeriodNumber: 1, CategoryName: "재료비", SpentAmount: 1_750_000},
	}
}

func TestReportAllChecksPass(t *testing.T) {
	repo := newMemoryRndRepo()
	seedProject(repo)
	svc := NewService(repo, ServiceConfig{})

	report, err := svc.Report(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, report.Summary.Valid, "checks: %+v", report.Checks)
	require.Equal(t, report.Summary.Total, report.Summary.Passed)
	require.NotZero(t, report.GeneratedAt)
}

func TestReportFlagsInconsistentBudget(t *testing.T) {
	repo := newMemoryRndRepo()
	seedProject(repo)
	repo.projects[1] = validation.Project{ID: 1, Title: "차세대 소재 연구", TotalBudget: 12_000_000}
	svc := NewService(repo, ServiceConfig{})

	report, err := svc.Report(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, report.Summary.Valid)

	var found bool
	for _, check := range report.Checks {
		if check.Result.Reason == validation.ReasonBudgetInconsistency {
			found = true
		}
	}
	require.True(t, found, "expected budget inconsistency check to fail")
}

func TestReportFlagsEvidenceOutsideEmployment(t *testing.T) {
	repo := newMemoryRndRepo()
	seedProject(repo)
	term := date(2025, 2, 28)
	repo.employees[7] = validation.Employee{ID: 7, FirstName: "영희", LastName: "이", HireDate: date(2024, 6, 1), TerminationDate: &term}
	employeeID := int64(7)
	repo.evidence[1] = append(repo.evidence[1], validation.Evidence{
		ID: 3, ProjectID: 1, EmployeeID: &employeeID, PeriodNumber: 1, CategoryName: "인건비", SpentAmount: 0,
	})
	svc := NewService(repo, ServiceConfig{})

	report, err := svc.Report(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, report.Summary.Valid)

	var result validation.Result
	for _, check := range report.Checks {
		if check.Name == "evidence_period:item:3" {
			result = check.Result
		}
	}
	require.Equal(t, validation.ReasonEmploymentPeriodInvalid, result.Reason)
}

func TestReportFlagsEvidenceForUnknownEmployee(t *testing.T) {
	repo := newMemoryRndRepo()
	seedProject(repo)
	employeeID := int64(42)
	repo.evidence[1] = append(repo.evidence[1], validation.Evidence{
		ID: 3, ProjectID: 1, EmployeeID: &employeeID, PeriodNumber: 1, CategoryName: "인건비", SpentAmount: 0,
	})
	svc := NewService(repo, ServiceConfig{})

	report, err := svc.Report(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, report.Summary.Valid)

	var result validation.Result
	for _, check := range report.Checks {
		if check.Name == "evidence_period:item:3" {
			result = check.Result
		}
	}
	require.Equal(t, validation.ReasonEmployeeNotFound, result.Reason)
}

func TestReportProjectNotFound(t *testing.T) {
	svc := NewService(newMemoryRndRepo(), ServiceConfig{})
	_, err := svc.Report(context.Background(), 99)
	require.True(t, errors.Is(err, ErrProjectNotFound))
}

func TestSweepRecordsRuns(t *testing.T) {
	repo := newMemoryRndRepo()
	seedProject(repo)
	svc := NewService(repo, ServiceConfig{})

	processed, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, processed)
	require.Len(t, repo.runs, 1)
	require.Equal(t, int64(1), repo.runs[0].ProjectID)
	require.True(t, repo.runs[0].Valid)
}
