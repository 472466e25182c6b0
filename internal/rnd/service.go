package rnd

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-erp/meridian-erp/internal/rnd/validation"
)

// RepositoryPort defines data access methods for project validation.
type RepositoryPort interface {
	GetProject(ctx context.Context, id int64) (validation.Project, error)
	ListBudgets(ctx context.Context, projectID int64) ([]validation.Budget, error)
	ListMembers(ctx context.Context, projectID int64) ([]validation.Member, error)
	ListEvidence(ctx context.Context, projectID int64) ([]validation.Evidence, error)
	ListEmployees(ctx context.Context, projectID int64) (map[int64]validation.Employee, error)
	ListProjectIDs(ctx context.Context) ([]int64, error)
	InsertValidationRun(ctx context.Context, run ValidationRun) error
}

// ServiceConfig tunes validation thresholds.
type ServiceConfig struct {
	PersonnelCostTolerance float64
	BudgetTolerance        float64
	UsageRateMargin        float64
}

func (c ServiceConfig) withDefaults() ServiceConfig {
	if c.PersonnelCostTolerance <= 0 {
		c.PersonnelCostTolerance = validation.DefaultTolerance
	}
	if c.BudgetTolerance <= 0 {
		c.BudgetTolerance = validation.DefaultTolerance
	}
	if c.UsageRateMargin <= 0 {
		c.UsageRateMargin = validation.DefaultUsageRateMargin
	}
	return c
}

// Service assembles validation reports for projects.
type Service struct {
	repo RepositoryPort
	cfg  ServiceConfig
	now  func() time.Time
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, cfg ServiceConfig) *Service {
	return &Service{repo: repo, cfg: cfg.withDefaults(), now: time.Now}
}

// Report fetches the project snapshot and runs every consistency rule over
// it. The snapshot reads are parallel; the caller gets one logical read, not
// a strict transaction.
func (s *Service) Report(ctx context.Context, projectID int64) (Report, error) {
	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return Report{}, err
	}

	var (
		budgets   []validation.Budget
		members   []validation.Member
		items     []validation.Evidence
		employees map[int64]validation.Employee
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budgets, err = s.repo.ListBudgets(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.repo.ListMembers(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.repo.ListEvidence(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		employees, err = s.repo.ListEmployees(gctx, projectID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	checks := s.runChecks(project, budgets, members, items, employees)
	return Report{
		Project:     project,
		Checks:      checks,
		Summary:     validation.Summarize(checks),
		GeneratedAt: s.now(),
	}, nil
}

func (s *Service) runChecks(project validation.Project, budgets []validation.Budget, members []validation.Member, items []validation.Evidence, employees map[int64]validation.Employee) []validation.Check {
	checks := []validation.Check{
		{Name: "budget_consistency", Result: validation.BudgetConsistency(project, budgets, s.cfg.BudgetTolerance)},
		{Name: "participation_rate", Result: validation.ParticipationRate(members)},
	}
	for _, member := range members {
		checks = append(checks, validation.Check{
			Name:   fmt.Sprintf("employment_period:member:%d", member.ID),
			Result: validation.MemberEmploymentPeriod(member),
		})
	}
	periods := make(map[int]validation.Budget, len(budgets))
	for _, budget := range budgets {
		periods[budget.PeriodNumber] = budget
		actual := validation.ActualPersonnelCost(members, budget)
		checks = append(checks, validation.Check{
			Name:   fmt.Sprintf("personnel_cost:period:%d", budget.PeriodNumber),
			Result: validation.PersonnelCost(budget, actual, s.cfg.PersonnelCostTolerance),
		})
		checks = append(checks, validation.Check{
			Name:   fmt.Sprintf("usage_rate:period:%d", budget.PeriodNumber),
			Result: validation.UsageRate(budget, items, s.cfg.UsageRateMargin),
		})
	}
	for _, item := range items {
		if item.EmployeeID == nil {
			continue
		}
		budget, ok := periods[item.PeriodNumber]
		if !ok {
			continue
		}
		var employee *validation.Employee
		if e, found := employees[*item.EmployeeID]; found {
			employee = &e
		}
		checks = append(checks, validation.Check{
			Name:   fmt.Sprintf("evidence_period:item:%d", item.ID),
			Result: validation.EvidenceEmploymentPeriod(item, budget.StartDate, budget.EndDate, employee),
		})
	}
	return checks
}

// Sweep revalidates every project and persists a run record per project.
// Individual project failures do not stop the sweep; the first error is
// returned after all projects were attempted.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	ids, err := s.repo.ListProjectIDs(ctx)
	if err != nil {
		return 0, err
	}
	var firstErr error
	processed := 0
	for _, id := range ids {
		report, err := s.Report(ctx, id)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("project %d: %w", id, err)
			}
			continue
		}
		run := ValidationRun{
			ProjectID:   id,
			Valid:       report.Summary.Valid,
			TotalChecks: report.Summary.Total,
			Failed:      report.Summary.Failed,
			RanAt:       s.now(),
		}
		if err := s.repo.InsertValidationRun(ctx, run); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("project %d: record run: %w", id, err)
			continue
		}
		processed++
	}
	return processed, firstErr
}
