package rnd

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/rnd/validation"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetProject fetches one project.
func (r *Repository) GetProject(ctx context.Context, id int64) (validation.Project, error) {
	var p validation.Project
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, total_budget, start_date, end_date
		FROM rnd_projects WHERE id = $1`, id).
		Scan(&p.ID, &p.Title, &p.TotalBudget, &p.StartDate, &p.EndDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return validation.Project{}, ErrProjectNotFound
		}
		return validation.Project{}, err
	}
	return p, nil
}

// ListBudgets returns a project's period budgets ordered by period number.
func (r *Repository) ListBudgets(ctx context.Context, projectID int64) ([]validation.Budget, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, period_number, start_date, end_date, total_budget, personnel_cost, spent_amount
		FROM rnd_project_budgets WHERE project_id = $1 ORDER BY period_number`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var budgets []validation.Budget
	for rows.Next() {
		var b validation.Budget
		if err := rows.Scan(&b.ID, &b.ProjectID, &b.PeriodNumber, &b.StartDate, &b.EndDate, &b.TotalBudget, &b.PersonnelCost, &b.SpentAmount); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// ListMembers returns a project's participation records joined with the
// employee's employment window.
func (r *Repository) ListMembers(ctx context.Context, projectID int64) ([]validation.Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.project_id, m.employee_id, COALESCE(e.first_name, ''), COALESCE(e.last_name, ''),
		       m.start_date, m.end_date, m.monthly_amount, m.participation_rate, e.hire_date, e.termination_date
		FROM rnd_project_members m
		LEFT JOIN employees e ON e.id = m.employee_id
		WHERE m.project_id = $1 ORDER BY m.id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var members []validation.Member
	for rows.Next() {
		var m validation.Member
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.EmployeeID, &m.FirstName, &m.LastName,
			&m.StartDate, &m.EndDate, &m.MonthlyAmount, &m.ParticipationRate, &m.HireDate, &m.TerminationDate); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ListEvidence returns a project's spending records.
func (r *Repository) ListEvidence(ctx context.Context, projectID int64) ([]validation.Evidence, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, employee_id, period_number, category_name, spent_amount
		FROM rnd_evidence_items WHERE project_id = $1 ORDER BY period_number, id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []validation.Evidence
	for rows.Next() {
		var item validation.Evidence
		if err := rows.Scan(&item.ID, &item.ProjectID, &item.EmployeeID, &item.PeriodNumber, &item.CategoryName, &item.SpentAmount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListEmployees returns employment windows for employees referenced by the
// project's evidence items, keyed by employee id.
func (r *Repository) ListEmployees(ctx context.Context, projectID int64) (map[int64]validation.Employee, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT e.id, e.first_name, e.last_name, e.hire_date, e.termination_date
		FROM rnd_evidence_items i
		JOIN employees e ON e.id = i.employee_id
		WHERE i.project_id = $1`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	employees := make(map[int64]validation.Employee)
	for rows.Next() {
		var e validation.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.HireDate, &e.TerminationDate); err != nil {
			return nil, err
		}
		employees[e.ID] = e
	}
	return employees, rows.Err()
}

// ListProjectIDs returns every project id, for the revalidation sweep.
func (r *Repository) ListProjectIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM rnd_projects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// InsertValidationRun appends a sweep outcome.
func (r *Repository) InsertValidationRun(ctx context.Context, run ValidationRun) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rnd_validation_runs (project_id, is_valid, total_checks, failed_checks, ran_at)
		VALUES ($1, $2, $3, $4, $5)`,
		run.ProjectID, run.Valid, run.TotalChecks, run.Failed, run.RanAt)
	return err
}
