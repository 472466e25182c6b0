// Package validation implements the consistency rules for R&D project
// accounting. Every rule is a pure function over already-fetched records and
// reports outcomes through the uniform Result contract; a failed check is a
// normal result, never an error.
package validation

import "time"

// Project is an R&D project under validation.
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	TotalBudget float64   `json:"total_budget"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// Budget is one fiscal/annual period budget of a project.
type Budget struct {
	ID            int64     `json:"id"`
	ProjectID     int64     `json:"project_id"`
	PeriodNumber  int       `json:"period_number"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	TotalBudget   float64   `json:"total_budget"`
	PersonnelCost float64   `json:"personnel_cost"`
	SpentAmount   float64   `json:"spent_amount"`
}

// Member is a declared participation interval with a monthly cost rate and a
// percentage allocation to the project.
type Member struct {
	ID                int64      `json:"id"`
	ProjectID         int64      `json:"project_id"`
	EmployeeID        *int64     `json:"employee_id,omitempty"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           time.Time  `json:"end_date"`
	MonthlyAmount     float64    `json:"monthly_amount"`
	ParticipationRate float64    `json:"participation_rate"`
	HireDate          *time.Time `json:"hire_date,omitempty"`
	TerminationDate   *time.Time `json:"termination_date,omitempty"`
}

// DisplayName returns the member's name for diagnostics.
func (m Member) DisplayName() string {
	switch {
	case m.LastName != "" && m.FirstName != "":
		return m.LastName + m.FirstName
	case m.LastName != "":
		return m.LastName
	default:
		return m.FirstName
	}
}

// Evidence is a spending record tagged to a budget period and cost category.
// Person-linked records (personnel cost receipts) carry the employee id.
type Evidence struct {
	ID           int64   `json:"id"`
	ProjectID    int64   `json:"project_id"`
	EmployeeID   *int64  `json:"employee_id,omitempty"`
	PeriodNumber int     `json:"period_number"`
	CategoryName string  `json:"category_name"`
	SpentAmount  float64 `json:"spent_amount"`
}

// Employee carries the employment window needed for containment checks.
type Employee struct {
	ID              int64      `json:"id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	HireDate        time.Time  `json:"hire_date"`
	TerminationDate *time.Time `json:"termination_date,omitempty"`
}
