// Package rnd orchestrates R&D project accounting validation: it assembles a
// project snapshot from storage and runs the consistency rules over it.
package rnd

import (
	"errors"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/rnd/validation"
)

// ErrProjectNotFound indicates the requested project does not exist.
var ErrProjectNotFound = errors.New("과제를 찾을 수 없습니다")

// Report is the validation report for one project.
type Report struct {
	Project     validation.Project `json:"project"`
	Checks      []validation.Check `json:"checks"`
	Summary     validation.Summary `json:"summary"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// ValidationRun records one completed sweep outcome for a project.
type ValidationRun struct {
	ProjectID   int64
	Valid       bool
	TotalChecks int
	Failed      int
	RanAt       time.Time
}
