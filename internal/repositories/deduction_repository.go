package repositories

import (
	"context"
	"fmt"

	"university-hr/internal/models"
)

// DeductionRepositoryInterface defines deduction lookups and accrual routines.
type DeductionRepositoryInterface interface {
	ExistsBetween(ctx context.Context, employeeID int64, deductionType string, from, until models.Date) (bool, error)
	CountBetween(ctx context.Context, employeeID int64, from, until models.Date) (int, error)
	Apply(ctx context.Context, deductionType string, employeeID int64) error
	RemoveResigned(ctx context.Context) error
	ForMonth(ctx context.Context, employeeID int64, month int) ([]models.Row, error)
}

// DeductionRepository implements DeductionRepositoryInterface.
type DeductionRepository struct {
	store *Store
}

// NewDeductionRepository creates a DeductionRepository.
func NewDeductionRepository(store *Store) *DeductionRepository {
	return &DeductionRepository{store: store}
}

var deductionRoutines = map[string]string{
	models.DeductionMissingHours: "Deduction_hours",
	models.DeductionMissingDays:  "Deduction_days",
	models.DeductionUnpaid:       "Deduction_unpaid",
}

// ExistsBetween reports whether a deduction of the type is dated in [from, until).
func (r *DeductionRepository) ExistsBetween(ctx context.Context, employeeID int64, deductionType string, from, until models.Date) (bool, error) {
	return r.store.exists(ctx, "Deduction.exists", `
		SELECT 1
		FROM Deduction
		WHERE emp_ID = ? AND type = ? AND date >= ? AND date < ?`,
		employeeID, deductionType, from, until)
}

// CountBetween counts all of the employee's deductions dated in [from, until).
func (r *DeductionRepository) CountBetween(ctx context.Context, employeeID int64, from, until models.Date) (int, error) {
	return r.store.count(ctx, "Deduction.count", `
		SELECT COUNT(*)
		FROM Deduction
		WHERE emp_ID = ? AND date >= ? AND date < ?`,
		employeeID, from, until)
}

// Apply runs the accrual routine of the deduction type for the employee.
func (r *DeductionRepository) Apply(ctx context.Context, deductionType string, employeeID int64) error {
	routine, ok := deductionRoutines[deductionType]
	if !ok {
		return fmt.Errorf("unknown deduction type %q", deductionType)
	}
	return r.store.procedure(ctx, routine, employeeID)
}

// RemoveResigned deletes the deductions of employees who have resigned.
func (r *DeductionRepository) RemoveResigned(ctx context.Context) error {
	return r.store.procedure(ctx, "Remove_Deductions")
}

// ForMonth lists the employee's attendance deductions for a month, newest first.
func (r *DeductionRepository) ForMonth(ctx context.Context, employeeID int64, month int) ([]models.Row, error) {
	rows, err := r.store.tableFunction(ctx, "Deductions_Attendance", employeeID, month)
	if err != nil {
		return nil, err
	}
	sortRowsDesc(rows, "date")
	return rows, nil
}
