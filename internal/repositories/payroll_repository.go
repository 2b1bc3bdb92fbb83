package repositories

import (
	"context"
	"database/sql"
	"strings"

	"university-hr/internal/models"
)

// PayrollRepositoryInterface defines payroll lookups and generation.
type PayrollRepositoryInterface interface {
	ExistsForPeriod(ctx context.Context, employeeID int64, from, to models.Date) (bool, error)
	Add(ctx context.Context, employeeID int64, from, to models.Date) error
	Latest(ctx context.Context, employeeID int64) (*models.Payroll, error)
	LastMonth(ctx context.Context, employeeID int64) ([]models.Row, error)
}

// PayrollRepository implements PayrollRepositoryInterface.
type PayrollRepository struct {
	store *Store
}

// NewPayrollRepository creates a PayrollRepository.
func NewPayrollRepository(store *Store) *PayrollRepository {
	return &PayrollRepository{store: store}
}

type payrollRow struct {
	ID               int64           `db:"payroll_id"`
	EmployeeID       int64           `db:"emp_id"`
	FirstName        sql.NullString  `db:"first_name"`
	LastName         sql.NullString  `db:"last_name"`
	BaseSalary       sql.NullFloat64 `db:"base_salary"`
	BonusAmount      sql.NullFloat64 `db:"bonus_amount"`
	DeductionsAmount sql.NullFloat64 `db:"deductions_amount"`
	FinalSalary      sql.NullFloat64 `db:"final_salary_amount"`
	FromDate         models.Date     `db:"from_date"`
	ToDate           models.Date     `db:"to_date"`
	PaymentDate      models.Date     `db:"payment_date"`
	Comments         sql.NullString  `db:"comments"`
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func (p payrollRow) toModel() *models.Payroll {
	out := &models.Payroll{
		PayrollID:        p.ID,
		EmployeeID:       p.EmployeeID,
		EmployeeName:     strings.TrimSpace(p.FirstName.String + " " + p.LastName.String),
		BaseSalary:       nullFloat(p.BaseSalary),
		BonusAmount:      nullFloat(p.BonusAmount),
		DeductionsAmount: nullFloat(p.DeductionsAmount),
		FinalSalary:      nullFloat(p.FinalSalary),
		FromDate:         p.FromDate,
		ToDate:           p.ToDate,
		PaymentDate:      p.PaymentDate,
	}
	if p.Comments.Valid {
		c := p.Comments.String
		out.Comments = &c
	}
	return out
}

// ExistsForPeriod reports whether a payroll covers exactly [from, to].
func (r *PayrollRepository) ExistsForPeriod(ctx context.Context, employeeID int64, from, to models.Date) (bool, error) {
	return r.store.exists(ctx, "Payroll.exists",
		"SELECT 1 FROM Payroll WHERE emp_ID = ? AND from_date = ? AND to_date = ?",
		employeeID, from, to)
}

// Add generates the employee's payroll for [from, to].
func (r *PayrollRepository) Add(ctx context.Context, employeeID int64, from, to models.Date) error {
	return r.store.procedure(ctx, "Add_Payroll", employeeID, from, to)
}

// Latest returns the employee's most recent payroll, or nil, nil when there is none.
func (r *PayrollRepository) Latest(ctx context.Context, employeeID int64) (*models.Payroll, error) {
	query := r.store.dialect.First(`
		SELECT
			P.ID AS payroll_id,
			P.emp_ID AS emp_id,
			E.first_name AS first_name,
			E.last_name AS last_name,
			E.salary AS base_salary,
			P.bonus_amount AS bonus_amount,
			P.deductions_amount AS deductions_amount,
			P.final_salary_amount AS final_salary_amount,
			P.from_date AS from_date,
			P.to_date AS to_date,
			P.payment_date AS payment_date,
			P.comments AS comments
		FROM Payroll P
		INNER JOIN Employee E ON P.emp_ID = E.employee_ID
		WHERE P.emp_ID = ?
		ORDER BY P.payment_date DESC`)

	var row payrollRow
	found, err := r.store.get(ctx, "Payroll.latest", &row, query, employeeID)
	if err != nil || !found {
		return nil, err
	}
	return row.toModel(), nil
}

// LastMonth reads the employee's payroll for the previous month.
func (r *PayrollRepository) LastMonth(ctx context.Context, employeeID int64) ([]models.Row, error) {
	return r.store.tableFunction(ctx, "Last_month_payroll", employeeID)
}
