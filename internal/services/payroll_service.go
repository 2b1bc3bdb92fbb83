package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"university-hr/internal/models"
	"university-hr/internal/repositories"
)

// PayrollServiceInterface defines payroll generation and lookup.
type PayrollServiceInterface interface {
	Generate(ctx context.Context, req models.PayrollRequest) (*PayrollResult, error)
	LastMonth(ctx context.Context, employeeID int64) (models.Row, error)
}

// PayrollResult is the outcome of a generation request. Payroll is nil when
// a payroll for the period already existed.
type PayrollResult struct {
	Message string
	Payroll *models.Payroll
}

// PayrollService implements PayrollServiceInterface.
type PayrollService struct {
	payrolls repositories.PayrollRepositoryInterface
}

// NewPayrollService creates a PayrollService.
func NewPayrollService(payrolls repositories.PayrollRepositoryInterface) *PayrollService {
	return &PayrollService{payrolls: payrolls}
}

// Generate adds a payroll for the employee over [fromDate, toDate] unless one already exists.
func (s *PayrollService) Generate(ctx context.Context, req models.PayrollRequest) (*PayrollResult, error) {
	if req.EmployeeID == 0 || req.FromDate == "" || req.ToDate == "" {
		return nil, validationError("Employee ID, from date, and to date are required")
	}
	from, to, err := parsePeriod(req.FromDate, req.ToDate, errFromAfterTo)
	if err != nil {
		return nil, err
	}
	employeeID := req.EmployeeID.Int64()

	exists, err := s.payrolls.ExistsForPeriod(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("check existing payroll: %w", err)
	}
	if exists {
		return &PayrollResult{Message: "Payroll for this employee in that period already exists"}, nil
	}

	if err := s.payrolls.Add(ctx, employeeID, from, to); err != nil {
		return nil, fmt.Errorf("add payroll: %w", err)
	}
	payroll, err := s.payrolls.Latest(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("load payroll: %w", err)
	}
	if payroll == nil {
		return nil, notFoundError("Payroll record not found")
	}

	logrus.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"payroll_id":  payroll.PayrollID,
		"from":        from.String(),
		"to":          to.String(),
	}).Info("payroll generated")
	return &PayrollResult{Message: "Payroll added successfully", Payroll: payroll}, nil
}

// LastMonth returns the employee's payroll for the previous month.
func (s *PayrollService) LastMonth(ctx context.Context, employeeID int64) (models.Row, error) {
	if employeeID == 0 {
		return nil, validationError("Employee ID is required")
	}
	rows, err := s.payrolls.LastMonth(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("last month payroll: %w", err)
	}
	if len(rows) == 0 {
		return nil, notFoundError("No payroll found for last month")
	}
	return rows[0], nil
}
