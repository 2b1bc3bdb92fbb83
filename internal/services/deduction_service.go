package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"university-hr/internal/models"
	"university-hr/internal/repositories"
)

// DeductionServiceInterface defines deduction accrual and reporting.
type DeductionServiceInterface interface {
	Apply(ctx context.Context, deductionType string, employeeID int64) (string, error)
	RemoveResigned(ctx context.Context) (string, error)
	AttendanceDeductions(ctx context.Context, employeeID int64, month int) ([]models.Row, error)
}

type deductionMessages struct {
	alreadyToday string
	nothingFound string
}

var deductionOutcomes = map[string]deductionMessages{
	models.DeductionMissingHours: {
		alreadyToday: "Deduction for missing hours already exists for today",
		nothingFound: "No missing hours found for this employee",
	},
	models.DeductionMissingDays: {
		alreadyToday: "Deduction for missing days already exists for today",
		nothingFound: "No missing days found for this employee",
	},
	models.DeductionUnpaid: {
		alreadyToday: "Deduction for unpaid leave already exists for today",
		nothingFound: "No unpaid leave found for this employee",
	},
}

// DeductionService implements DeductionServiceInterface.
type DeductionService struct {
	deductions repositories.DeductionRepositoryInterface
	now        func() time.Time
}

// NewDeductionService creates a DeductionService.
func NewDeductionService(deductions repositories.DeductionRepositoryInterface) *DeductionService {
	return &DeductionService{deductions: deductions, now: time.Now}
}

// Apply runs the accrual routine for one deduction type. A deduction of that
// type already dated today short-circuits; otherwise the month's deduction
// count before and after the routine decides whether anything was applied.
func (s *DeductionService) Apply(ctx context.Context, deductionType string, employeeID int64) (string, error) {
	messages, ok := deductionOutcomes[deductionType]
	if !ok {
		return "", fmt.Errorf("unknown deduction type %q", deductionType)
	}
	if employeeID == 0 {
		return "", validationError("Employee ID is required")
	}

	now := s.now()
	dayStart, dayEnd := dayBounds(now)
	exists, err := s.deductions.ExistsBetween(ctx, employeeID, deductionType, dayStart, dayEnd)
	if err != nil {
		return "", fmt.Errorf("check today's %s deduction: %w", deductionType, err)
	}
	if exists {
		return messages.alreadyToday, nil
	}

	monthStart, monthEnd := monthBounds(now)
	before, err := s.deductions.CountBetween(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return "", fmt.Errorf("count deductions: %w", err)
	}
	if err := s.deductions.Apply(ctx, deductionType, employeeID); err != nil {
		return "", fmt.Errorf("apply %s deduction: %w", deductionType, err)
	}
	after, err := s.deductions.CountBetween(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return "", fmt.Errorf("count deductions: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"type":        deductionType,
		"before":      before,
		"after":       after,
	}).Info("deduction routine finished")

	if after > before {
		return "Deduction applied successfully", nil
	}
	return messages.nothingFound, nil
}

// RemoveResigned deletes deductions of resigned employees.
func (s *DeductionService) RemoveResigned(ctx context.Context) (string, error) {
	if err := s.deductions.RemoveResigned(ctx); err != nil {
		return "", fmt.Errorf("remove resigned deductions: %w", err)
	}
	return "Deductions for resigned employees removed successfully", nil
}

// AttendanceDeductions lists the employee's attendance deductions for a month (1-12).
func (s *DeductionService) AttendanceDeductions(ctx context.Context, employeeID int64, month int) ([]models.Row, error) {
	if employeeID == 0 || month == 0 {
		return nil, validationError("Employee ID and month are required")
	}
	if month < 1 || month > 12 {
		return nil, validationError("Month must be between 1 and 12")
	}
	rows, err := s.deductions.ForMonth(ctx, employeeID, month)
	if err != nil {
		return nil, fmt.Errorf("list attendance deductions: %w", err)
	}
	return rows, nil
}
