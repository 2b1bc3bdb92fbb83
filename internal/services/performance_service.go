package services

import (
	"context"
	"fmt"
	"strings"

	"university-hr/internal/models"
	"university-hr/internal/repositories"
)

// PerformanceServiceInterface defines performance reads and dean evaluations.
type PerformanceServiceInterface interface {
	ForSemester(ctx context.Context, employeeID int64, semester string) ([]models.Row, error)
	Evaluate(ctx context.Context, req models.DeanEvaluationRequest) (string, error)
}

// evaluatorRoles are the Employee_Role names allowed to submit evaluations.
var evaluatorRoles = []string{"Dean", "Vice Dean", "President"}

// PerformanceService implements PerformanceServiceInterface.
type PerformanceService struct {
	performance repositories.PerformanceRepositoryInterface
	employees   repositories.EmployeeRepositoryInterface
}

// NewPerformanceService creates a PerformanceService.
func NewPerformanceService(performance repositories.PerformanceRepositoryInterface, employees repositories.EmployeeRepositoryInterface) *PerformanceService {
	return &PerformanceService{performance: performance, employees: employees}
}

// ForSemester returns the employee's performance for a W## or S## semester.
func (s *PerformanceService) ForSemester(ctx context.Context, employeeID int64, semester string) ([]models.Row, error) {
	if employeeID == 0 || semester == "" {
		return nil, validationError("Employee ID and semester are required")
	}
	if !semesterPattern.MatchString(semester) {
		return nil, validationError("Invalid semester format. Must be W## or S## (e.g., W24, S23)")
	}
	rows, err := s.performance.ForSemester(ctx, employeeID, semester)
	if err != nil {
		return nil, fmt.Errorf("performance for %s: %w", semester, err)
	}
	return rows, nil
}

// Evaluate records a dean's 1-5 rating of an employee for a semester.
func (s *PerformanceService) Evaluate(ctx context.Context, req models.DeanEvaluationRequest) (string, error) {
	comment := strings.TrimSpace(req.Comment)
	if req.DeanID == 0 || req.EmployeeID == 0 || req.Rating == 0 || comment == "" || req.Semester == "" {
		return "", validationError("All fields are required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return "", validationError("Rating must be between 1 and 5")
	}
	if !semesterPattern.MatchString(req.Semester) {
		return "", validationError("Invalid semester format. Must be W## or S## (e.g., W24, S23)")
	}
	allowed, err := s.employees.HoldsAnyRole(ctx, req.DeanID.Int64(), evaluatorRoles...)
	if err != nil {
		return "", fmt.Errorf("check evaluator role: %w", err)
	}
	if !allowed {
		return "", newError(ErrForbidden, "Only a Dean, Vice Dean or President can submit evaluations")
	}
	if err := s.performance.Evaluate(ctx, req.EmployeeID.Int64(), int(req.Rating), comment, req.Semester); err != nil {
		return "", fmt.Errorf("dean evaluation: %w", err)
	}
	return "Evaluation submitted successfully", nil
}
