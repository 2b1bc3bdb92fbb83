package services

import (
	"context"
	"fmt"

	"university-hr/internal/models"
	"university-hr/internal/repositories"
)

// EmployeeServiceInterface defines staffing changes made by the admin.
type EmployeeServiceInterface interface {
	Replace(ctx context.Context, req models.ReplacementRequest) (string, error)
	UpdateEmploymentStatus(ctx context.Context, employeeID int64) (string, error)
}

// EmployeeService implements EmployeeServiceInterface.
type EmployeeService struct {
	employees repositories.EmployeeRepositoryInterface
}

// NewEmployeeService creates an EmployeeService.
func NewEmployeeService(employees repositories.EmployeeRepositoryInterface) *EmployeeService {
	return &EmployeeService{employees: employees}
}

// Replace makes Emp2 cover Emp1's duties over the period.
func (s *EmployeeService) Replace(ctx context.Context, req models.ReplacementRequest) (string, error) {
	if req.Emp1ID == 0 || req.Emp2ID == 0 || req.FromDate == "" || req.ToDate == "" {
		return "", validationError("emp1Id, emp2Id, fromDate and toDate are all required")
	}
	from, to, err := parsePeriod(req.FromDate, req.ToDate, errFromAfterTo)
	if err != nil {
		return "", err
	}
	if err := s.employees.Replace(ctx, req.Emp1ID.Int64(), req.Emp2ID.Int64(), from, to); err != nil {
		return "", fmt.Errorf("replace employee: %w", err)
	}
	return fmt.Sprintf("Employee %d successfully replaced by %d from %s to %s",
		req.Emp1ID, req.Emp2ID, from, to), nil
}

// UpdateEmploymentStatus refreshes an existing employee's employment status.
func (s *EmployeeService) UpdateEmploymentStatus(ctx context.Context, employeeID int64) (string, error) {
	if employeeID == 0 {
		return "", validationError("Employee ID is required")
	}
	exists, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return "", fmt.Errorf("check employee %d: %w", employeeID, err)
	}
	if !exists {
		return "", notFoundError("Employee %d not found", employeeID)
	}
	if err := s.employees.UpdateEmploymentStatus(ctx, employeeID); err != nil {
		return "", fmt.Errorf("update employment status: %w", err)
	}
	return fmt.Sprintf("Employment status updated successfully for employee %d", employeeID), nil
}
