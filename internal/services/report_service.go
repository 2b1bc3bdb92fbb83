package services

import (
	"context"
	"fmt"

	"university-hr/internal/models"
	"university-hr/internal/repositories"
)

// ReportServiceInterface defines the dashboard listings and headline counts.
type ReportServiceInterface interface {
	EmployeeProfiles(ctx context.Context) ([]models.Row, error)
	DepartmentHeadcounts(ctx context.Context) ([]models.Row, error)
	RejectedMedicals(ctx context.Context) ([]models.Row, error)
	YesterdayAttendance(ctx context.Context) ([]models.Row, error)
	WinterPerformance(ctx context.Context) ([]models.Row, error)
	Counts(ctx context.Context) (*Counts, error)
}

// Counts are the headline numbers shown on the landing page.
type Counts struct {
	Employees   int
	Departments int
}

// ReportService implements ReportServiceInterface.
type ReportService struct {
	reports repositories.ReportRepositoryInterface
}

// NewReportService creates a ReportService.
func NewReportService(reports repositories.ReportRepositoryInterface) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) EmployeeProfiles(ctx context.Context) ([]models.Row, error) {
	rows, err := s.reports.EmployeeProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("employee profiles: %w", err)
	}
	return rows, nil
}

func (s *ReportService) DepartmentHeadcounts(ctx context.Context) ([]models.Row, error) {
	rows, err := s.reports.DepartmentHeadcounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("department headcounts: %w", err)
	}
	return rows, nil
}

func (s *ReportService) RejectedMedicals(ctx context.Context) ([]models.Row, error) {
	rows, err := s.reports.RejectedMedicals(ctx)
	if err != nil {
		return nil, fmt.Errorf("rejected medicals: %w", err)
	}
	return rows, nil
}

func (s *ReportService) YesterdayAttendance(ctx context.Context) ([]models.Row, error) {
	rows, err := s.reports.YesterdayAttendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("yesterday attendance: %w", err)
	}
	return rows, nil
}

func (s *ReportService) WinterPerformance(ctx context.Context) ([]models.Row, error) {
	rows, err := s.reports.WinterPerformance(ctx)
	if err != nil {
		return nil, fmt.Errorf("winter performance: %w", err)
	}
	return rows, nil
}

// Counts returns the number of employees and departments.
func (s *ReportService) Counts(ctx context.Context) (*Counts, error) {
	employees, err := s.reports.CountEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("count employees: %w", err)
	}
	departments, err := s.reports.CountDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("count departments: %w", err)
	}
	return &Counts{Employees: employees, Departments: departments}, nil
}
