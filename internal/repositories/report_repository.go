package repositories

import (
	"context"

	"university-hr/internal/models"
)

// ReportRepositoryInterface defines the read-only views behind the admin dashboard.
type ReportRepositoryInterface interface {
	EmployeeProfiles(ctx context.Context) ([]models.Row, error)
	DepartmentHeadcounts(ctx context.Context) ([]models.Row, error)
	RejectedMedicals(ctx context.Context) ([]models.Row, error)
	YesterdayAttendance(ctx context.Context) ([]models.Row, error)
	WinterPerformance(ctx context.Context) ([]models.Row, error)
	CountEmployees(ctx context.Context) (int, error)
	CountDepartments(ctx context.Context) (int, error)
}

// ReportRepository implements ReportRepositoryInterface.
type ReportRepository struct {
	store *Store
}

// NewReportRepository creates a ReportRepository.
func NewReportRepository(store *Store) *ReportRepository {
	return &ReportRepository{store: store}
}

func (r *ReportRepository) EmployeeProfiles(ctx context.Context) ([]models.Row, error) {
	return r.store.view(ctx, "allEmployeeProfiles")
}

func (r *ReportRepository) DepartmentHeadcounts(ctx context.Context) ([]models.Row, error) {
	return r.store.view(ctx, "NoEmployeeDept")
}

func (r *ReportRepository) RejectedMedicals(ctx context.Context) ([]models.Row, error) {
	return r.store.view(ctx, "allRejectedMedicals")
}

func (r *ReportRepository) YesterdayAttendance(ctx context.Context) ([]models.Row, error) {
	return r.store.view(ctx, "allEmployeeAttendance")
}

// WinterPerformance reads every employee's performance in Winter semesters.
func (r *ReportRepository) WinterPerformance(ctx context.Context) ([]models.Row, error) {
	return r.store.view(ctx, "allPerformance")
}

func (r *ReportRepository) CountEmployees(ctx context.Context) (int, error) {
	return r.store.count(ctx, "Employee.count", "SELECT COUNT(*) FROM Employee")
}

func (r *ReportRepository) CountDepartments(ctx context.Context) (int, error) {
	return r.store.count(ctx, "Department.count", "SELECT COUNT(*) FROM Department")
}
