package repositories

import (
	"context"

	"university-hr/internal/models"
)

// PerformanceRepositoryInterface defines performance reads and evaluations.
type PerformanceRepositoryInterface interface {
	ForSemester(ctx context.Context, employeeID int64, semester string) ([]models.Row, error)
	Evaluate(ctx context.Context, employeeID int64, rating int, comment, semester string) error
}

// PerformanceRepository implements PerformanceRepositoryInterface.
type PerformanceRepository struct {
	store *Store
}

// NewPerformanceRepository creates a PerformanceRepository.
func NewPerformanceRepository(store *Store) *PerformanceRepository {
	return &PerformanceRepository{store: store}
}

func (r *PerformanceRepository) ForSemester(ctx context.Context, employeeID int64, semester string) ([]models.Row, error) {
	return r.store.tableFunction(ctx, "MyPerformance", employeeID, semester)
}

// Evaluate records a dean's rating of the employee for the semester.
func (r *PerformanceRepository) Evaluate(ctx context.Context, employeeID int64, rating int, comment, semester string) error {
	return r.store.procedure(ctx, "Dean_andHR_Evaluation", employeeID, rating, comment, semester)
}
