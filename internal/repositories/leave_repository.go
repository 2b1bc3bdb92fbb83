package repositories

import (
	"context"
	"fmt"
	"strings"

	"university-hr/internal/models"
)

// LeaveRepositoryInterface defines leave lookups, applications and approval routines.
type LeaveRepositoryInterface interface {
	Exists(ctx context.Context, requestID int64, types ...models.LeaveType) (bool, error)
	IsAssignedTo(ctx context.Context, requestID, approverID int64) (bool, error)
	ApproveAnnualOrAccidental(ctx context.Context, requestID, hrID int64) error
	ApproveUnpaid(ctx context.Context, requestID, hrID int64) error
	ApproveCompensation(ctx context.Context, requestID, hrID int64) error
	PendingForApprover(ctx context.Context, approverID int64) ([]models.PendingLeave, error)
	ApplyAnnual(ctx context.Context, employeeID int64, from, to models.Date, reason string) error
	SubmitAccidental(ctx context.Context, employeeID int64, from, to models.Date) error
	StartingBetween(ctx context.Context, employeeID int64, from, until models.Date) ([]models.Row, error)
	UpperboardApproveAnnual(ctx context.Context, requestID, upperboardID, replacementID int64) error
	UpperboardApproveUnpaid(ctx context.Context, requestID, upperboardID int64) error
}

// LeaveRepository implements LeaveRepositoryInterface.
type LeaveRepository struct {
	store *Store
}

// NewLeaveRepository creates a LeaveRepository.
func NewLeaveRepository(store *Store) *LeaveRepository {
	return &LeaveRepository{store: store}
}

// Exists reports whether requestID is a leave of any of the given types.
func (r *LeaveRepository) Exists(ctx context.Context, requestID int64, types ...models.LeaveType) (bool, error) {
	if len(types) == 0 {
		return false, fmt.Errorf("leave exists: no leave type given")
	}
	parts := make([]string, 0, len(types))
	args := make([]interface{}, 0, len(types))
	for _, t := range types {
		table := t.Table()
		if table == "" {
			return false, fmt.Errorf("leave exists: unknown leave type %q", t)
		}
		parts = append(parts, "SELECT 1 FROM "+table+" WHERE request_ID = ?")
		args = append(args, requestID)
	}
	return r.store.exists(ctx, "Leave.exists", strings.Join(parts, " UNION "), args...)
}

// IsAssignedTo reports whether approverID has an approval row for the leave.
func (r *LeaveRepository) IsAssignedTo(ctx context.Context, requestID, approverID int64) (bool, error) {
	return r.store.exists(ctx, "Employee_Approve_Leave.exists",
		"SELECT 1 FROM Employee_Approve_Leave WHERE leave_ID = ? AND Emp1_ID = ?", requestID, approverID)
}

func (r *LeaveRepository) ApproveAnnualOrAccidental(ctx context.Context, requestID, hrID int64) error {
	return r.store.procedure(ctx, "HR_approval_an_acc", requestID, hrID)
}

func (r *LeaveRepository) ApproveUnpaid(ctx context.Context, requestID, hrID int64) error {
	return r.store.procedure(ctx, "HR_approval_unpaid", requestID, hrID)
}

func (r *LeaveRepository) ApproveCompensation(ctx context.Context, requestID, hrID int64) error {
	return r.store.procedure(ctx, "HR_approval_comp", requestID, hrID)
}

// PendingForApprover lists the leaves whose approval row for approverID is still pending.
func (r *LeaveRepository) PendingForApprover(ctx context.Context, approverID int64) ([]models.PendingLeave, error) {
	variants := []models.LeaveType{
		models.LeaveAnnual, models.LeaveAccidental, models.LeaveMedical,
		models.LeaveUnpaid, models.LeaveCompensation,
	}
	parts := make([]string, 0, len(variants))
	for _, t := range variants {
		parts = append(parts, fmt.Sprintf("SELECT request_ID, emp_ID, '%s' AS leave_type FROM %s", t, t.Table()))
	}

	query := `
		SELECT
			l.request_ID AS request_id,
			v.emp_ID AS employee_id,
			CONCAT(COALESCE(e.first_name, ''), ' ', COALESCE(e.last_name, '')) AS employee_name,
			v.leave_type AS leave_type,
			l.start_date AS start_date,
			l.end_date AS end_date,
			COALESCE(l.num_days, 0) AS num_days,
			a.status AS status
		FROM Employee_Approve_Leave a
		INNER JOIN ` + r.store.dialect.Quote("Leave") + ` l ON l.request_ID = a.leave_ID
		INNER JOIN (` + strings.Join(parts, " UNION ALL ") + `) v ON v.request_ID = l.request_ID
		INNER JOIN Employee e ON e.employee_ID = v.emp_ID
		WHERE a.Emp1_ID = ? AND a.status = 'pending'
		ORDER BY l.start_date`

	leaves := make([]models.PendingLeave, 0)
	if err := r.store.list(ctx, "Leave.pending", &leaves, query, approverID); err != nil {
		return nil, err
	}
	return leaves, nil
}

// ApplyAnnual stores a pending annual leave request.
func (r *LeaveRepository) ApplyAnnual(ctx context.Context, employeeID int64, from, to models.Date, reason string) error {
	return r.store.exec(ctx, "Annual_Leave.insert", `
		INSERT INTO Annual_Leave (employee_ID, from_date, to_date, reason, status)
		VALUES (?, ?, ?, ?, 'pending')`,
		employeeID, from, to, reason)
}

// SubmitAccidental files an accidental leave through its routine.
func (r *LeaveRepository) SubmitAccidental(ctx context.Context, employeeID int64, from, to models.Date) error {
	return r.store.procedure(ctx, "Submit_accidental", employeeID, from, to)
}

// StartingBetween lists the employee's annual and accidental leaves whose
// from_date falls in [from, until), newest first.
func (r *LeaveRepository) StartingBetween(ctx context.Context, employeeID int64, from, until models.Date) ([]models.Row, error) {
	return r.store.rows(ctx, "Leave.status", `
		SELECT 'annual' AS leave_type, leave_ID, from_date, to_date, reason, status
		FROM Annual_Leave
		WHERE employee_ID = ? AND from_date >= ? AND from_date < ?
		UNION ALL
		SELECT 'accidental' AS leave_type, leave_ID, from_date, to_date, reason, status
		FROM Accidental_Leave
		WHERE employee_ID = ? AND from_date >= ? AND from_date < ?
		ORDER BY from_date DESC`,
		employeeID, from, until, employeeID, from, until)
}

// UpperboardApproveAnnual records a Dean/Vice-Dean/President decision on an
// annual leave, naming the colleague who covers for the applicant.
func (r *LeaveRepository) UpperboardApproveAnnual(ctx context.Context, requestID, upperboardID, replacementID int64) error {
	return r.store.procedure(ctx, "Upperboard_approve_annual", requestID, upperboardID, replacementID)
}

// UpperboardApproveUnpaid records a Dean/Vice-Dean/President decision on an unpaid leave.
func (r *LeaveRepository) UpperboardApproveUnpaid(ctx context.Context, requestID, upperboardID int64) error {
	return r.store.procedure(ctx, "Upperboard_approve_unpaids", requestID, upperboardID)
}
