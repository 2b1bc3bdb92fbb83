package repositories

import (
	"context"

	"university-hr/internal/models"
)

// AttendanceRepositoryInterface defines attendance and holiday routines plus the
// counts used to report how many records a cleanup removed.
type AttendanceRepositoryInterface interface {
	Update(ctx context.Context, employeeID int64, checkIn, checkOut models.ClockTime) error
	Initiate(ctx context.Context) error
	EnsureHolidayTable(ctx context.Context) error
	AddHoliday(ctx context.Context, name string, from, to models.Date) error
	CountDuringHolidays(ctx context.Context) (int, error)
	RemoveDuringHolidays(ctx context.Context) error
	CountUnattendedDayOffs(ctx context.Context, employeeID int64, from, until models.Date) (int, error)
	RemoveUnattendedDayOffs(ctx context.Context, employeeID int64) error
	CountOnApprovedLeave(ctx context.Context, employeeID int64) (int, error)
	RemoveOnApprovedLeave(ctx context.Context, employeeID int64) error
	CurrentMonth(ctx context.Context, employeeID int64) ([]models.Row, error)
}

// AttendanceRepository implements AttendanceRepositoryInterface.
type AttendanceRepository struct {
	store *Store
}

// NewAttendanceRepository creates an AttendanceRepository.
func NewAttendanceRepository(store *Store) *AttendanceRepository {
	return &AttendanceRepository{store: store}
}

// Update records today's check-in/check-out. Zero times are bound as NULL,
// which the routine treats as an absence.
func (r *AttendanceRepository) Update(ctx context.Context, employeeID int64, checkIn, checkOut models.ClockTime) error {
	return r.store.procedure(ctx, "Update_Attendance", employeeID, checkIn, checkOut)
}

// Initiate creates today's attendance rows for every employee.
func (r *AttendanceRepository) Initiate(ctx context.Context) error {
	return r.store.procedure(ctx, "Initiate_Attendance")
}

// EnsureHolidayTable runs the routine that creates the Holiday table when missing.
func (r *AttendanceRepository) EnsureHolidayTable(ctx context.Context) error {
	return r.store.procedure(ctx, "Create_Holiday")
}

func (r *AttendanceRepository) AddHoliday(ctx context.Context, name string, from, to models.Date) error {
	return r.store.procedure(ctx, "Add_Holiday", name, from, to)
}

const holidayAttendanceCount = `
	SELECT COUNT(*)
	FROM Attendance a
	WHERE EXISTS (
		SELECT 1 FROM Holiday h
		WHERE a.date BETWEEN h.from_date AND h.to_date
	)`

// CountDuringHolidays counts attendance rows dated inside any official holiday.
func (r *AttendanceRepository) CountDuringHolidays(ctx context.Context) (int, error) {
	return r.store.count(ctx, "Attendance.count_holiday", holidayAttendanceCount)
}

func (r *AttendanceRepository) RemoveDuringHolidays(ctx context.Context) error {
	return r.store.procedure(ctx, "Remove_Holiday")
}

// CountUnattendedDayOffs counts the employee's Absent rows in [from, until)
// that fall on their official day off.
func (r *AttendanceRepository) CountUnattendedDayOffs(ctx context.Context, employeeID int64, from, until models.Date) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM Attendance a
		INNER JOIN Employee e ON a.emp_ID = e.employee_ID
		WHERE a.emp_ID = ?
		AND a.date >= ? AND a.date < ?
		AND UPPER(` + r.store.dialect.WeekdayName("a.date") + `) = UPPER(e.official_day_off)
		AND a.status = 'Absent'`
	return r.store.count(ctx, "Attendance.count_dayoff", query, employeeID, from, until)
}

func (r *AttendanceRepository) RemoveUnattendedDayOffs(ctx context.Context, employeeID int64) error {
	return r.store.procedure(ctx, "Remove_DayOff", employeeID)
}

// CountOnApprovedLeave counts the employee's attendance rows covered by any approved leave.
func (r *AttendanceRepository) CountOnApprovedLeave(ctx context.Context, employeeID int64) (int, error) {
	variants := []models.LeaveType{
		models.LeaveAnnual, models.LeaveAccidental, models.LeaveMedical,
		models.LeaveCompensation, models.LeaveUnpaid,
	}
	query := `
		SELECT COUNT(*)
		FROM Attendance a
		WHERE a.emp_ID = ?
		AND EXISTS (`
	args := []interface{}{employeeID}
	for i, t := range variants {
		if i > 0 {
			query += " UNION "
		}
		query += `
			SELECT 1 FROM ` + t.Table() + ` v
			INNER JOIN ` + r.store.dialect.Quote("Leave") + ` l ON l.request_ID = v.request_ID
			WHERE v.emp_ID = ?
			AND l.final_approval_status = 'approved'
			AND a.date BETWEEN l.start_date AND l.end_date`
		args = append(args, employeeID)
	}
	query += `
		)`
	return r.store.count(ctx, "Attendance.count_leave", query, args...)
}

func (r *AttendanceRepository) RemoveOnApprovedLeave(ctx context.Context, employeeID int64) error {
	return r.store.procedure(ctx, "Remove_Approved_Leaves", employeeID)
}

// CurrentMonth reads the employee's attendance for the running month.
func (r *AttendanceRepository) CurrentMonth(ctx context.Context, employeeID int64) ([]models.Row, error) {
	return r.store.tableFunction(ctx, "MyAttendance", employeeID)
}
