package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"university-hr/internal/models"
	"university-hr/internal/repositories"
)

// AttendanceServiceInterface defines attendance maintenance and reads.
type AttendanceServiceInterface interface {
	Update(ctx context.Context, req models.AttendanceUpdateRequest) (string, error)
	Initiate(ctx context.Context) (string, error)
	AddHoliday(ctx context.Context, req models.HolidayRequest) (string, error)
	RemoveHolidayAttendance(ctx context.Context) (string, error)
	RemoveUnattendedDayOffs(ctx context.Context, employeeID int64) (string, error)
	RemoveApprovedLeaves(ctx context.Context, employeeID int64) (string, error)
	CurrentMonth(ctx context.Context, employeeID int64) ([]models.Row, error)
}

// AttendanceService implements AttendanceServiceInterface.
type AttendanceService struct {
	attendance repositories.AttendanceRepositoryInterface
	employees  repositories.EmployeeRepositoryInterface
	now        func() time.Time
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(attendance repositories.AttendanceRepositoryInterface, employees repositories.EmployeeRepositoryInterface) *AttendanceService {
	return &AttendanceService{attendance: attendance, employees: employees, now: time.Now}
}

// Update records a check-in/check-out pair, or marks the employee absent when both are blank.
func (s *AttendanceService) Update(ctx context.Context, req models.AttendanceUpdateRequest) (string, error) {
	if req.EmployeeID == 0 {
		return "", validationError("Employee ID is required")
	}
	hasIn := strings.TrimSpace(req.CheckIn) != ""
	hasOut := strings.TrimSpace(req.CheckOut) != ""
	if hasIn != hasOut {
		return "", validationError("Both check-in and check-out times must be provided together, or leave both empty to mark absent")
	}

	checkIn, err := models.ParseClockTime(req.CheckIn)
	if err != nil {
		return "", validationError("Invalid time format. Use HH:MM or HH:MM:SS")
	}
	checkOut, err := models.ParseClockTime(req.CheckOut)
	if err != nil {
		return "", validationError("Invalid time format. Use HH:MM or HH:MM:SS")
	}

	if err := s.attendance.Update(ctx, req.EmployeeID.Int64(), checkIn, checkOut); err != nil {
		return "", fmt.Errorf("update attendance: %w", err)
	}
	if checkIn.IsZero() {
		return "Employee marked as absent successfully", nil
	}
	return "Attendance updated successfully", nil
}

// Initiate creates today's attendance rows for all employees.
func (s *AttendanceService) Initiate(ctx context.Context) (string, error) {
	if err := s.attendance.Initiate(ctx); err != nil {
		return "", fmt.Errorf("initiate attendance: %w", err)
	}
	return "Attendance initiated for all employees", nil
}

// AddHoliday registers an official holiday, creating the Holiday table first if needed.
func (s *AttendanceService) AddHoliday(ctx context.Context, req models.HolidayRequest) (string, error) {
	name := strings.TrimSpace(req.HolidayName)
	if name == "" || req.FromDate == "" || req.ToDate == "" {
		return "", validationError("Holiday name, from date and to date are required")
	}
	from, to, err := parsePeriod(req.FromDate, req.ToDate, errFromAfterTo)
	if err != nil {
		return "", err
	}

	if err := s.attendance.EnsureHolidayTable(ctx); err != nil {
		return "", fmt.Errorf("create holiday table: %w", err)
	}
	if err := s.attendance.AddHoliday(ctx, name, from, to); err != nil {
		return "", fmt.Errorf("add holiday: %w", err)
	}
	return "Holiday added successfully", nil
}

// removed runs remove between two counts and returns how many rows disappeared.
func removed(ctx context.Context, count func(context.Context) (int, error), remove func(context.Context) error) (int, error) {
	before, err := count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count before removal: %w", err)
	}
	if err := remove(ctx); err != nil {
		return 0, err
	}
	after, err := count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count after removal: %w", err)
	}
	return before - after, nil
}

// RemoveHolidayAttendance deletes attendance rows dated during official holidays.
func (s *AttendanceService) RemoveHolidayAttendance(ctx context.Context) (string, error) {
	if err := s.attendance.EnsureHolidayTable(ctx); err != nil {
		return "", fmt.Errorf("create holiday table: %w", err)
	}
	n, err := removed(ctx, s.attendance.CountDuringHolidays, s.attendance.RemoveDuringHolidays)
	if err != nil {
		return "", fmt.Errorf("remove holiday attendance: %w", err)
	}
	if n == 0 {
		return "", notFoundError("No attendance records found during official holidays")
	}
	logrus.WithField("removed", n).Info("holiday attendance removed")
	return fmt.Sprintf("%d attendance record(s) during official holidays removed successfully", n), nil
}

func (s *AttendanceService) requireEmployee(ctx context.Context, employeeID int64) error {
	if employeeID == 0 {
		return validationError("Employee ID is required")
	}
	exists, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("check employee %d: %w", employeeID, err)
	}
	if !exists {
		return notFoundError("Employee %d not found", employeeID)
	}
	return nil
}

// RemoveUnattendedDayOffs deletes this month's Absent rows on the employee's official day off.
func (s *AttendanceService) RemoveUnattendedDayOffs(ctx context.Context, employeeID int64) (string, error) {
	if err := s.requireEmployee(ctx, employeeID); err != nil {
		return "", err
	}
	from, until := monthBounds(s.now())
	count := func(ctx context.Context) (int, error) {
		return s.attendance.CountUnattendedDayOffs(ctx, employeeID, from, until)
	}
	remove := func(ctx context.Context) error {
		return s.attendance.RemoveUnattendedDayOffs(ctx, employeeID)
	}

	n, err := removed(ctx, count, remove)
	if err != nil {
		return "", fmt.Errorf("remove day offs: %w", err)
	}
	if n == 0 {
		return "", notFoundError("No unattended dayoff records found for employee %d in the current month", employeeID)
	}
	return fmt.Sprintf("%d unattended dayoff record(s) removed successfully for employee %d", n, employeeID), nil
}

// RemoveApprovedLeaves deletes the employee's attendance rows covered by approved leaves.
func (s *AttendanceService) RemoveApprovedLeaves(ctx context.Context, employeeID int64) (string, error) {
	if err := s.requireEmployee(ctx, employeeID); err != nil {
		return "", err
	}
	count := func(ctx context.Context) (int, error) {
		return s.attendance.CountOnApprovedLeave(ctx, employeeID)
	}
	remove := func(ctx context.Context) error {
		return s.attendance.RemoveOnApprovedLeave(ctx, employeeID)
	}

	n, err := removed(ctx, count, remove)
	if err != nil {
		return "", fmt.Errorf("remove approved leaves: %w", err)
	}
	if n == 0 {
		return "", notFoundError("No approved leave attendance records found for employee %d", employeeID)
	}
	return fmt.Sprintf("%d approved leave attendance record(s) removed successfully for employee %d", n, employeeID), nil
}

// CurrentMonth returns the employee's attendance for the running month.
func (s *AttendanceService) CurrentMonth(ctx context.Context, employeeID int64) ([]models.Row, error) {
	if employeeID == 0 {
		return nil, validationError("Employee ID is required")
	}
	rows, err := s.attendance.CurrentMonth(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("current month attendance: %w", err)
	}
	return rows, nil
}
