package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"university-hr/internal/config"
	"university-hr/internal/models"
)

var ctx = context.Background()

func newAuth(t *testing.T, employees *fakeEmployees) (*AuthService, *TokenManager) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	tokens := NewTokenManager("test-secret", time.Hour)
	tokens.now = clock
	auth, err := NewAuthService(employees, tokens, config.AdminConfig{Username: "admin", PasswordHash: string(hash)})
	require.NoError(t, err)
	return auth, tokens
}

func TestLoginRequiresCredentials(t *testing.T) {
	employees := &fakeEmployees{}
	auth, _ := newAuth(t, employees)

	_, err := auth.Login(ctx, models.RoleHR, models.LoginRequest{EmployeeID: "5"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Employee ID and password are required", err.Error())

	for _, role := range []models.Role{models.RoleHR, models.RoleAcademic} {
		_, err = auth.Login(ctx, role, models.LoginRequest{EmployeeID: "0", Password: "pw"})
		require.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "Employee ID and password are required", err.Error())
	}
	assert.Empty(t, employees.calls)
}

func TestAdminLogin(t *testing.T) {
	auth, tokens := newAuth(t, &fakeEmployees{})

	res, err := auth.Login(ctx, models.RoleAdmin, models.LoginRequest{EmployeeID: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "Admin", res.User.FirstName)
	assert.Equal(t, fixedNow.Add(time.Hour), res.ExpiresAt)

	claims, err := tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, int64(0), claims.EmployeeID)

	_, err = auth.Login(ctx, models.RoleAdmin, models.LoginRequest{EmployeeID: "admin", Password: "nope"})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestAdminPlaintextPasswordIsHashedAtStartup(t *testing.T) {
	auth, err := NewAuthService(&fakeEmployees{}, NewTokenManager("s", time.Hour),
		config.AdminConfig{Username: "root", Password: "pw"})
	require.NoError(t, err)
	assert.NotEqual(t, "pw", string(auth.adminHash))

	_, err = auth.Login(ctx, models.RoleAdmin, models.LoginRequest{EmployeeID: "root", Password: "pw"})
	require.NoError(t, err)
}

func TestAdminRejectsNonBcryptHash(t *testing.T) {
	_, err := NewAuthService(&fakeEmployees{}, NewTokenManager("s", time.Hour),
		config.AdminConfig{Username: "root", PasswordHash: "plain"})
	assert.Error(t, err)
}

func TestEmployeeLogin(t *testing.T) {
	employee := &models.Employee{ID: 5, FirstName: "Mona", Department: "HR"}
	employees := &fakeEmployees{valid: true, employee: employee}
	auth, tokens := newAuth(t, employees)

	res, err := auth.Login(ctx, models.RoleHR, models.LoginRequest{EmployeeID: "5", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Mona", res.User.FirstName)
	assert.Equal(t, []string{"ValidateLogin:hr", "FindForRole:hr"}, employees.calls)

	claims, err := tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.EmployeeID)
	assert.Equal(t, models.RoleHR, claims.Role)
}

func TestEmployeeLoginFailures(t *testing.T) {
	auth, _ := newAuth(t, &fakeEmployees{valid: false})
	_, err := auth.Login(ctx, models.RoleAcademic, models.LoginRequest{EmployeeID: "5", Password: "pw"})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", err.Error())

	auth, _ = newAuth(t, &fakeEmployees{valid: true})
	_, err = auth.Login(ctx, models.RoleAcademic, models.LoginRequest{EmployeeID: "5", Password: "pw"})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "User not found", err.Error())

	employees := &fakeEmployees{}
	auth, _ = newAuth(t, employees)
	_, err = auth.Login(ctx, models.RoleHR, models.LoginRequest{EmployeeID: "abc", Password: "pw"})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, employees.calls)

	dbErr := errors.New("connection reset")
	auth, _ = newAuth(t, &fakeEmployees{validErr: dbErr})
	_, err = auth.Login(ctx, models.RoleHR, models.LoginRequest{EmployeeID: "5", Password: "pw"})
	require.ErrorIs(t, err, dbErr)
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestTokenExpiry(t *testing.T) {
	tokens := NewTokenManager("k", time.Minute)
	tokens.now = clock
	signed, _, err := tokens.Issue(3, models.RoleAcademic)
	require.NoError(t, err)

	tokens.now = func() time.Time { return fixedNow.Add(2 * time.Minute) }
	_, err = tokens.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)

	other := NewTokenManager("other", time.Minute)
	other.now = clock
	_, err = other.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestApproveByHR(t *testing.T) {
	leaves := &fakeLeaves{exists: true, assigned: true}
	svc := NewLeaveService(leaves)

	msg, err := svc.ApproveByHR(ctx, ApprovalAnnualAccidental, models.LeaveApprovalRequest{RequestID: 10, HRID: 2})
	require.NoError(t, err)
	assert.Equal(t, "Annual/Accidental leave processed successfully", msg)
	assert.Equal(t, []models.LeaveType{models.LeaveAnnual, models.LeaveAccidental}, leaves.existTypes)
	assert.Equal(t, []string{"Exists", "IsAssignedTo", "ApproveAnnualOrAccidental"}, leaves.calls)
}

func TestApproveByHRChecks(t *testing.T) {
	leaves := &fakeLeaves{}
	svc := NewLeaveService(leaves)

	_, err := svc.ApproveByHR(ctx, ApprovalUnpaid, models.LeaveApprovalRequest{RequestID: 10})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Missing required fields", err.Error())
	assert.Empty(t, leaves.calls)

	_, err = svc.ApproveByHR(ctx, ApprovalUnpaid, models.LeaveApprovalRequest{RequestID: 10, HRID: 2})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Request ID not found in unpaid leaves", err.Error())

	leaves.exists = true
	_, err = svc.ApproveByHR(ctx, ApprovalCompensation, models.LeaveApprovalRequest{RequestID: 10, HRID: 2})
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "This leave request is not assigned to you", err.Error())
	assert.NotContains(t, leaves.calls, "ApproveCompensation")
}

func TestApplyAnnualValidation(t *testing.T) {
	leaves := &fakeLeaves{}
	svc := NewLeaveService(leaves)

	_, err := svc.ApplyAnnual(ctx, models.AnnualLeaveApplication{EmployeeID: 1, FromDate: "2024-01-01", ToDate: "2024-01-02"})
	assert.EqualError(t, err, "All fields are required")

	_, err = svc.ApplyAnnual(ctx, models.AnnualLeaveApplication{EmployeeID: 1, FromDate: "soon", ToDate: "2024-01-02", Reason: "r"})
	assert.EqualError(t, err, "Invalid date format")

	_, err = svc.ApplyAnnual(ctx, models.AnnualLeaveApplication{EmployeeID: 1, FromDate: "2024-01-05", ToDate: "2024-01-02", Reason: "r"})
	assert.EqualError(t, err, "From date must be before to date")
	assert.Empty(t, leaves.calls)

	msg, err := svc.ApplyAnnual(ctx, models.AnnualLeaveApplication{EmployeeID: 1, FromDate: "2024-01-02", ToDate: "2024-01-02", Reason: "r"})
	require.NoError(t, err)
	assert.Equal(t, "Annual leave application submitted successfully", msg)
	assert.Equal(t, "2024-01-02", leaves.from.String())
}

func TestCurrentMonthStatusUsesMonthBounds(t *testing.T) {
	leaves := &fakeLeaves{}
	svc := NewLeaveService(leaves)
	svc.now = clock

	_, err := svc.CurrentMonthStatus(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", leaves.from.String())
	assert.Equal(t, "2024-04-01", leaves.until.String())
}

func TestUpperboardApprovals(t *testing.T) {
	leaves := &fakeLeaves{exists: true, assigned: true}
	svc := NewLeaveService(leaves)

	_, err := svc.UpperboardApproveAnnual(ctx, models.UpperboardAnnualApproval{RequestID: 3, UpperboardID: 1})
	require.ErrorIs(t, err, ErrValidation)

	msg, err := svc.UpperboardApproveAnnual(ctx, models.UpperboardAnnualApproval{RequestID: 3, UpperboardID: 1, ReplacementID: 8})
	require.NoError(t, err)
	assert.Equal(t, "Annual leave processed successfully", msg)
	assert.Equal(t, []models.LeaveType{models.LeaveAnnual}, leaves.existTypes)

	msg, err = svc.UpperboardApproveUnpaid(ctx, models.UpperboardUnpaidApproval{RequestID: 4, UpperboardID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Unpaid leave processed successfully", msg)
	assert.Contains(t, leaves.calls, "UpperboardApproveUnpaid")
}

func TestDeductionApply(t *testing.T) {
	deductions := &fakeDeductions{counts: []int{2, 3}}
	svc := NewDeductionService(deductions)
	svc.now = clock

	msg, err := svc.Apply(ctx, models.DeductionMissingHours, 7)
	require.NoError(t, err)
	assert.Equal(t, "Deduction applied successfully", msg)
	assert.Equal(t, "2024-03-15", deductions.dayFrom.String())
	assert.Equal(t, "2024-03-16", deductions.dayUntil.String())
	assert.Equal(t, "2024-03-01", deductions.monthFrom.String())
	assert.Equal(t, "2024-04-01", deductions.monthUntil.String())
	assert.Equal(t, []string{"ExistsBetween", "CountBetween", "Apply:missing_hours", "CountBetween"}, deductions.calls)
}

func TestDeductionApplyOutcomes(t *testing.T) {
	svc := NewDeductionService(&fakeDeductions{counts: []int{3, 3}})
	msg, err := svc.Apply(ctx, models.DeductionMissingDays, 7)
	require.NoError(t, err)
	assert.Equal(t, "No missing days found for this employee", msg)

	deductions := &fakeDeductions{existsToday: true}
	svc = NewDeductionService(deductions)
	msg, err = svc.Apply(ctx, models.DeductionMissingHours, 7)
	require.NoError(t, err)
	assert.Equal(t, "Deduction for missing hours already exists for today", msg)
	assert.Equal(t, []string{"ExistsBetween"}, deductions.calls)

	_, err = svc.Apply(ctx, models.DeductionUnpaid, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAttendanceDeductionsMonthRange(t *testing.T) {
	deductions := &fakeDeductions{rows: []models.Row{}}
	svc := NewDeductionService(deductions)

	_, err := svc.AttendanceDeductions(ctx, 3, 13)
	assert.EqualError(t, err, "Month must be between 1 and 12")
	_, err = svc.AttendanceDeductions(ctx, 3, 0)
	assert.EqualError(t, err, "Employee ID and month are required")
	assert.Empty(t, deductions.calls)

	_, err = svc.AttendanceDeductions(ctx, 3, 12)
	require.NoError(t, err)
}

func TestPayrollGenerate(t *testing.T) {
	payrolls := &fakePayrolls{latest: &models.Payroll{PayrollID: 9, EmployeeName: "Sara Nabil"}}
	svc := NewPayrollService(payrolls)

	res, err := svc.Generate(ctx, models.PayrollRequest{EmployeeID: 5, FromDate: "2024-01-01", ToDate: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, "Payroll added successfully", res.Message)
	assert.Equal(t, int64(9), res.Payroll.PayrollID)
	assert.Equal(t, []string{"ExistsForPeriod", "Add", "Latest"}, payrolls.calls)
}

func TestPayrollGenerateOutcomes(t *testing.T) {
	svc := NewPayrollService(&fakePayrolls{exists: true})
	res, err := svc.Generate(ctx, models.PayrollRequest{EmployeeID: 5, FromDate: "2024-01-01", ToDate: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, "Payroll for this employee in that period already exists", res.Message)
	assert.Nil(t, res.Payroll)

	svc = NewPayrollService(&fakePayrolls{})
	_, err = svc.Generate(ctx, models.PayrollRequest{EmployeeID: 5, FromDate: "2024-01-01", ToDate: "2024-01-31"})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Payroll record not found", err.Error())

	_, err = svc.Generate(ctx, models.PayrollRequest{EmployeeID: 5, FromDate: "2024-02-01", ToDate: "2024-01-31"})
	assert.EqualError(t, err, "From date can't be after the to date")

	_, err = svc.Generate(ctx, models.PayrollRequest{FromDate: "2024-02-01", ToDate: "2024-01-31"})
	assert.EqualError(t, err, "Employee ID, from date, and to date are required")
}

func TestLastMonthPayroll(t *testing.T) {
	svc := NewPayrollService(&fakePayrolls{lastRow: []models.Row{}})
	_, err := svc.LastMonth(ctx, 5)
	require.ErrorIs(t, err, ErrNotFound)

	svc = NewPayrollService(&fakePayrolls{lastRow: []models.Row{{"final_salary_amount": "9000.00"}}})
	row, err := svc.LastMonth(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "9000.00", row["final_salary_amount"])
}

func TestAttendanceUpdate(t *testing.T) {
	attendance := &fakeAttendance{}
	svc := NewAttendanceService(attendance, &fakeEmployees{})

	_, err := svc.Update(ctx, models.AttendanceUpdateRequest{EmployeeID: 2, CheckIn: "09:00"})
	assert.EqualError(t, err, "Both check-in and check-out times must be provided together, or leave both empty to mark absent")

	_, err = svc.Update(ctx, models.AttendanceUpdateRequest{EmployeeID: 2, CheckIn: "9am", CheckOut: "17:00"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, attendance.calls)

	msg, err := svc.Update(ctx, models.AttendanceUpdateRequest{EmployeeID: 2, CheckIn: "09:00", CheckOut: "17:30:15"})
	require.NoError(t, err)
	assert.Equal(t, "Attendance updated successfully", msg)
	assert.Equal(t, models.ClockTime("09:00:00"), attendance.checkIn)
	assert.Equal(t, models.ClockTime("17:30:15"), attendance.checkOut)

	msg, err = svc.Update(ctx, models.AttendanceUpdateRequest{EmployeeID: 2})
	require.NoError(t, err)
	assert.Equal(t, "Employee marked as absent successfully", msg)
	assert.True(t, attendance.checkIn.IsZero())
}

func TestAddHoliday(t *testing.T) {
	attendance := &fakeAttendance{}
	svc := NewAttendanceService(attendance, &fakeEmployees{})

	_, err := svc.AddHoliday(ctx, models.HolidayRequest{HolidayName: "Eid", FromDate: "2024-04-12", ToDate: "2024-04-10"})
	assert.EqualError(t, err, "From date can't be after the to date")

	msg, err := svc.AddHoliday(ctx, models.HolidayRequest{HolidayName: "Eid", FromDate: "2024-04-10", ToDate: "2024-04-12"})
	require.NoError(t, err)
	assert.Equal(t, "Holiday added successfully", msg)
	assert.Equal(t, []string{"EnsureHolidayTable", "AddHoliday"}, attendance.calls)
}

func TestRemoveHolidayAttendance(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendance{counts: []int{5, 2}}, &fakeEmployees{})
	msg, err := svc.RemoveHolidayAttendance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3 attendance record(s) during official holidays removed successfully", msg)

	svc = NewAttendanceService(&fakeAttendance{counts: []int{0, 0}}, &fakeEmployees{})
	_, err = svc.RemoveHolidayAttendance(ctx)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "No attendance records found during official holidays", err.Error())
}

func TestRemoveUnattendedDayOffs(t *testing.T) {
	attendance := &fakeAttendance{counts: []int{2, 0}}
	svc := NewAttendanceService(attendance, &fakeEmployees{exists: true})
	svc.now = clock

	msg, err := svc.RemoveUnattendedDayOffs(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, "2 unattended dayoff record(s) removed successfully for employee 6", msg)
	assert.Equal(t, "2024-03-01", attendance.from.String())

	svc = NewAttendanceService(&fakeAttendance{}, &fakeEmployees{exists: false})
	_, err = svc.RemoveUnattendedDayOffs(ctx, 6)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Employee 6 not found", err.Error())

	svc = NewAttendanceService(&fakeAttendance{counts: []int{1, 1}}, &fakeEmployees{exists: true})
	_, err = svc.RemoveUnattendedDayOffs(ctx, 6)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "No unattended dayoff records found for employee 6 in the current month", err.Error())
}

func TestRemoveApprovedLeaves(t *testing.T) {
	attendance := &fakeAttendance{counts: []int{4, 1}}
	svc := NewAttendanceService(attendance, &fakeEmployees{exists: true})

	msg, err := svc.RemoveApprovedLeaves(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, "3 approved leave attendance record(s) removed successfully for employee 6", msg)
	assert.Equal(t, []string{"CountOnApprovedLeave", "RemoveOnApprovedLeave", "CountOnApprovedLeave"}, attendance.calls)

	_, err = svc.RemoveApprovedLeaves(ctx, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEmployeeService(t *testing.T) {
	employees := &fakeEmployees{exists: true}
	svc := NewEmployeeService(employees)

	msg, err := svc.Replace(ctx, models.ReplacementRequest{Emp1ID: 1, Emp2ID: 2, FromDate: "2024-05-01", ToDate: "2024-05-03"})
	require.NoError(t, err)
	assert.Equal(t, "Employee 1 successfully replaced by 2 from 2024-05-01 to 2024-05-03", msg)
	assert.Equal(t, [2]int64{1, 2}, employees.replaced)

	_, err = svc.Replace(ctx, models.ReplacementRequest{Emp1ID: 1, FromDate: "2024-05-01", ToDate: "2024-05-03"})
	assert.EqualError(t, err, "emp1Id, emp2Id, fromDate and toDate are all required")

	msg, err = svc.UpdateEmploymentStatus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Employment status updated successfully for employee 1", msg)

	svc = NewEmployeeService(&fakeEmployees{})
	_, err = svc.UpdateEmploymentStatus(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPerformanceService(t *testing.T) {
	performance := &fakePerformance{}
	svc := NewPerformanceService(performance, &fakeEmployees{evaluator: true})

	_, err := svc.ForSemester(ctx, 1, "F24")
	assert.EqualError(t, err, "Invalid semester format. Must be W## or S## (e.g., W24, S23)")
	rows, err := svc.ForSemester(ctx, 1, "W24")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = svc.Evaluate(ctx, models.DeanEvaluationRequest{DeanID: 1, EmployeeID: 2, Rating: 6, Comment: "ok", Semester: "W24"})
	assert.EqualError(t, err, "Rating must be between 1 and 5")
	_, err = svc.Evaluate(ctx, models.DeanEvaluationRequest{DeanID: 1, EmployeeID: 2, Rating: 4, Semester: "W24"})
	assert.EqualError(t, err, "All fields are required")

	msg, err := svc.Evaluate(ctx, models.DeanEvaluationRequest{DeanID: 1, EmployeeID: 2, Rating: 4, Comment: "solid", Semester: "S23"})
	require.NoError(t, err)
	assert.Equal(t, "Evaluation submitted successfully", msg)
	assert.Equal(t, 4, performance.rating)
}

func TestEvaluateRequiresDeanTier(t *testing.T) {
	performance := &fakePerformance{}
	employees := &fakeEmployees{evaluator: false}
	svc := NewPerformanceService(performance, employees)

	_, err := svc.Evaluate(ctx, models.DeanEvaluationRequest{DeanID: 7, EmployeeID: 2, Rating: 4, Comment: "solid", Semester: "S23"})
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "Only a Dean, Vice Dean or President can submit evaluations", err.Error())
	assert.Equal(t, []string{"Dean", "Vice Dean", "President"}, employees.roles)
	assert.Empty(t, performance.calls)
}
