package services

import (
	"context"
	"time"

	"university-hr/internal/models"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fakeEmployees struct {
	valid      bool
	validErr   error
	employee   *models.Employee
	exists     bool
	evaluator  bool
	roles      []string
	calls      []string
	replaced   [2]int64
	replacedAt [2]models.Date
}

func (f *fakeEmployees) ValidateLogin(_ context.Context, role models.Role, _ int64, _ string) (bool, error) {
	f.calls = append(f.calls, "ValidateLogin:"+string(role))
	return f.valid, f.validErr
}

func (f *fakeEmployees) FindForRole(_ context.Context, role models.Role, _ int64) (*models.Employee, error) {
	f.calls = append(f.calls, "FindForRole:"+string(role))
	return f.employee, nil
}

func (f *fakeEmployees) Exists(context.Context, int64) (bool, error) {
	f.calls = append(f.calls, "Exists")
	return f.exists, nil
}

func (f *fakeEmployees) HoldsAnyRole(_ context.Context, _ int64, roles ...string) (bool, error) {
	f.calls = append(f.calls, "HoldsAnyRole")
	f.roles = roles
	return f.evaluator, nil
}

func (f *fakeEmployees) UpdateEmploymentStatus(context.Context, int64) error {
	f.calls = append(f.calls, "UpdateEmploymentStatus")
	return nil
}

func (f *fakeEmployees) Replace(_ context.Context, absentID, replacementID int64, from, to models.Date) error {
	f.calls = append(f.calls, "Replace")
	f.replaced = [2]int64{absentID, replacementID}
	f.replacedAt = [2]models.Date{from, to}
	return nil
}

type fakeLeaves struct {
	exists     bool
	assigned   bool
	approveErr error
	calls      []string
	existTypes []models.LeaveType
	from       models.Date
	until      models.Date
	pending    []models.PendingLeave
}

func (f *fakeLeaves) Exists(_ context.Context, _ int64, types ...models.LeaveType) (bool, error) {
	f.calls = append(f.calls, "Exists")
	f.existTypes = types
	return f.exists, nil
}

func (f *fakeLeaves) IsAssignedTo(context.Context, int64, int64) (bool, error) {
	f.calls = append(f.calls, "IsAssignedTo")
	return f.assigned, nil
}

func (f *fakeLeaves) ApproveAnnualOrAccidental(context.Context, int64, int64) error {
	f.calls = append(f.calls, "ApproveAnnualOrAccidental")
	return f.approveErr
}

func (f *fakeLeaves) ApproveUnpaid(context.Context, int64, int64) error {
	f.calls = append(f.calls, "ApproveUnpaid")
	return f.approveErr
}

func (f *fakeLeaves) ApproveCompensation(context.Context, int64, int64) error {
	f.calls = append(f.calls, "ApproveCompensation")
	return f.approveErr
}

func (f *fakeLeaves) PendingForApprover(context.Context, int64) ([]models.PendingLeave, error) {
	f.calls = append(f.calls, "PendingForApprover")
	return f.pending, nil
}

func (f *fakeLeaves) ApplyAnnual(_ context.Context, _ int64, from, to models.Date, _ string) error {
	f.calls = append(f.calls, "ApplyAnnual")
	f.from, f.until = from, to
	return nil
}

func (f *fakeLeaves) SubmitAccidental(_ context.Context, _ int64, from, to models.Date) error {
	f.calls = append(f.calls, "SubmitAccidental")
	f.from, f.until = from, to
	return nil
}

func (f *fakeLeaves) StartingBetween(_ context.Context, _ int64, from, until models.Date) ([]models.Row, error) {
	f.calls = append(f.calls, "StartingBetween")
	f.from, f.until = from, until
	return []models.Row{}, nil
}

func (f *fakeLeaves) UpperboardApproveAnnual(context.Context, int64, int64, int64) error {
	f.calls = append(f.calls, "UpperboardApproveAnnual")
	return nil
}

func (f *fakeLeaves) UpperboardApproveUnpaid(context.Context, int64, int64) error {
	f.calls = append(f.calls, "UpperboardApproveUnpaid")
	return nil
}

type fakeDeductions struct {
	existsToday bool
	counts      []int
	calls       []string
	dayFrom     models.Date
	dayUntil    models.Date
	monthFrom   models.Date
	monthUntil  models.Date
	rows        []models.Row
}

func (f *fakeDeductions) ExistsBetween(_ context.Context, _ int64, _ string, from, until models.Date) (bool, error) {
	f.calls = append(f.calls, "ExistsBetween")
	f.dayFrom, f.dayUntil = from, until
	return f.existsToday, nil
}

func (f *fakeDeductions) CountBetween(_ context.Context, _ int64, from, until models.Date) (int, error) {
	f.calls = append(f.calls, "CountBetween")
	f.monthFrom, f.monthUntil = from, until
	n := f.counts[0]
	f.counts = f.counts[1:]
	return n, nil
}

func (f *fakeDeductions) Apply(_ context.Context, deductionType string, _ int64) error {
	f.calls = append(f.calls, "Apply:"+deductionType)
	return nil
}

func (f *fakeDeductions) RemoveResigned(context.Context) error {
	f.calls = append(f.calls, "RemoveResigned")
	return nil
}

func (f *fakeDeductions) ForMonth(context.Context, int64, int) ([]models.Row, error) {
	f.calls = append(f.calls, "ForMonth")
	return f.rows, nil
}

type fakePayrolls struct {
	exists  bool
	latest  *models.Payroll
	lastRow []models.Row
	calls   []string
}

func (f *fakePayrolls) ExistsForPeriod(context.Context, int64, models.Date, models.Date) (bool, error) {
	f.calls = append(f.calls, "ExistsForPeriod")
	return f.exists, nil
}

func (f *fakePayrolls) Add(context.Context, int64, models.Date, models.Date) error {
	f.calls = append(f.calls, "Add")
	return nil
}

func (f *fakePayrolls) Latest(context.Context, int64) (*models.Payroll, error) {
	f.calls = append(f.calls, "Latest")
	return f.latest, nil
}

func (f *fakePayrolls) LastMonth(context.Context, int64) ([]models.Row, error) {
	f.calls = append(f.calls, "LastMonth")
	return f.lastRow, nil
}

type fakeAttendance struct {
	counts   []int
	calls    []string
	checkIn  models.ClockTime
	checkOut models.ClockTime
	from     models.Date
	until    models.Date
}

func (f *fakeAttendance) next() int {
	n := f.counts[0]
	f.counts = f.counts[1:]
	return n
}

func (f *fakeAttendance) Update(_ context.Context, _ int64, checkIn, checkOut models.ClockTime) error {
	f.calls = append(f.calls, "Update")
	f.checkIn, f.checkOut = checkIn, checkOut
	return nil
}

func (f *fakeAttendance) Initiate(context.Context) error {
	f.calls = append(f.calls, "Initiate")
	return nil
}

func (f *fakeAttendance) EnsureHolidayTable(context.Context) error {
	f.calls = append(f.calls, "EnsureHolidayTable")
	return nil
}

func (f *fakeAttendance) AddHoliday(context.Context, string, models.Date, models.Date) error {
	f.calls = append(f.calls, "AddHoliday")
	return nil
}

func (f *fakeAttendance) CountDuringHolidays(context.Context) (int, error) {
	f.calls = append(f.calls, "CountDuringHolidays")
	return f.next(), nil
}

func (f *fakeAttendance) RemoveDuringHolidays(context.Context) error {
	f.calls = append(f.calls, "RemoveDuringHolidays")
	return nil
}

func (f *fakeAttendance) CountUnattendedDayOffs(_ context.Context, _ int64, from, until models.Date) (int, error) {
	f.calls = append(f.calls, "CountUnattendedDayOffs")
	f.from, f.until = from, until
	return f.next(), nil
}

func (f *fakeAttendance) RemoveUnattendedDayOffs(context.Context, int64) error {
	f.calls = append(f.calls, "RemoveUnattendedDayOffs")
	return nil
}

func (f *fakeAttendance) CountOnApprovedLeave(context.Context, int64) (int, error) {
	f.calls = append(f.calls, "CountOnApprovedLeave")
	return f.next(), nil
}

func (f *fakeAttendance) RemoveOnApprovedLeave(context.Context, int64) error {
	f.calls = append(f.calls, "RemoveOnApprovedLeave")
	return nil
}

func (f *fakeAttendance) CurrentMonth(context.Context, int64) ([]models.Row, error) {
	f.calls = append(f.calls, "CurrentMonth")
	return []models.Row{}, nil
}

type fakePerformance struct {
	calls  []string
	rating int
}

func (f *fakePerformance) ForSemester(context.Context, int64, string) ([]models.Row, error) {
	f.calls = append(f.calls, "ForSemester")
	return []models.Row{{"rating": int64(4)}}, nil
}

func (f *fakePerformance) Evaluate(_ context.Context, _ int64, rating int, _, _ string) error {
	f.calls = append(f.calls, "Evaluate")
	f.rating = rating
	return nil
}
