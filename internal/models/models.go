package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// --- Roles ---

// Role identifies which dashboard a token was issued for.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleAcademic Role = "academic"
)

// --- Leave types ---

// LeaveType names one of the leave variants stored in its own table.
type LeaveType string

const (
	LeaveAnnual       LeaveType = "annual"
	LeaveAccidental   LeaveType = "accidental"
	LeaveMedical      LeaveType = "medical"
	LeaveUnpaid       LeaveType = "unpaid"
	LeaveCompensation LeaveType = "compensation"
)

var leaveTables = map[LeaveType]string{
	LeaveAnnual:       "Annual_Leave",
	LeaveAccidental:   "Accidental_Leave",
	LeaveMedical:      "Medical_Leave",
	LeaveUnpaid:       "Unpaid_Leave",
	LeaveCompensation: "Compensation_Leave",
}

// Table returns the variant table of the leave type, or "" for an unknown type.
func (t LeaveType) Table() string { return leaveTables[t] }

// --- Deduction types ---

const (
	DeductionMissingHours = "missing_hours"
	DeductionMissingDays  = "missing_days"
	DeductionUnpaid       = "unpaid"
)

// --- FlexInt ---

// FlexInt is an integer request field that accepts a JSON number or a numeric
// string. An empty string or null decodes to zero, which callers treat as missing.
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	s := string(b)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
	}
	v, err := ParseFlexInt(s)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// ParseFlexInt parses a decimal integer, as used for query parameters.
func ParseFlexInt(s string) (FlexInt, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return FlexInt(v), nil
}

// Int64 returns the value for use as a query argument.
func (n FlexInt) Int64() int64 { return int64(n) }

// --- LoginID ---

// LoginID is the login form's employeeId: a numeric id for HR and academic
// staff, the configured username for the admin. Accepts a JSON string or number.
type LoginID string

func (id *LoginID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if bytes.HasPrefix(b, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = LoginID(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*id = LoginID(num.String())
	return nil
}

// --- Date ---

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date serialised as YYYY-MM-DD.
type Date struct {
	time.Time
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp, keeping only the date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return NewDate(t), nil
}

// NewDate truncates t to midnight UTC of its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(d.Format(DateLayout))
}

// Value binds the date as a YYYY-MM-DD string, which every supported driver
// converts to its date type.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	}
	return fmt.Errorf("cannot scan %T into Date", value)
}

// --- ClockTime ---

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// ClockTime is a wall-clock time of day, always held as HH:MM:SS.
// The zero value means no time was given.
type ClockTime string

// ParseClockTime accepts HH:MM or HH:MM:SS. Blank input yields the zero value.
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if !clockPattern.MatchString(s) {
		return "", fmt.Errorf("invalid time %q", s)
	}
	if len(s) == 5 {
		s += ":00"
	}
	return ClockTime(s), nil
}

// IsZero reports whether no time was given.
func (c ClockTime) IsZero() bool { return c == "" }

// Value binds a missing time as NULL.
func (c ClockTime) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}
	return string(c), nil
}

// --- Result rows ---

// Row is one row of a result set whose columns belong to a view or routine.
type Row map[string]interface{}

// NewRow copies a scanned row, turning driver byte slices (decimals, text) into strings.
func NewRow(m map[string]interface{}) Row {
	row := make(Row, len(m))
	for k, v := range m {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
			continue
		}
		row[k] = v
	}
	return row
}

// --- Employees ---

// Employee is the profile returned on login.
type Employee struct {
	ID         int64  `json:"id" db:"employee_id"`
	FirstName  string `json:"firstName" db:"first_name"`
	LastName   string `json:"lastName" db:"last_name"`
	Email      string `json:"email" db:"email"`
	Department string `json:"department" db:"dept_name"`
	Status     string `json:"status" db:"employment_status"`
}

// AdminProfile is the profile of the configured administrator account.
func AdminProfile() Employee {
	return Employee{
		ID:         0,
		FirstName:  "Admin",
		LastName:   "User",
		Email:      "admin@guc.edu.eg",
		Department: "Administration",
		Status:     "active",
	}
}

// --- Payroll ---

// Payroll is a generated payroll record together with its employee.
type Payroll struct {
	PayrollID        int64    `json:"payrollId"`
	EmployeeID       int64    `json:"employeeId"`
	EmployeeName     string   `json:"employeeName"`
	BaseSalary       *float64 `json:"baseSalary"`
	BonusAmount      *float64 `json:"bonusAmount"`
	DeductionsAmount *float64 `json:"deductionsAmount"`
	FinalSalary      *float64 `json:"finalSalary"`
	FromDate         Date     `json:"fromDate"`
	ToDate           Date     `json:"toDate"`
	PaymentDate      Date     `json:"paymentDate"`
	Comments         *string  `json:"comments"`
}

// --- Requests ---

// LoginRequest is the body of every login endpoint.
type LoginRequest struct {
	EmployeeID LoginID `json:"employeeId"`
	Password   string  `json:"password"`
}

// LeaveApprovalRequest asks an HR employee to process a leave.
type LeaveApprovalRequest struct {
	RequestID FlexInt `json:"requestId"`
	HRID      FlexInt `json:"hrId"`
}

// EmployeeRequest carries a single target employee.
type EmployeeRequest struct {
	EmployeeID FlexInt `json:"employeeId"`
}

// PayrollRequest asks for a payroll over [FromDate, ToDate].
type PayrollRequest struct {
	EmployeeID FlexInt `json:"employeeId"`
	FromDate   string  `json:"fromDate"`
	ToDate     string  `json:"toDate"`
}

// AttendanceUpdateRequest records a check-in/check-out pair, or an absence when both are blank.
type AttendanceUpdateRequest struct {
	EmployeeID FlexInt `json:"employeeId"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   string  `json:"checkOut"`
}

// HolidayRequest adds an official holiday.
type HolidayRequest struct {
	HolidayName string `json:"holidayName"`
	FromDate    string `json:"fromDate"`
	ToDate      string `json:"toDate"`
}

// ReplacementRequest makes Emp2 cover for Emp1 over a period.
type ReplacementRequest struct {
	Emp1ID   FlexInt `json:"emp1Id"`
	Emp2ID   FlexInt `json:"emp2Id"`
	FromDate string  `json:"fromDate"`
	ToDate   string  `json:"toDate"`
}

// AnnualLeaveApplication is an academic employee's annual leave request.
type AnnualLeaveApplication struct {
	EmployeeID FlexInt `json:"employeeId"`
	FromDate   string  `json:"fromDate"`
	ToDate     string  `json:"toDate"`
	Reason     string  `json:"reason"`
}

// AccidentalLeaveApplication is an academic employee's accidental leave request.
type AccidentalLeaveApplication struct {
	EmployeeID FlexInt `json:"employeeId"`
	FromDate   string  `json:"fromDate"`
	ToDate     string  `json:"toDate"`
}

// UpperboardAnnualApproval is a Dean/Vice-Dean/President decision on an annual leave.
type UpperboardAnnualApproval struct {
	RequestID     FlexInt `json:"requestId"`
	UpperboardID  FlexInt `json:"upperboardId"`
	ReplacementID FlexInt `json:"replacementId"`
}

// UpperboardUnpaidApproval is a Dean/Vice-Dean/President decision on an unpaid leave.
type UpperboardUnpaidApproval struct {
	RequestID    FlexInt `json:"requestId"`
	UpperboardID FlexInt `json:"upperboardId"`
}

// DeanEvaluationRequest is a dean's semester rating of an employee.
type DeanEvaluationRequest struct {
	DeanID     FlexInt `json:"deanId"`
	EmployeeID FlexInt `json:"employeeId"`
	Rating     FlexInt `json:"rating"`
	Comment    string  `json:"comment"`
	Semester   string  `json:"semester"`
}

// PendingLeave is a leave waiting on an approver's decision.
type PendingLeave struct {
	RequestID    int64     `json:"requestId" db:"request_id"`
	EmployeeID   int64     `json:"employeeId" db:"employee_id"`
	EmployeeName string    `json:"employeeName" db:"employee_name"`
	LeaveType    LeaveType `json:"leaveType" db:"leave_type"`
	StartDate    Date      `json:"startDate" db:"start_date"`
	EndDate      Date      `json:"endDate" db:"end_date"`
	NumDays      int       `json:"numDays" db:"num_days"`
	Status       string    `json:"status" db:"status"`
}
