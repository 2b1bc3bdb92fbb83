package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"university-hr/internal/models"
)

// EmployeeRepositoryInterface defines the employee lookups and staffing routines.
type EmployeeRepositoryInterface interface {
	ValidateLogin(ctx context.Context, role models.Role, employeeID int64, password string) (bool, error)
	FindForRole(ctx context.Context, role models.Role, employeeID int64) (*models.Employee, error)
	Exists(ctx context.Context, employeeID int64) (bool, error)
	HoldsAnyRole(ctx context.Context, employeeID int64, roles ...string) (bool, error)
	UpdateEmploymentStatus(ctx context.Context, employeeID int64) error
	Replace(ctx context.Context, absentID, replacementID int64, from, to models.Date) error
}

// EmployeeRepository implements EmployeeRepositoryInterface.
type EmployeeRepository struct {
	store *Store
}

// NewEmployeeRepository creates an EmployeeRepository.
func NewEmployeeRepository(store *Store) *EmployeeRepository {
	return &EmployeeRepository{store: store}
}

var loginValidators = map[models.Role]string{
	models.RoleHR:       "HRLoginValidation",
	models.RoleAcademic: "EmployeeLoginValidation",
}

// ValidateLogin asks the database whether the password matches for the role's login function.
func (r *EmployeeRepository) ValidateLogin(ctx context.Context, role models.Role, employeeID int64, password string) (bool, error) {
	fn, ok := loginValidators[role]
	if !ok {
		return false, fmt.Errorf("no login validation for role %q", role)
	}

	var valid sql.NullBool
	found, err := r.store.get(ctx, fn, &valid, r.store.dialect.ScalarFunction(fn, 2, "isValid"), employeeID, password)
	if err != nil || !found {
		return false, err
	}
	return valid.Valid && valid.Bool, nil
}

// FindForRole loads the profile of an HR employee (role hr) or any non-HR
// employee (role academic). It returns nil, nil when no such employee exists.
func (r *EmployeeRepository) FindForRole(ctx context.Context, role models.Role, employeeID int64) (*models.Employee, error) {
	deptFilter := "dept_name = 'HR'"
	if role != models.RoleHR {
		deptFilter = "dept_name <> 'HR'"
	}
	query := `
		SELECT
			employee_id,
			COALESCE(first_name, '') AS first_name,
			COALESCE(last_name, '') AS last_name,
			COALESCE(email, '') AS email,
			COALESCE(dept_name, '') AS dept_name,
			COALESCE(employment_status, '') AS employment_status
		FROM Employee
		WHERE employee_id = ? AND ` + deptFilter

	employee := &models.Employee{}
	found, err := r.store.get(ctx, "Employee.find", employee, query, employeeID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return employee, nil
}

// Exists reports whether the employee id is on record.
func (r *EmployeeRepository) Exists(ctx context.Context, employeeID int64) (bool, error) {
	return r.store.exists(ctx, "Employee.exists", "SELECT 1 FROM Employee WHERE employee_ID = ?", employeeID)
}

// HoldsAnyRole reports whether the employee is assigned one of roles in Employee_Role.
func (r *EmployeeRepository) HoldsAnyRole(ctx context.Context, employeeID int64, roles ...string) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}
	args := make([]interface{}, 0, len(roles)+1)
	args = append(args, employeeID)
	for _, role := range roles {
		args = append(args, role)
	}
	query := "SELECT 1 FROM Employee_Role WHERE emp_ID = ? AND role_name IN (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(roles)), ", ") + ")"
	return r.store.exists(ctx, "Employee_Role.exists", query, args...)
}

// UpdateEmploymentStatus recomputes the employee's status from their current leaves.
func (r *EmployeeRepository) UpdateEmploymentStatus(ctx context.Context, employeeID int64) error {
	return r.store.procedure(ctx, "Update_Employment_Status", employeeID)
}

// Replace assigns replacementID to cover absentID's duties over [from, to].
func (r *EmployeeRepository) Replace(ctx context.Context, absentID, replacementID int64, from, to models.Date) error {
	return r.store.procedure(ctx, "Replace_employee", absentID, replacementID, from, to)
}
