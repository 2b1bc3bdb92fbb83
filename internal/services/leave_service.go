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

// LeaveServiceInterface defines leave approvals and applications.
type LeaveServiceInterface interface {
	ApproveByHR(ctx context.Context, kind HRApproval, req models.LeaveApprovalRequest) (string, error)
	PendingForHR(ctx context.Context, hrID int64) ([]models.PendingLeave, error)
	ApplyAnnual(ctx context.Context, req models.AnnualLeaveApplication) (string, error)
	ApplyAccidental(ctx context.Context, req models.AccidentalLeaveApplication) (string, error)
	CurrentMonthStatus(ctx context.Context, employeeID int64) ([]models.Row, error)
	UpperboardApproveAnnual(ctx context.Context, req models.UpperboardAnnualApproval) (string, error)
	UpperboardApproveUnpaid(ctx context.Context, req models.UpperboardUnpaidApproval) (string, error)
}

// HRApproval selects which family of leaves an HR decision applies to.
type HRApproval int

const (
	ApprovalAnnualAccidental HRApproval = iota
	ApprovalUnpaid
	ApprovalCompensation
)

type hrApprovalRule struct {
	types    []models.LeaveType
	label    string
	notFound string
	done     string
}

var hrApprovals = map[HRApproval]hrApprovalRule{
	ApprovalAnnualAccidental: {
		types:    []models.LeaveType{models.LeaveAnnual, models.LeaveAccidental},
		label:    "annual/accidental",
		notFound: "Request ID not found in annual or accidental leaves",
		done:     "Annual/Accidental leave processed successfully",
	},
	ApprovalUnpaid: {
		types:    []models.LeaveType{models.LeaveUnpaid},
		label:    "unpaid",
		notFound: "Request ID not found in unpaid leaves",
		done:     "Unpaid leave processed successfully",
	},
	ApprovalCompensation: {
		types:    []models.LeaveType{models.LeaveCompensation},
		label:    "compensation",
		notFound: "Request ID not found in compensation leaves",
		done:     "Compensation leave processed successfully",
	},
}

const errNotAssigned = "This leave request is not assigned to you"

// LeaveService implements LeaveServiceInterface.
type LeaveService struct {
	leaves repositories.LeaveRepositoryInterface
	now    func() time.Time
}

// NewLeaveService creates a LeaveService.
func NewLeaveService(leaves repositories.LeaveRepositoryInterface) *LeaveService {
	return &LeaveService{leaves: leaves, now: time.Now}
}

// checkAssigned verifies the leave exists among types and that approverID holds its approval row.
func (s *LeaveService) checkAssigned(ctx context.Context, requestID, approverID int64, notFound string, types ...models.LeaveType) error {
	found, err := s.leaves.Exists(ctx, requestID, types...)
	if err != nil {
		return fmt.Errorf("check leave %d: %w", requestID, err)
	}
	if !found {
		return notFoundError("%s", notFound)
	}
	assigned, err := s.leaves.IsAssignedTo(ctx, requestID, approverID)
	if err != nil {
		return fmt.Errorf("check assignment of leave %d: %w", requestID, err)
	}
	if !assigned {
		return newError(ErrForbidden, errNotAssigned)
	}
	return nil
}

// ApproveByHR runs the HR approval routine for the leave family after checking
// the request exists and is assigned to the HR employee.
func (s *LeaveService) ApproveByHR(ctx context.Context, kind HRApproval, req models.LeaveApprovalRequest) (string, error) {
	rule, ok := hrApprovals[kind]
	if !ok {
		return "", fmt.Errorf("unknown approval kind %d", kind)
	}
	if req.RequestID == 0 || req.HRID == 0 {
		return "", validationError("Missing required fields")
	}
	requestID, hrID := req.RequestID.Int64(), req.HRID.Int64()

	if err := s.checkAssigned(ctx, requestID, hrID, rule.notFound, rule.types...); err != nil {
		return "", err
	}

	var err error
	switch kind {
	case ApprovalAnnualAccidental:
		err = s.leaves.ApproveAnnualOrAccidental(ctx, requestID, hrID)
	case ApprovalUnpaid:
		err = s.leaves.ApproveUnpaid(ctx, requestID, hrID)
	case ApprovalCompensation:
		err = s.leaves.ApproveCompensation(ctx, requestID, hrID)
	}
	if err != nil {
		return "", fmt.Errorf("process %s leave %d: %w", rule.label, requestID, err)
	}

	logrus.WithFields(logrus.Fields{"request_id": requestID, "hr_id": hrID, "kind": rule.label}).Info("leave processed by HR")
	return rule.done, nil
}

// PendingForHR lists leaves awaiting the HR employee's decision.
func (s *LeaveService) PendingForHR(ctx context.Context, hrID int64) ([]models.PendingLeave, error) {
	if hrID == 0 {
		return nil, validationError("HR ID is required")
	}
	leaves, err := s.leaves.PendingForApprover(ctx, hrID)
	if err != nil {
		return nil, fmt.Errorf("list pending leaves: %w", err)
	}
	return leaves, nil
}

// ApplyAnnual files a pending annual leave for an academic employee.
func (s *LeaveService) ApplyAnnual(ctx context.Context, req models.AnnualLeaveApplication) (string, error) {
	if req.EmployeeID == 0 || req.FromDate == "" || req.ToDate == "" || strings.TrimSpace(req.Reason) == "" {
		return "", validationError("All fields are required")
	}
	from, to, err := parsePeriod(req.FromDate, req.ToDate, "From date must be before to date")
	if err != nil {
		return "", err
	}
	if err := s.leaves.ApplyAnnual(ctx, req.EmployeeID.Int64(), from, to, req.Reason); err != nil {
		return "", fmt.Errorf("apply annual leave: %w", err)
	}
	return "Annual leave application submitted successfully", nil
}

// ApplyAccidental files an accidental leave for an academic employee.
func (s *LeaveService) ApplyAccidental(ctx context.Context, req models.AccidentalLeaveApplication) (string, error) {
	if req.EmployeeID == 0 || req.FromDate == "" || req.ToDate == "" {
		return "", validationError("All fields are required")
	}
	from, to, err := parsePeriod(req.FromDate, req.ToDate, "From date must be before to date")
	if err != nil {
		return "", err
	}
	if err := s.leaves.SubmitAccidental(ctx, req.EmployeeID.Int64(), from, to); err != nil {
		return "", fmt.Errorf("apply accidental leave: %w", err)
	}
	return "Accidental leave application submitted successfully", nil
}

// CurrentMonthStatus lists the employee's annual and accidental leaves starting this month.
func (s *LeaveService) CurrentMonthStatus(ctx context.Context, employeeID int64) ([]models.Row, error) {
	if employeeID == 0 {
		return nil, validationError("Employee ID is required")
	}
	from, until := monthBounds(s.now())
	rows, err := s.leaves.StartingBetween(ctx, employeeID, from, until)
	if err != nil {
		return nil, fmt.Errorf("list leave statuses: %w", err)
	}
	return rows, nil
}

// UpperboardApproveAnnual records an upperboard decision on an annual leave.
func (s *LeaveService) UpperboardApproveAnnual(ctx context.Context, req models.UpperboardAnnualApproval) (string, error) {
	if req.RequestID == 0 || req.UpperboardID == 0 || req.ReplacementID == 0 {
		return "", validationError("All fields are required")
	}
	requestID, upperboardID := req.RequestID.Int64(), req.UpperboardID.Int64()
	if err := s.checkAssigned(ctx, requestID, upperboardID, "Request ID not found in annual leaves", models.LeaveAnnual); err != nil {
		return "", err
	}
	if err := s.leaves.UpperboardApproveAnnual(ctx, requestID, upperboardID, req.ReplacementID.Int64()); err != nil {
		return "", fmt.Errorf("upperboard annual approval %d: %w", requestID, err)
	}
	return "Annual leave processed successfully", nil
}

// UpperboardApproveUnpaid records an upperboard decision on an unpaid leave.
func (s *LeaveService) UpperboardApproveUnpaid(ctx context.Context, req models.UpperboardUnpaidApproval) (string, error) {
	if req.RequestID == 0 || req.UpperboardID == 0 {
		return "", validationError("Request ID is required")
	}
	requestID, upperboardID := req.RequestID.Int64(), req.UpperboardID.Int64()
	if err := s.checkAssigned(ctx, requestID, upperboardID, "Request ID not found in unpaid leaves", models.LeaveUnpaid); err != nil {
		return "", err
	}
	if err := s.leaves.UpperboardApproveUnpaid(ctx, requestID, upperboardID); err != nil {
		return "", fmt.Errorf("upperboard unpaid approval %d: %w", requestID, err)
	}
	return "Unpaid leave processed successfully", nil
}
