package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"university-hr/internal/models"
)

// actorQuery reads employeeId from the query string and checks it against the token.
func actorQuery(c *gin.Context) (int64, bool) {
	employeeID, ok := queryID(c, "employeeId")
	if !ok || !authorizeActor(c, models.FlexInt(employeeID)) {
		return 0, false
	}
	return employeeID, true
}

// MyPerformance returns the employee's performance for a semester.
func (h *AppHandler) MyPerformance(c *gin.Context) {
	employeeID, ok := actorQuery(c)
	if !ok {
		return
	}
	rows, err := h.performance.ForSemester(c.Request.Context(), employeeID, strings.TrimSpace(c.Query("semester")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "performance": rowsOrEmpty(rows)})
}

// MyAttendance returns the employee's attendance this month.
func (h *AppHandler) MyAttendance(c *gin.Context) {
	employeeID, ok := actorQuery(c)
	if !ok {
		return
	}
	rows, err := h.attendance.CurrentMonth(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "attendance": rowsOrEmpty(rows)})
}

// LastMonthPayroll returns the employee's payroll for the previous month.
func (h *AppHandler) LastMonthPayroll(c *gin.Context) {
	employeeID, ok := actorQuery(c)
	if !ok {
		return
	}
	row, err := h.payroll.LastMonth(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payroll": row})
}

// AttendanceDeductions returns the employee's attendance deductions for a month.
func (h *AppHandler) AttendanceDeductions(c *gin.Context) {
	employeeID, ok := actorQuery(c)
	if !ok {
		return
	}
	month, ok := queryID(c, "month")
	if !ok {
		return
	}
	rows, err := h.deductions.AttendanceDeductions(c.Request.Context(), employeeID, int(month))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deductions": rowsOrEmpty(rows)})
}

// ApplyAnnualLeave files an annual leave request.
func (h *AppHandler) ApplyAnnualLeave(c *gin.Context) {
	var req models.AnnualLeaveApplication
	if !bindJSON(c, &req) || !authorizeActor(c, req.EmployeeID) {
		return
	}
	msg, err := h.leaves.ApplyAnnual(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, msg)
}

// ApplyAccidentalLeave files an accidental leave request.
func (h *AppHandler) ApplyAccidentalLeave(c *gin.Context) {
	var req models.AccidentalLeaveApplication
	if !bindJSON(c, &req) || !authorizeActor(c, req.EmployeeID) {
		return
	}
	msg, err := h.leaves.ApplyAccidental(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, msg)
}

// LeaveStatus lists the employee's annual and accidental leaves starting this month.
func (h *AppHandler) LeaveStatus(c *gin.Context) {
	employeeID, ok := actorQuery(c)
	if !ok {
		return
	}
	rows, err := h.leaves.CurrentMonthStatus(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "leaves": rowsOrEmpty(rows)})
}

// UpperboardApproveAnnual records an upperboard decision on an annual leave.
func (h *AppHandler) UpperboardApproveAnnual(c *gin.Context) {
	var req models.UpperboardAnnualApproval
	if !bindJSON(c, &req) || !authorizeActor(c, req.UpperboardID) {
		return
	}
	msg, err := h.leaves.UpperboardApproveAnnual(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, msg)
}

// UpperboardApproveUnpaid records an upperboard decision on an unpaid leave.
func (h *AppHandler) UpperboardApproveUnpaid(c *gin.Context) {
	var req models.UpperboardUnpaidApproval
	if !bindJSON(c, &req) || !authorizeActor(c, req.UpperboardID) {
		return
	}
	msg, err := h.leaves.UpperboardApproveUnpaid(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, msg)
}

// DeanEvaluation records a dean's rating of an employee.
func (h *AppHandler) DeanEvaluation(c *gin.Context) {
	var req models.DeanEvaluationRequest
	if !bindJSON(c, &req) || !authorizeActor(c, req.DeanID) {
		return
	}
	msg, err := h.performance.Evaluate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, msg)
}
