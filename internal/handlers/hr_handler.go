package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"university-hr/internal/models"
	"university-hr/internal/services"
)

// ApproveLeave returns the HR approval handler for one leave family.
func (h *AppHandler) ApproveLeave(kind services.HRApproval) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LeaveApprovalRequest
		if !bindJSON(c, &req) || !authorizeActor(c, req.HRID) {
			return
		}
		msg, err := h.leaves.ApproveByHR(c.Request.Context(), kind, req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, msg)
	}
}

// PendingLeaves lists the leaves waiting on the HR employee.
func (h *AppHandler) PendingLeaves(c *gin.Context) {
	hrID, ok := queryID(c, "hrId")
	if !ok || !authorizeActor(c, models.FlexInt(hrID)) {
		return
	}
	leaves, err := h.leaves.PendingForHR(c.Request.Context(), hrID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(leaves), "leaves": leaves})
}

// ApplyDeduction returns the handler that accrues one deduction type.
func (h *AppHandler) ApplyDeduction(deductionType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.EmployeeRequest
		if !bindJSON(c, &req) {
			return
		}
		msg, err := h.deductions.Apply(c.Request.Context(), deductionType, req.EmployeeID.Int64())
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, msg)
	}
}

// GeneratePayroll adds a payroll for the requested period.
func (h *AppHandler) GeneratePayroll(c *gin.Context) {
	var req models.PayrollRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.payroll.Generate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	body := gin.H{"success": true, "message": res.Message}
	if res.Payroll != nil {
		body["payroll"] = res.Payroll
	}
	c.JSON(http.StatusOK, body)
}
