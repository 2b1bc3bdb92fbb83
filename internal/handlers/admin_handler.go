package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"university-hr/internal/models"
)

func (h *AppHandler) listing(key string, load func(context.Context) ([]models.Row, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := load(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, key: rowsOrEmpty(rows)})
	}
}

func (h *AppHandler) countedListing(message string, load func(context.Context) ([]models.Row, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := load(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		rows = rowsOrEmpty(rows)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "count": len(rows), "data": rows})
	}
}

// Employees lists every employee profile.
func (h *AppHandler) Employees(c *gin.Context) {
	h.listing("employees", h.reports.EmployeeProfiles)(c)
}

// Departments lists headcounts per department.
func (h *AppHandler) Departments(c *gin.Context) {
	h.listing("departments", h.reports.DepartmentHeadcounts)(c)
}

// RejectedMedicals lists rejected medical leaves.
func (h *AppHandler) RejectedMedicals(c *gin.Context) {
	h.listing("rejectedRequests", h.reports.RejectedMedicals)(c)
}

// AttendanceYesterday lists yesterday's attendance records.
func (h *AppHandler) AttendanceYesterday(c *gin.Context) {
	h.countedListing("Fetched yesterday's attendance records successfully", h.reports.YesterdayAttendance)(c)
}

// PerformanceWinter lists winter-semester performance records.
func (h *AppHandler) PerformanceWinter(c *gin.Context) {
	h.countedListing("Fetched Winter performance records successfully", h.reports.WinterPerformance)(c)
}

// RemoveResignedDeductions deletes deductions of resigned employees.
func (h *AppHandler) RemoveResignedDeductions(c *gin.Context) {
	msg, err := h.deductions.RemoveResigned(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, msg)
}

// UpdateAttendance records a check-in/check-out pair or an absence.
func (h *AppHandler) UpdateAttendance(c *gin.Context) {
	var req models.AttendanceUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.attendance.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, msg)
}

// AddHoliday registers an official holiday.
func (h *AppHandler) AddHoliday(c *gin.Context) {
	var req models.HolidayRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.attendance.AddHoliday(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, msg)
}

// InitiateAttendance creates today's attendance rows.
func (h *AppHandler) InitiateAttendance(c *gin.Context) {
	msg, err := h.attendance.Initiate(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, msg)
}

// RemoveHolidayAttendance deletes attendance rows that fall on holidays.
func (h *AppHandler) RemoveHolidayAttendance(c *gin.Context) {
	msg, err := h.attendance.RemoveHolidayAttendance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, msg)
}

// targetEmployee reads employeeId from the body, or from the query string when
// a DELETE client sends no body.
func targetEmployee(c *gin.Context) (int64, bool) {
	var req models.EmployeeRequest
	if !bindJSON(c, &req) {
		return 0, false
	}
	if req.EmployeeID != 0 {
		return req.EmployeeID.Int64(), true
	}
	return queryID(c, "employeeId")
}

func (h *AppHandler) employeeAction(action func(context.Context, int64) (string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID, ok := targetEmployee(c)
		if !ok {
			return
		}
		msg, err := action(c.Request.Context(), employeeID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, msg)
	}
}

// RemoveDayOff deletes the employee's unattended day-off rows this month.
func (h *AppHandler) RemoveDayOff(c *gin.Context) {
	h.employeeAction(h.attendance.RemoveUnattendedDayOffs)(c)
}

// RemoveApprovedLeaves deletes the employee's attendance rows covered by approved leaves.
func (h *AppHandler) RemoveApprovedLeaves(c *gin.Context) {
	h.employeeAction(h.attendance.RemoveApprovedLeaves)(c)
}

// UpdateEmploymentStatus refreshes an employee's employment status.
func (h *AppHandler) UpdateEmploymentStatus(c *gin.Context) {
	h.employeeAction(h.employees.UpdateEmploymentStatus)(c)
}

// ReplaceEmployee makes one employee cover for another over a period.
func (h *AppHandler) ReplaceEmployee(c *gin.Context) {
	var req models.ReplacementRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.employees.Replace(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, msg)
}
