package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"university-hr/internal/metrics"
	"university-hr/internal/middleware"
	"university-hr/internal/models"
	"university-hr/internal/services"
)

// RegisterRoutes mounts the public endpoints and the three role-guarded groups.
func (h *AppHandler) RegisterRoutes(router *gin.Engine, tokens *services.TokenManager, m *metrics.Metrics) {
	// Public
	router.GET("/", h.Welcome)
	router.GET("/test-db", h.TestDB)
	router.GET("/healthz", h.Health)
	router.GET("/api/stats/counts", h.Counts)
	if m != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	login := router.Group("/api/login")
	{
		login.POST("/admin", h.Login(models.RoleAdmin))
		login.POST("/hr", h.Login(models.RoleHR))
		login.POST("/academic", h.Login(models.RoleAcademic))
	}

	auth := middleware.JWTAuth(tokens)

	hr := router.Group("/api/hr")
	hr.Use(auth, middleware.RequireRole(models.RoleHR))
	{
		hr.POST("/leaves/annual-accidental/approve", h.ApproveLeave(services.ApprovalAnnualAccidental))
		hr.POST("/leaves/unpaid/approve", h.ApproveLeave(services.ApprovalUnpaid))
		hr.POST("/leaves/compensation/approve", h.ApproveLeave(services.ApprovalCompensation))
		hr.GET("/leaves/pending", h.PendingLeaves)

		hr.POST("/deductions/missing-hours", h.ApplyDeduction(models.DeductionMissingHours))
		hr.POST("/deductions/missing-days", h.ApplyDeduction(models.DeductionMissingDays))
		hr.POST("/deductions/unpaid", h.ApplyDeduction(models.DeductionUnpaid))

		hr.POST("/payroll/generate", h.GeneratePayroll)
	}

	admin := router.Group("/api/admin")
	admin.Use(auth, middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/employees", h.Employees)
		admin.GET("/departments", h.Departments)
		admin.GET("/rejected-medicals", h.RejectedMedicals)
		admin.GET("/attendance-yesterday", h.AttendanceYesterday)
		admin.GET("/performance-winter", h.PerformanceWinter)

		admin.DELETE("/remove-resigned-deductions", h.RemoveResignedDeductions)
		admin.POST("/remove-resigned-deductions", h.RemoveResignedDeductions)
		admin.POST("/update-attendance", h.UpdateAttendance)
		admin.POST("/add-holiday", h.AddHoliday)
		admin.POST("/initiate-attendance", h.InitiateAttendance)
		admin.DELETE("/remove-holiday-attendance", h.RemoveHolidayAttendance)
		admin.DELETE("/remove-dayoff", h.RemoveDayOff)
		admin.DELETE("/remove-approved-leaves", h.RemoveApprovedLeaves)
		admin.POST("/replace-employee", h.ReplaceEmployee)
		admin.PUT("/update-employment-status", h.UpdateEmploymentStatus)
	}

	academic := router.Group("/api/academic")
	academic.Use(auth, middleware.RequireRole(models.RoleAcademic))
	{
		academic.GET("/performance", h.MyPerformance)
		academic.GET("/attendance/current-month", h.MyAttendance)
		academic.GET("/payroll/last-month", h.LastMonthPayroll)
		academic.GET("/deductions/attendance", h.AttendanceDeductions)
		academic.GET("/leaves/status/current-month", h.LeaveStatus)
		academic.POST("/leaves/annual/apply", h.ApplyAnnualLeave)
		academic.POST("/leaves/accidental/apply", h.ApplyAccidentalLeave)
		academic.PUT("/leaves/annual/upperboard-approve", h.UpperboardApproveAnnual)
		academic.PUT("/leaves/unpaid/upperboard-approve", h.UpperboardApproveUnpaid)
		academic.POST("/evaluation/dean", h.DeanEvaluation)
	}
}
