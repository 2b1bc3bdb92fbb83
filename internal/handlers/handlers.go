package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"university-hr/internal/middleware"
	"university-hr/internal/models"
	"university-hr/internal/services"
)

// HealthChecker is the part of the store the public endpoints need.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Stats() sql.DBStats
}

// Services bundles the service layer the handlers call into.
type Services struct {
	Auth        services.AuthServiceInterface
	Leaves      services.LeaveServiceInterface
	Deductions  services.DeductionServiceInterface
	Payroll     services.PayrollServiceInterface
	Attendance  services.AttendanceServiceInterface
	Employees   services.EmployeeServiceInterface
	Performance services.PerformanceServiceInterface
	Reports     services.ReportServiceInterface
}

// AppHandler groups the HTTP handlers of the three dashboards and the public endpoints.
type AppHandler struct {
	auth        services.AuthServiceInterface
	leaves      services.LeaveServiceInterface
	deductions  services.DeductionServiceInterface
	payroll     services.PayrollServiceInterface
	attendance  services.AttendanceServiceInterface
	employees   services.EmployeeServiceInterface
	performance services.PerformanceServiceInterface
	reports     services.ReportServiceInterface
	db          HealthChecker
}

// NewAppHandler creates an AppHandler.
func NewAppHandler(svc Services, db HealthChecker) *AppHandler {
	return &AppHandler{
		auth:        svc.Auth,
		leaves:      svc.Leaves,
		deductions:  svc.Deductions,
		payroll:     svc.Payroll,
		attendance:  svc.Attendance,
		employees:   svc.Employees,
		performance: svc.Performance,
		reports:     svc.Reports,
		db:          db,
	}
}

const errForbiddenActor = "You can only perform this action as the logged-in employee"

// statusFor maps service error kinds onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logrus.WithFields(logrus.Fields{
			"route":      c.FullPath(),
			"request_id": c.GetString(middleware.ContextRequestID),
		}).WithError(err).Error("handler failed")
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// bindJSON decodes the body into dest. An empty body leaves dest untouched so
// the service reports the missing fields.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// queryID reads an optional integer query parameter; a blank value is zero.
func queryID(c *gin.Context, name string) (int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	v, err := models.ParseFlexInt(raw)
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Sprintf("%s must be a number", name))
		return 0, false
	}
	return v.Int64(), true
}

// authorizeActor rejects requests whose acting employee id differs from the
// token's. A zero id is left for the service to report as missing.
func authorizeActor(c *gin.Context, id models.FlexInt) bool {
	if id == 0 {
		return true
	}
	actorID, _, ok := middleware.Actor(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Not authenticated")
		return false
	}
	if actorID != id.Int64() {
		fail(c, http.StatusForbidden, errForbiddenActor)
		return false
	}
	return true
}

// rowsOrEmpty keeps empty listings serialised as [] rather than null.
func rowsOrEmpty(rows []models.Row) []models.Row {
	if rows == nil {
		return []models.Row{}
	}
	return rows
}
