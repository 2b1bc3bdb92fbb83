package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"university-hr/internal/config"
	"university-hr/internal/models"
	"university-hr/internal/repositories"
)

// AuthServiceInterface defines login for the three dashboards.
type AuthServiceInterface interface {
	Login(ctx context.Context, role models.Role, req models.LoginRequest) (*LoginResult, error)
}

// LoginResult is a successful login.
type LoginResult struct {
	Role      models.Role
	User      models.Employee
	Token     string
	ExpiresAt time.Time
}

// AuthService checks credentials and issues tokens.
type AuthService struct {
	employees     repositories.EmployeeRepositoryInterface
	tokens        *TokenManager
	adminUsername string
	adminHash     []byte
}

// NewAuthService creates an AuthService. A plaintext admin password is hashed once here.
func NewAuthService(employees repositories.EmployeeRepositoryInterface, tokens *TokenManager, admin config.AdminConfig) (*AuthService, error) {
	hash := []byte(admin.PasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("admin password_hash is not a bcrypt hash: %w", err)
	}

	return &AuthService{
		employees:     employees,
		tokens:        tokens,
		adminUsername: admin.Username,
		adminHash:     hash,
	}, nil
}

// Login authenticates req for role and returns the profile and a signed token.
func (s *AuthService) Login(ctx context.Context, role models.Role, req models.LoginRequest) (*LoginResult, error) {
	if req.EmployeeID == "" || req.Password == "" {
		return nil, validationError("Employee ID and password are required")
	}
	log := logrus.WithFields(logrus.Fields{"role": role, "employee_id": req.EmployeeID})

	var user models.Employee
	switch role {
	case models.RoleAdmin:
		if string(req.EmployeeID) != s.adminUsername ||
			bcrypt.CompareHashAndPassword(s.adminHash, []byte(req.Password)) != nil {
			log.Info("admin login rejected")
			return nil, newError(ErrUnauthorized, "Invalid credentials")
		}
		user = models.AdminProfile()

	case models.RoleHR, models.RoleAcademic:
		id, err := strconv.ParseInt(string(req.EmployeeID), 10, 64)
		if err != nil {
			log.Info("login rejected: non-numeric employee id")
			return nil, newError(ErrUnauthorized, "Invalid credentials")
		}
		if id == 0 {
			return nil, validationError("Employee ID and password are required")
		}
		valid, err := s.employees.ValidateLogin(ctx, role, id, req.Password)
		if err != nil {
			return nil, fmt.Errorf("validate login: %w", err)
		}
		if !valid {
			log.Info("login rejected: invalid credentials")
			return nil, newError(ErrUnauthorized, "Invalid credentials")
		}
		employee, err := s.employees.FindForRole(ctx, role, id)
		if err != nil {
			return nil, fmt.Errorf("load employee: %w", err)
		}
		if employee == nil {
			log.Info("login rejected: employee not in role")
			return nil, newError(ErrUnauthorized, "User not found")
		}
		user = *employee

	default:
		return nil, fmt.Errorf("unsupported login role %q", role)
	}

	token, expires, err := s.tokens.Issue(user.ID, role)
	if err != nil {
		return nil, err
	}
	log.Info("login successful")
	return &LoginResult{Role: role, User: user, Token: token, ExpiresAt: expires}, nil
}
