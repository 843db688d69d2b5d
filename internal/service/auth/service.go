package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/password"
)

type AuthServiceImpl struct {
	branch.BranchRepository
	employee.EmployeeRepository
	jwt.Service
}

func NewAuthService(branchRepository branch.BranchRepository, employeeRepository employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		BranchRepository:   branchRepository,
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
	}
}

// LoginEmployee implements auth.AuthService.
func (a *AuthServiceImpl) LoginEmployee(ctx context.Context, req auth.EmployeeLoginRequest) (auth.TokenResponse, error) {
	email := strings.TrimSpace(req.Email)

	emp, err := a.EmployeeRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.Debug("Employee login rejected", "reason", "unknown email")
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	if err := password.Compare(emp.PasswordHash, req.Password); err != nil {
		slog.Debug("Employee login rejected", "reason", "password mismatch", "employee_id", emp.ID)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, _, err := a.Service.GenerateEmployeeToken(emp.ID, emp.Email, emp.BranchID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate employee token: %w", err)
	}

	return auth.TokenResponse{Token: token}, nil
}

// LoginAdmin implements auth.AuthService.
func (a *AuthServiceImpl) LoginAdmin(ctx context.Context, req auth.AdminLoginRequest) (auth.AdminTokenResponse, error) {
	name := branch.NormalizeName(req.Name)

	b, err := a.BranchRepository.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, branch.ErrBranchNotFound) {
			slog.Debug("Admin login rejected", "reason", "unknown branch")
			return auth.AdminTokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.AdminTokenResponse{}, fmt.Errorf("failed to get branch by name: %w", err)
	}

	if err := password.Compare(b.PasswordHash, req.Password); err != nil {
		slog.Debug("Admin login rejected", "reason", "password mismatch", "branch_id", b.ID)
		return auth.AdminTokenResponse{}, auth.ErrInvalidCredentials
	}

	token, _, err := a.Service.GenerateAdminToken(b.ID, b.Name)
	if err != nil {
		return auth.AdminTokenResponse{}, fmt.Errorf("failed to generate admin token: %w", err)
	}

	return auth.AdminTokenResponse{
		Token:      token,
		Role:       auth.RoleAdmin,
		BranchName: b.Name,
	}, nil
}
