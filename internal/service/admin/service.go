package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/admin"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/password"
)

type AdminServiceImpl struct {
	branch.BranchRepository
	employee.EmployeeRepository
}

func NewAdminService(branchRepository branch.BranchRepository, employeeRepository employee.EmployeeRepository) admin.AdminService {
	return &AdminServiceImpl{
		BranchRepository:   branchRepository,
		EmployeeRepository: employeeRepository,
	}
}

// RegisterBranch implements admin.AdminService.
func (s *AdminServiceImpl) RegisterBranch(ctx context.Context, req admin.RegisterBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	name := branch.NormalizeName(req.BranchName)

	_, err := s.BranchRepository.GetByName(ctx, name)
	if err == nil {
		return branch.BranchResponse{}, branch.ErrDuplicateBranch
	}
	if !errors.Is(err, branch.ErrBranchNotFound) {
		return branch.BranchResponse{}, fmt.Errorf("failed to check branch name: %w", err)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return branch.BranchResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	// A concurrent registration of the same name still fails on the unique name.
	created, err := s.BranchRepository.Create(ctx, branch.Branch{Name: name, PasswordHash: hash})
	if err != nil {
		return branch.BranchResponse{}, err
	}

	slog.Info("Branch registered", "branch_id", created.ID, "branch_name", created.Name)
	return branch.BranchResponse{
		ID:        created.ID,
		Name:      created.Name,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
	}, nil
}

// CreateEmployee implements admin.AdminService.
func (s *AdminServiceImpl) CreateEmployee(ctx context.Context, req admin.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	b, err := s.BranchRepository.GetByName(ctx, branch.NormalizeName(req.Branch))
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		Email:        req.Email,
		PasswordHash: hash,
		BranchID:     b.ID,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "branch_id", b.ID)
	return mapEmployeeToResponse(created), nil
}

// ListEmployees implements admin.AdminService.
func (s *AdminServiceImpl) ListEmployees(ctx context.Context, branchName string) ([]employee.EmployeeResponse, error) {
	b, err := s.BranchRepository.GetByName(ctx, branch.NormalizeName(branchName))
	if err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.ListByBranch(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, mapEmployeeToResponse(e))
	}
	return responses, nil
}

func mapEmployeeToResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:        e.ID,
		Email:     e.Email,
		BranchID:  e.BranchID,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}
