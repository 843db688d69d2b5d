package admin

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

// AdminService provisions branches and employees. Attendance corrections live on the attendance service.
type AdminService interface {
	RegisterBranch(ctx context.Context, req RegisterBranchRequest) (branch.BranchResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (employee.EmployeeResponse, error)
	ListEmployees(ctx context.Context, branchName string) ([]employee.EmployeeResponse, error)
}
