package employee

import "context"

type EmployeeRepository interface {
	// Create stores a new employee. A taken email yields ErrDuplicateEmail.
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	ListByBranch(ctx context.Context, branchID string) ([]Employee, error)
}
