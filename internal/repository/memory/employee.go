package memory

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.branches[e.BranchID]; !ok {
		return employee.Employee{}, branch.ErrBranchNotFound
	}
	if _, exists := s.employeeByMail[e.Email]; exists {
		return employee.Employee{}, employee.ErrDuplicateEmail
	}

	now := s.now()
	e.ID = newID()
	e.CreatedAt = now
	e.UpdatedAt = now
	s.employees[e.ID] = e
	s.employeeByMail[e.Email] = e.ID
	s.employeeOrder = append(s.employeeOrder, e.ID)
	return e, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.employeeByMail[email]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return s.employees[id], nil
}

func (r *employeeRepository) ListByBranch(ctx context.Context, branchID string) ([]employee.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]employee.Employee, 0)
	for _, id := range s.employeeOrder {
		if e := s.employees[id]; e.BranchID == branchID {
			employees = append(employees, e)
		}
	}
	return employees, nil
}
