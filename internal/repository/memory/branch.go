package memory

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/branch"
)

type branchRepository struct {
	store *Store
}

func (r *branchRepository) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.branchByName[b.Name]; exists {
		return branch.Branch{}, branch.ErrDuplicateBranch
	}

	now := s.now()
	b.ID = newID()
	b.CreatedAt = now
	b.UpdatedAt = now
	s.branches[b.ID] = b
	s.branchByName[b.Name] = b.ID
	return b, nil
}

func (r *branchRepository) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.branches[id]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

func (r *branchRepository) GetByName(ctx context.Context, name string) (branch.Branch, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.branchByName[name]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return s.branches[id], nil
}

func (r *branchRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.branches[id]
	if !ok {
		return branch.ErrBranchNotFound
	}
	b.PasswordHash = passwordHash
	b.UpdatedAt = s.now()
	s.branches[id] = b
	return nil
}
