package branch

import "context"

type BranchRepository interface {
	// Create stores a branch whose name is already normalized. A taken name yields ErrDuplicateBranch.
	Create(ctx context.Context, newBranch Branch) (Branch, error)
	GetByID(ctx context.Context, id string) (Branch, error)
	// GetByName looks up a normalized name and returns ErrBranchNotFound when absent.
	GetByName(ctx context.Context, name string) (Branch, error)
	// UpdatePassword rotates the stored hash. No endpoint exposes it yet.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
