package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type branchRepositoryImpl struct {
	db *database.DB
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepositoryImpl{db: db}
}

// Create implements branch.BranchRepository.
func (r *branchRepositoryImpl) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO branches (name, password_hash, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, name, password_hash, created_at, updated_at
	`

	var result branch.Branch
	err := q.QueryRow(ctx, query, b.Name, b.PasswordHash).Scan(
		&result.ID,
		&result.Name,
		&result.PasswordHash,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "uq_branches_name") {
			return branch.Branch{}, branch.ErrDuplicateBranch
		}
		return branch.Branch{}, fmt.Errorf("failed to create branch: %w", err)
	}

	return result, nil
}

// GetByID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	return r.getOne(ctx, "id", id)
}

// GetByName implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByName(ctx context.Context, name string) (branch.Branch, error) {
	return r.getOne(ctx, "name", name)
}

func (r *branchRepositoryImpl) getOne(ctx context.Context, column string, value string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT id, name, password_hash, created_at, updated_at
		FROM branches
		WHERE %s = $1
	`, column)

	var result branch.Branch
	err := q.QueryRow(ctx, query, value).Scan(
		&result.ID,
		&result.Name,
		&result.PasswordHash,
		&result.CreatedAt,
		&result.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch: %w", err)
	}

	return result, nil
}

// UpdatePassword implements branch.BranchRepository.
func (r *branchRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE branches
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update branch password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return branch.ErrBranchNotFound
	}

	return nil
}
