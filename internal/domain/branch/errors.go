package branch

import "errors"

var (
	ErrBranchNotFound  = errors.New("branch not found")
	ErrDuplicateBranch = errors.New("branch already exists")
)
