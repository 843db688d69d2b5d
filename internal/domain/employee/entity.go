package employee

import "time"

type Employee struct {
	ID           string
	Email        string
	PasswordHash string
	BranchID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
