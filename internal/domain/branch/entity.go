package branch

import (
	"strings"
	"time"
)

// Branch is an organizational unit that signs in as the admin of its employees.
type Branch struct {
	ID           string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeName trims and lowercases a branch name. Branch names are always stored and looked up normalized.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
