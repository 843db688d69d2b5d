package auth

type Role string

const (
	RoleEmployee Role = "employee" // Checks in and out of their own attendance
	RoleAdmin    Role = "admin"    // Branch account, manages employees and corrections
)

func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleAdmin
}
