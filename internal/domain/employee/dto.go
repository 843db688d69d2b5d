package employee

// EmployeeResponse never carries the password hash.
type EmployeeResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	BranchID  string `json:"branchId"`
	CreatedAt string `json:"createdAt"`
}
