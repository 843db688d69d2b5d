package auth

import (
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type EmployeeLoginRequest struct {
	Email    string `json:"email" validate:"notblank,max=254"`
	Password string `json:"password" validate:"notblank,max=255"`
}

func (r *EmployeeLoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validator.Struct(r)
}

type AdminLoginRequest struct {
	Name     string `json:"name" validate:"notblank,max=255"`
	Password string `json:"password" validate:"notblank,max=255"`
}

func (r *AdminLoginRequest) Validate() error {
	return validator.Struct(r)
}

type TokenResponse struct {
	Token string `json:"token"`
}

type AdminTokenResponse struct {
	Token      string `json:"token"`
	Role       Role   `json:"role"`
	BranchName string `json:"branchName"`
}
