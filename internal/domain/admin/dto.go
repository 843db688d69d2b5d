package admin

import (
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type RegisterBranchRequest struct {
	BranchName string `json:"branchName" validate:"notblank,max=255"`
	Password   string `json:"password" validate:"notblank,max=255"`
}

func (r *RegisterBranchRequest) Validate() error {
	return validator.Struct(r)
}

type CreateEmployeeRequest struct {
	Email    string `json:"email" validate:"notblank,email,max=254"`
	Password string `json:"password" validate:"notblank,max=255"`
	Branch   string `json:"branch" validate:"notblank,max=255"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validator.Struct(r)
}
