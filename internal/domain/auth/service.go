package auth

import (
	"context"
)

type AuthService interface {
	LoginEmployee(ctx context.Context, req EmployeeLoginRequest) (TokenResponse, error)
	LoginAdmin(ctx context.Context, req AdminLoginRequest) (AdminTokenResponse, error)
}
