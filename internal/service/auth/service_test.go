package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/password"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

type fixture struct {
	svc      auth.AuthService
	jwt      *jwt.JWTService
	branch   branch.Branch
	employee employee.Employee
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	hash, err := password.Hash("pw")
	require.NoError(t, err)

	b, err := store.Branches().Create(ctx, branch.Branch{Name: "mohali", PasswordHash: hash})
	require.NoError(t, err)
	e, err := store.Employees().Create(ctx, employee.Employee{Email: "a@x.com", PasswordHash: hash, BranchID: b.ID})
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(testSecret, "24h")
	return fixture{
		svc:      NewAuthService(store.Branches(), store.Employees(), jwtService),
		jwt:      jwtService,
		branch:   b,
		employee: e,
	}
}

func decodeClaims(t *testing.T, svc *jwt.JWTService, token string) jwt.Claims {
	t.Helper()
	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	m, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	claims, err := jwt.ClaimsFromMap(m)
	require.NoError(t, err)
	return claims
}

func TestLoginEmployee_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.LoginEmployee(context.Background(), auth.EmployeeLoginRequest{Email: " a@x.com ", Password: "pw"})
	require.NoError(t, err)

	claims := decodeClaims(t, f.jwt, resp.Token)
	assert.Equal(t, f.employee.ID, claims.SubjectID)
	assert.Equal(t, auth.RoleEmployee, claims.Role)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, f.branch.ID, claims.BranchID)
}

func TestLoginEmployee_FailuresLookIdentical(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, unknown := f.svc.LoginEmployee(ctx, auth.EmployeeLoginRequest{Email: "nobody@x.com", Password: "pw"})
	_, wrong := f.svc.LoginEmployee(ctx, auth.EmployeeLoginRequest{Email: "a@x.com", Password: "nope"})
	_, caseChanged := f.svc.LoginEmployee(ctx, auth.EmployeeLoginRequest{Email: "A@x.com", Password: "pw"})

	assert.ErrorIs(t, unknown, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, wrong, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, caseChanged, auth.ErrInvalidCredentials)
	assert.Equal(t, unknown.Error(), wrong.Error())
}

func TestLoginAdmin_NormalizesBranchName(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.LoginAdmin(context.Background(), auth.AdminLoginRequest{Name: "  Mohali ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, resp.Role)
	assert.Equal(t, "mohali", resp.BranchName)

	claims := decodeClaims(t, f.jwt, resp.Token)
	assert.Equal(t, f.branch.ID, claims.SubjectID)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
	assert.Equal(t, "mohali", claims.BranchName)
}

func TestLoginAdmin_InvalidCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.LoginAdmin(ctx, auth.AdminLoginRequest{Name: "delhi", Password: "pw"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.LoginAdmin(ctx, auth.AdminLoginRequest{Name: "mohali", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
