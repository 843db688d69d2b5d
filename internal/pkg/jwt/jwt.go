package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrMalformedClaims = errors.New("token claims are malformed")

// Claims is the verified identity carried by an access token.
type Claims struct {
	SubjectID  string
	Role       auth.Role
	Email      string // employee tokens only
	BranchID   string // employee tokens only
	BranchName string // admin tokens only
	ExpiresAt  time.Time
}

type Service interface {
	GenerateEmployeeToken(employeeID string, email string, branchID string) (token string, expiresAt int64, err error)
	GenerateAdminToken(branchID string, branchName string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) *JWTService {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateEmployeeToken(employeeID string, email string, branchID string) (token string, expiresAt int64, err error) {
	return j.encode(map[string]interface{}{
		"subject_id": employeeID,
		"role":       string(auth.RoleEmployee),
		"email":      email,
		"branch_id":  branchID,
	})
}

func (j *JWTService) GenerateAdminToken(branchID string, branchName string) (token string, expiresAt int64, err error) {
	return j.encode(map[string]interface{}{
		"subject_id":  branchID,
		"role":        string(auth.RoleAdmin),
		"branch_name": branchName,
	})
}

func (j *JWTService) encode(claims map[string]interface{}) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	issuedAt := j.now()
	expiresAt := issuedAt.Add(expDuration).Unix()

	claims["iat"] = issuedAt.Unix()
	claims["exp"] = expiresAt

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ClaimsFromMap converts the claim map of a verified token into Claims.
func ClaimsFromMap(m map[string]interface{}) (Claims, error) {
	subjectID, _ := m["subject_id"].(string)
	role, _ := m["role"].(string)
	if subjectID == "" || !auth.Role(role).IsValid() {
		return Claims{}, ErrMalformedClaims
	}

	claims := Claims{
		SubjectID: subjectID,
		Role:      auth.Role(role),
	}
	claims.Email, _ = m["email"].(string)
	claims.BranchID, _ = m["branch_id"].(string)
	claims.BranchName, _ = m["branch_name"].(string)

	switch exp := m["exp"].(type) {
	case time.Time:
		claims.ExpiresAt = exp
	case float64:
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return claims, nil
}

type claimsContextKey struct{}

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(Claims)
	return claims, ok
}
