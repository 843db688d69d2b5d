package http

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	adminService "github.com/cmlabs-hris/attendance-backend-go/internal/service/admin"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
	fileService "github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	handler http.Handler
	jwt     *jwt.JWTService
	clock   *clock.FixedClock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	clk := clock.NewFixedClock(time.Date(2024, 3, 11, 9, 0, 0, 0, loc), loc)
	jwtService := jwt.NewJWTService("router-test-secret", "24h")
	store := memory.NewStore()

	uploads := t.TempDir()
	localStorage, err := storage.NewLocalStorage(uploads, "http://localhost:5000/uploads")
	require.NoError(t, err)

	handlers := Handlers{
		Auth:       NewAuthHandler(authService.NewAuthService(store.Branches(), store.Employees(), jwtService)),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(store.Attendances(), clk)),
		Admin:      NewAdminHandler(adminService.NewAdminService(store.Branches(), store.Employees())),
		Photo:      NewPhotoHandler(fileService.NewFileService(localStorage, clk)),
	}

	router := NewRouter(RouterConfig{
		AppName:        "attendance-test",
		Version:        "test",
		Env:            "test",
		LogLevel:       slog.LevelError,
		AllowedOrigins: []string{"http://localhost:5173"},
		Location:       loc,
		UploadsDir:     localStorage.BasePath(),
	}, jwtService, handlers)

	return &testServer{handler: router, jwt: jwtService, clock: clk}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

// provision registers a branch and one employee and returns both tokens.
func (s *testServer) provision(t *testing.T) (adminToken, employeeToken, employeeID string) {
	t.Helper()
	rec, _ := s.do(t, http.MethodPost, "/api/admin/register-branch", "", map[string]string{
		"branchName": "  North Office ", "password": "branch-pass",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := s.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{
		"name": "north office", "password": "branch-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var adminLogin struct {
		Token      string `json:"token"`
		Role       string `json:"role"`
		BranchName string `json:"branchName"`
	}
	decodeData(t, env, &adminLogin)
	assert.Equal(t, "admin", adminLogin.Role)
	assert.Equal(t, "north office", adminLogin.BranchName)

	rec, env = s.do(t, http.MethodPost, "/api/admin/create-employee", adminLogin.Token, map[string]string{
		"email": "asha@example.com", "password": "employee-pass", "branch": "NORTH OFFICE",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &created)

	rec, env = s.do(t, http.MethodPost, "/api/employee/login", "", map[string]string{
		"email": "asha@example.com", "password": "employee-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var employeeLogin struct {
		Token string `json:"token"`
	}
	decodeData(t, env, &employeeLogin)

	return adminLogin.Token, employeeLogin.Token, created.ID
}

func TestRouter_Heartbeat(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AttendanceDay(t *testing.T) {
	s := newTestServer(t)
	adminToken, employeeToken, employeeID := s.provision(t)

	rec, env := s.do(t, http.MethodPost, "/api/employee/checkin", employeeToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, env = s.do(t, http.MethodPost, "/api/employee/breakin", employeeToken, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	rec, env = s.do(t, http.MethodPost, "/api/employee/checkin", employeeToken, map[string]string{"photoUrl": "p1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var record struct {
		ID         string   `json:"id"`
		EmployeeID string   `json:"employeeId"`
		Date       string   `json:"date"`
		CheckIn    *string  `json:"checkIn"`
		TotalHours *float64 `json:"totalHours"`
		Status     string   `json:"status"`
		Remarks    *string  `json:"remarks"`
	}
	decodeData(t, env, &record)
	assert.Equal(t, employeeID, record.EmployeeID)
	assert.Equal(t, "2024-03-11", record.Date)
	assert.Equal(t, "On-time", record.Status)

	rec, env = s.do(t, http.MethodPost, "/api/employee/checkin", employeeToken, map[string]string{"photoUrl": "p2"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	s.clock.Advance(4 * time.Hour)
	rec, _ = s.do(t, http.MethodPost, "/api/employee/breakin", employeeToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	s.clock.Advance(30 * time.Minute)
	rec, _ = s.do(t, http.MethodPost, "/api/employee/breakout", employeeToken, map[string]string{"photoUrl": "b2"})
	assert.Equal(t, http.StatusOK, rec.Code)

	s.clock.Advance(4 * time.Hour)
	rec, env = s.do(t, http.MethodPost, "/api/employee/checkout", employeeToken, map[string]string{"photoUrl": "p3"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, env, &record)
	require.NotNil(t, record.TotalHours)
	assert.InDelta(t, 8.5, *record.TotalHours, 1e-9)

	rec, env = s.do(t, http.MethodPost, "/api/employee/checkout", employeeToken, map[string]string{"photoUrl": "p4"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	rec, env = s.do(t, http.MethodGet, "/api/employee/attendance", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []json.RawMessage
	decodeData(t, env, &history)
	assert.Len(t, history, 1)

	rec, env = s.do(t, http.MethodGet, "/api/employee/attendance/today", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var today struct {
		Date           string   `json:"date"`
		State          string   `json:"state"`
		AllowedActions []string `json:"allowedActions"`
	}
	decodeData(t, env, &today)
	assert.Equal(t, "2024-03-11", today.Date)
	assert.Empty(t, today.AllowedActions)

	rec, env = s.do(t, http.MethodGet, "/api/admin/attendance/"+employeeID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []json.RawMessage
	decodeData(t, env, &listed)
	assert.Len(t, listed, 1)

	rec, env = s.do(t, http.MethodPut, "/api/admin/attendance/"+record.ID, adminToken, map[string]string{
		"status": "Late", "remarks": "traffic",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, env, &record)
	assert.Equal(t, "Late", record.Status)
	require.NotNil(t, record.Remarks)
	assert.Equal(t, "traffic", *record.Remarks)

	rec, env = s.do(t, http.MethodPut, "/api/admin/attendance/"+record.ID, adminToken, map[string]string{"status": "Sick"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestRouter_AdminProvisioning(t *testing.T) {
	s := newTestServer(t)
	adminToken, _, _ := s.provision(t)

	rec, env := s.do(t, http.MethodPost, "/api/admin/register-branch", "", map[string]string{
		"branchName": "north office", "password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	rec, env = s.do(t, http.MethodPost, "/api/admin/create-employee", adminToken, map[string]string{
		"email": "asha@example.com", "password": "pw", "branch": "north office",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	rec, env = s.do(t, http.MethodPost, "/api/admin/create-employee", adminToken, map[string]string{
		"email": "not-an-email", "password": "pw", "branch": "north office",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "email")

	rec, env = s.do(t, http.MethodPost, "/api/admin/create-employee", adminToken, map[string]string{
		"email": "ravi@example.com", "password": "pw", "branch": "south office",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	rec, env = s.do(t, http.MethodGet, "/api/admin/employees/"+url.PathEscape("North Office"), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var employees []map[string]interface{}
	decodeData(t, env, &employees)
	require.Len(t, employees, 1)
	assert.Equal(t, "asha@example.com", employees[0]["email"])
	assert.NotContains(t, employees[0], "password")
	assert.NotContains(t, employees[0], "passwordHash")
}

func TestRouter_LoginFailuresLookAlike(t *testing.T) {
	s := newTestServer(t)
	s.provision(t)

	wrongPassword, env1 := s.do(t, http.MethodPost, "/api/employee/login", "", map[string]string{
		"email": "asha@example.com", "password": "nope",
	})
	unknownEmail, env2 := s.do(t, http.MethodPost, "/api/employee/login", "", map[string]string{
		"email": "ghost@example.com", "password": "nope",
	})

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
	assert.Equal(t, env1.Error, env2.Error)

	rec, _ := s.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{
		"name": "north office", "password": "nope",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Authorization(t *testing.T) {
	s := newTestServer(t)
	adminToken, employeeToken, employeeID := s.provision(t)

	expired := func(role auth.Role) string {
		_, token, err := s.jwt.JWTAuth().Encode(map[string]interface{}{
			"subject_id": employeeID,
			"role":       string(role),
			"iat":        time.Now().Add(-25 * time.Hour).Unix(),
			"exp":        time.Now().Add(-time.Hour).Unix(),
		})
		require.NoError(t, err)
		return token
	}

	cases := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{"employee route without token", http.MethodGet, "/api/employee/attendance", "", http.StatusUnauthorized},
		{"admin route without token", http.MethodGet, "/api/admin/attendance/" + employeeID, "", http.StatusUnauthorized},
		{"employee route with expired token", http.MethodGet, "/api/employee/attendance", expired(auth.RoleEmployee), http.StatusUnauthorized},
		{"admin route with expired token", http.MethodGet, "/api/admin/attendance/" + employeeID, expired(auth.RoleAdmin), http.StatusUnauthorized},
		{"employee route with admin token", http.MethodGet, "/api/employee/attendance", adminToken, http.StatusForbidden},
		{"admin route with employee token", http.MethodGet, "/api/admin/attendance/" + employeeID, employeeToken, http.StatusForbidden},
		{"create employee with employee token", http.MethodPost, "/api/admin/create-employee", employeeToken, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := s.do(t, tc.method, tc.path, tc.token, nil)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestRouter_PhotoUpload(t *testing.T) {
	s := newTestServer(t)
	_, employeeToken, _ := s.provision(t)

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for x := 0; x < 64; x++ {
		img.Set(x, x%48, color.RGBA{R: 200, A: 255})
	}
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("photo", "selfie.png")
	require.NoError(t, err)
	_, err = part.Write(pngBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/employee/photos", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+employeeToken)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var uploaded struct {
		PhotoURL string `json:"photoUrl"`
	}
	decodeData(t, env, &uploaded)

	photoURL, err := url.Parse(uploaded.PhotoURL)
	require.NoError(t, err)
	assert.Contains(t, photoURL.Path, "/uploads/attendance/2024-03-11/")

	get := httptest.NewRequest(http.MethodGet, photoURL.Path, nil)
	served := httptest.NewRecorder()
	s.handler.ServeHTTP(served, get)
	assert.Equal(t, http.StatusOK, served.Code)
	assert.Equal(t, "image/jpeg", served.Header().Get("Content-Type"))

	// The uploaded URL is accepted as check-in proof
	rec, _ = s.do(t, http.MethodPost, "/api/employee/checkin", employeeToken, map[string]string{"photoUrl": uploaded.PhotoURL})
	assert.Equal(t, http.StatusCreated, rec.Code)
}
