package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/branch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance validation errors
	case errors.Is(err, attendance.ErrMissingPhoto):
		ValidationError(w, map[string]string{"photoUrl": err.Error()})
	case errors.Is(err, attendance.ErrInvalidStatus):
		ValidationError(w, map[string]string{"status": "status must be one of: On-time, Week Off, Late, Absent, Half-day"})
	case errors.Is(err, attendance.ErrUnsupportedPhoto), errors.Is(err, attendance.ErrPhotoTooLarge):
		ValidationError(w, map[string]string{"photo": err.Error()})

	// Auth domain errors
	case errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrInvalidCredentials):
		BadRequest(w, "Invalid credentials", nil)
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, "Insufficient permissions")

	// Attendance sequence conflicts
	case errors.Is(err, attendance.ErrDuplicateCheckIn),
		errors.Is(err, attendance.ErrNoCheckIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrAlreadyOnBreak),
		errors.Is(err, attendance.ErrBreakNotStarted),
		errors.Is(err, attendance.ErrAlreadyBreakComplete):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Provisioning errors
	case errors.Is(err, branch.ErrDuplicateBranch):
		Conflict(w, "Branch already exists")
	case errors.Is(err, employee.ErrDuplicateEmail):
		Conflict(w, "Email already registered")
	case errors.Is(err, branch.ErrBranchNotFound):
		Error(w, http.StatusBadRequest, "NOT_FOUND", "Branch not found", nil)
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
