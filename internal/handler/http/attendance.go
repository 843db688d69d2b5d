package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	BreakIn(w http.ResponseWriter, r *http.Request)
	BreakOut(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)

	// Admin
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEvent(w, r, "CheckIn")
	if !ok {
		return
	}

	record, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", record)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEvent(w, r, "CheckOut")
	if !ok {
		return
	}

	record, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", record)
}

// BreakIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) BreakIn(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEvent(w, r, "BreakIn")
	if !ok {
		return
	}

	record, err := h.attendanceService.BreakIn(r.Context(), req)
	if err != nil {
		slog.Error("BreakIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", record)
}

// BreakOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) BreakOut(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEvent(w, r, "BreakOut")
	if !ok {
		return
	}

	record, err := h.attendanceService.BreakOut(r.Context(), req)
	if err != nil {
		slog.Error("BreakOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", record)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.FromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	records, err := h.attendanceService.History(r.Context(), claims.SubjectID)
	if err != nil {
		slog.Error("History service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.FromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	today, err := h.attendanceService.Today(r.Context(), claims.SubjectID)
	if err != nil {
		slog.Error("Today service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, today)
}

// ListByEmployee implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	req := attendance.ListAttendanceRequest{
		EmployeeID: chi.URLParam(r, "employeeId"),
	}

	if err := req.Validate(); err != nil {
		slog.Error("ListByEmployee validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListByEmployee(r.Context(), req)
	if err != nil {
		slog.Error("ListByEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Correct implements AttendanceHandler.
func (h *attendanceHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	var req attendance.CorrectAttendanceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Correct decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// ID from URL parameter
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		slog.Error("Correct validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.Correct(r.Context(), req)
	if err != nil {
		slog.Error("Correct service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", record)
}

// decodeEvent reads an optional {photoUrl} body and binds the event to the
// authenticated employee. It writes the error response itself and reports false on failure.
func decodeEvent(w http.ResponseWriter, r *http.Request, op string) (attendance.EventRequest, bool) {
	var req attendance.EventRequest

	claims, ok := jwt.FromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return req, false
	}

	// An empty body is a valid event without a photo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}

	// Employee ID from JWT
	req.EmployeeID = claims.SubjectID

	if err := req.Validate(); err != nil {
		slog.Error(op+" validate error", "error", err)
		response.HandleError(w, err)
		return req, false
	}

	return req, true
}
