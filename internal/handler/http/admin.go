package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/admin"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AdminHandler interface {
	RegisterBranch(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
}

type adminHandlerImpl struct {
	adminService admin.AdminService
}

func NewAdminHandler(adminService admin.AdminService) AdminHandler {
	return &adminHandlerImpl{
		adminService: adminService,
	}
}

// RegisterBranch implements AdminHandler.
func (h *adminHandlerImpl) RegisterBranch(w http.ResponseWriter, r *http.Request) {
	var req admin.RegisterBranchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RegisterBranch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("RegisterBranch validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	created, err := h.adminService.RegisterBranch(r.Context(), req)
	if err != nil {
		slog.Error("RegisterBranch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Branch registered successfully", created)
}

// CreateEmployee implements AdminHandler.
func (h *adminHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req admin.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("CreateEmployee validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	created, err := h.adminService.CreateEmployee(r.Context(), req)
	if err != nil {
		slog.Error("CreateEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

// ListEmployees implements AdminHandler.
func (h *adminHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.adminService.ListEmployees(r.Context(), chi.URLParam(r, "branchName"))
	if err != nil {
		slog.Error("ListEmployees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}
