package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
)

type PhotoHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
}

type photoHandlerImpl struct {
	fileService file.FileService
}

func NewPhotoHandler(fileService file.FileService) PhotoHandler {
	return &photoHandlerImpl{
		fileService: fileService,
	}
}

// Upload implements PhotoHandler.
func (h *photoHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.FromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	// Multipart overhead on top of the photo itself
	r.Body = http.MaxBytesReader(w, r.Body, file.MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(file.MaxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.HandleError(w, attendance.ErrPhotoTooLarge)
			return
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	photo, fileHeader, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.ValidationError(w, map[string]string{"photo": "photo is required"})
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer photo.Close()

	url, err := h.fileService.UploadProofPhoto(r.Context(), claims.SubjectID, photo, fileHeader.Filename)
	if err != nil {
		slog.Error("UploadProofPhoto service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Photo uploaded successfully", attendance.PhotoUploadResponse{PhotoURL: url})
}
