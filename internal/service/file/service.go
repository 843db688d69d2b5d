package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	// MaxUploadSize bounds the multipart body accepted for one photo.
	MaxUploadSize = 10 << 20

	maxStoredSize = 300 * 1024
	maxDimension  = 1280
)

var allowedExts = []string{".jpg", ".jpeg", ".png"}

type FileService interface {
	// UploadProofPhoto stores an attendance proof photo and returns its public URL.
	UploadProofPhoto(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
	clock   clock.Clock
}

func NewFileService(storage storage.FileStorage, clk clock.Clock) FileService {
	return &fileServiceImpl{
		storage: storage,
		clock:   clk,
	}
}

// UploadProofPhoto implements FileService.
// Photos are re-encoded as JPEG, downscaled and compressed to at most maxStoredSize where possible.
func (s *fileServiceImpl) UploadProofPhoto(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !isAllowedExt(ext) {
		return "", attendance.ErrUnsupportedPhoto
	}

	buffer, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(buffer) > MaxUploadSize {
		return "", attendance.ErrPhotoTooLarge
	}

	compressed, err := compressImage(buffer, maxStoredSize)
	if err != nil {
		return "", err
	}

	// attendance/{date}/{employeeID}-{uuid}.jpg
	key := path.Join("attendance", s.clock.Today().Format("2006-01-02"), fmt.Sprintf("%s-%s.jpg", employeeID, uuid.NewString()))

	uploadedKey, err := s.storage.Upload(ctx, bytes.NewReader(compressed), key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload proof photo: %w", err)
	}

	return s.storage.URL(uploadedKey), nil
}

func isAllowedExt(ext string) bool {
	for _, allowed := range allowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// compressImage decodes buffer, bounds its longest side to maxDimension and lowers JPEG quality
// until the output fits maxSize or quality reaches 50.
func compressImage(buffer []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, attendance.ErrUnsupportedPhoto
		}
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img = fitWithin(img, maxDimension)

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		compressed = buf.Bytes()
		if len(compressed) <= maxSize {
			break
		}
	}

	return compressed, nil
}

// fitWithin scales src down so its longest side is at most limit, preserving aspect ratio.
func fitWithin(src image.Image, limit int) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= limit && height <= limit {
		return src
	}

	if width >= height {
		height = height * limit / width
		width = limit
	} else {
		width = width * limit / height
		height = limit
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
