package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/brandberg-skola/absence-backend-go/internal/config"
	"github.com/brandberg-skola/absence-backend-go/internal/pkg/storage"
	"github.com/brandberg-skola/absence-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

// Service stores and serves absence attachments on top of a FileStorage
// backend. Filenames are regenerated on upload; the original name is only
// used for its extension.
type Service struct {
	storage storage.FileStorage
	cfg     config.UploadConfig
}

func NewService(fileStorage storage.FileStorage, cfg config.UploadConfig) *Service {
	return &Service{
		storage: fileStorage,
		cfg:     cfg,
	}
}

// ValidateUpload checks size and extension limits before anything is written.
func (s *Service) ValidateUpload(header *multipart.FileHeader) error {
	var errs validator.ValidationErrors

	if header.Size > s.cfg.MaxFileSizeBytes {
		errs = append(errs, validator.ValidationError{
			Field:   "attachment",
			Message: fmt.Sprintf("file size exceeds the maximum of %d bytes", s.cfg.MaxFileSizeBytes),
		})
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !validator.IsInSlice(ext, s.cfg.AllowedExtensions) {
		errs = append(errs, validator.ValidationError{
			Field:   "attachment",
			Message: fmt.Sprintf("file type %q is not allowed, use one of: %s", ext, strings.Join(s.cfg.AllowedExtensions, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UploadAbsenceAttachment writes the file under absences/ with a generated
// name and returns the stored path.
func (s *Service) UploadAbsenceAttachment(ctx context.Context, file io.Reader, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	path := fmt.Sprintf("absences/%s%s", uuid.New().String(), ext)

	storedPath, err := s.storage.Upload(ctx, file, path)
	if err != nil {
		return "", fmt.Errorf("failed to store attachment: %w", err)
	}

	return storedPath, nil
}

// Open returns the stored file content with its content type.
func (s *Service) Open(ctx context.Context, path string) (io.ReadCloser, string, error) {
	content, err := s.storage.Download(ctx, path)
	if err != nil {
		return nil, "", err
	}
	return content, ContentTypeForPath(path), nil
}

// Delete removes a stored file. Missing files are not an error.
func (s *Service) Delete(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// ContentTypeForPath maps a stored path to its MIME type by extension.
func ContentTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
