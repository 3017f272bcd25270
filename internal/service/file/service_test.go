package file

import (
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/brandberg-skola/absence-backend-go/internal/config"
	"github.com/brandberg-skola/absence-backend-go/internal/pkg/storage"
	"github.com/brandberg-skola/absence-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileService(t *testing.T) *Service {
	t.Helper()
	fileStorage, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewService(fileStorage, config.UploadConfig{
		MaxFileSizeBytes:  1024,
		AllowedExtensions: []string{".pdf", ".jpg", ".jpeg", ".png"},
	})
}

func TestValidateUpload(t *testing.T) {
	svc := newTestFileService(t)

	t.Run("accepts allowed types within size", func(t *testing.T) {
		for _, name := range []string{"doc.pdf", "scan.jpg", "photo.JPEG", "img.png"} {
			err := svc.ValidateUpload(&multipart.FileHeader{Filename: name, Size: 512})
			assert.NoError(t, err, name)
		}
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		err := svc.ValidateUpload(&multipart.FileHeader{Filename: "doc.pdf", Size: 2048})
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "attachment")
	})

	t.Run("rejects disallowed extensions", func(t *testing.T) {
		for _, name := range []string{"run.exe", "note.txt", "noextension"} {
			err := svc.ValidateUpload(&multipart.FileHeader{Filename: name, Size: 10})
			assert.Error(t, err, name)
		}
	})
}

func TestUploadAndOpen(t *testing.T) {
	ctx := context.Background()
	svc := newTestFileService(t)

	header := &multipart.FileHeader{Filename: "sjukintyg.pdf", Size: 5}
	path, err := svc.UploadAbsenceAttachment(ctx, strings.NewReader("hello"), header)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "absences/"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))
	// Original filename is not reused
	assert.NotContains(t, path, "sjukintyg")

	content, contentType, err := svc.Open(ctx, path)
	require.NoError(t, err)
	defer content.Close()
	assert.Equal(t, "application/pdf", contentType)

	require.NoError(t, svc.Delete(ctx, path))
	_, _, err = svc.Open(ctx, path)
	assert.Error(t, err)
}

func TestContentTypeForPath(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentTypeForPath("absences/a.pdf"))
	assert.Equal(t, "image/jpeg", ContentTypeForPath("absences/a.jpg"))
	assert.Equal(t, "image/jpeg", ContentTypeForPath("absences/a.JPEG"))
	assert.Equal(t, "image/png", ContentTypeForPath("absences/a.png"))
	assert.Equal(t, "application/octet-stream", ContentTypeForPath("absences/a.bin"))
}
