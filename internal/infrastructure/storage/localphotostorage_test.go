package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zelador/internal/shared/config"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
)

var (
	jpegPayload = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, []byte("fakejpegbody")...)
	pngPayload  = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}, []byte("fakepngbody")...)
)

func newTestStorage(t *testing.T, maxSize int64) *LocalPhotoStorage {
	t.Helper()
	return NewLocalPhotoStorage(&config.StorageConfig{
		PhotoDir:     t.TempDir(),
		MaxPhotoSize: maxSize,
	}, logger.NewNop())
}

func TestLocalPhotoStorage_Store(t *testing.T) {
	s := newTestStorage(t, 1<<20)

	photo, err := s.Store(context.Background(), 42, "antes e depois.jpg", jpegPayload)
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", photo.ContentType)
	assert.Equal(t, int64(len(jpegPayload)), photo.SizeBytes)
	assert.Contains(t, photo.Path, filepath.Join("42"))
	assert.True(t, strings.HasSuffix(photo.Path, ".jpg"))

	written, err := os.ReadFile(photo.Path)
	require.NoError(t, err)
	assert.Equal(t, jpegPayload, written)
}

func TestLocalPhotoStorage_Store_SanitizesFilename(t *testing.T) {
	s := newTestStorage(t, 1<<20)

	photo, err := s.Store(context.Background(), 7, "../../etc/passwd.png", pngPayload)
	require.NoError(t, err)

	assert.NotContains(t, photo.Path, "..")
	assert.Contains(t, photo.Path, filepath.Join("7"))
	assert.True(t, strings.HasSuffix(photo.Path, ".png"))
}

func TestLocalPhotoStorage_Store_RejectsOversized(t *testing.T) {
	s := newTestStorage(t, 8)

	_, err := s.Store(context.Background(), 1, "big.jpg", jpegPayload)

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "maximum size")
}

func TestLocalPhotoStorage_Store_RejectsUnsupportedType(t *testing.T) {
	s := newTestStorage(t, 1<<20)

	_, err := s.Store(context.Background(), 1, "notes.txt", []byte("plain text, not an image"))

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "unsupported photo type")
}

func TestLocalPhotoStorage_Store_RejectsEmptyPayload(t *testing.T) {
	s := newTestStorage(t, 1<<20)

	_, err := s.Store(context.Background(), 1, "empty.jpg", nil)

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
