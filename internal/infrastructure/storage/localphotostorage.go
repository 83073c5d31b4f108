// Package storage persists completion photo evidence on the local
// filesystem, one directory per assistance request.
package storage

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"zelador/internal/application/assistance/usecases"
	"zelador/internal/shared/config"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type LocalPhotoStorage struct {
	baseDir string
	maxSize int64
	logger  logger.Interface
}

func NewLocalPhotoStorage(cfg *config.StorageConfig, log logger.Interface) *LocalPhotoStorage {
	return &LocalPhotoStorage{
		baseDir: cfg.PhotoDir,
		maxSize: cfg.MaxPhotoSize,
		logger:  log.Named("photostorage"),
	}
}

// Store validates and writes one upload. The payload is sniffed, not trusted:
// the content type comes from the bytes, and the stored extension follows it.
func (s *LocalPhotoStorage) Store(ctx context.Context, assistanceID uint, filename string, data []byte) (*usecases.StoredPhoto, error) {
	if len(data) == 0 {
		return nil, errors.NewValidationError("photo payload is empty")
	}
	if int64(len(data)) > s.maxSize {
		return nil, errors.NewValidationError(
			fmt.Sprintf("photo exceeds the maximum size of %d bytes", s.maxSize))
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, errors.NewValidationError(
			fmt.Sprintf("unsupported photo type %q, accepted types are JPEG, PNG and WebP", contentType))
	}

	dir := filepath.Join(s.baseDir, fmt.Sprintf("%d", assistanceID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo directory: %w", err)
	}

	name := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), sanitizeBaseName(filename), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write photo: %w", err)
	}

	s.logger.Debugw("photo stored",
		"assistance_id", assistanceID,
		"path", path,
		"size", len(data),
	)

	return &usecases.StoredPhoto{
		Path:        path,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	}, nil
}

// sanitizeBaseName strips the extension and anything that could escape the
// target directory from a client-supplied filename.
func sanitizeBaseName(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "photo"
	}
	return b.String()
}
