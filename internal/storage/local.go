// Package storage keeps uploaded employee photos on the local filesystem.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/logger"
)

// PhotoDir is the subdirectory of the media root holding employee photos.
const PhotoDir = "employee_photos"

// PhotoStorage stores validated image uploads and returns their public URL.
type PhotoStorage interface {
	SavePhoto(ctx context.Context, r io.Reader, declaredType string) (string, error)
	DeletePhoto(ctx context.Context, url string) error
}

// LocalStorage writes files below basePath and serves them under baseURL.
type LocalStorage struct {
	basePath string
	baseURL  string
	maxBytes int64
}

func NewLocalStorage(basePath, baseURL string, maxBytes int64) (*LocalStorage, error) {
	if err := os.MkdirAll(filepath.Join(basePath, PhotoDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
	}, nil
}

// SavePhoto checks the declared type, the size limit and the sniffed content
// before anything is written.
func (ls *LocalStorage) SavePhoto(ctx context.Context, r io.Reader, declaredType string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(declaredType), "image/") {
		return "", apperrors.NewValidationError("photo", "File must be an image.")
	}

	data, err := io.ReadAll(io.LimitReader(r, ls.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > ls.maxBytes {
		return "", apperrors.NewValidationError("photo", fmt.Sprintf("File size must be less than %dMB.", ls.maxBytes>>20))
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", apperrors.NewValidationError("photo", "File must be an image.")
	}

	name := uuid.New().String() + mt.Extension()
	dst := filepath.Join(ls.basePath, PhotoDir, name)
	if err := writeFile(dst, data); err != nil {
		return "", err
	}

	url := ls.baseURL + "/" + PhotoDir + "/" + name
	logger.InfoLog(ctx, "photo saved as %s (%s, %d bytes)", name, mt.String(), len(data))
	return url, nil
}

// DeletePhoto removes a file previously returned by SavePhoto. Unknown URLs are ignored.
func (ls *LocalStorage) DeletePhoto(ctx context.Context, url string) error {
	prefix := ls.baseURL + "/" + PhotoDir + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(url, prefix))
	err := os.Remove(filepath.Join(ls.basePath, PhotoDir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete photo %s: %w", name, err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	if _, err := io.Copy(dst, bytes.NewReader(data)); err != nil {
		dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to save file content: %w", err)
	}
	return dst.Close()
}
