package blobstore

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxFileSize = 20 * 1024 * 1024 // 20 MB per compliance document
)

var (
	ErrEmptyFile       = errors.New("empty file")
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidMimeType = errors.New("unsupported file type")
)

// AllowedMimeTypes for compliance documents: scans and PDFs only.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// DiskStore keeps blobs on local disk under dated directories and hands
// back a storage path. Callers treat it as a blob store keyed by path.
type DiskStore struct {
	baseDir string
}

func NewDiskStore(baseDir string) *DiskStore {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	return &DiskStore{baseDir: baseDir}
}

// Save writes the uploaded file and returns its path relative to the
// store root. MIME type is sniffed from content, not trusted from the
// client.
func (s *DiskStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size == 0 {
		return "", ErrEmptyFile
	}
	if fileHeader.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return "", ErrInvalidMimeType
	}

	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	ext := filepath.Ext(fileHeader.Filename)
	filename := uuid.New().String() + ext
	absPath := filepath.Join(absDir, filename)

	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("write blob: %w", err)
	}

	return filepath.ToSlash(filepath.Join(relDir, filename)), nil
}

// Remove deletes a stored blob. Missing files are not an error; the blob
// may already be gone.
func (s *DiskStore) Remove(path string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(path)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
