// Package upload stores images posted by members.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"rental-movies/internal/config"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
)

var (
	ErrMissing   = errors.New("image is missing")
	ErrExtension = errors.New("the file extension is not jpg, jpeg, png or gif")
	ErrTooLarge  = errors.New("the file size exceeds the maximum size")
)

var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

// Uploader writes images into a directory.
type Uploader struct {
	dir     string
	maxSize int64
}

// New creates an Uploader from cfg.
func New(cfg config.UploadConfig) *Uploader {
	return &Uploader{dir: cfg.Dir, maxSize: cfg.MaxSize}
}

// MaxSize is the largest accepted image in bytes.
func (u *Uploader) MaxSize() int64 {
	return u.maxSize
}

// Dir is the directory images are stored in.
func (u *Uploader) Dir() string {
	return u.dir
}

// Save stores the image read from r under a new unique name with the
// extension of name and returns the stored file name. size is the size the
// client declared; the content is checked against the limit as well.
func (u *Uploader) Save(name string, size int64, r io.Reader) (string, error) {
	if name == "" || r == nil {
		return "", ErrMissing
	}
	ext := extension(name)
	if !allowedExtensions[ext] {
		return "", ErrExtension
	}
	if size > u.maxSize {
		return "", ErrTooLarge
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	stored := uuid.NewString() + "." + ext
	path := filepath.Join(u.dir, stored)

	limited := &limitReader{r: r, remaining: u.maxSize}
	if err := atomic.WriteFile(path, limited); err != nil {
		if limited.exceeded {
			return "", ErrTooLarge
		}
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return stored, nil
}

func extension(name string) string {
	ext := filepath.Ext(filepath.Base(name))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// limitReader fails with ErrTooLarge once more than remaining bytes are read.
type limitReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

func (l *limitReader) Read(p []byte) (int, error) {
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		l.exceeded = true
		return 0, ErrTooLarge
	}
	return n, err
}
