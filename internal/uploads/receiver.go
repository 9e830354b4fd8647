// Package uploads validates and stores product image uploads.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// MaxFileSize is the upload size limit, 5 MiB.
const MaxFileSize = 5 << 20

// ErrFileTooLarge is returned when an upload exceeds MaxFileSize.
var ErrFileTooLarge = errors.New("uploaded file exceeds the 5 MiB limit")

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Receiver accepts image uploads into a fixed directory.
type Receiver struct {
	dir string
}

// NewReceiver creates a Receiver writing into dir, creating it if needed.
func NewReceiver(dir string) (*Receiver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &Receiver{dir: dir}, nil
}

// Accept validates an uploaded file and, if acceptable, writes it to the
// upload directory under a timestamped name and returns its serving path.
// A file with a media type outside the allow-list is rejected silently:
// nothing is stored and an empty path is returned with no error. An
// oversized file returns ErrFileTooLarge.
func (r *Receiver) Accept(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}
	if !allowedTypes[fh.Header.Get("Content-Type")] {
		return "", nil
	}

	name := timestampedName(fh.Filename)
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(r.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return path.Join("uploads", name), nil
}

// Dir returns the directory uploads are written to.
func (r *Receiver) Dir() string {
	return r.dir
}

// timestampedName prefixes the original filename with the current UTC
// time, with colons replaced so the name is safe on every filesystem.
func timestampedName(original string) string {
	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	return strings.ReplaceAll(stamp, ":", "-") + filepath.Base(original)
}
