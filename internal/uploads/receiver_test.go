package uploads_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"glowshop/internal/uploads"

	"github.com/stretchr/testify/assert"
)

// fileHeader builds a *multipart.FileHeader the way Fiber would hand one
// to a handler.
func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="productImage"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	assert.NoError(t, err)
	_, err = part.Write(data)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(32 << 20)
	assert.NoError(t, err)

	return form.File["productImage"][0]
}

func TestReceiver_AcceptStoresAllowedImage(t *testing.T) {
	dir := t.TempDir()
	receiver, err := uploads.NewReceiver(dir)
	assert.NoError(t, err)

	fh := fileHeader(t, "mask.webp", "image/webp", []byte("webp-bytes"))

	path, err := receiver.Accept(fh)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "uploads/"))
	assert.True(t, strings.HasSuffix(path, "mask.webp"))
	assert.NotContains(t, path, ":")

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	stored, err := os.ReadFile(dir + "/" + entries[0].Name())
	assert.NoError(t, err)
	assert.Equal(t, []byte("webp-bytes"), stored)
}

func TestReceiver_RejectsDisallowedMediaTypeSilently(t *testing.T) {
	dir := t.TempDir()
	receiver, err := uploads.NewReceiver(dir)
	assert.NoError(t, err)

	fh := fileHeader(t, "manual.pdf", "application/pdf", []byte("%PDF-1.4"))

	path, err := receiver.Accept(fh)
	assert.NoError(t, err, "a disallowed media type must not surface an error")
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries, "nothing may be written for a rejected file")
}

func TestReceiver_RejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	receiver, err := uploads.NewReceiver(dir)
	assert.NoError(t, err)

	fh := fileHeader(t, "huge.png", "image/png", bytes.Repeat([]byte("a"), uploads.MaxFileSize+1))

	_, err = receiver.Accept(fh)
	assert.ErrorIs(t, err, uploads.ErrFileTooLarge)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReceiver_TimestampedNamesDoNotCollide(t *testing.T) {
	dir := t.TempDir()
	receiver, err := uploads.NewReceiver(dir)
	assert.NoError(t, err)

	first, err := receiver.Accept(fileHeader(t, "same.png", "image/png", []byte("one")))
	assert.NoError(t, err)
	second, err := receiver.Accept(fileHeader(t, "same.png", "image/png", []byte("two")))
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}
