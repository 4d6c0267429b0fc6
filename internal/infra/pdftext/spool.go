package pdftext

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrTooLarge is returned by Spool when the upload exceeds the size cap.
var ErrTooLarge = errors.New("uploaded file exceeds maximum allowed size")

// Spool copies an upload into a temp file so it can be extracted by path.
// The returned cleanup removes the file; it is safe to call more than once.
func Spool(r io.Reader, maxBytes int64) (string, func(), error) {
	tmp, err := os.CreateTemp("", "health-report-*.pdf")
	if err != nil {
		return "", func() {}, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	src := r
	if maxBytes > 0 {
		src = io.LimitReader(r, maxBytes+1)
	}
	written, err := io.Copy(tmp, src)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("write temp file: %w", err)
	}
	if maxBytes > 0 && written > maxBytes {
		cleanup()
		return "", func() {}, ErrTooLarge
	}
	return tmp.Name(), cleanup, nil
}
