package orchestrator

import (
	"errors"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"kycscan/internal/document/metrics"
	dErrors "kycscan/pkg/domain-errors"
)

const tempPrefix = "kycscan-"

// withTempImage writes img to a uniquely named file under dir, calls fn with
// its path and removes the file on every return path, panics included.
func withTempImage(dir string, img image.Image, m *metrics.Metrics, fn func(path string) error) (err error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, tempPrefix+uuid.NewString()+".png")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "create temp image")
	}
	m.TempFileOpened()
	defer func() {
		_ = f.Close()
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
			err = dErrors.Wrap(rmErr, dErrors.CodeInternal, "remove temp image")
		}
		m.TempFileClosed()
	}()

	if err := png.Encode(f, img); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "write temp image")
	}
	if err := f.Close(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "flush temp image")
	}
	return fn(path)
}
