//go:build gosseract

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// GosseractEngine binds libtesseract through cgo and reads several
// languages in one pass.
type GosseractEngine struct {
	clientFactory func() *gosseract.Client
}

// NewGosseractEngine returns the cgo-backed engine.
func NewGosseractEngine() Engine {
	return &GosseractEngine{clientFactory: gosseract.NewClient}
}

func (e *GosseractEngine) Name() string { return "tesseract" }

func (e *GosseractEngine) MultiLanguage() bool { return true }

func (e *GosseractEngine) Available() bool { return true }

func (e *GosseractEngine) Recognize(ctx context.Context, img *image.Gray, langs []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if len(langs) > 0 {
		if err := c.SetLanguage(langs...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
