//go:build !gosseract

package ocr

import (
	"context"
	"errors"
	"image"
)

// GosseractEngine is unavailable in builds without the gosseract tag.
type GosseractEngine struct{}

// NewGosseractEngine returns an engine that reports itself unavailable.
func NewGosseractEngine() Engine {
	return GosseractEngine{}
}

func (GosseractEngine) Name() string { return "tesseract" }

func (GosseractEngine) MultiLanguage() bool { return true }

func (GosseractEngine) Available() bool { return false }

func (GosseractEngine) Recognize(context.Context, *image.Gray, []string) (string, error) {
	return "", errors.New("built without gosseract support")
}
