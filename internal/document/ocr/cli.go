package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strings"
)

// CLIEngine shells out to the tesseract binary. It reads one language only
// and needs no cgo.
type CLIEngine struct {
	binary string
}

// NewCLIEngine returns an engine invoking binary, or "tesseract" from PATH.
func NewCLIEngine(binary string) *CLIEngine {
	if binary == "" {
		binary = "tesseract"
	}
	return &CLIEngine{binary: binary}
}

func (e *CLIEngine) Name() string { return "tesseract-cli" }

func (e *CLIEngine) MultiLanguage() bool { return false }

// Available looks the binary up on every call so installs after startup are
// picked up.
func (e *CLIEngine) Available() bool {
	_, err := exec.LookPath(e.binary)
	return err == nil
}

// Recognize streams the image to tesseract over stdin.
func (e *CLIEngine) Recognize(ctx context.Context, img *image.Gray, langs []string) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return e.run(ctx, &buf, "stdin", langs)
}

// RecognizeFile runs tesseract on an image already written to disk.
func (e *CLIEngine) RecognizeFile(ctx context.Context, path string, langs []string) (string, error) {
	return e.run(ctx, nil, path, langs)
}

func (e *CLIEngine) run(ctx context.Context, stdin *bytes.Buffer, input string, langs []string) (string, error) {
	args := []string{input, "stdout"}
	if len(langs) > 0 && langs[0] != "" {
		args = append(args, "-l", langs[0])
	}
	cmd := exec.CommandContext(ctx, e.binary, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", e.binary, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
