package orchestrator

import (
	"context"
	"image"

	"kycscan/internal/document/extract"
	"kycscan/internal/document/metrics"
	dErrors "kycscan/pkg/domain-errors"
)

// LeadDump is the worst-case OCR tier. It writes the image to a temporary
// file, runs file-based OCR with the engine's default language, and renders
// the regex leads found in that text as a labeled dump.
type LeadDump struct {
	files   FileRecognizer
	tempDir string
	metrics *metrics.Metrics
}

// NewLeadDump creates the degraded tier. tempDir may be empty.
func NewLeadDump(files FileRecognizer, tempDir string, m *metrics.Metrics) *LeadDump {
	return &LeadDump{files: files, tempDir: tempDir, metrics: m}
}

// Dump implements ocr.Degraded.
func (d *LeadDump) Dump(ctx context.Context, img *image.Gray) (string, error) {
	if d.files == nil {
		return "", dErrors.New(dErrors.CodeNoOCREngine, "no file OCR available")
	}
	var dump string
	err := withTempImage(d.tempDir, img, d.metrics, func(path string) error {
		text, err := d.files.RecognizeFile(ctx, path, nil)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeNoOCREngine, "file OCR failed")
		}
		dump = extract.FormatLeadDump(extract.Leads(text))
		return nil
	})
	return dump, err
}
