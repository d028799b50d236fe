// Package detector calls the external face-mesh service that turns a frame
// into facial landmarks.
package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kycscan/internal/liveness/models"
	dErrors "kycscan/pkg/domain-errors"
	"kycscan/pkg/platform/circuit"
)

const maxReplyBytes = 8 << 20

// HTTPDoer is the subset of *http.Client used by the detector.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type meshResponse struct {
	Faces []struct {
		Landmarks [][]float64 `json:"landmarks"`
	} `json:"faces"`
}

// Client posts JPEG frames to the face-mesh service.
type Client struct {
	url     string
	timeout time.Duration
	client  HTTPDoer
	breaker *circuit.Breaker
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the transport.
func WithHTTPClient(c HTTPDoer) Option {
	return func(d *Client) {
		d.client = c
	}
}

// WithTimeout bounds each detection call.
func WithTimeout(t time.Duration) Option {
	return func(d *Client) {
		if t > 0 {
			d.timeout = t
		}
	}
}

// WithBreaker fails fast while the face-mesh service keeps erroring.
func WithBreaker(b *circuit.Breaker) Option {
	return func(d *Client) {
		d.breaker = b
	}
}

// New creates a detector for the service at url.
func New(url string, opts ...Option) *Client {
	d := &Client{
		url:     strings.TrimSpace(url),
		timeout: 10 * time.Second,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Configured reports whether a face-mesh URL was provided.
func (d *Client) Configured() bool {
	return d.url != ""
}

// Landmarks returns the x/y landmarks of the first detected face, or nil
// when the frame contains no face.
func (d *Client) Landmarks(ctx context.Context, jpeg []byte) (models.Frame, error) {
	if !d.Configured() {
		return nil, dErrors.New(dErrors.CodeUnavailable, "face-mesh service is not configured")
	}
	if d.breaker != nil && !d.breaker.Allow() {
		return nil, dErrors.New(dErrors.CodeUpstream, "face-mesh service circuit open")
	}

	frame, err := d.detect(ctx, jpeg)
	if d.breaker != nil {
		if err != nil && dErrors.IsUpstream(err) {
			d.breaker.RecordFailure()
		} else if err == nil {
			d.breaker.RecordSuccess()
		}
	}
	return frame, err
}

func (d *Client) detect(ctx context.Context, jpeg []byte) (models.Frame, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(jpeg))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create face-mesh request")
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := d.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
			return nil, dErrors.Wrap(err, dErrors.CodeUpstreamTimeout, fmt.Sprintf("face-mesh timed out after %s", d.timeout))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "face-mesh request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "read face-mesh reply")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, dErrors.New(dErrors.CodeUpstream, fmt.Sprintf("face-mesh returned status %d", resp.StatusCode))
	}

	var parsed meshResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "decode face-mesh reply")
	}
	if len(parsed.Faces) == 0 {
		return nil, nil
	}

	landmarks := parsed.Faces[0].Landmarks
	frame := make(models.Frame, 0, len(landmarks))
	for _, lm := range landmarks {
		if len(lm) < 2 {
			return nil, dErrors.New(dErrors.CodeUpstream, "face-mesh landmark has fewer than two coordinates")
		}
		frame = append(frame, models.Point{X: lm[0], Y: lm[1]})
	}
	return frame, nil
}
