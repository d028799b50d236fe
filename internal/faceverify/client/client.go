// Package client calls the external face-verification service, which
// compares the face in a selfie with the face on an ID document.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	dErrors "kycscan/pkg/domain-errors"
)

// missingDistance is reported when the service omits a distance, so the
// pair never verifies by accident.
const missingDistance = 999.0

// HTTPDoer is the subset of *http.Client used by the client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Comparison is the raw outcome of one face comparison.
type Comparison struct {
	Distance float64
	// Threshold is the service's own suggestion; nil when not reported.
	Threshold *float64
}

type compareResponse struct {
	Distance  *float64 `json:"distance"`
	Threshold *float64 `json:"threshold"`
}

type Client struct {
	url     string
	timeout time.Duration
	client  HTTPDoer
}

type Option func(*Client)

func WithHTTPClient(c HTTPDoer) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

func WithTimeout(t time.Duration) Option {
	return func(cl *Client) {
		if t > 0 {
			cl.timeout = t
		}
	}
}

func New(url string, opts ...Option) *Client {
	c := &Client{
		url:     strings.TrimSpace(url),
		timeout: 60 * time.Second,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether a verification URL was provided.
func (c *Client) Configured() bool {
	return c.url != ""
}

// Compare uploads both images and returns the embedding distance.
func (c *Client) Compare(ctx context.Context, selfie, document []byte, model, detector string) (Comparison, error) {
	if !c.Configured() {
		return Comparison{}, dErrors.New(dErrors.CodeUnavailable, "face verification service is not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, contentType, err := encodeForm(selfie, document, model, detector)
	if err != nil {
		return Comparison{}, dErrors.Wrap(err, dErrors.CodeInternal, "encode face verification request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return Comparison{}, dErrors.Wrap(err, dErrors.CodeInternal, "create face verification request")
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
			return Comparison{}, dErrors.Wrap(err, dErrors.CodeUpstreamTimeout, fmt.Sprintf("face verification timed out after %s", c.timeout))
		}
		return Comparison{}, dErrors.Wrap(err, dErrors.CodeUpstream, "face verification request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Comparison{}, dErrors.Wrap(err, dErrors.CodeUpstream, "read face verification reply")
	}
	if resp.StatusCode == http.StatusUnprocessableEntity {
		return Comparison{}, dErrors.New(dErrors.CodeValidation, "no face found in one of the images")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Comparison{}, dErrors.New(dErrors.CodeUpstream, fmt.Sprintf("face verification returned status %d", resp.StatusCode))
	}

	var parsed compareResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Comparison{}, dErrors.Wrap(err, dErrors.CodeUpstream, "decode face verification reply")
	}
	out := Comparison{Distance: missingDistance, Threshold: parsed.Threshold}
	if parsed.Distance != nil {
		out.Distance = *parsed.Distance
	}
	return out, nil
}

func encodeForm(selfie, document []byte, model, detector string) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range []struct {
		field string
		data  []byte
	}{{"selfie", selfie}, {"document", document}} {
		w, err := mw.CreateFormFile(f.field, f.field+".jpg")
		if err != nil {
			return nil, "", err
		}
		if _, err := w.Write(f.data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.WriteField("model", model); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("detector", detector); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
