// Package vision talks to an OpenAI-compatible multimodal chat completion
// endpoint and recovers structured leads and KYC fields from its replies.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"kycscan/internal/document/models"
	dErrors "kycscan/pkg/domain-errors"
	"kycscan/pkg/platform/circuit"
)

const (
	defaultTimeout = 30 * time.Second
	maxReplyBytes  = 4 << 20
	temperature    = 0.1

	leadTokens = 4000
	kycTokens  = 1000
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures the vision client.
type Config struct {
	APIKey   string
	Model    string
	BaseURL  string
	SiteURL  string
	AppTitle string
	Timeout  time.Duration
	// RatePerMinute caps outbound completions; zero disables the limiter.
	RatePerMinute int

	HTTPClient HTTPDoer
	Breaker    *circuit.Breaker
}

// Client issues completion requests. A Client without an API key is disabled
// and every call fails with an unavailable error.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	siteURL  string
	appTitle string
	timeout  time.Duration
	client   HTTPDoer
	limiter  *rate.Limiter
	breaker  *circuit.Breaker
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	c := &Client{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		endpoint: cfg.BaseURL + "/chat/completions",
		siteURL:  cfg.SiteURL,
		appTitle: cfg.AppTitle,
		timeout:  cfg.Timeout,
		client:   cfg.HTTPClient,
		breaker:  cfg.Breaker,
	}
	if c.client == nil {
		c.client = &http.Client{}
	}
	if cfg.RatePerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RatePerMinute)
	}
	return c
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// ExtractText asks the model to transcribe the business content of an image.
func (c *Client) ExtractText(ctx context.Context, jpegImage []byte) (string, error) {
	return c.complete(ctx, imageMessage(extractTextPrompt, jpegImage), leadTokens)
}

// LeadsFromText asks the model to structure transcribed text into leads.
// Unparseable replies yield no leads and a warning rather than an error.
func (c *Client) LeadsFromText(ctx context.Context, text string) ([]models.Lead, []string, error) {
	reply, err := c.complete(ctx, message{Role: "user", Content: leadsPrompt(text)}, leadTokens)
	if err != nil {
		return nil, nil, err
	}
	leads, warning := RecoverLeads(reply)
	if warning != "" {
		return leads, []string{warning}, nil
	}
	return leads, nil, nil
}

// ExtractLeads runs the two-step transcription then structuring flow.
func (c *Client) ExtractLeads(ctx context.Context, jpegImage []byte) ([]models.Lead, string, []string, error) {
	text, err := c.ExtractText(ctx, jpegImage)
	if err != nil {
		return nil, "", nil, err
	}
	leads, warnings, err := c.LeadsFromText(ctx, text)
	if err != nil {
		return nil, text, nil, err
	}
	return leads, text, warnings, nil
}

// ExtractKYC asks for a JSON identity record. Replies that are not valid JSON
// are mined for labeled fields, so only transport failures surface as errors.
func (c *Client) ExtractKYC(ctx context.Context, jpegImage []byte) (models.KYCFields, string, []string, error) {
	reply, err := c.complete(ctx, imageMessage(kycPrompt, jpegImage), kycTokens)
	if err != nil {
		return models.KYCFields{}, "", nil, err
	}
	fields, fromText := RecoverKYC(reply)
	if fromText {
		return fields, reply, []string{"vision reply was not valid JSON; fields recovered from text"}, nil
	}
	return fields, reply, nil, nil
}

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func imageMessage(prompt string, jpegImage []byte) message {
	return message{
		Role: "user",
		Content: []contentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegImage)}},
		},
	}
}

func (c *Client) complete(ctx context.Context, msg message, maxTokens int) (string, error) {
	if !c.Enabled() {
		return "", dErrors.New(dErrors.CodeUnavailable, "vision api key not configured")
	}
	if c.breaker != nil && !c.breaker.Allow() {
		return "", dErrors.New(dErrors.CodeUpstream, "vision api circuit open")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", c.fail(dErrors.Wrap(err, dErrors.CodeUpstreamTimeout, "vision api rate limit wait"))
		}
	}

	content, err := c.do(ctx, completionRequest{
		Model:       c.model,
		Messages:    []message{msg},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", c.fail(err)
	}
	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}
	return content, nil
}

func (c *Client) fail(err error) error {
	if c.breaker != nil {
		c.breaker.RecordFailure()
	}
	return err
}

func (c *Client) do(ctx context.Context, creq completionRequest) (string, error) {
	body, err := json.Marshal(creq)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "marshal completion request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "create completion request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.siteURL != "" {
		req.Header.Set("HTTP-Referer", c.siteURL)
	}
	if c.appTitle != "" {
		req.Header.Set("X-Title", c.appTitle)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
			return "", dErrors.Wrap(err, dErrors.CodeUpstreamTimeout, fmt.Sprintf("vision api timed out after %s", c.timeout))
		}
		return "", dErrors.Wrap(err, dErrors.CodeUpstream, "vision api request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", dErrors.Wrap(err, dErrors.CodeUpstreamTimeout, "vision api timed out reading reply")
		}
		return "", dErrors.Wrap(err, dErrors.CodeUpstream, "read vision api reply")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", dErrors.New(dErrors.CodeUpstream, fmt.Sprintf("vision api returned status %d", resp.StatusCode))
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUpstream, "decode vision api reply")
	}
	if len(parsed.Choices) == 0 {
		return "", dErrors.New(dErrors.CodeUpstream, "vision api returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
