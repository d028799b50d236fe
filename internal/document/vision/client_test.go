package vision

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kycscan/internal/document/models"
	dErrors "kycscan/pkg/domain-errors"
	"kycscan/pkg/platform/circuit"
)

type ClientSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	calls   atomic.Int32
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.calls.Store(0)
	s.handler = nil
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		s.handler(w, r)
	}))
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) newClient(opts ...func(*Config)) *Client {
	cfg := Config{
		APIKey:   "test-key",
		Model:    "test/model",
		BaseURL:  s.server.URL,
		SiteURL:  "https://kycscan.test",
		AppTitle: "kycscan",
		Timeout:  time.Second,
	}
	for _, o := range opts {
		o(&cfg)
	}
	return New(cfg)
}

func reply(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
	})
}

func (s *ClientSuite) TestExtractKYC_SendsImageAndHeaders() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/chat/completions", r.URL.Path)
		s.Equal("Bearer test-key", r.Header.Get("Authorization"))
		s.Equal("https://kycscan.test", r.Header.Get("HTTP-Referer"))
		s.Equal("kycscan", r.Header.Get("X-Title"))

		body, _ := io.ReadAll(r.Body)
		var req completionRequest
		s.Require().NoError(json.Unmarshal(body, &req))
		s.Equal("test/model", req.Model)
		s.Equal(kycTokens, req.MaxTokens)
		s.InDelta(0.1, req.Temperature, 1e-9)
		s.Contains(string(body), "data:image/jpeg;base64,")

		reply(w, "```json\n{\"name\":[\"Ravi\",\"Kumar\"],\"gender\":\"Male\"}\n```")
	}

	fields, raw, warnings, err := s.newClient().ExtractKYC(context.Background(), []byte{0xff, 0xd8})
	s.Require().NoError(err)
	s.Empty(warnings)
	s.Contains(raw, "Ravi")
	s.Equal([]string{"Ravi", "Kumar"}, fields.Name)
	s.Equal("Male", models.Deref(fields.Gender))
}

func (s *ClientSuite) TestExtractKYC_ProseReplyRecovered() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		reply(w, "Name: Anita Rao and DOB 01/02/1985")
	}

	fields, _, warnings, err := s.newClient().ExtractKYC(context.Background(), []byte("img"))
	s.Require().NoError(err)
	s.Len(warnings, 1)
	s.Equal([]string{"Anita", "Rao"}, fields.Name)
	s.Equal("01/02/1985", models.Deref(fields.DateOfBirth))
}

func (s *ClientSuite) TestExtractLeads_TwoStepFlow() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), "image_url") {
			reply(w, "John Smith, CEO, john@acme.com")
			return
		}
		s.Contains(string(body), "John Smith, CEO, john@acme.com")
		reply(w, `Sure! [{"name":"John Smith","title":"CEO","email":"john@acme.com"}]`)
	}

	leads, text, warnings, err := s.newClient().ExtractLeads(context.Background(), []byte("img"))
	s.Require().NoError(err)
	s.Empty(warnings)
	s.Equal("John Smith, CEO, john@acme.com", text)
	s.Require().Len(leads, 1)
	s.Equal("CEO", models.Deref(leads[0].Title))
	s.EqualValues(2, s.calls.Load())
}

func (s *ClientSuite) TestExtractLeads_UnparseableIsWarning() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		reply(w, "nothing useful here")
	}

	leads, _, warnings, err := s.newClient().ExtractLeads(context.Background(), []byte("img"))
	s.Require().NoError(err)
	s.Empty(leads)
	s.Equal([]string{leadsUnparseableWarning}, warnings)
}

func (s *ClientSuite) TestErrorClassification() {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantCode dErrors.Code
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantCode: dErrors.CodeUpstream,
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantCode: dErrors.CodeUpstream,
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[]}`))
			},
			wantCode: dErrors.CodeUpstream,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
			wantCode: dErrors.CodeUpstream,
		},
		{
			name: "slow upstream",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			wantCode: dErrors.CodeUpstreamTimeout,
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.handler = tt.handler
			client := s.newClient(func(c *Config) { c.Timeout = 100 * time.Millisecond })

			_, err := client.ExtractText(context.Background(), []byte("img"))
			s.Require().Error(err)
			s.Equal(tt.wantCode, dErrors.CodeOf(err))
			s.True(dErrors.IsUpstream(err))
		})
	}
}

func (s *ClientSuite) TestDisabledWithoutKey() {
	client := s.newClient(func(c *Config) { c.APIKey = "" })
	s.False(client.Enabled())

	_, err := client.ExtractText(context.Background(), []byte("img"))
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.Zero(s.calls.Load())
}

func (s *ClientSuite) TestBreakerShortCircuits() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}
	breaker := circuit.New("vision-api", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))
	client := s.newClient(func(c *Config) { c.Breaker = breaker })

	for range 2 {
		_, err := client.ExtractText(context.Background(), []byte("img"))
		s.Error(err)
	}
	s.True(breaker.IsOpen())

	_, err := client.ExtractText(context.Background(), []byte("img"))
	s.True(dErrors.HasCode(err, dErrors.CodeUpstream))
	s.EqualValues(2, s.calls.Load())
}
