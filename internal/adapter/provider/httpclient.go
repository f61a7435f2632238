package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"payment-hub/internal/core/domain"

	"github.com/rs/zerolog"
)

const maxResponseBytes = 1 << 20

// HTTPClient is the outbound client shared by controllers. Every exchange is
// logged by its transport, so SDK clients built on StdClient log too.
type HTTPClient struct {
	client   *http.Client
	provider string
}

// Response is a fully read provider response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewHTTPClient returns a client bounded by timeout that logs through log.
func NewHTTPClient(provider string, timeout time.Duration, log zerolog.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		provider: provider,
		client: &http.Client{
			Timeout: timeout,
			Transport: &loggingTransport{
				base: http.DefaultTransport,
				log:  log.With().Str("provider", provider).Logger(),
			},
		},
	}
}

// StdClient exposes the underlying client for SDKs that accept one.
func (c *HTTPClient) StdClient() *http.Client {
	return c.client
}

// Do sends req and reads the body. Transport failures come back as unknown
// provider errors because the request may have been processed.
func (c *HTTPClient) Do(ctx context.Context, req *http.Request) (*Response, error) {
	resp, err := c.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, domain.NewUnknownProviderError(c.provider, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domain.NewUnknownProviderError(c.provider, "reading response", err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// StatusError classifies a non-2xx response. Client errors mean the request
// was refused and are safe; anything else leaves the outcome unknown.
func StatusError(provider string, resp *Response, code, message string) error {
	if code == "" {
		code = domain.DeclineCodeProviderDecline
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	err := fmt.Errorf("http status %d", resp.StatusCode)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusRequestTimeout {
		return domain.NewSafeProviderError(provider, code, message, err)
	}
	return domain.NewUnknownProviderError(provider, message, err)
}

type loggingTransport struct {
	base http.RoundTripper
	log  zerolog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	reqBody, err := snapshotRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.Warn().Err(err).
			Str("method", req.Method).
			Str("host", req.URL.Host).
			Str("path", req.URL.Path).
			Str("request_body", RedactBody(reqBody)).
			Dur("duration", time.Since(start)).
			Msg("provider request failed")
		return nil, err
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(respBody))

	t.log.Info().
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Str("request_body", RedactBody(reqBody)).
		Int("status", resp.StatusCode).
		Str("response_body", RedactBody(respBody)).
		Dur("duration", time.Since(start)).
		Msg("provider request")
	return resp, nil
}

// snapshotRequest reads the outgoing body and puts an identical reader back.
func snapshotRequest(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	body, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, err
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	return body, nil
}
