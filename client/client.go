// Package client implements the HTTP transport for the FrigoCheck
// backend: a single shared dispatcher that decorates every outgoing
// request with the stored bearer token and typed wrappers for the
// user, shopping-list and stock endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	frigocheck "github.com/frigocheck/go-frigocheck"
)

const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second

	// maxResponseSize caps response bodies to keep a misbehaving
	// backend from exhausting memory.
	maxResponseSize = 4 << 20
)

// TokenReader is the read-only slice of the credential store the
// transport needs. frigocheck.CredentialStore satisfies it.
type TokenReader interface {
	Read(ctx context.Context) (frigocheck.Credentials, error)
}

// Client is the shared request dispatcher. All requests go out with
// Content-Type application/json, a per-request correlation id and,
// when a token is stored, an Authorization bearer header. A cookie jar
// carries backend cookies across requests (the withCredentials analog
// of the original browser client).
type Client struct {
	baseURL string
	http    *http.Client
	creds   TokenReader
	logger  frigocheck.Logger
}

var _ frigocheck.API = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// WithLogger overrides the client logger.
func WithLogger(logger frigocheck.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a client for the given base URL. creds may be nil, in
// which case every request goes out unauthenticated.
func New(baseURL string, creds TokenReader, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		creds:   creds,
		logger:  noopLogger{},
		http: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// apiError is the error payload the backend attaches to non-2xx
// responses. Some endpoints use "message", others "error".
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// do performs a single request. body is marshalled as JSON when
// non-nil, out is unmarshalled from the response body when non-nil.
// The raw response body is returned so callers can re-interpret
// endpoint-specific error payloads.
func (c *Client) do(ctx context.Context, method, path string, body, out any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not build request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	c.setAuthorization(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "request failed").
			WithMetadata(map[string]any{
				"method": method,
				"path":   path,
			})
	}
	defer resp.Body.Close()

	raw, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return raw, c.errorFromResponse(method, path, resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return raw, goerrors.Wrap(err, goerrors.CategoryBadInput, "could not decode response body").
				WithMetadata(map[string]any{
					"method": method,
					"path":   path,
				})
		}
	}
	return raw, nil
}

// setAuthorization reads the current token on every request. Absence
// of a token sends the request unauthenticated rather than failing
// locally; a store read error is logged and treated the same way.
func (c *Client) setAuthorization(ctx context.Context, req *http.Request) {
	if c.creds == nil {
		return
	}

	creds, err := c.creds.Read(ctx)
	if err != nil {
		c.logger.Warn("Could not read credentials, sending unauthenticated", "error", err)
		return
	}
	if creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}
}

// errorFromResponse maps a non-2xx status to a rich error carrying the
// server's error payload when present. A 401 is logged as a
// session-expiry notice but the transport deliberately neither clears
// credentials nor forces a redirect; that decision belongs to the
// caller, which avoids stampedes when several concurrent requests all
// come back 401.
func (c *Client) errorFromResponse(method, path string, status int, raw []byte) error {
	payload := apiError{}
	_ = json.Unmarshal(raw, &payload)

	msg := payload.text()
	meta := map[string]any{
		"method": method,
		"path":   path,
		"status": status,
	}

	switch status {
	case http.StatusUnauthorized:
		c.logger.Info("Session expired or token invalid", "path", path)
		if msg == "" {
			msg = "session expired or token invalid"
		}
		return goerrors.New(msg, goerrors.CategoryAuth).
			WithCode(goerrors.CodeUnauthorized).
			WithMetadata(meta)

	case http.StatusNotFound:
		if msg == "" {
			msg = "resource not found"
		}
		return goerrors.New(msg, goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound).
			WithMetadata(meta)

	case http.StatusConflict:
		if msg == "" {
			msg = "conflicting resource"
		}
		return goerrors.New(msg, goerrors.CategoryConflict).
			WithCode(goerrors.CodeConflict).
			WithMetadata(meta)

	default:
		if msg == "" {
			msg = fmt.Sprintf("backend request failed with status %d", status)
		}
		return goerrors.New(msg, goerrors.CategoryOperation).
			WithMetadata(meta)
	}
}

// readResponse reads the body through a size-limited reader.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, maxResponseSize)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "could not read response body")
	}
	if int64(len(raw)) == maxResponseSize {
		return nil, goerrors.New("response exceeded maximum size", goerrors.CategoryOperation)
	}
	return raw, nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
