// Package client implements the REST client for a metadata-governance view
// server. The base Client owns the bearer-token lifecycle, request retries,
// and translation of platform responses into typed errors; per-resource
// clients (GlossaryClient, TermClient, ...) layer operation methods on top.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/metaforge-io/metaforge/pkg/constants"
	"github.com/metaforge-io/metaforge/pkg/logger"
)

var clientLog = logger.New("client:base")

// Client is the base connection to a view server. It is safe for concurrent
// use; resource clients share one Client so the token and retry settings are
// held in one place.
type Client struct {
	platformURL string
	server      string
	userID      string
	password    string

	httpClient *http.Client
	maxRetries int

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithPassword supplies a password, enabling Connect and automatic re-auth
// when a request comes back 401.
func WithPassword(password string) Option {
	return func(c *Client) { c.password = password }
}

// WithToken supplies a previously issued bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxRetries sets how many times a transient failure is retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// New creates a client for the view server at platformURL. The server name
// selects the view-server instance on a multi-tenant platform and appears in
// every request path.
func New(platformURL, server, userID string, opts ...Option) *Client {
	c := &Client{
		platformURL: strings.TrimRight(platformURL, "/"),
		server:      server,
		userID:      userID,
		httpClient:  &http.Client{Timeout: constants.DefaultTimeout},
		maxRetries:  3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PlatformURL returns the configured platform base URL.
func (c *Client) PlatformURL() string { return c.platformURL }

// Server returns the configured view-server name.
func (c *Client) Server() string { return c.server }

// UserID returns the identity requests are made as.
func (c *Client) UserID() string { return c.userID }

// Token returns the current bearer token, or empty if not connected.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Connect exchanges the configured user and password for a bearer token.
// The token is retained and attached to every subsequent request.
func (c *Client) Connect(ctx context.Context) error {
	if c.password == "" {
		return newError(ErrorKindNotAuthorized, "no password configured; supply a token or password")
	}

	body, _ := json.Marshal(map[string]string{
		"userId":   c.userID,
		"password": c.password,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.platformURL+constants.TokenPath, bytes.NewReader(body))
	if err != nil {
		return &ClientError{Kind: ErrorKindInvalidParameter, Message: "cannot build token request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return translateTransportError(err, http.MethodPost, c.platformURL+constants.TokenPath)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &ClientError{Kind: ErrorKindConnection, Message: "cannot read token response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Kind:       kindFromStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("token request refused for user %q", c.userID),
			Method:     http.MethodPost,
			URL:        c.platformURL + constants.TokenPath,
		}
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return newError(ErrorKindNotAuthorized, "platform returned an empty token")
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	clientLog.Printf("Connected to %s as %s", c.platformURL, c.userID)
	return nil
}

// RefreshToken discards the current token and obtains a fresh one.
func (c *Client) RefreshToken(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	return c.Connect(ctx)
}

// Disconnect forgets the bearer token. The platform keeps no session state,
// so there is nothing to tear down remotely.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// serverPath joins an API path root with the view-server name and optional
// trailing segments, escaping each segment.
func (c *Client) serverPath(root string, segments ...string) string {
	parts := []string{c.platformURL + root, url.PathEscape(c.server)}
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	return strings.Join(parts, "/")
}

// doRequest performs one platform call with retries and returns the decoded
// response envelope. The body, when non-nil, is marshaled as JSON once and
// replayed on each attempt. Transient failures (connect errors, 429, 5xx)
// are retried with exponential backoff, honoring Retry-After. A 401 response
// triggers a single re-auth when a password is configured.
func (c *Client) doRequest(ctx context.Context, method, requestURL string, body any) (*envelope, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, &ClientError{Kind: ErrorKindInvalidParameter, Message: "cannot marshal request body", Cause: err}
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	reauthed := false
	for attempt := 0; ; attempt++ {
		env, retryAfter, err := c.attempt(ctx, method, requestURL, payload)
		if err == nil {
			return env, nil
		}

		if IsNotAuthorized(err) && !reauthed && c.password != "" {
			clientLog.Printf("Request unauthorized, refreshing token: %s %s", method, requestURL)
			if authErr := c.RefreshToken(ctx); authErr != nil {
				return nil, authErr
			}
			reauthed = true
			continue
		}

		if !IsTransient(err) || attempt >= c.maxRetries {
			return nil, err
		}

		delay := bo.NextBackOff()
		if retryAfter > 0 {
			delay = retryAfter
		}
		clientLog.Printf("Retrying %s %s after %v (attempt %d/%d): %v", method, requestURL, delay, attempt+1, c.maxRetries, err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, &ClientError{Kind: ErrorKindTimeout, Message: "request canceled during retry wait", Method: method, URL: requestURL, Cause: ctx.Err()}
		}
	}
}

// attempt performs a single HTTP round trip and envelope decode.
func (c *Client) attempt(ctx context.Context, method, requestURL string, payload []byte) (*envelope, time.Duration, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, 0, &ClientError{Kind: ErrorKindInvalidParameter, Message: "cannot build request", Method: method, URL: requestURL, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, translateTransportError(err, method, requestURL)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, 0, &ClientError{Kind: ErrorKindConnection, Message: "cannot read response body", Method: method, URL: requestURL, Cause: err}
	}

	if resp.StatusCode >= 300 {
		return nil, parseRetryAfter(resp.Header.Get("Retry-After")), &ClientError{
			Kind:       kindFromStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    httpErrorMessage(resp.StatusCode, raw),
			Method:     method,
			URL:        requestURL,
		}
	}

	env := &envelope{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, env); err != nil {
			return nil, 0, &ClientError{Kind: ErrorKindUnknown, Message: "malformed response envelope", Method: method, URL: requestURL, Cause: err}
		}
	}
	if exErr := env.exceptionError(method, requestURL); exErr != nil {
		return nil, 0, exErr
	}
	return env, 0, nil
}

// httpErrorMessage builds a short message from an error response body,
// falling back to the status text.
func httpErrorMessage(status int, raw []byte) string {
	var env envelope
	if json.Unmarshal(raw, &env) == nil && env.ExceptionErrorMessage != "" {
		return env.ExceptionErrorMessage
	}
	return http.StatusText(status)
}

// parseRetryAfter interprets a Retry-After header as either delay seconds or
// an HTTP date. Returns 0 when absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if when, err := http.ParseTime(value); err == nil {
		if d := time.Until(when); d > 0 {
			return d
		}
	}
	return 0
}

// translateTransportError maps net/http transport failures to the typed
// error taxonomy.
func translateTransportError(err error, method, requestURL string) error {
	kind := ErrorKindConnection
	msg := "cannot reach platform"
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		kind = ErrorKindTimeout
		msg = "request timed out"
	} else if errors.Is(err, context.DeadlineExceeded) {
		kind = ErrorKindTimeout
		msg = "request timed out"
	}
	return &ClientError{Kind: kind, Message: msg, Method: method, URL: requestURL, Cause: err}
}

// getGUID performs a request whose envelope carries a guid payload.
func (c *Client) getGUID(ctx context.Context, method, requestURL string, body any) (string, error) {
	env, err := c.doRequest(ctx, method, requestURL, body)
	if err != nil {
		return "", err
	}
	if env.GUID == "" {
		return "", &ClientError{Kind: ErrorKindUnknown, Message: "response contained no guid", Method: method, URL: requestURL}
	}
	return env.GUID, nil
}

// getElement performs a request whose envelope carries a single element.
func (c *Client) getElement(ctx context.Context, method, requestURL string, body any) (*Element, error) {
	env, err := c.doRequest(ctx, method, requestURL, body)
	if err != nil {
		return nil, err
	}
	element := &Element{}
	if err := env.decodeElement(element); err != nil {
		return nil, err
	}
	return element, nil
}

// getElementList performs a request whose envelope carries an element list.
func (c *Client) getElementList(ctx context.Context, method, requestURL string, body any) ([]Element, error) {
	env, err := c.doRequest(ctx, method, requestURL, body)
	if err != nil {
		return nil, err
	}
	var elements []Element
	if err := env.decodeElementList(&elements); err != nil {
		return nil, err
	}
	return elements, nil
}
