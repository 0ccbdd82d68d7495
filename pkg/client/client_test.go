//go:build !integration

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, "viewserver", "tester", opts...), server
}

func TestConnect(t *testing.T) {
	t.Run("exchanges credentials for a token", func(t *testing.T) {
		var seenBody map[string]string
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/token", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&seenBody))
			fmt.Fprint(w, "token-abc123")
		}), WithPassword("secret"))

		require.NoError(t, c.Connect(context.Background()))
		assert.Equal(t, "token-abc123", c.Token())
		assert.Equal(t, "tester", seenBody["userId"])
		assert.Equal(t, "secret", seenBody["password"])
	})

	t.Run("refuses without a password", func(t *testing.T) {
		c := New("http://localhost:1", "viewserver", "tester")
		err := c.Connect(context.Background())
		require.Error(t, err)
		assert.True(t, IsNotAuthorized(err))
	})

	t.Run("bad credentials", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}), WithPassword("wrong"))

		err := c.Connect(context.Background())
		require.Error(t, err)
		assert.True(t, IsNotAuthorized(err))
	})
}

func TestDoRequest(t *testing.T) {
	t.Run("attaches bearer token", func(t *testing.T) {
		var authHeader string
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader = r.Header.Get("Authorization")
			fmt.Fprint(w, `{"relatedHTTPCode":200,"guid":"g-1"}`)
		}), WithToken("tok"))

		_, err := c.doRequest(context.Background(), http.MethodGet, c.PlatformURL()+"/api/v3/origin", nil)
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok", authHeader)
	})

	t.Run("translates envelope exceptions", func(t *testing.T) {
		tests := []struct {
			name      string
			body      string
			wantKind  ErrorKind
		}{
			{
				name:     "invalid parameter",
				body:     `{"relatedHTTPCode":400,"exceptionClassName":"InvalidParameterException","exceptionErrorMessage":"bad guid"}`,
				wantKind: ErrorKindInvalidParameter,
			},
			{
				name:     "not authorized",
				body:     `{"relatedHTTPCode":403,"exceptionClassName":"UserNotAuthorizedException","exceptionErrorMessage":"nope"}`,
				wantKind: ErrorKindNotAuthorized,
			},
			{
				name:     "platform failure",
				body:     `{"relatedHTTPCode":500,"exceptionClassName":"PropertyServerException","exceptionErrorMessage":"repository down"}`,
				wantKind: ErrorKindPlatform,
			},
			{
				name:     "not found by code",
				body:     `{"relatedHTTPCode":404,"exceptionClassName":"OMAGCheckedExceptionBase","exceptionErrorMessage":"no such element"}`,
				wantKind: ErrorKindNotFound,
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprint(w, tc.body)
				}), WithMaxRetries(0))

				_, err := c.doRequest(context.Background(), http.MethodGet, c.PlatformURL()+"/x", nil)
				require.Error(t, err)
				var ce *ClientError
				require.ErrorAs(t, err, &ce)
				assert.Equal(t, tc.wantKind, ce.Kind)
			})
		}
	})

	t.Run("retries transient failures", func(t *testing.T) {
		var calls atomic.Int32
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			fmt.Fprint(w, `{"relatedHTTPCode":200,"guid":"g-1"}`)
		}))

		env, err := c.doRequest(context.Background(), http.MethodGet, c.PlatformURL()+"/x", nil)
		require.NoError(t, err)
		assert.Equal(t, "g-1", env.GUID)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("honors Retry-After on 429", func(t *testing.T) {
		var calls atomic.Int32
		start := time.Now()
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			fmt.Fprint(w, `{"relatedHTTPCode":200,"guid":"g-1"}`)
		}))

		_, err := c.doRequest(context.Background(), http.MethodGet, c.PlatformURL()+"/x", nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), time.Second)
	})

	t.Run("does not retry parameter errors", func(t *testing.T) {
		var calls atomic.Int32
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		}))

		_, err := c.doRequest(context.Background(), http.MethodGet, c.PlatformURL()+"/x", nil)
		require.Error(t, err)
		assert.True(t, IsInvalidParameter(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("re-authenticates once on 401", func(t *testing.T) {
		var tokenIssued atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "fresh-%d", tokenIssued.Add(1))
		})
		mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer fresh-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, `{"relatedHTTPCode":200,"guid":"g-1"}`)
		})
		c, _ := newTestClient(t, mux, WithPassword("secret"), WithToken("stale"))

		env, err := c.doRequest(context.Background(), http.MethodGet, c.PlatformURL()+"/x", nil)
		require.NoError(t, err)
		assert.Equal(t, "g-1", env.GUID)
		assert.Equal(t, int32(1), tokenIssued.Load())
	})

	t.Run("connection refused", func(t *testing.T) {
		c := New("http://127.0.0.1:1", "viewserver", "tester", WithMaxRetries(0))
		_, err := c.doRequest(context.Background(), http.MethodGet, c.PlatformURL()+"/x", nil)
		require.Error(t, err)
		var ce *ClientError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, ErrorKindConnection, ce.Kind)
		assert.True(t, IsTransient(err))
	})
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseRetryAfter("5"))
	assert.Equal(t, time.Duration(0), parseRetryAfter(""))
	assert.Equal(t, time.Duration(0), parseRetryAfter("soon"))

	future := time.Now().Add(10 * time.Second).UTC().Format(http.TimeFormat)
	assert.Greater(t, parseRetryAfter(future), 5*time.Second)
}

func TestClientErrorFormatting(t *testing.T) {
	err := &ClientError{
		Kind:              ErrorKindPlatform,
		StatusCode:        500,
		Message:           "repository down",
		PlatformException: "PropertyServerException",
	}
	assert.Contains(t, err.Error(), "PlatformError")
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Contains(t, err.Error(), "PropertyServerException")
}
