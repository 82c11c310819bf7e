package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/ratelimit"
)

func TestDo_JSONRoundTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "token", r.Header.Get("X-Test"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(map[string]string{"echo": in["name"]})
	}))
	defer ts.Close()

	c := New(Options{
		Service:  "test",
		BaseURL:  ts.URL + "/",
		Decorate: func(r *http.Request) { r.Header.Set("X-Test", "token") },
	})

	var out map[string]string
	err := c.Do(context.Background(), http.MethodPost, "/items", url.Values{"page": {"1"}}, map[string]string{"name": "x"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "x", out["echo"])
}

func TestDo_RetriesServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c := New(Options{Service: "test", BaseURL: ts.URL, MaxRetries: 5})
	var out map[string]bool
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/", nil, nil, &out))
	assert.True(t, out["ok"])
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDo_ClientErrorIsPermanent(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errorMessages":["nope"]}`))
	}))
	defer ts.Close()

	c := New(Options{Service: "jira", BaseURL: ts.URL, MaxRetries: 5})
	err := c.Do(context.Background(), http.MethodGet, "/missing", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "nope")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDo_429PausesLimiter(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	limiter := ratelimit.New(ratelimit.Config{RequestsPerSecond: 100, BurstSize: 10})
	c := New(Options{Service: "test", BaseURL: ts.URL, Limiter: limiter, MaxRetries: 2})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := c.Do(ctx, http.MethodGet, "/", nil, nil, nil)

	// Retry-After 0 falls back to the default pause, so the retry cannot happen in time
	require.Error(t, err)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer waitCancel()
	assert.Error(t, limiter.Wait(waitCtx))
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseRetryAfter("5"))
	assert.Equal(t, time.Duration(0), parseRetryAfter(""))
	assert.Equal(t, time.Duration(0), parseRetryAfter("soon"))
}
