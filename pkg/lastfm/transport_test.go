package lastfm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIKey:  "test-api-key",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

// TestCall_QueryParameters verifies every request carries method, key and format.
func TestCall_QueryParameters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET request, got %s", r.Method)
		}
		q := r.URL.Query()
		if got := q.Get("method"); got != "artist.getInfo" {
			t.Errorf("expected method artist.getInfo, got %s", got)
		}
		if got := q.Get("api_key"); got != "test-api-key" {
			t.Errorf("expected api_key test-api-key, got %s", got)
		}
		if got := q.Get("format"); got != "json" {
			t.Errorf("expected format json, got %s", got)
		}
		if got := q.Get("artist"); got != "Björk" {
			t.Errorf("expected artist Björk, got %s", got)
		}
		_, _ = w.Write([]byte(`{"artist": {"name": "Björk"}}`))
	})

	if _, err := client.call(context.Background(), "artist.getInfo", map[string]string{"artist": "Björk", "empty": ""}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCall_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": 6, "message": "The artist you supplied could not be found", "links": []}`))
	})

	_, err := client.call(context.Background(), "artist.getInfo", map[string]string{"artist": "nobody"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var lastfmErr *Error
	if !errors.As(err, &lastfmErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if lastfmErr.Code != ErrCodeInvalidParameters {
		t.Errorf("expected code 6, got %d", lastfmErr.Code)
	}
	if !errors.Is(err, &Error{Code: ErrCodeInvalidParameters}) {
		t.Error("expected errors.Is to match on code")
	}
}

// TestCall_Retry tests retry logic for temporary errors.
func TestCall_Retry(t *testing.T) {
	var attempts atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			_, _ = w.Write([]byte(`{"error": 11, "message": "Service Offline"}`))
			return
		}
		_, _ = w.Write([]byte(`{"toptags": {"tag": []}}`))
	})

	if _, err := client.call(context.Background(), "user.getTopTags", nil); err != nil {
		t.Fatalf("expected success after retries, got error: %v", err)
	}
	if n := attempts.Load(); n != 3 {
		t.Errorf("expected 3 attempts, got %d", n)
	}
}

// TestCall_ServerError tests handling of HTTP 5xx errors.
func TestCall_ServerError(t *testing.T) {
	var attempts atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("Service Unavailable"))
			return
		}
		_, _ = w.Write([]byte(`{"toptags": {"tag": []}}`))
	})

	if _, err := client.call(context.Background(), "user.getTopTags", nil); err != nil {
		t.Fatalf("expected success after retry, got error: %v", err)
	}
	if n := attempts.Load(); n != 2 {
		t.Errorf("expected 2 attempts, got %d", n)
	}
}

func TestCall_NonTemporaryErrorNotRetried(t *testing.T) {
	var attempts atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		_, _ = w.Write([]byte(`{"error": 10, "message": "Invalid API key"}`))
	})

	_, err := client.call(context.Background(), "user.getTopTags", nil)
	if err == nil || !strings.Contains(err.Error(), "error 10") {
		t.Fatalf("expected error 10, got %v", err)
	}
	if n := attempts.Load(); n != 1 {
		t.Errorf("expected 1 attempt, got %d", n)
	}
}

func TestCall_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<lfm status="ok"></lfm>`))
	})

	_, err := client.call(context.Background(), "user.getTopTags", nil)
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected *FormatError, got %v", err)
	}
}

// TestCall_ContextCancellation tests context cancellation.
func TestCall_ContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.call(ctx, "user.getTopTags", nil)
	if err == nil {
		t.Fatal("expected context deadline error, got nil")
	}
	if !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("expected context deadline error, got %v", err)
	}
}

func TestNextBackoff(t *testing.T) {
	if got := nextBackoff(time.Second); got != 2*time.Second {
		t.Errorf("nextBackoff(1s) = %v, want 2s", got)
	}
	if got := nextBackoff(20 * time.Second); got != 30*time.Second {
		t.Errorf("nextBackoff(20s) = %v, want 30s", got)
	}
}

func TestError_Temporary(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{ErrCodeServiceOffline, true},
		{ErrCodeTempUnavailable, true},
		{ErrCodeRateLimitExceeded, true},
		{ErrCodeInvalidAPIKey, false},
		{ErrCodeInvalidParameters, false},
	}
	for _, tt := range tests {
		if got := (&Error{Code: tt.code}).Temporary(); got != tt.want {
			t.Errorf("Temporary() for code %d = %v, want %v", tt.code, got, tt.want)
		}
	}
}
