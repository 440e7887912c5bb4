package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	pkgerrors "github.com/mlorenz/picset/pkg/errors"
)

func testClient() *Client {
	c := NewClient(5 * time.Second)
	c.delay = time.Millisecond // keep retries fast in tests
	return c
}

func TestFetchDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") == "" {
			t.Error("missing Accept header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"links":[]}`))
	}))
	defer srv.Close()

	doc, err := testClient().FetchDocument(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchDocument: %v", err)
	}
	if string(doc.Body) != `{"links":[]}` {
		t.Errorf("body = %q", doc.Body)
	}
	if doc.ContentType != "application/json" {
		t.Errorf("content type = %q", doc.ContentType)
	}
}

func TestFetchDocumentNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := testClient().FetchDocument(context.Background(), srv.URL)
	if !pkgerrors.Is(err, pkgerrors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestFetchDocumentRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	doc, err := testClient().FetchDocument(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchDocument: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
	if len(doc.Body) == 0 {
		t.Error("empty body after retry success")
	}
}

func TestFetchDocumentDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := testClient().FetchDocument(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 403")
	}
	if calls.Load() != 1 {
		t.Errorf("4xx should not retry, got %d attempts", calls.Load())
	}
}

func TestFetchDocumentRejectsBadURLs(t *testing.T) {
	for _, url := range []string{"", "ftp://example.com/img", "not-a-url"} {
		if _, err := testClient().FetchDocument(context.Background(), url); err == nil {
			t.Errorf("expected error for %q", url)
		}
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("SucceedsAfterTransientFailures", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			if calls < 2 {
				return &RetryableError{Err: errors.New("transient")}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Retry: %v", err)
		}
		if calls != 2 {
			t.Errorf("calls = %d, want 2", calls)
		}
	})

	t.Run("PermanentErrorReturnsImmediately", func(t *testing.T) {
		calls := 0
		permanent := errors.New("permanent")
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return permanent
		})
		if !errors.Is(err, permanent) {
			t.Fatalf("expected permanent error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return &RetryableError{Err: errors.New("always")}
		})
		if err == nil {
			t.Fatal("expected error after exhausting attempts")
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("HonorsRetryAfterHint", func(t *testing.T) {
		calls := 0
		start := time.Now()
		// The base delay is an hour; only the After hint makes this finish.
		err := Retry(ctx, 2, time.Hour, func() error {
			calls++
			if calls < 2 {
				return &RetryableError{Err: errors.New("throttled"), After: time.Millisecond}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Retry: %v", err)
		}
		if elapsed := time.Since(start); elapsed > time.Minute {
			t.Errorf("retry waited %s, hint ignored", elapsed)
		}
	})

	t.Run("HonorsCancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := Retry(cctx, 3, time.Hour, func() error {
			return &RetryableError{Err: errors.New("transient")}
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
