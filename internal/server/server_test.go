package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlorenz/picset/pkg/httputil"
	"github.com/mlorenz/picset/pkg/pipeline"
)

const entityJSON = `{
	"links": [
		{"href": "a.jpg", "type": "image/jpeg", "classes": ["tile", "min"]},
		{"href": "b.jpg", "type": "image/jpeg", "classes": ["tile", "min", "high-density"]}
	]
}`

func testServer() *Server {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, httputil.NewClient(time.Second), logger)
	return New(runner, logger)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestDeriveEntity(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/srcset?class=tile", strings.NewReader(entityJSON))
	testServer().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp deriveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if want := "a.jpg 145w, b.jpg 290w"; resp.Srcset != want {
		t.Errorf("srcset = %q, want %q", resp.Srcset, want)
	}
	if resp.DefaultLink != "b.jpg" {
		t.Errorf("default_link = %q, want b.jpg", resp.DefaultLink)
	}
	if resp.Class != "tile" {
		t.Errorf("class = %q", resp.Class)
	}
	if resp.RequestID == "" {
		t.Error("missing request_id")
	}
}

func TestDeriveEntityDefaultsClass(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/srcset", strings.NewReader(entityJSON))
	testServer().ServeHTTP(rec, req)

	var resp deriveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Class != "tile" {
		t.Errorf("class = %q, want tile", resp.Class)
	}
}

func TestDeriveEntityRejectsBareReference(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/srcset",
		strings.NewReader(`{"href": "https://api.example.com/images/42"}`))
	testServer().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "NOT_HYDRATED" {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestDeriveEntityRejectsMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/srcset", strings.NewReader("{nope"))
	testServer().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeriveURL(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(entityJSON))
	}))
	defer backend.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/srcset?url="+backend.URL, nil)
	testServer().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp deriveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if want := "a.jpg 145w, b.jpg 290w"; resp.Srcset != want {
		t.Errorf("srcset = %q, want %q", resp.Srcset, want)
	}
	if resp.EntityHash == "" {
		t.Error("missing entity_hash")
	}
}

func TestDeriveURLValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/srcset?url=ftp://bad", nil)
	testServer().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeriveURLCacheBust(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(entityJSON))
	}))
	defer backend.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/srcset?url="+backend.URL+"&bust=1", nil)
	testServer().ServeHTTP(rec, req)

	var resp deriveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Srcset, "timestamp=") {
		t.Errorf("expected cache-busted srcset, got %q", resp.Srcset)
	}
}
