package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/mlorenz/picset/pkg/errors"
	"github.com/mlorenz/picset/pkg/hypermedia"
	"github.com/mlorenz/picset/pkg/pipeline"
)

// ctxKey is the type for context keys used in this package.
type ctxKey int

const requestIDKey ctxKey = 0

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// deriveResponse is the JSON body for successful derivations.
type deriveResponse struct {
	RequestID string `json:"request_id"`
	Class     string `json:"class"`
	pipeline.Payload
	EntityHash string `json:"entity_hash,omitempty"`
}

// errorResponse is the JSON body for failures.
type errorResponse struct {
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Error     string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDeriveURL fetches the resource named in ?url= through the pipeline
// and derives its srcsets.
func (s *Server) handleDeriveURL(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{
		URL:       r.URL.Query().Get("url"),
		Class:     r.URL.Query().Get("class"),
		CacheBust: queryFlag(r, "bust"),
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deriveResponse{
		RequestID:  requestIDFrom(r.Context()),
		Class:      opts.Class,
		Payload:    result.Payload,
		EntityHash: result.EntityHash,
	})
}

// handleDeriveEntity derives srcsets from an entity document in the request
// body, skipping the fetch stage.
func (s *Server) handleDeriveEntity(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	img, err := hypermedia.UnmarshalImage(body)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidEntity, err, "decode image document"))
		return
	}
	if !img.Hydrated() {
		s.writeError(w, r, errors.New(errors.ErrCodeNotHydrated,
			"entity is a bare reference with no link data"))
		return
	}

	class := r.URL.Query().Get("class")
	if class == "" {
		class = pipeline.DefaultClass
	}

	payload := pipeline.Derive(img, class, queryFlag(r, "bust"))
	writeJSON(w, http.StatusOK, deriveResponse{
		RequestID: requestIDFrom(r.Context()),
		Class:     class,
		Payload:   payload,
	})
}

// writeError maps structured error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidContext, errors.ErrCodeInvalidEntity:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeNotHydrated:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", requestIDFrom(r.Context()))
	}

	writeJSON(w, status, errorResponse{
		RequestID: requestIDFrom(r.Context()),
		Code:      string(errors.GetCode(err)),
		Error:     errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func queryFlag(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "1", "true", "yes":
		return true
	}
	return false
}
