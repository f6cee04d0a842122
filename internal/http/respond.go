package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Clark-Hu/movie-catalog/internal/events"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
	"github.com/Clark-Hu/movie-catalog/internal/schema"
)

const (
	maxRequestBody = 1 << 20 // 1 MiB
	publishTimeout = 2 * time.Second
)

var errInvalidID = errors.New("invalid id")

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondCreated(w http.ResponseWriter, collection string, id int64) {
	w.Header().Set("Location", fmt.Sprintf("/%s/%d", collection, id))
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) respondNotFound(w http.ResponseWriter) {
	s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
}

// respondLoadError answers a body that could not be read or loaded.
func (s *Server) respondLoadError(w http.ResponseWriter, err error) {
	var vErr *schema.ValidationError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &vErr):
		resp := errorResponse{Code: "VALIDATION_ERROR", Message: vErr.Error()}
		if vErr.Field != "" {
			resp.Details = map[string]string{"field": vErr.Field}
		}
		s.respondJSON(w, http.StatusBadRequest, resp)
	case errors.As(err, &maxErr):
		s.respondError(w, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR", "Request body too large")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to read request body")
	}
}

// respondRepoError maps repository failures onto HTTP statuses; op names the
// failed operation in logs and 500 messages.
func (s *Server) respondRepoError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.respondNotFound(w)
	case errors.Is(err, repository.ErrInvalidReference):
		s.respondError(w, http.StatusBadRequest, "INVALID_REFERENCE", "director_id or genre_id does not reference an existing record")
	default:
		s.logger.Printf("%s error: %v", op, err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to "+op)
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

func parseIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// parseOptionalID reads an integer query parameter; blank means unset.
func parseOptionalID(query url.Values, key string) (*int64, error) {
	val := strings.TrimSpace(query.Get(key))
	if val == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value", key)
	}
	return &id, nil
}

// publish emits a change event synchronously, before the response is written.
// The broker gets at most publishTimeout, detached from client cancellation;
// failures are logged and never reach the client.
func (s *Server) publish(ctx context.Context, entity string, action events.Action, id int64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	change := events.NewChange(entity, action, id)
	if err := s.publisher.Publish(ctx, change); err != nil {
		s.logger.Printf("publish %s for id %d failed: %v", change.RoutingKey(), id, err)
	}
}
