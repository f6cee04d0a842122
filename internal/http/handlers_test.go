package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Clark-Hu/movie-catalog/internal/config"
	"github.com/Clark-Hu/movie-catalog/internal/events"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
	"github.com/Clark-Hu/movie-catalog/internal/store/storetest"
)

// recordingPublisher keeps every published change for assertions.
type recordingPublisher struct {
	mu      sync.Mutex
	changes []events.Change
}

func (p *recordingPublisher) Publish(_ context.Context, change events.Change) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, change)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) routingKeys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.changes))
	for _, c := range p.changes {
		keys = append(keys, c.RoutingKey())
	}
	return keys
}

// deadlinePublisher records the deadline it was given and always fails.
type deadlinePublisher struct {
	mu        sync.Mutex
	remaining []time.Duration
}

func (p *deadlinePublisher) Publish(ctx context.Context, _ events.Change) error {
	deadline, ok := ctx.Deadline()
	p.mu.Lock()
	defer p.mu.Unlock()
	if ok {
		p.remaining = append(p.remaining, time.Until(deadline))
	} else {
		p.remaining = append(p.remaining, -1)
	}
	return errors.New("broker unavailable")
}

func (p *deadlinePublisher) Close() error { return nil }

type fakeHealth struct{ err error }

func (f fakeHealth) HealthCheck(context.Context) error { return f.err }

func testConfig() config.Config {
	return config.Config{
		Port:             "0",
		ReadTimeoutSecs:  15,
		WriteTimeoutSecs: 15,
		IdleTimeoutSecs:  60,
	}
}

func buildTestServer(tb testing.TB) (*Server, *recordingPublisher) {
	tb.Helper()

	pool := storetest.NewPool(tb, "catalog_handlers_test")
	repo := repository.NewWithPool(pool)
	publisher := &recordingPublisher{}
	logger := log.New(io.Discard, "", 0)
	srv := New(testConfig(), fakeHealth{}, repo, publisher, logger)
	// Replace chi router to avoid default middleware noise.
	srv.router = chi.NewRouter()
	srv.registerRoutes()
	return srv, publisher
}

func do(tb testing.TB, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	tb.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func expectStatus(tb testing.TB, rec *httptest.ResponseRecorder, want int) {
	tb.Helper()
	if rec.Code != want {
		tb.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func decodeBody(tb testing.TB, rec *httptest.ResponseRecorder) map[string]interface{} {
	tb.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		tb.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestGenreCreateThenGet(t *testing.T) {
	srv, publisher := buildTestServer(t)

	rec := do(t, srv, http.MethodPost, "/genres/", `{"name": "Drama"}`)
	expectStatus(t, rec, http.StatusCreated)
	if rec.Body.Len() != 0 {
		t.Fatalf("create body = %q, want empty", rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/genres/1" {
		t.Fatalf("Location = %q, want /genres/1", loc)
	}

	rec = do(t, srv, http.MethodGet, "/genres/1", "")
	expectStatus(t, rec, http.StatusOK)
	if got := strings.TrimSpace(rec.Body.String()); got != `{"id":1,"name":"Drama"}` {
		t.Fatalf("body = %s", got)
	}

	rec = do(t, srv, http.MethodGet, "/genres", "")
	expectStatus(t, rec, http.StatusOK)
	if got := strings.TrimSpace(rec.Body.String()); got != `[{"id":1,"name":"Drama"}]` {
		t.Fatalf("list body = %s", got)
	}

	if keys := publisher.routingKeys(); !reflect.DeepEqual(keys, []string{"genre.created"}) {
		t.Fatalf("published %v", keys)
	}
}

func TestMovieLifecycle(t *testing.T) {
	srv, publisher := buildTestServer(t)

	expectStatus(t, do(t, srv, http.MethodPost, "/directors/", `{"name":"Denis Villeneuve"}`), http.StatusCreated)
	expectStatus(t, do(t, srv, http.MethodPost, "/genres/", `{"name":"Sci-Fi"}`), http.StatusCreated)

	rec := do(t, srv, http.MethodPost, "/movies/", `{"title":"X","year":2020,"rating":7.5,"director_id":1,"genre_id":1}`)
	expectStatus(t, rec, http.StatusCreated)
	if loc := rec.Header().Get("Location"); loc != "/movies/1" {
		t.Fatalf("Location = %q, want /movies/1", loc)
	}

	rec = do(t, srv, http.MethodGet, "/movies/1", "")
	expectStatus(t, rec, http.StatusOK)
	got := decodeBody(t, rec)
	want := map[string]interface{}{
		"id":          float64(1),
		"title":       "X",
		"description": nil,
		"trailer":     nil,
		"year":        float64(2020),
		"rating":      7.5,
		"director_id": float64(1),
		"genre_id":    float64(1),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GET /movies/1 = %v, want %v", got, want)
	}

	rec = do(t, srv, http.MethodPatch, "/movies/1", `{"rating": 8.0}`)
	expectStatus(t, rec, http.StatusNoContent)

	got = decodeBody(t, do(t, srv, http.MethodGet, "/movies/1", ""))
	if got["rating"] != 8.0 || got["title"] != "X" || got["year"] != float64(2020) {
		t.Fatalf("after PATCH = %v", got)
	}

	rec = do(t, srv, http.MethodPut, "/movies/1", `{"title":"Y","description":"replaced"}`)
	expectStatus(t, rec, http.StatusNoContent)

	got = decodeBody(t, do(t, srv, http.MethodGet, "/movies/1", ""))
	want = map[string]interface{}{
		"id":          float64(1),
		"title":       "Y",
		"description": "replaced",
		"trailer":     nil,
		"year":        nil,
		"rating":      nil,
		"director_id": nil,
		"genre_id":    nil,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("after PUT = %v, want %v", got, want)
	}

	expectStatus(t, do(t, srv, http.MethodDelete, "/movies/1", ""), http.StatusNoContent)
	expectStatus(t, do(t, srv, http.MethodGet, "/movies/1", ""), http.StatusNotFound)
	expectStatus(t, do(t, srv, http.MethodDelete, "/movies/1", ""), http.StatusNotFound)

	wantKeys := []string{
		"director.created",
		"genre.created",
		"movie.created",
		"movie.patched",
		"movie.replaced",
		"movie.deleted",
	}
	if keys := publisher.routingKeys(); !reflect.DeepEqual(keys, wantKeys) {
		t.Fatalf("published %v, want %v", keys, wantKeys)
	}
}

func TestListMoviesFilters(t *testing.T) {
	srv, _ := buildTestServer(t)

	for _, body := range []string{`{"name":"A"}`, `{"name":"B"}`} {
		expectStatus(t, do(t, srv, http.MethodPost, "/directors/", body), http.StatusCreated)
		expectStatus(t, do(t, srv, http.MethodPost, "/genres/", body), http.StatusCreated)
	}
	movies := []string{
		`{"title":"one","director_id":1,"genre_id":1}`,
		`{"title":"two","director_id":1,"genre_id":2}`,
		`{"title":"three","director_id":2,"genre_id":1}`,
	}
	for _, body := range movies {
		expectStatus(t, do(t, srv, http.MethodPost, "/movies/", body), http.StatusCreated)
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"one", "two", "three"}},
		{"?director_id=1", []string{"one", "two"}},
		{"?genre_id=1", []string{"one", "three"}},
		{"?director_id=1&genre_id=1", []string{"one"}},
		{"?director_id=2&genre_id=2", []string{}},
		{"?director_id=", []string{"one", "two", "three"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/movies/"+tt.query, "")
			expectStatus(t, rec, http.StatusOK)
			var items []map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
				t.Fatalf("decode list: %v", err)
			}
			titles := make([]string, 0, len(items))
			for _, item := range items {
				titles = append(titles, item["title"].(string))
			}
			if !reflect.DeepEqual(titles, tt.want) {
				t.Fatalf("titles = %v, want %v", titles, tt.want)
			}
		})
	}

	expectStatus(t, do(t, srv, http.MethodGet, "/movies/?genre_id=drama", ""), http.StatusBadRequest)
}

func TestErrorMapping(t *testing.T) {
	srv, publisher := buildTestServer(t)
	expectStatus(t, do(t, srv, http.MethodPost, "/directors/", `{"name":"Existing"}`), http.StatusCreated)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		status   int
		wantCode string
	}{
		{"delete missing director", http.MethodDelete, "/directors/99", "", http.StatusNotFound, "NOT_FOUND"},
		{"get missing genre", http.MethodGet, "/genres/99", "", http.StatusNotFound, "NOT_FOUND"},
		{"put missing genre", http.MethodPut, "/genres/99", `{"name":"x"}`, http.StatusNotFound, "NOT_FOUND"},
		{"patch missing movie", http.MethodPatch, "/movies/99", `{"rating":1}`, http.StatusNotFound, "NOT_FOUND"},
		{"non integer id", http.MethodGet, "/movies/abc", "", http.StatusNotFound, "NOT_FOUND"},
		{"malformed json", http.MethodPost, "/movies/", `{"title":`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing title", http.MethodPost, "/movies/", `{"year":2020}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrong type", http.MethodPost, "/movies/", `{"title":"X","year":"2020"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"year out of range", http.MethodPost, "/movies/", `{"title":"X","year":3000000000}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"empty body", http.MethodPost, "/genres/", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"put director without name", http.MethodPut, "/directors/1", `{}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown director", http.MethodPost, "/movies/", `{"title":"X","director_id":42}`, http.StatusBadRequest, "INVALID_REFERENCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.path, tt.body)
			expectStatus(t, rec, tt.status)
			if code := decodeBody(t, rec)["code"]; code != tt.wantCode {
				t.Fatalf("code = %v, want %s", code, tt.wantCode)
			}
		})
	}

	rec := do(t, srv, http.MethodPatch, "/directors/1", `{"name":"x"}`)
	expectStatus(t, rec, http.StatusMethodNotAllowed)

	if keys := publisher.routingKeys(); !reflect.DeepEqual(keys, []string{"director.created"}) {
		t.Fatalf("failed requests published events: %v", keys)
	}
}

func TestHandleHealthz(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	ok := New(testConfig(), fakeHealth{}, nil, nil, logger)
	rec := httptest.NewRecorder()
	ok.handleHealthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	expectStatus(t, rec, http.StatusOK)

	down := New(testConfig(), fakeHealth{err: errors.New("connection refused")}, nil, nil, logger)
	rec = httptest.NewRecorder()
	down.handleHealthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	expectStatus(t, rec, http.StatusServiceUnavailable)
}

func TestPublishIsBoundedAndNonFatal(t *testing.T) {
	srv, _ := buildTestServer(t)
	publisher := &deadlinePublisher{}
	srv.publisher = publisher

	expectStatus(t, do(t, srv, http.MethodPost, "/genres/", `{"name":"Noir"}`), http.StatusCreated)
	expectStatus(t, do(t, srv, http.MethodDelete, "/genres/1", ""), http.StatusNoContent)

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if len(publisher.remaining) != 2 {
		t.Fatalf("publish calls = %d, want 2", len(publisher.remaining))
	}
	for _, left := range publisher.remaining {
		if left <= 0 || left > publishTimeout {
			t.Fatalf("publish deadline %v, want within (0, %v]", left, publishTimeout)
		}
	}
}
