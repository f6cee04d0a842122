package httpserver

import (
	"net/http"

	"github.com/Clark-Hu/movie-catalog/internal/events"
	"github.com/Clark-Hu/movie-catalog/internal/schema"
)

func (s *Server) handleListDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := s.repo.Directors.List(r.Context())
	if err != nil {
		s.respondRepoError(w, err, "list directors")
		return
	}
	s.respondJSON(w, http.StatusOK, schema.DumpDirectors(directors))
}

func (s *Server) handleCreateDirector(w http.ResponseWriter, r *http.Request) {
	name, ok := s.loadName(w, r)
	if !ok {
		return
	}

	director, err := s.repo.Directors.Create(r.Context(), name)
	if err != nil {
		s.respondRepoError(w, err, "create director")
		return
	}
	s.publish(r.Context(), events.EntityDirector, events.ActionCreated, director.ID)
	s.respondCreated(w, "directors", director.ID)
}

func (s *Server) handleGetDirector(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondNotFound(w)
		return
	}

	director, err := s.repo.Directors.GetByID(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "fetch director")
		return
	}
	s.respondJSON(w, http.StatusOK, schema.DumpDirector(director))
}

func (s *Server) handleReplaceDirector(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondNotFound(w)
		return
	}
	name, ok := s.loadName(w, r)
	if !ok {
		return
	}

	if _, err := s.repo.Directors.Replace(r.Context(), id, name); err != nil {
		s.respondRepoError(w, err, "replace director")
		return
	}
	s.publish(r.Context(), events.EntityDirector, events.ActionReplaced, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteDirector(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondNotFound(w)
		return
	}

	if err := s.repo.Directors.Delete(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "delete director")
		return
	}
	s.publish(r.Context(), events.EntityDirector, events.ActionDeleted, id)
	w.WriteHeader(http.StatusNoContent)
}

// loadName reads a director/genre body, answering the request itself on failure.
func (s *Server) loadName(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := readBody(w, r)
	if err != nil {
		s.respondLoadError(w, err)
		return "", false
	}
	name, err := schema.LoadName(body)
	if err != nil {
		s.respondLoadError(w, err)
		return "", false
	}
	return name, true
}
