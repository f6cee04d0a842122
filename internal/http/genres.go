package httpserver

import (
	"net/http"

	"github.com/Clark-Hu/movie-catalog/internal/events"
	"github.com/Clark-Hu/movie-catalog/internal/schema"
)

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.repo.Genres.List(r.Context())
	if err != nil {
		s.respondRepoError(w, err, "list genres")
		return
	}
	s.respondJSON(w, http.StatusOK, schema.DumpGenres(genres))
}

func (s *Server) handleCreateGenre(w http.ResponseWriter, r *http.Request) {
	name, ok := s.loadName(w, r)
	if !ok {
		return
	}

	genre, err := s.repo.Genres.Create(r.Context(), name)
	if err != nil {
		s.respondRepoError(w, err, "create genre")
		return
	}
	s.publish(r.Context(), events.EntityGenre, events.ActionCreated, genre.ID)
	s.respondCreated(w, "genres", genre.ID)
}

func (s *Server) handleGetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondNotFound(w)
		return
	}

	genre, err := s.repo.Genres.GetByID(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "fetch genre")
		return
	}
	s.respondJSON(w, http.StatusOK, schema.DumpGenre(genre))
}

func (s *Server) handleReplaceGenre(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondNotFound(w)
		return
	}
	name, ok := s.loadName(w, r)
	if !ok {
		return
	}

	if _, err := s.repo.Genres.Replace(r.Context(), id, name); err != nil {
		s.respondRepoError(w, err, "replace genre")
		return
	}
	s.publish(r.Context(), events.EntityGenre, events.ActionReplaced, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteGenre(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondNotFound(w)
		return
	}

	if err := s.repo.Genres.Delete(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "delete genre")
		return
	}
	s.publish(r.Context(), events.EntityGenre, events.ActionDeleted, id)
	w.WriteHeader(http.StatusNoContent)
}
