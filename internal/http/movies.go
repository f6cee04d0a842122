package httpserver

import (
	"net/http"
	"net/url"

	"github.com/Clark-Hu/movie-catalog/internal/events"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
	"github.com/Clark-Hu/movie-catalog/internal/schema"
)

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	filter, err := buildMovieFilter(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movies, err := s.repo.Movies.List(r.Context(), filter)
	if err != nil {
		s.respondRepoError(w, err, "list movies")
		return
	}
	s.respondJSON(w, http.StatusOK, schema.DumpMovies(movies))
}

func buildMovieFilter(query url.Values) (repository.MovieFilter, error) {
	var filter repository.MovieFilter
	var err error
	if filter.DirectorID, err = parseOptionalID(query, "director_id"); err != nil {
		return filter, err
	}
	if filter.GenreID, err = parseOptionalID(query, "genre_id"); err != nil {
		return filter, err
	}
	return filter, nil
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.respondLoadError(w, err)
		return
	}
	fields, err := schema.LoadMovie(body)
	if err != nil {
		s.respondLoadError(w, err)
		return
	}

	movie, err := s.repo.Movies.Create(r.Context(), fields)
	if err != nil {
		s.respondRepoError(w, err, "create movie")
		return
	}
	s.publish(r.Context(), events.EntityMovie, events.ActionCreated, movie.ID)
	s.respondCreated(w, "movies", movie.ID)
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondNotFound(w)
		return
	}

	movie, err := s.repo.Movies.GetByID(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "fetch movie")
		return
	}
	s.respondJSON(w, http.StatusOK, schema.DumpMovie(movie))
}

func (s *Server) handleReplaceMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondNotFound(w)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		s.respondLoadError(w, err)
		return
	}
	fields, err := schema.LoadMovie(body)
	if err != nil {
		s.respondLoadError(w, err)
		return
	}

	if _, err := s.repo.Movies.Replace(r.Context(), id, fields); err != nil {
		s.respondRepoError(w, err, "replace movie")
		return
	}
	s.publish(r.Context(), events.EntityMovie, events.ActionReplaced, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePatchMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondNotFound(w)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		s.respondLoadError(w, err)
		return
	}
	patch, err := schema.LoadMoviePatch(body)
	if err != nil {
		s.respondLoadError(w, err)
		return
	}

	if _, err := s.repo.Movies.Patch(r.Context(), id, patch); err != nil {
		s.respondRepoError(w, err, "update movie")
		return
	}
	if !patch.Empty() {
		s.publish(r.Context(), events.EntityMovie, events.ActionPatched, id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		s.respondNotFound(w)
		return
	}

	if err := s.repo.Movies.Delete(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "delete movie")
		return
	}
	s.publish(r.Context(), events.EntityMovie, events.ActionDeleted, id)
	w.WriteHeader(http.StatusNoContent)
}
