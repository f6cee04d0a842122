package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

const sample = `
directors:
  - name: Christopher Nolan
  - name: Greta Gerwig
genres:
  - name: Sci-Fi
movies:
  - title: Inception
    year: 2010
    rating: 8.8
    director: Christopher Nolan
    genre: Sci-Fi
  - title: Untitled
`

type fakeCatalog struct {
	nextID    int64
	movies    []domain.MovieFields
	failMovie error
}

func (f *fakeCatalog) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeCatalog) CreateDirector(_ context.Context, name string) (domain.Director, error) {
	return domain.Director{ID: f.id(), Name: name}, nil
}

func (f *fakeCatalog) CreateGenre(_ context.Context, name string) (domain.Genre, error) {
	return domain.Genre{ID: f.id(), Name: name}, nil
}

func (f *fakeCatalog) CreateMovie(_ context.Context, fields domain.MovieFields) (domain.Movie, error) {
	if f.failMovie != nil {
		return domain.Movie{}, f.failMovie
	}
	f.movies = append(f.movies, fields)
	return domain.Movie{ID: f.id(), MovieFields: fields}, nil
}

func TestParseAndLoad(t *testing.T) {
	fx, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	catalog := &fakeCatalog{}
	summary, err := Load(context.Background(), catalog, fx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if summary != (Summary{Directors: 2, Genres: 1, Movies: 2}) {
		t.Fatalf("summary = %+v", summary)
	}

	inception := catalog.movies[0]
	if inception.DirectorID == nil || *inception.DirectorID != 1 {
		t.Fatalf("director id = %v, want 1", inception.DirectorID)
	}
	if inception.GenreID == nil || *inception.GenreID != 3 {
		t.Fatalf("genre id = %v, want 3", inception.GenreID)
	}
	if inception.Year == nil || *inception.Year != 2010 || inception.Rating == nil || *inception.Rating != 8.8 {
		t.Fatalf("inception fields = %+v", inception)
	}

	untitled := catalog.movies[1]
	if untitled.DirectorID != nil || untitled.GenreID != nil || untitled.Year != nil {
		t.Fatalf("untitled should only carry a title: %+v", untitled)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"bad yaml", "directors: [", "parse fixtures"},
		{"blank director", "directors:\n  - name: ''\n", "name is required"},
		{"duplicate genre", "genres:\n  - name: Drama\n  - name: Drama\n", "duplicate genre"},
		{"missing title", "movies:\n  - year: 2000\n", "title is required"},
		{"year out of range", "movies:\n  - title: X\n    year: 3000000000\n", "parse fixtures"},
		{"unknown director", "movies:\n  - title: X\n    director: Nobody\n", "unknown director"},
		{"unknown genre", "movies:\n  - title: X\n    genre: Noir\n", "unknown genre"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Parse error = %v, want contains %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadStopsOnError(t *testing.T) {
	fx, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	boom := errors.New("boom")
	summary, err := Load(context.Background(), &fakeCatalog{failMovie: boom}, fx)
	if !errors.Is(err, boom) {
		t.Fatalf("Load error = %v, want boom", err)
	}
	if summary.Movies != 0 || summary.Directors != 2 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write fixtures: %v", err)
	}
	fx, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(fx.Movies) != 2 {
		t.Fatalf("movies = %d, want 2", len(fx.Movies))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
