// Package seed loads catalog fixtures from YAML into the store.
package seed

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
)

// Fixtures is the YAML document layout. Movies reference directors and
// genres by name; the names are resolved to ids after insertion.
type Fixtures struct {
	Directors []NamedFixture `yaml:"directors"`
	Genres    []NamedFixture `yaml:"genres"`
	Movies    []MovieFixture `yaml:"movies"`
}

type NamedFixture struct {
	Name string `yaml:"name"`
}

type MovieFixture struct {
	Title       string   `yaml:"title"`
	Description *string  `yaml:"description"`
	Trailer     *string  `yaml:"trailer"`
	Year        *int32   `yaml:"year"`
	Rating      *float64 `yaml:"rating"`
	Director    string   `yaml:"director"`
	Genre       string   `yaml:"genre"`
}

// Summary counts the rows inserted by Load.
type Summary struct {
	Directors int
	Genres    int
	Movies    int
}

// Catalog is the write surface Load needs.
type Catalog interface {
	CreateDirector(ctx context.Context, name string) (domain.Director, error)
	CreateGenre(ctx context.Context, name string) (domain.Genre, error)
	CreateMovie(ctx context.Context, fields domain.MovieFields) (domain.Movie, error)
}

// ReadFile parses and validates a fixtures file.
func ReadFile(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("read fixtures: %w", err)
	}
	return Parse(data)
}

// Parse decodes fixtures and checks that names are unique and every movie
// reference resolves within the document.
func Parse(data []byte) (Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures: %w", err)
	}

	directors, err := nameSet("director", fx.Directors)
	if err != nil {
		return Fixtures{}, err
	}
	genres, err := nameSet("genre", fx.Genres)
	if err != nil {
		return Fixtures{}, err
	}
	for i, m := range fx.Movies {
		if strings.TrimSpace(m.Title) == "" {
			return Fixtures{}, fmt.Errorf("movie #%d: title is required", i+1)
		}
		if _, ok := directors[m.Director]; m.Director != "" && !ok {
			return Fixtures{}, fmt.Errorf("movie %q: unknown director %q", m.Title, m.Director)
		}
		if _, ok := genres[m.Genre]; m.Genre != "" && !ok {
			return Fixtures{}, fmt.Errorf("movie %q: unknown genre %q", m.Title, m.Genre)
		}
	}
	return fx, nil
}

func nameSet(kind string, items []NamedFixture) (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("%s #%d: name is required", kind, i+1)
		}
		if _, dup := set[item.Name]; dup {
			return nil, fmt.Errorf("duplicate %s %q", kind, item.Name)
		}
		set[item.Name] = struct{}{}
	}
	return set, nil
}

// Load inserts directors, then genres, then movies.
func Load(ctx context.Context, catalog Catalog, fx Fixtures) (Summary, error) {
	var summary Summary

	directorIDs := make(map[string]int64, len(fx.Directors))
	for _, d := range fx.Directors {
		director, err := catalog.CreateDirector(ctx, d.Name)
		if err != nil {
			return summary, fmt.Errorf("create director %q: %w", d.Name, err)
		}
		directorIDs[d.Name] = director.ID
		summary.Directors++
	}

	genreIDs := make(map[string]int64, len(fx.Genres))
	for _, g := range fx.Genres {
		genre, err := catalog.CreateGenre(ctx, g.Name)
		if err != nil {
			return summary, fmt.Errorf("create genre %q: %w", g.Name, err)
		}
		genreIDs[g.Name] = genre.ID
		summary.Genres++
	}

	for _, m := range fx.Movies {
		fields := domain.MovieFields{
			Title:       m.Title,
			Description: m.Description,
			Trailer:     m.Trailer,
			Year:        m.Year,
			Rating:      m.Rating,
		}
		if id, ok := directorIDs[m.Director]; ok {
			fields.DirectorID = &id
		}
		if id, ok := genreIDs[m.Genre]; ok {
			fields.GenreID = &id
		}
		if _, err := catalog.CreateMovie(ctx, fields); err != nil {
			return summary, fmt.Errorf("create movie %q: %w", m.Title, err)
		}
		summary.Movies++
	}
	return summary, nil
}

// LoadRepository runs Load inside one transaction, so a failing fixture
// leaves the database untouched. Rows are always inserted as new records;
// loading the same file twice duplicates them.
func LoadRepository(ctx context.Context, repo *repository.Repository, fx Fixtures) (Summary, error) {
	var summary Summary
	err := repo.InTx(ctx, func(tx *repository.Repository) error {
		var err error
		summary, err = Load(ctx, repoCatalog{repo: tx}, fx)
		return err
	})
	if err != nil {
		return Summary{}, err
	}
	return summary, nil
}

type repoCatalog struct {
	repo *repository.Repository
}

func (c repoCatalog) CreateDirector(ctx context.Context, name string) (domain.Director, error) {
	return c.repo.Directors.Create(ctx, name)
}

func (c repoCatalog) CreateGenre(ctx context.Context, name string) (domain.Genre, error) {
	return c.repo.Genres.Create(ctx, name)
}

func (c repoCatalog) CreateMovie(ctx context.Context, fields domain.MovieFields) (domain.Movie, error) {
	return c.repo.Movies.Create(ctx, fields)
}
