package repository

import (
	"context"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

const genreTable = "genre"

// GenresRepository provides persistence helpers for genres.
type GenresRepository struct {
	db querier
}

// List returns every genre ordered by id.
func (r *GenresRepository) List(ctx context.Context) ([]domain.Genre, error) {
	return listNamed(ctx, r.db, genreTable, func(id int64, name string) domain.Genre {
		return domain.Genre{ID: id, Name: name}
	})
}

// GetByID fetches a genre by id.
func (r *GenresRepository) GetByID(ctx context.Context, id int64) (domain.Genre, error) {
	name, err := getNamed(ctx, r.db, genreTable, id)
	if err != nil {
		return domain.Genre{}, err
	}
	return domain.Genre{ID: id, Name: name}, nil
}

// Create inserts a genre and returns it with its generated id.
func (r *GenresRepository) Create(ctx context.Context, name string) (domain.Genre, error) {
	id, err := createNamed(ctx, r.db, genreTable, name)
	if err != nil {
		return domain.Genre{}, err
	}
	return domain.Genre{ID: id, Name: name}, nil
}

// Replace overwrites the genre's name.
func (r *GenresRepository) Replace(ctx context.Context, id int64, name string) (domain.Genre, error) {
	if err := replaceNamed(ctx, r.db, genreTable, id, name); err != nil {
		return domain.Genre{}, err
	}
	return domain.Genre{ID: id, Name: name}, nil
}

// Delete removes a genre. Movies that referenced it keep a NULL genre_id.
func (r *GenresRepository) Delete(ctx context.Context, id int64) error {
	return deleteNamed(ctx, r.db, genreTable, id)
}
