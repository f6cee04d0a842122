package repository

import (
	"context"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

const directorTable = "director"

// DirectorsRepository provides persistence helpers for directors.
type DirectorsRepository struct {
	db querier
}

// List returns every director ordered by id.
func (r *DirectorsRepository) List(ctx context.Context) ([]domain.Director, error) {
	return listNamed(ctx, r.db, directorTable, func(id int64, name string) domain.Director {
		return domain.Director{ID: id, Name: name}
	})
}

// GetByID fetches a director or returns ErrNotFound.
func (r *DirectorsRepository) GetByID(ctx context.Context, id int64) (domain.Director, error) {
	name, err := getNamed(ctx, r.db, directorTable, id)
	if err != nil {
		return domain.Director{}, err
	}
	return domain.Director{ID: id, Name: name}, nil
}

// Create inserts a director and returns it with its generated id.
func (r *DirectorsRepository) Create(ctx context.Context, name string) (domain.Director, error) {
	id, err := createNamed(ctx, r.db, directorTable, name)
	if err != nil {
		return domain.Director{}, err
	}
	return domain.Director{ID: id, Name: name}, nil
}

// Replace overwrites the director's name.
func (r *DirectorsRepository) Replace(ctx context.Context, id int64, name string) (domain.Director, error) {
	if err := replaceNamed(ctx, r.db, directorTable, id, name); err != nil {
		return domain.Director{}, err
	}
	return domain.Director{ID: id, Name: name}, nil
}

// Delete removes a director. Movies that referenced it keep a NULL director_id.
func (r *DirectorsRepository) Delete(ctx context.Context, id int64) error {
	return deleteNamed(ctx, r.db, directorTable, id)
}
