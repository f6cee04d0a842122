package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	db querier
}

const movieColumns = `
    id,
    title,
    description,
    trailer,
    year,
    rating,
    genre_id,
    director_id
`

// MovieFilter narrows List results. Nil fields are ignored; set fields are
// combined with AND.
type MovieFilter struct {
	DirectorID *int64
	GenreID    *int64
}

// List returns movies matching the filter ordered by id.
func (r *MoviesRepository) List(ctx context.Context, filter MovieFilter) ([]domain.Movie, error) {
	where := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.DirectorID != nil {
		where = append(where, "director_id = "+arg(*filter.DirectorID))
	}
	if filter.GenreID != nil {
		where = append(where, "genre_id = "+arg(*filter.GenreID))
	}

	var query strings.Builder
	query.WriteString("SELECT ")
	query.WriteString(movieColumns)
	query.WriteString(" FROM movie")
	if len(where) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(where, " AND "))
	}
	query.WriteString(" ORDER BY id")

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movie WHERE id = $1`, movieColumns)
	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Movie{}, translateError(err)
	}
	return movie, nil
}

// Create inserts a new movie row and returns the stored entity.
func (r *MoviesRepository) Create(ctx context.Context, fields domain.MovieFields) (domain.Movie, error) {
	query := fmt.Sprintf(`
        INSERT INTO movie (title, description, trailer, year, rating, genre_id, director_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING %s
    `, movieColumns)

	row := r.db.QueryRow(ctx, query, fields.Title, fields.Description, fields.Trailer,
		fields.Year, fields.Rating, fields.GenreID, fields.DirectorID)
	movie, err := scanMovie(row)
	if err != nil {
		return domain.Movie{}, translateError(err)
	}
	return movie, nil
}

// Replace overwrites every mutable column; nil optional fields become NULL.
func (r *MoviesRepository) Replace(ctx context.Context, id int64, fields domain.MovieFields) (domain.Movie, error) {
	return r.update(ctx, r.db, id, fields)
}

// Patch updates only the columns supplied in patch. The row is locked while
// the patch is merged so concurrent writers cannot interleave.
func (r *MoviesRepository) Patch(ctx context.Context, id int64, patch domain.MoviePatch) (domain.Movie, error) {
	var updated domain.Movie
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`SELECT %s FROM movie WHERE id = $1 FOR UPDATE`, movieColumns)
		current, err := scanMovie(tx.QueryRow(ctx, query, id))
		if err != nil {
			return err
		}
		if patch.Empty() {
			updated = current
			return nil
		}
		updated, err = r.update(ctx, tx, id, patch.Apply(current).MovieFields)
		return err
	})
	if err != nil {
		return domain.Movie{}, translateError(err)
	}
	return updated, nil
}

// Delete removes a movie or returns ErrNotFound.
func (r *MoviesRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(r.db.Exec(ctx, `DELETE FROM movie WHERE id = $1`, id))
}

func (r *MoviesRepository) update(ctx context.Context, db querier, id int64, fields domain.MovieFields) (domain.Movie, error) {
	query := fmt.Sprintf(`
        UPDATE movie
        SET title = $2,
            description = $3,
            trailer = $4,
            year = $5,
            rating = $6,
            genre_id = $7,
            director_id = $8
        WHERE id = $1
        RETURNING %s
    `, movieColumns)

	row := db.QueryRow(ctx, query, id, fields.Title, fields.Description, fields.Trailer,
		fields.Year, fields.Rating, fields.GenreID, fields.DirectorID)
	movie, err := scanMovie(row)
	if err != nil {
		return domain.Movie{}, translateError(err)
	}
	return movie, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Trailer,
		&movie.Year,
		&movie.Rating,
		&movie.GenreID,
		&movie.DirectorID,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}
