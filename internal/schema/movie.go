package schema

import (
	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

const (
	kindString  = "a string"
	kindInteger = "an integer"
	kindNumber  = "a number"
)

// MovieResource is the wire form of a movie.
type MovieResource struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Trailer     *string  `json:"trailer"`
	Year        *int32   `json:"year"`
	Rating      *float64 `json:"rating"`
	GenreID     *int64   `json:"genre_id"`
	DirectorID  *int64   `json:"director_id"`
}

// DumpMovie converts a movie to its resource.
func DumpMovie(m domain.Movie) MovieResource {
	return MovieResource{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Trailer:     m.Trailer,
		Year:        m.Year,
		Rating:      m.Rating,
		GenreID:     m.GenreID,
		DirectorID:  m.DirectorID,
	}
}

// DumpMovies converts a list, never returning nil so it encodes as [].
func DumpMovies(movies []domain.Movie) []MovieResource {
	out := make([]MovieResource, 0, len(movies))
	for _, m := range movies {
		out = append(out, DumpMovie(m))
	}
	return out
}

// LoadMovie reads a full movie body for create and replace. title is
// required; absent optional fields are returned as nil.
func LoadMovie(data []byte) (domain.MovieFields, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return domain.MovieFields{}, err
	}

	var fields domain.MovieFields
	if fields.Title, err = required[string](obj, "title", kindString); err != nil {
		return domain.MovieFields{}, err
	}
	if fields.Description, err = optional[string](obj, "description", kindString); err != nil {
		return domain.MovieFields{}, err
	}
	if fields.Trailer, err = optional[string](obj, "trailer", kindString); err != nil {
		return domain.MovieFields{}, err
	}
	if fields.Year, err = optional[int32](obj, "year", kindInteger); err != nil {
		return domain.MovieFields{}, err
	}
	if fields.Rating, err = optional[float64](obj, "rating", kindNumber); err != nil {
		return domain.MovieFields{}, err
	}
	if fields.GenreID, err = optional[int64](obj, "genre_id", kindInteger); err != nil {
		return domain.MovieFields{}, err
	}
	if fields.DirectorID, err = optional[int64](obj, "director_id", kindInteger); err != nil {
		return domain.MovieFields{}, err
	}
	return fields, nil
}

// LoadMoviePatch reads a partial movie body. Only keys present in the body
// are marked Set; null clears an optional field.
func LoadMoviePatch(data []byte) (domain.MoviePatch, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return domain.MoviePatch{}, err
	}

	var patch domain.MoviePatch
	if _, ok := obj["title"]; ok {
		title, err := required[string](obj, "title", kindString)
		if err != nil {
			return domain.MoviePatch{}, err
		}
		patch.Title = domain.Assign(title)
	}
	if patch.Description, err = field[string](obj, "description", kindString); err != nil {
		return domain.MoviePatch{}, err
	}
	if patch.Trailer, err = field[string](obj, "trailer", kindString); err != nil {
		return domain.MoviePatch{}, err
	}
	if patch.Year, err = field[int32](obj, "year", kindInteger); err != nil {
		return domain.MoviePatch{}, err
	}
	if patch.Rating, err = field[float64](obj, "rating", kindNumber); err != nil {
		return domain.MoviePatch{}, err
	}
	if patch.GenreID, err = field[int64](obj, "genre_id", kindInteger); err != nil {
		return domain.MoviePatch{}, err
	}
	if patch.DirectorID, err = field[int64](obj, "director_id", kindInteger); err != nil {
		return domain.MoviePatch{}, err
	}
	return patch, nil
}

func field[T any](obj object, key, kind string) (domain.Field[T], error) {
	if _, ok := obj[key]; !ok {
		return domain.Field[T]{}, nil
	}
	v, err := optional[T](obj, key, kind)
	if err != nil {
		return domain.Field[T]{}, err
	}
	return domain.Field[T]{Set: true, Value: v}, nil
}
