package schema

import (
	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

// DirectorResource is the wire form of a director.
type DirectorResource struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GenreResource is the wire form of a genre.
type GenreResource struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func DumpDirector(d domain.Director) DirectorResource {
	return DirectorResource{ID: d.ID, Name: d.Name}
}

func DumpDirectors(directors []domain.Director) []DirectorResource {
	out := make([]DirectorResource, 0, len(directors))
	for _, d := range directors {
		out = append(out, DumpDirector(d))
	}
	return out
}

func DumpGenre(g domain.Genre) GenreResource {
	return GenreResource{ID: g.ID, Name: g.Name}
}

func DumpGenres(genres []domain.Genre) []GenreResource {
	out := make([]GenreResource, 0, len(genres))
	for _, g := range genres {
		out = append(out, DumpGenre(g))
	}
	return out
}

// LoadName reads the body shared by directors and genres and returns the
// required name.
func LoadName(data []byte) (string, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return "", err
	}
	return required[string](obj, "name", kindString)
}
