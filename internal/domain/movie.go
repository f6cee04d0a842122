package domain

// Movie is a catalog entry. Optional columns are nil when unset.
type Movie struct {
	ID int64
	MovieFields
}

// MovieFields holds every mutable movie column.
type MovieFields struct {
	Title       string
	Description *string
	Trailer     *string
	Year        *int32
	Rating      *float64
	GenreID     *int64
	DirectorID  *int64
}

// MoviePatch carries a partial movie update. Only fields with Set true are
// written.
type MoviePatch struct {
	Title       Field[string]
	Description Field[string]
	Trailer     Field[string]
	Year        Field[int32]
	Rating      Field[float64]
	GenreID     Field[int64]
	DirectorID  Field[int64]
}

// Empty reports whether the patch touches no column.
func (p MoviePatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Trailer.Set && !p.Year.Set &&
		!p.Rating.Set && !p.GenreID.Set && !p.DirectorID.Set
}

// Apply returns m with the supplied fields overwritten.
func (p MoviePatch) Apply(m Movie) Movie {
	if p.Title.Set && p.Title.Value != nil {
		m.Title = *p.Title.Value
	}
	p.Description.applyTo(&m.Description)
	p.Trailer.applyTo(&m.Trailer)
	p.Year.applyTo(&m.Year)
	p.Rating.applyTo(&m.Rating)
	p.GenreID.applyTo(&m.GenreID)
	p.DirectorID.applyTo(&m.DirectorID)
	return m
}

// Field is one entry of a partial update. A Set field with a nil Value
// clears the column.
type Field[T any] struct {
	Set   bool
	Value *T
}

// Assign marks the field as supplied with value v.
func Assign[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

// Clear marks the field as supplied with a null value.
func Clear[T any]() Field[T] {
	return Field[T]{Set: true}
}

func (f Field[T]) applyTo(dst **T) {
	if f.Set {
		*dst = f.Value
	}
}
