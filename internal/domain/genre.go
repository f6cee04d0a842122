package domain

// Genre classifies movies.
type Genre struct {
	ID   int64
	Name string
}
