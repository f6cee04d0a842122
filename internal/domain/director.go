package domain

// Director is a person credited on movies.
type Director struct {
	ID   int64
	Name string
}
