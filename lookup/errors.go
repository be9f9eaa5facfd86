package lookup

import "errors"

var (
	// ErrNotFound means no source could answer the query
	ErrNotFound = errors.New("medicine not found")

	// ErrMalformedModelResponse means the model text was not a JSON object
	ErrMalformedModelResponse = errors.New("invalid JSON format received")
)
