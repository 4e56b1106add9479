package rerank

import "errors"

var (
	// ErrEngineRequired is returned when an embedding engine is not provided.
	ErrEngineRequired = errors.New("embedding engine required")
)
