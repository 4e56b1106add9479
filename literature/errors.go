package literature

import "errors"

// ErrInvalidFilter indicates a search filter that can never match.
var ErrInvalidFilter = errors.New("invalid search filter")
