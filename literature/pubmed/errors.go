package pubmed

import "errors"

var (
	// ErrHTTPStatus indicates E-utilities answered with a non-200 status.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrSearchFailed indicates esearch reported an error other than a
	// malformed query.
	ErrSearchFailed = errors.New("esearch failed")

	// ErrInvalidConfig indicates the client configuration is unusable.
	ErrInvalidConfig = errors.New("invalid pubmed config")
)
