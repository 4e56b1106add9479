package literature

import (
	"context"

	"github.com/poiesic/litsearch/core"
)

// Index is a searchable bibliographic database.
// Implementations must be thread-safe for concurrent use.
type Index interface {
	// Search returns up to maxResults identifiers matching query and filter,
	// best first. No matches is an empty slice, not an error.
	Search(ctx context.Context, query string, maxResults int, filter Filter) ([]string, error)

	// Fetch returns the records for ids. Records without an identifier are
	// dropped and identifiers are unique in the result. Missing titles,
	// abstracts or journals are left empty.
	Fetch(ctx context.Context, ids []string) ([]core.Article, error)
}
