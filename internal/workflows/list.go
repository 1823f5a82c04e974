package workflows

import (
	"context"

	"github.com/PolarWolf314/lockbox/internal/audit"
	"github.com/PolarWolf314/lockbox/internal/store"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// Search matches anywhere in the label or account, case-sensitively.
	// SQL LIKE wildcards (% and _) in it are honoured. Empty lists everything.
	Search string
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	Items []store.DisplayItem

	// Pattern is the LIKE pattern the search term was turned into.
	Pattern string
}

// List returns the items matching opts.Search in insertion order. No secret
// material is read.
func List(ctx context.Context, s *Session, opts ListOptions) (*ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pattern := store.SearchPattern(opts.Search)

	items, err := s.Vault.List(pattern)
	if err != nil {
		return nil, err
	}

	s.Trail.Record(audit.Entry{Operation: audit.OpList, Results: len(items)})

	return &ListResult{Items: items, Pattern: pattern}, nil
}
