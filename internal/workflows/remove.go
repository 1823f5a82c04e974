package workflows

import (
	"context"

	"github.com/PolarWolf314/lockbox/internal/audit"
	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/store"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	UID int64

	// Confirm, if set, is asked before deleting. Returning false aborts
	// with ErrConfirmationRequired.
	Confirm func(item store.DisplayItem) bool
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	Item store.DisplayItem
}

// Remove deletes the item with the given uid. Its uid is never reassigned.
//
// Returns ErrItemNotFound if no such item exists.
// Returns ErrConfirmationRequired if opts.Confirm declines.
func Remove(ctx context.Context, s *Session, opts RemoveOptions) (*RemoveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	item, err := s.Vault.GetByID(opts.UID)
	if err != nil {
		return nil, err
	}

	display := item.Display()

	if opts.Confirm != nil && !opts.Confirm(display) {
		return nil, kerrors.ErrConfirmationRequired
	}

	if err := s.Vault.Delete(item.UID); err != nil {
		return nil, err
	}

	s.Log.Infof("Removed item %d", item.UID)
	s.Trail.Record(audit.Entry{Operation: audit.OpRemove, UID: item.UID, Label: item.Label})

	return &RemoveResult{Item: display}, nil
}
