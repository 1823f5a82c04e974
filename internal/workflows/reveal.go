package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/lockbox/internal/audit"
	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/secrets"
	"github.com/PolarWolf314/lockbox/internal/secure"
	"github.com/PolarWolf314/lockbox/internal/store"
)

// RevealOptions configures the reveal and copy workflows.
//
// Password is wiped before the workflow returns.
type RevealOptions struct {
	UID      int64
	Password []byte
}

// RevealResult contains a decrypted secret. The caller must Destroy Secret.
type RevealResult struct {
	Item   store.DisplayItem
	Secret *secure.Buffer
}

// CopyResult contains the outcome of a copy operation.
type CopyResult struct {
	Item store.DisplayItem
}

// Reveal decrypts the secret of the item with the given uid.
//
// Returns ErrItemNotFound if no such item exists.
// Returns ErrPasswordRequired if no password was given.
// Returns ErrAuthenticationFailed if the password is wrong or the item was
// tampered with; the two cases are indistinguishable.
func Reveal(ctx context.Context, s *Session, opts RevealOptions) (*RevealResult, error) {
	result, err := reveal(ctx, s, opts)
	if err != nil {
		return nil, err
	}

	s.Trail.Record(audit.Entry{Operation: audit.OpReveal, UID: result.Item.UID, Label: result.Item.Label})
	return result, nil
}

// Copy decrypts the secret of the item with the given uid and places it on
// the session clipboard. It fails like Reveal, or if the clipboard is
// unavailable.
func Copy(ctx context.Context, s *Session, opts RevealOptions) (*CopyResult, error) {
	result, err := reveal(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	defer result.Secret.Destroy()

	if s.Clipboard == nil {
		return nil, fmt.Errorf("copying secret: no clipboard available")
	}

	// The clipboard API takes a string, which cannot be wiped afterwards.
	if err := s.Clipboard.WriteAll(string(result.Secret.Bytes())); err != nil {
		return nil, fmt.Errorf("copying secret: %w", err)
	}

	s.Trail.Record(audit.Entry{Operation: audit.OpCopy, UID: result.Item.UID, Label: result.Item.Label})
	return &CopyResult{Item: result.Item}, nil
}

func reveal(ctx context.Context, s *Session, opts RevealOptions) (*RevealResult, error) {
	defer secure.Wipe(opts.Password)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(opts.Password) == 0 {
		return nil, kerrors.ErrPasswordRequired
	}

	item, err := s.Vault.GetByID(opts.UID)
	if err != nil {
		return nil, err
	}

	plaintext, err := secrets.Decrypt(secrets.DecryptionInput{
		EncryptedSecret: item.EncryptedSecret,
		KDFSalt:         item.KDFSalt,
		AuthNonce:       item.AuthNonce,
		Label:           item.Label,
		Account:         item.Account,
		LastModifiedAt:  item.LastModifiedAt,
	}, opts.Password)
	if err != nil {
		s.Log.Debugf("Decrypting item %d failed: %v", item.UID, err)
		return nil, err
	}

	return &RevealResult{
		Item:   item.Display(),
		Secret: plaintext,
	}, nil
}
