package workflows

import (
	"bytes"
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/PolarWolf314/lockbox/internal/audit"
	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/secrets"
	"github.com/PolarWolf314/lockbox/internal/secure"
	"github.com/PolarWolf314/lockbox/internal/store"
	"github.com/PolarWolf314/lockbox/internal/utils"
)

// AddOptions configures the add workflow.
//
// Add takes ownership of Secret, Password and PasswordConfirmation and wipes
// them before returning, whether or not it succeeds.
type AddOptions struct {
	// Label names the item. Surrounding whitespace is trimmed.
	Label string

	// Account is optional. Surrounding whitespace is trimmed; empty means none.
	Account string

	// Secret may span multiple lines but must not be empty.
	Secret *secure.Buffer

	Password []byte

	// PasswordConfirmation must equal Password.
	PasswordConfirmation []byte
}

// AddResult contains the outcome of an add operation.
type AddResult struct {
	Item store.DisplayItem
}

// Add validates the input, encrypts the secret under the password and
// stores the new item.
//
// Returns an input validation error (see kerrors.IsInputValidation) if a
// field is missing or malformed. Returns ErrConstraintViolation if the label
// is already taken.
func Add(ctx context.Context, s *Session, opts AddOptions) (*AddResult, error) {
	defer opts.Secret.Destroy()
	defer secure.Wipe(opts.Password)
	defer secure.Wipe(opts.PasswordConfirmation)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	label, account, err := validateAddOptions(opts)
	if err != nil {
		return nil, err
	}

	modified := s.now().UTC()

	encrypted, err := secrets.Encrypt(secrets.EncryptionInput{
		PlaintextSecret: opts.Secret.Bytes(),
		Label:           label,
		Account:         account,
		LastModifiedAt:  modified,
	}, opts.Password)
	if err != nil {
		return nil, fmt.Errorf("encrypting secret: %w", err)
	}

	item, err := s.Vault.Insert(store.AddItemInput{
		Label:           label,
		Account:         account,
		LastModifiedAt:  modified,
		EncryptedSecret: encrypted.EncryptedSecret,
		KDFSalt:         encrypted.KDFSalt,
		AuthNonce:       encrypted.AuthNonce,
	})
	if err != nil {
		return nil, err
	}

	s.Log.Infof("Stored item %d", item.UID)
	s.Trail.Record(audit.Entry{Operation: audit.OpAdd, UID: item.UID, Label: item.Label})

	return &AddResult{Item: item.Display()}, nil
}

// validateAddOptions checks fields in form order and returns the normalized
// label and account.
func validateAddOptions(opts AddOptions) (string, string, error) {
	label := utils.NormalizeField(opts.Label)
	if label == "" || !utils.IsSingleLine(label) {
		return "", "", kerrors.ErrLabelRequired
	}

	account := utils.NormalizeField(opts.Account)
	if !utils.IsSingleLine(account) {
		return "", "", kerrors.ErrAccountSingleLine
	}

	if opts.Secret.Len() == 0 {
		return "", "", kerrors.ErrSecretRequired
	}

	if len(opts.Password) == 0 || bytes.ContainsAny(opts.Password, "\r\n") {
		return "", "", kerrors.ErrPasswordRequired
	}

	if subtle.ConstantTimeCompare(opts.Password, opts.PasswordConfirmation) != 1 {
		return "", "", kerrors.ErrPasswordMismatch
	}

	return label, account, nil
}
