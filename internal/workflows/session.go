package workflows

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/lockbox/internal/audit"
	"github.com/PolarWolf314/lockbox/internal/configs"
	logger "github.com/PolarWolf314/lockbox/internal/logging"
	"github.com/PolarWolf314/lockbox/internal/store"
	"github.com/PolarWolf314/lockbox/internal/utils"
)

// Vault is the part of *store.Store the workflows use.
type Vault interface {
	Insert(in store.AddItemInput) (*store.Item, error)
	List(pattern string) ([]store.DisplayItem, error)
	GetByID(uid int64) (*store.Item, error)
	Delete(uid int64) error
	Count() (int64, error)
	SchemaVersion() int64
	Path() string
}

// Session bundles what a workflow needs to run against one database.
type Session struct {
	Vault     Vault
	Trail     *audit.Trail
	Clipboard Clipboard
	Log       logger.Logger

	// Now defaults to time.Now.
	Now func() time.Time

	closer io.Closer
}

// SessionOptions configures OpenSession.
type SessionOptions struct {
	// DatabasePath is the --database flag value; empty means unset.
	DatabasePath string

	Log logger.Logger
}

// OpenSession loads the config file, resolves the database path, creates its
// directory and opens the store.
//
// Returns ErrInvalidConfig if the config file is malformed.
// Returns ErrSchemaVersionMismatch if the database was written by a newer build.
func OpenSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings, err := configs.NewSettings()
	if err != nil {
		return nil, err
	}

	config, err := configs.LoadConfig(settings.ConfigPath)
	if err != nil {
		return nil, err
	}

	dbPath, err := configs.ResolveDatabasePath(opts.DatabasePath, config, settings)
	if err != nil {
		return nil, err
	}
	opts.Log.Debugf("Using database %s", dbPath)

	if err := utils.EnsurePrivateDir(filepath.Dir(dbPath)); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	st, err := store.Open(dbPath, store.WithLogger(opts.Log))
	if err != nil {
		return nil, err
	}

	return &Session{
		Vault:     st,
		Trail:     audit.NewTrail(configs.AuditLogPath(dbPath), config.Audit.Disabled),
		Clipboard: SystemClipboard{},
		Log:       opts.Log,
		closer:    st,
	}, nil
}

// Close releases the database.
func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *Session) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
