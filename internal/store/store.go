package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	logger "github.com/PolarWolf314/lockbox/internal/logging"
	"github.com/PolarWolf314/lockbox/internal/secrets"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

const (
	// SchemaVersion is the newest schema this build can read.
	SchemaVersion int64 = 1

	schemaVersionKey = "SchemaVersion"
)

// Item is a complete stored row, including the encryption material.
type Item struct {
	UID             int64
	Label           string
	Account         string
	LastModifiedAt  time.Time
	EncryptedSecret []byte
	KDFSalt         secrets.Salt
	AuthNonce       secrets.Nonce
}

// Display returns the display-safe projection of the item.
func (i *Item) Display() DisplayItem {
	return DisplayItem{
		UID:            i.UID,
		Label:          i.Label,
		Account:        i.Account,
		LastModifiedAt: i.LastModifiedAt,
	}
}

// DisplayItem is the part of an item that is safe to show.
type DisplayItem struct {
	UID            int64
	Label          string
	Account        string
	LastModifiedAt time.Time
}

// AddItemInput is a new item. The uid is assigned by the database.
type AddItemInput struct {
	Label           string
	Account         string
	LastModifiedAt  time.Time
	EncryptedSecret []byte
	KDFSalt         secrets.Salt
	AuthNonce       secrets.Nonce
}

type itemRow struct {
	UID             int64          `db:"uid"`
	Label           string         `db:"label"`
	Account         sql.NullString `db:"account"`
	LastModifiedAt  string         `db:"last_modified_at"`
	EncryptedSecret []byte         `db:"encrypted_secret"`
	KDFSalt         []byte         `db:"kdf_salt"`
	AuthNonce       []byte         `db:"auth_nonce"`
}

type displayRow struct {
	UID            int64          `db:"uid"`
	Label          string         `db:"label"`
	Account        sql.NullString `db:"account"`
	LastModifiedAt string         `db:"last_modified_at"`
}

// Store is a handle to an open secrets database.
type Store struct {
	db      *sqlx.DB
	path    string
	version int64
	log     logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// dataSourceName builds the SQLite URI for path. The path is escaped so ?, #
// and % in a file name are taken literally.
func dataSourceName(path string) string {
	u := url.URL{
		Scheme: "file",
		Opaque: (&url.URL{Path: path}).EscapedPath(),
		// Immediate transactions take the write lock up front so concurrent
		// first opens serialize on schema bootstrap.
		RawQuery: "_txlock=immediate&_busy_timeout=5000&_journal_mode=WAL&_case_sensitive_like=1",
	}
	return u.String()
}

// Open opens or creates the database at path and checks its schema version.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sqlx.Open("sqlite3", dataSourceName(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas like case_sensitive_like are per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := newStore(db, path, opts...)

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	s.log.Debugf("Opened database %s (schema version %d)", path, s.version)

	return s, nil
}

func newStore(db *sqlx.DB, path string, opts ...Option) *Store {
	s := &Store{db: db, path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// initSchema creates missing tables and records the schema version if absent,
// then refuses versions newer than SchemaVersion. It runs as one transaction.
func (s *Store) initSchema() error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO metadata (key, value) VALUES (?, ?) ON CONFLICT(key) DO NOTHING`,
		schemaVersionKey, SchemaVersion,
	); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	var stored int64
	if err := tx.Get(&stored, `SELECT value FROM metadata WHERE key = ?`, schemaVersionKey); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if stored > SchemaVersion {
		return &SchemaVersionError{Stored: stored, Supported: SchemaVersion}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}

	s.version = stored
	return nil
}

// Insert stores a new item and returns it with its assigned uid. Duplicate
// labels, salts or nonces are rejected with *ConstraintError.
func (s *Store) Insert(in AddItemInput) (*Item, error) {
	row := itemRow{
		Label:           in.Label,
		Account:         sql.NullString{String: in.Account, Valid: in.Account != ""},
		LastModifiedAt:  secrets.FormatTimestamp(in.LastModifiedAt),
		EncryptedSecret: in.EncryptedSecret,
		KDFSalt:         in.KDFSalt[:],
		AuthNonce:       in.AuthNonce[:],
	}

	res, err := s.db.NamedExec(`
		INSERT INTO item (label, account, last_modified_at, encrypted_secret, kdf_salt, auth_nonce)
		VALUES (:label, :account, :last_modified_at, :encrypted_secret, :kdf_salt, :auth_nonce)
	`, row)
	if err != nil {
		err = asConstraintError(err)

		var ce *ConstraintError
		if errors.As(err, &ce) {
			if ce.Kind == ConstraintUnique && (ce.Column == "kdf_salt" || ce.Column == "auth_nonce") {
				s.log.Errorf("Refusing to store item: %s was already used by another item", ce.Column)
			}
			return nil, ce
		}
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	uid, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new item id: %w", err)
	}

	s.log.Debugf("Inserted item %d", uid)

	return &Item{
		UID:             uid,
		Label:           in.Label,
		Account:         in.Account,
		LastModifiedAt:  in.LastModifiedAt.UTC(),
		EncryptedSecret: in.EncryptedSecret,
		KDFSalt:         in.KDFSalt,
		AuthNonce:       in.AuthNonce,
	}, nil
}

// List returns display-safe items ordered by uid. An empty pattern returns
// every item; otherwise only items whose label or account match the pattern
// under case-sensitive SQL LIKE.
func (s *Store) List(pattern string) ([]DisplayItem, error) {
	query := `SELECT uid, label, account, last_modified_at FROM item`
	var args []any
	if pattern != "" {
		query += ` WHERE label LIKE ? OR account LIKE ?`
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY uid`

	var rows []displayRow
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]DisplayItem, 0, len(rows))
	for _, row := range rows {
		modified, err := secrets.ParseTimestamp(row.LastModifiedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d has timestamp %q", kerrors.ErrCorruptItem, row.UID, row.LastModifiedAt)
		}
		items = append(items, DisplayItem{
			UID:            row.UID,
			Label:          row.Label,
			Account:        row.Account.String,
			LastModifiedAt: modified,
		})
	}

	return items, nil
}

// GetByID returns the full item with the given uid.
func (s *Store) GetByID(uid int64) (*Item, error) {
	var row itemRow
	err := s.db.Get(&row, `
		SELECT uid, label, account, last_modified_at, encrypted_secret, kdf_salt, auth_nonce
		FROM item WHERE uid = ?
	`, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no item with id %d", kerrors.ErrItemNotFound, uid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", uid, err)
	}

	return row.toItem()
}

// Delete removes the item with the given uid. Uids are never reused.
func (s *Store) Delete(uid int64) error {
	res, err := s.db.Exec(`DELETE FROM item WHERE uid = ?`, uid)
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", uid, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", uid, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: no item with id %d", kerrors.ErrItemNotFound, uid)
	}

	s.log.Debugf("Deleted item %d", uid)
	return nil
}

// Count returns the number of stored items.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.Get(&n, `SELECT COUNT(*) FROM item`); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}

// SchemaVersion returns the version recorded in the database when it was opened.
func (s *Store) SchemaVersion() int64 {
	return s.version
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (r itemRow) toItem() (*Item, error) {
	if len(r.KDFSalt) != secrets.SaltLen || len(r.AuthNonce) != secrets.NonceLen {
		return nil, fmt.Errorf("%w: item %d has malformed salt or nonce", kerrors.ErrCorruptItem, r.UID)
	}

	modified, err := secrets.ParseTimestamp(r.LastModifiedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: item %d has timestamp %q", kerrors.ErrCorruptItem, r.UID, r.LastModifiedAt)
	}

	item := &Item{
		UID:             r.UID,
		Label:           r.Label,
		Account:         r.Account.String,
		LastModifiedAt:  modified,
		EncryptedSecret: r.EncryptedSecret,
	}
	copy(item.KDFSalt[:], r.KDFSalt)
	copy(item.AuthNonce[:], r.AuthNonce)

	return item, nil
}

// SearchPattern turns a free-text search term into a LIKE pattern matching
// it anywhere. A blank term yields the empty pattern, which matches all.
func SearchPattern(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return ""
	}
	return "%" + term + "%"
}
