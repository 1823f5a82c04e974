package workflows

import (
	"context"

	"github.com/PolarWolf314/lockbox/internal/store"
)

// InfoResult describes the open database.
type InfoResult struct {
	DatabasePath     string
	SchemaVersion    int64
	SupportedVersion int64
	ItemCount        int64

	// AuditLogPath is empty when auditing is disabled.
	AuditLogPath string
}

// Info reports the database location, schema version and item count.
func Info(ctx context.Context, s *Session) (*InfoResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count, err := s.Vault.Count()
	if err != nil {
		return nil, err
	}

	result := &InfoResult{
		DatabasePath:     s.Vault.Path(),
		SchemaVersion:    s.Vault.SchemaVersion(),
		SupportedVersion: store.SchemaVersion,
		ItemCount:        count,
	}
	if s.Trail != nil && s.Trail.Enabled() {
		result.AuditLogPath = s.Trail.Path()
	}

	return result, nil
}
