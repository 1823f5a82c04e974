package workflows

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/lockbox/internal/audit"
	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogSession(t *testing.T, lines string) *Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	if lines != "" {
		require.NoError(t, os.WriteFile(path, []byte(lines), 0600))
	}
	return &Session{Trail: audit.NewTrail(path, false)}
}

const sampleLog = `{"id":"1","ts":"2024-01-01T10:00:00.000000Z","op":"add","uid":1,"label":"email"}
{"id":"2","ts":"2024-01-02T10:00:00.000000Z","op":"copy","uid":1,"label":"email"}
{"id":"3","ts":"2024-01-03T10:00:00.000000Z","op":"add","uid":2,"label":"bank"}
{"id":"4","ts":"2024-01-04T10:00:00.000000Z","op":"remove","uid":1,"label":"email"}
`

func ids(entries []audit.Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestLogFilters(t *testing.T) {
	tests := []struct {
		name string
		opts LogOptions
		want []string
	}{
		{"all", LogOptions{}, []string{"1", "2", "3", "4"}},
		{"reverse", LogOptions{Reverse: true}, []string{"4", "3", "2", "1"}},
		{"limit keeps most recent", LogOptions{Limit: 2}, []string{"3", "4"}},
		{"reverse limit", LogOptions{Limit: 2, Reverse: true}, []string{"4", "3"}},
		{"label", LogOptions{Label: "email"}, []string{"1", "2", "4"}},
		{"operations", LogOptions{Operations: "add, REMOVE"}, []string{"1", "3", "4"}},
		{"since", LogOptions{Since: "2024-01-03"}, []string{"3", "4"}},
		{"until includes whole day", LogOptions{Until: "2024-01-02"}, []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newLogSession(t, sampleLog)

			result, err := Log(context.Background(), s, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, 4, result.TotalEntriesBeforeFilter)
			assert.Equal(t, tt.want, ids(result.Entries))
		})
	}
}

func TestLogErrors(t *testing.T) {
	_, err := Log(context.Background(), newLogSession(t, ""), LogOptions{})
	assert.ErrorIs(t, err, kerrors.ErrNoAuditLog)

	_, err = Log(context.Background(), &Session{}, LogOptions{})
	assert.ErrorIs(t, err, kerrors.ErrNoAuditLog)

	_, err = Log(context.Background(), newLogSession(t, sampleLog), LogOptions{Since: "01/02/2024"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidDateFormat)

	_, err = Log(context.Background(), newLogSession(t, sampleLog), LogOptions{Until: "tomorrow"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidDateFormat)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-01-15 10:30:00", FormatDate("2024-01-15T10:30:00.123456Z"))
	assert.Equal(t, "2024-01-15 10:30:00", FormatDate("2024-01-15T10:30:00Z"))
	assert.Equal(t, "2024-01-15", FormatDate("2024-01-15garbage"))
	assert.Equal(t, "short", FormatDate("short"))
}

func TestFormatDetails(t *testing.T) {
	assert.Equal(t, "3 results", FormatDetails(audit.Entry{Operation: audit.OpList, Results: 3}))
	assert.Equal(t, "1 result", FormatDetails(audit.Entry{Operation: audit.OpList, Results: 1}))
	assert.Equal(t, "0 results", FormatDetails(audit.Entry{Operation: audit.OpList}))
	assert.Equal(t, `#7 "email"`, FormatDetails(audit.Entry{Operation: audit.OpCopy, UID: 7, Label: "email"}))
	assert.Equal(t, "", FormatDetails(audit.Entry{Operation: audit.OpRemove}))
}
