package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Operation names.
const (
	OpAdd    = "add"
	OpList   = "list"
	OpCopy   = "copy"
	OpReveal = "reveal"
	OpRemove = "remove"
)

// TimestampLayout is the layout of Entry.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"`

	// Optional fields depending on operation.
	UID     int64  `json:"uid,omitempty"`     // For add/copy/reveal/remove.
	Label   string `json:"label,omitempty"`   // For add/copy/reveal/remove.
	Results int    `json:"results,omitempty"` // For list.
}

// Trail appends entries to a JSON Lines file.
type Trail struct {
	path     string
	disabled bool
	now      func() time.Time
}

// NewTrail returns a trail writing to path. A disabled trail records nothing
// but can still be read.
func NewTrail(path string, disabled bool) *Trail {
	return &Trail{path: path, disabled: disabled, now: time.Now}
}

// Path returns the path to the audit log file.
func (t *Trail) Path() string {
	return t.path
}

// Enabled reports whether Record writes anything.
func (t *Trail) Enabled() bool {
	return t != nil && !t.disabled && t.path != ""
}

// Record appends an entry to the audit log.
// Failures are ignored; operations should not fail because auditing did.
func (t *Trail) Record(entry Entry) {
	if !t.Enabled() {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = t.now().UTC().Format(TimestampLayout)
	}

	if err := os.MkdirAll(filepath.Dir(t.path), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func (t *Trail) ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
