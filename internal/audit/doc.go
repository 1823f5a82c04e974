// Package audit records an append-only trail of lockbox operations.
//
// Adding, revealing and removing items are recorded in a JSON Lines file
// kept next to the database:
//
//	<data dir>/audit.jsonl
//
// Each entry contains:
//   - A random entry ID
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Operation name
//   - The item's uid and label
//
// Secrets, passwords and accounts are never written to the trail.
//
// # Usage
//
//	trail := audit.NewTrail(configs.AuditLogPath(dbPath), cfg.Audit.Disabled)
//	trail.Record(audit.Entry{Operation: audit.OpAdd, UID: item.UID, Label: item.Label})
//
// # Failure Handling
//
// Recording is best-effort. If the file cannot be written the operation
// continues without error.
//
// # Reading Logs
//
// Use ReadEntries to parse the trail for display. Malformed lines are
// skipped to tolerate partial writes.
package audit
