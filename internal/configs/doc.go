// Package configs manages lockbox's configuration file and standard paths.
//
// # Configuration File
//
// The optional user config lives at <UserConfigDir>/lockbox/config.toml:
//
//	database = "/path/to/secrets.sqlite3"
//
//	[audit]
//	disabled = false
//
// A missing file is not an error; defaults apply. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
//
// # Settings
//
// Settings holds the directories lockbox uses, computed once at startup:
//   - ConfigPath: the config file above
//   - DataDir: $XDG_DATA_HOME/lockbox, or ~/.local/share/lockbox
//   - DefaultDatabasePath: secrets.sqlite3 inside DataDir
//
// # Database Path
//
// ResolveDatabasePath picks the database in order of precedence: the
// --database flag, the LOCKBOX_DATABASE environment variable, the config
// file, then the default. The audit log is kept next to the database.
package configs
