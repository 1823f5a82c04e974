// Package logger provides leveled, colored logging for lockbox commands.
//
// Output is controlled by two flags:
//
//   - --verbose: shows info messages
//   - --debug: shows info and debug messages
//
// Warnings and errors are always written to standard error.
//
// # Usage
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("opened %s", path)
//
// Commands build a logger in their PersistentPreRun and hand it to the
// store and workflows. Secrets, passwords and keys are never passed to
// a logger; labels and uids may be.
package logger
