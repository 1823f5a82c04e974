// Package ui provides semantic text formatting for lockbox output.
//
// Formatters render content by meaning rather than by style. With a
// color-capable terminal they colorize; when NO_COLOR is set or the
// terminal is dumb they fall back to plain-text decorations.
//
//	ui.Command.Sprint("lockbox add email")  // `lockbox add email`
//	ui.Label.Sprint("email")                // 'email'
//	ui.UID.Sprint(7)                        // #7
//	ui.Muted.Sprint("no account")           // (no account)
//
// Truncate and SingleLine shape values for the item table so that a long
// or multi-line label never breaks its layout.
package ui
