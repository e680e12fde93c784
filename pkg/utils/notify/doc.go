// Package notify provides utilities for sending formatted notifications to CLI users.
//
// This package includes [WriteMessage] for displaying formatted messages with
// type-specific symbols and colors, plus per-type convenience functions.
//
// Message types include success (✔), error (✗), warning (⚠), info (ℹ), activity (►),
// generate (✚), and title messages with customizable emojis.
package notify
