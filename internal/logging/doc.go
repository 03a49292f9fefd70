// Package logging provides structured logging for formkit using log/slog.
//
// Text output goes through a compact terminal handler that colours levels when
// the writer is a TTY; JSON output uses slog's JSON handler. Attribute keys
// that look sensitive (password, token) are masked by both handlers.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//	})
//	logger.Debug("field changed", "field", "email")
//
// Tests should use ForTest so output only shows up on failure or with -v.
package logging
