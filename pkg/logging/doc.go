// Package logging provides structured logging configuration for querygen.
//
// This package wraps log/slog so the CLI and the generation engine log the
// same way. It supports configurable log levels, text or JSON output, and an
// optional JSON log file written alongside the console output.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	})
//
//	logger.Debug("factory matched", "type", "[String!]", "pattern", "String")
//
// # Integration
//
// Components accept a *slog.Logger in their configuration. When none is
// provided they use logging.Nop().
package logging
