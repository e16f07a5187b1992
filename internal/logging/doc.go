// Package logging constructs slog loggers for the daemon and CLI.
//
// Output defaults to a human-readable console format on stdout; a JSON
// handler is available for machine consumption. File output is appended
// alongside stdout when a log directory is configured.
package logging
