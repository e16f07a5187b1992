// Package logs reads the daemon log file for the CLI without holding it open.
package logs
