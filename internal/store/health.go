package store

import (
	"context"
	"os"
)

// DatabaseHealth captures diagnostic information about the dex database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    string
	IntegrityCheck   bool
	TotalRecords     int
	TotalFavourites  int
	Error            string
}

// Health inspects the database file and schema for the health IPC surface.
func (s *Store) Health(ctx context.Context) DatabaseHealth {
	health := DatabaseHealth{DBPath: s.path}

	if _, err := os.Stat(s.path); err == nil {
		health.DatabaseExists = true
	}

	var version string
	row := s.db.QueryRowContext(ctx, `SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1`)
	if err := row.Scan(&version); err != nil {
		health.Error = err.Error()
		return health
	}
	health.DatabaseReadable = true
	health.SchemaVersion = version

	var integrity string
	row = s.db.QueryRowContext(ctx, `PRAGMA integrity_check`)
	if err := row.Scan(&integrity); err != nil {
		health.Error = err.Error()
		return health
	}
	health.IntegrityCheck = integrity == "ok"

	if count, err := s.CountRecords(ctx); err == nil {
		health.TotalRecords = count
	}
	if favs, err := s.Favourites(ctx); err == nil {
		health.TotalFavourites = len(favs)
	}

	return health
}
