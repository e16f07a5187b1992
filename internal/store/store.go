package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"pokedexd/internal/config"
	"pokedexd/internal/dex"
)

// Store manages dex persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the dex database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.DatabasePath())
}

// OpenPath opens the database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

const recordColumns = `id, name, type1, type2, hp, attack, defense, sp_atk, sp_def, speed,
    sprite_front, sprite_back, flavor_text, height_dm, weight_hg`

// GetRecord fetches a record by identifier. Absent records yield nil, nil.
func (s *Store) GetRecord(ctx context.Context, id int64) (*dex.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// GetRecordByName fetches a record by its lowercase API name. Matching is
// case-insensitive; absent records yield nil, nil.
func (s *Store) GetRecordByName(ctx context.Context, name string) (*dex.Record, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+recordColumns+` FROM records WHERE name = LOWER(?) LIMIT 1`,
		name,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record by name: %w", err)
	}
	return rec, nil
}

// PutRecord upserts a record. Types are stored in slot order.
func (s *Store) PutRecord(ctx context.Context, rec *dex.Record) error {
	if rec == nil {
		return errors.New("record is nil")
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	var type2 any
	if len(rec.Types) > 1 {
		type2 = string(rec.Types[1])
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO records (
            id, name, type1, type2, hp, attack, defense, sp_atk, sp_def, speed,
            sprite_front, sprite_back, flavor_text, height_dm, weight_hg, fetched_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name, type1 = excluded.type1, type2 = excluded.type2,
            hp = excluded.hp, attack = excluded.attack, defense = excluded.defense,
            sp_atk = excluded.sp_atk, sp_def = excluded.sp_def, speed = excluded.speed,
            sprite_front = excluded.sprite_front, sprite_back = excluded.sprite_back,
            flavor_text = excluded.flavor_text, height_dm = excluded.height_dm,
            weight_hg = excluded.weight_hg, fetched_at = excluded.fetched_at`,
		rec.ID,
		rec.Name,
		string(rec.Types[0]),
		type2,
		rec.Stats.HP,
		rec.Stats.Attack,
		rec.Stats.Defense,
		rec.Stats.SpAtk,
		rec.Stats.SpDef,
		rec.Stats.Speed,
		nullableString(rec.SpriteFront),
		nullableString(rec.SpriteBack),
		nullableString(rec.FlavorText),
		rec.HeightDM,
		rec.WeightHG,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	return nil
}

// DeleteRecord removes a record (and, via cascade, its favourite mark).
// Used for explicit cache invalidation only.
func (s *Store) DeleteRecord(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// ListFilter narrows ListRecords output.
type ListFilter struct {
	Search         string
	FavouritesOnly bool
	Limit          int
	Offset         int
}

// ListRecords returns cached records ordered by identifier.
func (s *Store) ListRecords(ctx context.Context, filter ListFilter) ([]*dex.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records`
	var clauses []string
	var args []any

	if filter.Search != "" {
		clauses = append(clauses, "name LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.FavouritesOnly {
		clauses = append(clauses, "id IN (SELECT record_id FROM favourites)")
	}
	if len(clauses) > 0 {
		query += " WHERE " + joinClauses(clauses)
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*dex.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountRecords returns the number of cached records.
func (s *Store) CountRecords(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM records`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// MaxRecordID returns the highest cached identifier, or 0 when empty.
func (s *Store) MaxRecordID(ctx context.Context) (int64, error) {
	var max sql.NullInt64
	row := s.db.QueryRowContext(ctx, `SELECT MAX(id) FROM records`)
	if err := row.Scan(&max); err != nil {
		return 0, fmt.Errorf("max record id: %w", err)
	}
	if !max.Valid {
		return 0, nil
	}
	return max.Int64, nil
}

func joinClauses(clauses []string) string {
	result := clauses[0]
	for _, clause := range clauses[1:] {
		result += " AND " + clause
	}
	return result
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
