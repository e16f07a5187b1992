package store

import (
	"context"
	"fmt"
	"time"
)

// ToggleFavourite flips favourite membership for a cached record and returns
// the new membership. Records that were never cached cannot be favourited.
func (s *Store) ToggleFavourite(ctx context.Context, id int64) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin toggle tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists int
	row := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM records WHERE id = ?`, id)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check record: %w", err)
	}
	if exists == 0 {
		return false, fmt.Errorf("record %d is not cached; fetch it before favouriting", id)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM favourites WHERE record_id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("clear favourite: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("toggle favourite: %w", err)
	}

	marked := false
	if removed == 0 {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO favourites (record_id, marked_at) VALUES (?, ?)`,
			id,
			time.Now().UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return false, fmt.Errorf("mark favourite: %w", err)
		}
		marked = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit toggle: %w", err)
	}
	return marked, nil
}

// IsFavourite reports favourite membership for a record.
func (s *Store) IsFavourite(ctx context.Context, id int64) (bool, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM favourites WHERE record_id = ?`, id)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("check favourite: %w", err)
	}
	return count > 0, nil
}

// Favourites returns favourite record identifiers ordered by identifier.
func (s *Store) Favourites(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record_id FROM favourites ORDER BY record_id`)
	if err != nil {
		return nil, fmt.Errorf("list favourites: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
