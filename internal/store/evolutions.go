package store

import (
	"context"
	"fmt"

	"pokedexd/internal/dex"
)

// PutEvolutions replaces the stored edges originating from the given chain.
// Edges are replayed wholesale because PokeAPI returns complete chains.
func (s *Store) PutEvolutions(ctx context.Context, chain []dex.Evolution) error {
	if len(chain) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin evolutions tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, evo := range chain {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO evolutions (from_id, to_id, evo_trigger, min_level, item)
             VALUES (?, ?, ?, ?, ?)
             ON CONFLICT(from_id, to_id) DO UPDATE SET
                 evo_trigger = excluded.evo_trigger, min_level = excluded.min_level, item = excluded.item`,
			evo.FromID,
			evo.ToID,
			nullableString(evo.Trigger),
			nullableInt(evo.MinLevel),
			nullableString(evo.Item),
		)
		if err != nil {
			return fmt.Errorf("put evolution %d->%d: %w", evo.FromID, evo.ToID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit evolutions: %w", err)
	}
	return nil
}

// EvolutionChain walks the evolution graph downward from the given record.
func (s *Store) EvolutionChain(ctx context.Context, id int64) ([]dex.Evolution, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`WITH RECURSIVE chain(from_id, to_id, evo_trigger, min_level, item) AS (
            SELECT from_id, to_id, evo_trigger, min_level, item
            FROM evolutions
            WHERE from_id = ?
            UNION
            SELECT e.from_id, e.to_id, e.evo_trigger, e.min_level, e.item
            FROM evolutions e
            JOIN chain c ON e.from_id = c.to_id
        )
        SELECT from_id, to_id, evo_trigger, min_level, item FROM chain ORDER BY from_id, to_id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("evolution chain: %w", err)
	}
	defer rows.Close()

	var chain []dex.Evolution
	for rows.Next() {
		var evo dex.Evolution
		var trigger, item *string
		var minLevel *int
		if err := rows.Scan(&evo.FromID, &evo.ToID, &trigger, &minLevel, &item); err != nil {
			return nil, err
		}
		if trigger != nil {
			evo.Trigger = *trigger
		}
		if minLevel != nil {
			evo.MinLevel = *minLevel
		}
		if item != nil {
			evo.Item = *item
		}
		chain = append(chain, evo)
	}
	return chain, rows.Err()
}

func nullableInt(value int) any {
	if value == 0 {
		return nil
	}
	return value
}
