package testsupport

import (
	"context"
	"testing"

	"pokedexd/internal/config"
	"pokedexd/internal/dex"
	"pokedexd/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return st
}

// SeedRecord inserts a minimal valid record with the given identity.
func SeedRecord(t testing.TB, st *store.Store, id int64, name string, types ...dex.TypeLabel) *dex.Record {
	t.Helper()

	if len(types) == 0 {
		types = []dex.TypeLabel{dex.TypeNormal}
	}
	rec := &dex.Record{
		ID:    id,
		Name:  name,
		Types: types,
		Stats: dex.Stats{HP: 10, Attack: 10, Defense: 10, SpAtk: 10, SpDef: 10, Speed: 10},
	}
	if err := st.PutRecord(context.Background(), rec); err != nil {
		t.Fatalf("seed record %d: %v", id, err)
	}
	return rec
}
