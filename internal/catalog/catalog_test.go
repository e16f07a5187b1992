package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pokedexd/internal/catalog"
	"pokedexd/internal/config"
	"pokedexd/internal/dex"
	"pokedexd/internal/logging"
	"pokedexd/internal/pokeapi"
	"pokedexd/internal/store"
	"pokedexd/internal/testsupport"
)

func newCatalog(t *testing.T, api *testsupport.FakeAPI, opts ...testsupport.ConfigOption) (*catalog.Catalog, *store.Store, *config.Config) {
	t.Helper()

	opts = append([]testsupport.ConfigOption{testsupport.WithBaseURL(api.URL())}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	st := testsupport.MustOpenStore(t, cfg)

	client, err := pokeapi.New(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Language,
		pokeapi.WithRetries(cfg.PokeAPI.MaxRetries, time.Millisecond))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	cat, err := catalog.New(cfg, st, client, logging.NewNop())
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return cat, st, cfg
}

func TestRecordFetchesAndCaches(t *testing.T) {
	api := testsupport.NewFakeAPI(t, testsupport.Pikachu())
	cat, st, _ := newCatalog(t, api)
	ctx := context.Background()

	rec, err := cat.Record(ctx, 25)
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if rec.Name != "pikachu" || rec.Types[0] != dex.TypeElectric {
		t.Fatalf("unexpected record: %+v", rec)
	}

	cached, err := st.GetRecord(ctx, 25)
	if err != nil {
		t.Fatalf("read cache: %v", err)
	}
	if cached == nil {
		t.Fatal("expected fetch to persist record")
	}

	before := api.Requests()
	again, err := cat.Record(ctx, 25)
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if again.Name != "pikachu" {
		t.Fatalf("unexpected cached record: %+v", again)
	}
	if api.Requests() != before {
		t.Fatalf("expected cache hit without network traffic, saw %d extra requests", api.Requests()-before)
	}
}

func TestRecordByNameFetches(t *testing.T) {
	api := testsupport.NewFakeAPI(t, testsupport.Pikachu())
	cat, _, _ := newCatalog(t, api)

	rec, err := cat.RecordByName(context.Background(), "  Pikachu ")
	if err != nil {
		t.Fatalf("lookup by name: %v", err)
	}
	if rec.ID != 25 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestRecordOutsideDexRange(t *testing.T) {
	api := testsupport.NewFakeAPI(t, testsupport.Pikachu())
	cat, _, _ := newCatalog(t, api, testsupport.WithDexRange(1, 10))

	_, err := cat.Record(context.Background(), 25)
	if !errors.Is(err, catalog.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if api.Requests() != 0 {
		t.Fatal("expected no network traffic for out-of-range lookup")
	}
}

func TestRecordNotFound(t *testing.T) {
	api := testsupport.NewFakeAPI(t)
	cat, _, _ := newCatalog(t, api)

	_, err := cat.Record(context.Background(), 151)
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordOfflineServesCache(t *testing.T) {
	api := testsupport.NewFakeAPI(t, testsupport.Pikachu())
	cat, _, _ := newCatalog(t, api)
	ctx := context.Background()

	if _, err := cat.Record(ctx, 25); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	api.Server.Close()

	rec, err := cat.Record(ctx, 25)
	if err != nil {
		t.Fatalf("expected cached record while offline, got %v", err)
	}
	if rec.Name != "pikachu" {
		t.Fatalf("unexpected record: %+v", rec)
	}

	_, err = cat.Record(ctx, 1)
	if !errors.Is(err, catalog.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for uncached record while offline, got %v", err)
	}
	if !catalog.Offline(err) {
		t.Fatalf("expected Offline to classify %v", err)
	}
}

func TestRecordStoresEvolutions(t *testing.T) {
	api := testsupport.NewFakeAPI(t, testsupport.Pikachu())
	cat, _, _ := newCatalog(t, api)
	ctx := context.Background()

	if _, err := cat.Record(ctx, 25); err != nil {
		t.Fatalf("fetch record: %v", err)
	}

	chain, err := cat.Evolutions(ctx, 25)
	if err != nil {
		t.Fatalf("read evolutions: %v", err)
	}
	if len(chain) != 1 || chain[0].ToID != 26 || chain[0].Trigger != "use-item" {
		t.Fatalf("unexpected chain: %+v", chain)
	}
}

func TestPopulateSkipsCached(t *testing.T) {
	api := testsupport.NewFakeAPI(t,
		testsupport.FakePokemon{ID: 1, Name: "bulbasaur", Types: []string{"grass"}},
		testsupport.FakePokemon{ID: 4, Name: "charmander", Types: []string{"fire"}},
		testsupport.FakePokemon{ID: 7, Name: "squirtle", Types: []string{"water"}},
	)
	cat, st, _ := newCatalog(t, api)
	ctx := context.Background()

	testsupport.SeedRecord(t, st, 4, "charmander", dex.TypeFire)

	var snapshots []catalog.PopulateProgress
	result, err := cat.Populate(ctx, func(p catalog.PopulateProgress) {
		snapshots = append(snapshots, p)
	})
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	if result.Fetched != 2 || result.Skipped != 1 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Canceled {
		t.Fatal("expected job to run to completion")
	}
	if result.JobID == "" {
		t.Fatal("expected a job identifier")
	}
	if len(snapshots) == 0 {
		t.Fatal("expected progress callbacks")
	}
	final := snapshots[len(snapshots)-1]
	if final.Done != 3 {
		t.Fatalf("expected final progress to cover all entries, got %+v", final)
	}

	count, err := st.CountRecords(ctx)
	if err != nil {
		t.Fatalf("count records: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected all records cached, got %d", count)
	}
}

func TestPopulateCancellation(t *testing.T) {
	api := testsupport.NewFakeAPI(t,
		testsupport.FakePokemon{ID: 1, Name: "bulbasaur", Types: []string{"grass"}},
		testsupport.FakePokemon{ID: 4, Name: "charmander", Types: []string{"fire"}},
	)
	cat, _, _ := newCatalog(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	result, err := cat.Populate(ctx, func(p catalog.PopulateProgress) {
		cancel()
	})
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	if !result.Canceled {
		t.Fatalf("expected canceled result, got %+v", result)
	}
	if result.Fetched+result.Skipped >= 2 {
		t.Fatalf("expected early stop, got %+v", result)
	}
}
