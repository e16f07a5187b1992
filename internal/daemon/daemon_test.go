package daemon_test

import (
	"context"
	"io"
	"testing"

	"pokedexd/internal/daemon"
	"pokedexd/internal/dex"
	"pokedexd/internal/display"
	"pokedexd/internal/logging"
	"pokedexd/internal/testsupport"
)

func newDaemon(t *testing.T, api *testsupport.FakeAPI) *daemon.Daemon {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithBaseURL(api.URL()), testsupport.WithDexRange(1, 200))
	st := testsupport.MustOpenStore(t, cfg)
	renderer := display.NewTerminal(io.Discard, cfg.Display.Width, false)

	d, err := daemon.New(cfg, st, renderer, logging.NewNop())
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}
	return d
}

func TestStartStopLifecycle(t *testing.T) {
	api := testsupport.NewFakeAPI(t, testsupport.Pikachu())
	d := newDaemon(t, api)
	ctx := context.Background()

	if d.Running() {
		t.Fatal("daemon must not run before Start")
	}
	if err := d.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !d.Running() {
		t.Fatal("expected daemon running after Start")
	}
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second Start to fail")
	}

	status := d.Status(ctx)
	if !status.Running || status.PID <= 0 {
		t.Fatalf("unexpected status: %+v", status)
	}

	d.Stop()
	if d.Running() {
		t.Fatal("expected daemon stopped")
	}
	// Stop is idempotent.
	d.Stop()
}

func TestShowByIDAndName(t *testing.T) {
	api := testsupport.NewFakeAPI(t, testsupport.Pikachu())
	d := newDaemon(t, api)
	ctx := context.Background()

	rec, fav, chain, err := d.Show(ctx, "25")
	if err != nil {
		t.Fatalf("show by id: %v", err)
	}
	if rec.Name != "pikachu" || fav {
		t.Fatalf("unexpected result: %+v fav=%v", rec, fav)
	}
	if len(chain) != 1 {
		t.Fatalf("expected evolution chain, got %+v", chain)
	}

	rec, _, _, err = d.Show(ctx, "pikachu")
	if err != nil {
		t.Fatalf("show by name: %v", err)
	}
	if rec.ID != 25 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestPressRequiresRunningDaemon(t *testing.T) {
	api := testsupport.NewFakeAPI(t, testsupport.Pikachu())
	d := newDaemon(t, api)
	ctx := context.Background()

	if _, err := d.Press(ctx, "a"); err == nil {
		t.Fatal("expected error while stopped")
	}

	if err := d.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer d.Stop()

	delivered, err := d.Press(ctx, "a")
	if err != nil {
		t.Fatalf("press: %v", err)
	}
	if !delivered {
		t.Fatal("expected press delivered")
	}

	// A bounce inside the debounce window is suppressed.
	delivered, err = d.Press(ctx, "a")
	if err != nil {
		t.Fatalf("press: %v", err)
	}
	if delivered {
		t.Fatal("expected debounce to suppress immediate repeat")
	}

	if _, err := d.Press(ctx, "nope"); err == nil {
		t.Fatal("expected error for unknown button")
	}
}

func TestPopulateStartRunsJob(t *testing.T) {
	api := testsupport.NewFakeAPI(t,
		testsupport.FakePokemon{ID: 1, Name: "bulbasaur", Types: []string{"grass"}},
		testsupport.FakePokemon{ID: 4, Name: "charmander", Types: []string{"fire"}},
	)
	d := newDaemon(t, api)
	ctx := context.Background()

	if _, err := d.PopulateStart(ctx); err == nil {
		t.Fatal("expected error while stopped")
	}

	if err := d.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	jobID, err := d.PopulateStart(ctx)
	if err != nil {
		t.Fatalf("populate start: %v", err)
	}
	if jobID == "" {
		t.Fatal("expected a job id")
	}

	// Stop waits for the background job to finish.
	d.Stop()

	result := d.LastPopulate()
	if result == nil {
		t.Fatal("expected a recorded populate result")
	}
	if result.Fetched+result.Skipped+result.Failed == 0 && !result.Canceled {
		t.Fatalf("expected job progress, got %+v", result)
	}
}

func TestFavouritesListing(t *testing.T) {
	api := testsupport.NewFakeAPI(t, testsupport.Pikachu())
	d := newDaemon(t, api)
	ctx := context.Background()

	rec, _, _, err := d.Show(ctx, "pikachu")
	if err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	marked, err := d.ToggleFavourite(ctx, rec.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !marked {
		t.Fatal("expected toggle to mark")
	}

	favs, err := d.Favourites(ctx)
	if err != nil {
		t.Fatalf("favourites: %v", err)
	}
	if len(favs) != 1 || favs[0].Name != "pikachu" {
		t.Fatalf("unexpected favourites: %+v", favs)
	}
	if len(favs[0].Types) != 1 || favs[0].Types[0] != dex.TypeElectric {
		t.Fatalf("unexpected types: %+v", favs[0].Types)
	}
}
