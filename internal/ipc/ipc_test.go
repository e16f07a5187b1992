package ipc_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"pokedexd/internal/daemon"
	"pokedexd/internal/dex"
	"pokedexd/internal/display"
	"pokedexd/internal/ipc"
	"pokedexd/internal/logging"
	"pokedexd/internal/store"
	"pokedexd/internal/testsupport"
)

// startServer brings up a daemon with a fake API and serves RPC on the
// configured socket.
func startServer(t *testing.T, api *testsupport.FakeAPI) (*ipc.Client, *store.Store) {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithBaseURL(api.URL()), testsupport.WithDexRange(1, 200))
	st := testsupport.MustOpenStore(t, cfg)

	renderer := display.NewTerminal(io.Discard, cfg.Display.Width, false)
	d, err := daemon.New(cfg, st, renderer, logging.NewNop())
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if err := d.Start(ctx); err != nil {
		t.Fatalf("start daemon: %v", err)
	}
	t.Cleanup(d.Stop)

	server, err := ipc.NewServer(ctx, cfg.SocketPath(), d, logging.NewNop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	server.Serve()
	t.Cleanup(server.Close)

	client, err := ipc.Dial(cfg.SocketPath())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, st
}

func TestStatusRoundTrip(t *testing.T) {
	api := testsupport.NewFakeAPI(t, testsupport.Pikachu())
	client, _ := startServer(t, api)

	status, err := client.Status()
	if err != nil {
		t.Fatalf("status call: %v", err)
	}
	if !status.Running {
		t.Fatal("expected daemon running")
	}
	if status.State != "browsing" {
		t.Fatalf("expected browsing state, got %q", status.State)
	}
	if status.PID <= 0 || status.DBPath == "" || status.LockPath == "" {
		t.Fatalf("incomplete status: %+v", status)
	}
}

func TestShowFetchesRecord(t *testing.T) {
	api := testsupport.NewFakeAPI(t, testsupport.Pikachu())
	client, st := startServer(t, api)

	resp, err := client.Show("pikachu")
	if err != nil {
		t.Fatalf("show call: %v", err)
	}
	if resp.Record.ID != 25 || resp.Record.DisplayName != "Pikachu" {
		t.Fatalf("unexpected record: %+v", resp.Record)
	}
	if resp.Record.Types != "Electric" {
		t.Fatalf("unexpected types: %q", resp.Record.Types)
	}
	if len(resp.Evolutions) != 1 || resp.Evolutions[0].ToID != 26 {
		t.Fatalf("unexpected evolutions: %+v", resp.Evolutions)
	}

	cached, err := st.GetRecord(context.Background(), 25)
	if err != nil || cached == nil {
		t.Fatalf("expected record cached after show, got %v/%v", cached, err)
	}
}

func TestShowUnknownRecord(t *testing.T) {
	api := testsupport.NewFakeAPI(t)
	client, _ := startServer(t, api)

	_, err := client.Show("missingno")
	if err == nil {
		t.Fatal("expected error for unknown record")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestFavouriteToggleRoundTrip(t *testing.T) {
	api := testsupport.NewFakeAPI(t, testsupport.Pikachu())
	client, st := startServer(t, api)

	testsupport.SeedRecord(t, st, 25, "pikachu", dex.TypeElectric)

	resp, err := client.FavouriteToggle(25)
	if err != nil {
		t.Fatalf("toggle call: %v", err)
	}
	if !resp.Favourite {
		t.Fatal("expected first toggle to mark favourite")
	}

	favs, err := client.Favourites()
	if err != nil {
		t.Fatalf("favourites call: %v", err)
	}
	if len(favs.Records) != 1 || favs.Records[0].ID != 25 || !favs.Records[0].Favourite {
		t.Fatalf("unexpected favourites: %+v", favs.Records)
	}

	resp, err = client.FavouriteToggle(25)
	if err != nil {
		t.Fatalf("second toggle call: %v", err)
	}
	if resp.Favourite {
		t.Fatal("expected second toggle to unmark favourite")
	}
}

func TestFavouriteToggleUncached(t *testing.T) {
	api := testsupport.NewFakeAPI(t)
	client, _ := startServer(t, api)

	if _, err := client.FavouriteToggle(999); err == nil {
		t.Fatal("expected error toggling an uncached record")
	}
}

func TestListWithSearch(t *testing.T) {
	api := testsupport.NewFakeAPI(t)
	client, st := startServer(t, api)

	testsupport.SeedRecord(t, st, 1, "bulbasaur", dex.TypeGrass)
	testsupport.SeedRecord(t, st, 4, "charmander", dex.TypeFire)

	resp, err := client.List(ipc.ListRequest{Search: "char"})
	if err != nil {
		t.Fatalf("list call: %v", err)
	}
	if len(resp.Records) != 1 || resp.Records[0].Name != "charmander" {
		t.Fatalf("unexpected listing: %+v", resp.Records)
	}
}

func TestPressInjectsButton(t *testing.T) {
	api := testsupport.NewFakeAPI(t, testsupport.Pikachu())
	client, _ := startServer(t, api)

	resp, err := client.Press("right")
	if err != nil {
		t.Fatalf("press call: %v", err)
	}
	if !resp.Delivered {
		t.Fatal("expected press to be delivered")
	}

	if _, err := client.Press("turbo"); err == nil {
		t.Fatal("expected error for unknown button")
	}
}

func TestDatabaseHealthRoundTrip(t *testing.T) {
	api := testsupport.NewFakeAPI(t)
	client, st := startServer(t, api)

	testsupport.SeedRecord(t, st, 25, "pikachu", dex.TypeElectric)

	resp, err := client.DatabaseHealth()
	if err != nil {
		t.Fatalf("health call: %v", err)
	}
	if !resp.DatabaseExists || !resp.DatabaseReadable || !resp.IntegrityCheck {
		t.Fatalf("expected healthy database, got %+v", resp)
	}
	if resp.TotalRecords != 1 {
		t.Fatalf("expected one record, got %d", resp.TotalRecords)
	}
}

func TestNotificationUnconfigured(t *testing.T) {
	api := testsupport.NewFakeAPI(t)
	client, _ := startServer(t, api)

	resp, err := client.TestNotification()
	if err != nil {
		t.Fatalf("test notification call: %v", err)
	}
	if resp.Sent {
		t.Fatal("expected no send without a configured topic")
	}
	if resp.Message == "" {
		t.Fatal("expected a hint message")
	}
}
