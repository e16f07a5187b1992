package display

import (
	"strings"
	"testing"

	"pokedexd/internal/dex"
)

func pikachu() *dex.Record {
	return &dex.Record{
		ID:         25,
		Name:       "pikachu",
		Types:      []dex.TypeLabel{dex.TypeElectric},
		Stats:      dex.Stats{HP: 35, Attack: 55, Defense: 40, SpAtk: 50, SpDef: 50, Speed: 90},
		FlavorText: "When several of these gather, their electricity can cause lightning storms.",
		HeightDM:   4,
		WeightHG:   60,
	}
}

func TestRenderBrowsing(t *testing.T) {
	var b strings.Builder
	term := NewTerminal(&b, 40, false)

	err := term.Render(Frame{
		View:        ViewBrowsing,
		Cursor:      25,
		Record:      pikachu(),
		IsFavourite: true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	out := b.String()
	if !strings.Contains(out, "Pikachu") {
		t.Fatalf("expected display name, got:\n%s", out)
	}
	if !strings.Contains(out, "* Pikachu") {
		t.Fatalf("expected favourite marker, got:\n%s", out)
	}
	if !strings.Contains(out, "Electric") {
		t.Fatalf("expected type line, got:\n%s", out)
	}
}

func TestRenderBrowsingWithoutRecord(t *testing.T) {
	var b strings.Builder
	term := NewTerminal(&b, 40, false)

	err := term.Render(Frame{View: ViewBrowsing, Cursor: 7, Status: "offline"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "7") {
		t.Fatalf("expected cursor position, got:\n%s", out)
	}
	if !strings.Contains(out, "offline") {
		t.Fatalf("expected status line, got:\n%s", out)
	}
}

func TestRenderDetail(t *testing.T) {
	var b strings.Builder
	term := NewTerminal(&b, 40, false)

	err := term.Render(Frame{
		View:   ViewDetail,
		Cursor: 25,
		Record: pikachu(),
		Evolutions: []dex.Evolution{
			{FromID: 25, ToID: 26, Trigger: "use-item", Item: "thunder-stone"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	out := b.String()
	for _, want := range []string{"#25 Pikachu", "speed", "90", "lightning", "25 -> 26", "thunder-stone"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in detail view, got:\n%s", want, out)
		}
	}
}

func TestRenderFavourites(t *testing.T) {
	var b strings.Builder
	term := NewTerminal(&b, 40, false)

	err := term.Render(Frame{
		View: ViewFavourites,
		Favourites: []*dex.Record{
			pikachu(),
			{ID: 133, Name: "eevee", Types: []dex.TypeLabel{dex.TypeNormal}},
		},
		FavIndex: 1,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	out := b.String()
	if !strings.Contains(out, "Favourites") {
		t.Fatalf("expected title, got:\n%s", out)
	}
	if !strings.Contains(out, "Eevee") || !strings.Contains(out, "Pikachu") {
		t.Fatalf("expected both favourites, got:\n%s", out)
	}
}

func TestRenderFavouritesEmpty(t *testing.T) {
	var b strings.Builder
	term := NewTerminal(&b, 40, false)

	if err := term.Render(Frame{View: ViewFavourites}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(b.String(), "no favourites yet") {
		t.Fatalf("expected empty hint, got:\n%s", b.String())
	}
}

func TestWrapText(t *testing.T) {
	wrapped := wrapText("one two three four five", 9)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 9 {
			t.Fatalf("line %q exceeds width", line)
		}
	}
	if strings.Join(strings.Fields(wrapped), " ") != "one two three four five" {
		t.Fatalf("words lost in wrap: %q", wrapped)
	}
}
