package dex_test

import (
	"testing"

	"pokedexd/internal/dex"
)

func TestValidateRejectsBadRecords(t *testing.T) {
	cases := []struct {
		name   string
		record dex.Record
	}{
		{"zero id", dex.Record{Name: "pikachu", Types: []dex.TypeLabel{dex.TypeElectric}}},
		{"empty name", dex.Record{ID: 25, Types: []dex.TypeLabel{dex.TypeElectric}}},
		{"no types", dex.Record{ID: 25, Name: "pikachu"}},
		{"three types", dex.Record{ID: 25, Name: "pikachu", Types: []dex.TypeLabel{dex.TypeElectric, dex.TypeFire, dex.TypeWater}}},
		{"unknown type", dex.Record{ID: 25, Name: "pikachu", Types: []dex.TypeLabel{"plasma"}}},
	}
	for _, tc := range cases {
		if err := tc.record.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}

	valid := dex.Record{ID: 25, Name: "pikachu", Types: []dex.TypeLabel{dex.TypeElectric}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
}

func TestParseType(t *testing.T) {
	label, ok := dex.ParseType(" Electric ")
	if !ok || label != dex.TypeElectric {
		t.Fatalf("ParseType: got %q ok=%v", label, ok)
	}
	if _, ok := dex.ParseType("plasma"); ok {
		t.Fatal("expected unknown type to be rejected")
	}
	if !dex.ValidType("fairy") {
		t.Fatal("expected fairy to be valid")
	}
}

func TestDisplayName(t *testing.T) {
	rec := dex.Record{ID: 122, Name: "mr-mime", Types: []dex.TypeLabel{dex.TypePsychic, dex.TypeFairy}}
	if got := rec.DisplayName(); got != "Mr Mime" {
		t.Fatalf("DisplayName: got %q", got)
	}
	if got := rec.TypeLine(); got != "Psychic, Fairy" {
		t.Fatalf("TypeLine: got %q", got)
	}
}

func TestNormalizeFlavor(t *testing.T) {
	raw := "When several of\nthese POKéMON\fgather, their\nelectricity could\nbuild and cause\nlightning storms."
	got := dex.NormalizeFlavor(raw)
	want := "When several of these POKéMON gather, their electricity could build and cause lightning storms."
	if got != want {
		t.Fatalf("NormalizeFlavor:\n got %q\nwant %q", got, want)
	}
}

func TestStatsByName(t *testing.T) {
	stats := dex.Stats{HP: 35, Attack: 55, Defense: 40, SpAtk: 50, SpDef: 50, Speed: 90}
	for _, name := range dex.StatNames {
		if _, ok := stats.ByName(name); !ok {
			t.Fatalf("missing stat %q", name)
		}
	}
	if v, _ := stats.ByName("speed"); v != 90 {
		t.Fatalf("speed: got %d", v)
	}
	if _, ok := stats.ByName("luck"); ok {
		t.Fatal("expected unknown stat to be rejected")
	}
}
