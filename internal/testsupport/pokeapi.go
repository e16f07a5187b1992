package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
)

// FakePokemon describes one entry served by the fake API.
type FakePokemon struct {
	ID       int64
	Name     string
	Types    []string
	Stats    map[string]int
	Flavor   string
	ChainID  int64
	Evolves  []FakeEvolution
}

// FakeEvolution is an edge in a fake evolution chain.
type FakeEvolution struct {
	FromID   int64
	ToID     int64
	ToName   string
	Trigger  string
	MinLevel int
}

// FakeAPI serves canned PokeAPI responses and counts requests.
type FakeAPI struct {
	Server   *httptest.Server
	requests atomic.Int64

	byID   map[int64]FakePokemon
	byName map[string]FakePokemon
}

// NewFakeAPI starts a fake PokeAPI server seeded with the given entries.
// The server is shut down when the test finishes.
func NewFakeAPI(t testing.TB, entries ...FakePokemon) *FakeAPI {
	t.Helper()

	api := &FakeAPI{
		byID:   make(map[int64]FakePokemon, len(entries)),
		byName: make(map[string]FakePokemon, len(entries)),
	}
	for _, entry := range entries {
		api.byID[entry.ID] = entry
		api.byName[entry.Name] = entry
	}

	api.Server = httptest.NewServer(http.HandlerFunc(api.handle))
	t.Cleanup(api.Server.Close)
	return api
}

// URL returns the fake server base URL.
func (a *FakeAPI) URL() string {
	return a.Server.URL
}

// Requests returns the number of requests observed so far.
func (a *FakeAPI) Requests() int64 {
	return a.requests.Load()
}

// Pikachu returns the canonical test fixture.
func Pikachu() FakePokemon {
	return FakePokemon{
		ID:    25,
		Name:  "pikachu",
		Types: []string{"electric"},
		Stats: map[string]int{
			"hp": 35, "attack": 55, "defense": 40,
			"special-attack": 50, "special-defense": 50, "speed": 90,
		},
		Flavor:  "When several of\nthese POKéMON\ngather, their\nelectricity can\ncause lightning storms.",
		ChainID: 10,
		Evolves: []FakeEvolution{{FromID: 25, ToID: 26, ToName: "raichu", Trigger: "use-item"}},
	}
}

func (a *FakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	a.requests.Add(1)

	path := strings.Trim(r.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case path == "pokemon" || path == "":
		a.serveIndex(w, r)
	case len(parts) == 2 && parts[0] == "pokemon":
		a.servePokemon(w, r, parts[1])
	case len(parts) == 2 && parts[0] == "pokemon-species":
		a.serveSpecies(w, r, parts[1])
	case len(parts) == 2 && parts[0] == "evolution-chain":
		a.serveChain(w, r, parts[1])
	default:
		http.NotFound(w, r)
	}
}

func (a *FakeAPI) lookup(ref string) (FakePokemon, bool) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		entry, ok := a.byID[id]
		return entry, ok
	}
	entry, ok := a.byName[ref]
	return entry, ok
}

func (a *FakeAPI) servePokemon(w http.ResponseWriter, r *http.Request, ref string) {
	entry, ok := a.lookup(ref)
	if !ok {
		http.NotFound(w, r)
		return
	}

	types := make([]map[string]any, 0, len(entry.Types))
	for i, name := range entry.Types {
		types = append(types, map[string]any{
			"slot": i + 1,
			"type": map[string]any{"name": name},
		})
	}
	stats := make([]map[string]any, 0, len(entry.Stats))
	for name, value := range entry.Stats {
		stats = append(stats, map[string]any{
			"base_stat": value,
			"stat":      map[string]any{"name": name},
		})
	}

	writeJSON(w, map[string]any{
		"id":     entry.ID,
		"name":   entry.Name,
		"height": 4,
		"weight": 60,
		"types":  types,
		"stats":  stats,
		"sprites": map[string]any{
			"front_default": fmt.Sprintf("https://sprites.test/%d-front.png", entry.ID),
			"back_default":  fmt.Sprintf("https://sprites.test/%d-back.png", entry.ID),
		},
		"species": map[string]any{
			"name": entry.Name,
			"url":  fmt.Sprintf("%s/pokemon-species/%d/", a.Server.URL, entry.ID),
		},
	})
}

func (a *FakeAPI) serveSpecies(w http.ResponseWriter, r *http.Request, ref string) {
	entry, ok := a.lookup(ref)
	if !ok {
		http.NotFound(w, r)
		return
	}

	writeJSON(w, map[string]any{
		"id": entry.ID,
		"flavor_text_entries": []map[string]any{
			{
				"flavor_text": entry.Flavor,
				"language":    map[string]any{"name": "en"},
			},
		},
		"evolution_chain": map[string]any{
			"url": fmt.Sprintf("%s/evolution-chain/%d/", a.Server.URL, entry.ChainID),
		},
	})
}

func (a *FakeAPI) serveChain(w http.ResponseWriter, r *http.Request, ref string) {
	chainID, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	for _, entry := range a.byID {
		if entry.ChainID != chainID {
			continue
		}
		evolvesTo := make([]map[string]any, 0, len(entry.Evolves))
		for _, evo := range entry.Evolves {
			details := []map[string]any{{
				"trigger":   map[string]any{"name": evo.Trigger},
				"min_level": nil,
			}}
			if evo.MinLevel > 0 {
				details[0]["min_level"] = evo.MinLevel
			}
			evolvesTo = append(evolvesTo, map[string]any{
				"species": map[string]any{
					"name": evo.ToName,
					"url":  fmt.Sprintf("https://pokeapi.test/pokemon-species/%d/", evo.ToID),
				},
				"evolution_details": details,
				"evolves_to":        []any{},
			})
		}
		writeJSON(w, map[string]any{
			"id": chainID,
			"chain": map[string]any{
				"species": map[string]any{
					"name": entry.Name,
					"url":  fmt.Sprintf("https://pokeapi.test/pokemon-species/%d/", entry.ID),
				},
				"evolves_to": evolvesTo,
			},
		})
		return
	}
	http.NotFound(w, r)
}

func (a *FakeAPI) serveIndex(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	ids := make([]int64, 0, len(a.byID))
	for id := range a.byID {
		ids = append(ids, id)
	}
	sortInt64s(ids)

	results := make([]map[string]any, 0, limit)
	for i := offset; i < len(ids) && len(results) < limit; i++ {
		entry := a.byID[ids[i]]
		results = append(results, map[string]any{
			"name": entry.Name,
			"url":  fmt.Sprintf("%s/pokemon/%d/", a.Server.URL, entry.ID),
		})
	}

	next := ""
	if offset+limit < len(ids) {
		next = fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", a.Server.URL, limit, offset+limit)
	}

	writeJSON(w, map[string]any{
		"count":   len(ids),
		"next":    next,
		"results": results,
	})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func sortInt64s(values []int64) {
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j] < values[j-1]; j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}
}
