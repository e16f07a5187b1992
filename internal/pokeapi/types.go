package pokeapi

// NamedResource is the {name, url} pair PokeAPI uses for cross references.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PokemonType carries one slot-ordered type assignment.
type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// PokemonStat carries one base stat value.
type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

// Pokemon models the subset of the /pokemon payload the appliance consumes.
type Pokemon struct {
	ID      int64         `json:"id"`
	Name    string        `json:"name"`
	Height  int           `json:"height"`
	Weight  int           `json:"weight"`
	Types   []PokemonType `json:"types"`
	Stats   []PokemonStat `json:"stats"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		BackDefault  string `json:"back_default"`
	} `json:"sprites"`
	Species NamedResource `json:"species"`
}

// Species models the subset of the /pokemon-species payload in use.
type Species struct {
	ID                int64 `json:"id"`
	FlavorTextEntries []struct {
		FlavorText string        `json:"flavor_text"`
		Language   NamedResource `json:"language"`
	} `json:"flavor_text_entries"`
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

// FlavorText returns the first flavor entry in the requested language.
func (s *Species) FlavorText(lang string) string {
	for _, entry := range s.FlavorTextEntries {
		if entry.Language.Name == lang {
			return entry.FlavorText
		}
	}
	return ""
}

// chainLink is one node of the recursive /evolution-chain payload.
type chainLink struct {
	Species          NamedResource `json:"species"`
	EvolutionDetails []struct {
		Trigger  NamedResource  `json:"trigger"`
		MinLevel *int           `json:"min_level"`
		Item     *NamedResource `json:"item"`
	} `json:"evolution_details"`
	EvolvesTo []chainLink `json:"evolves_to"`
}

// evolutionChainPayload is the top-level /evolution-chain response.
type evolutionChainPayload struct {
	ID    int64     `json:"id"`
	Chain chainLink `json:"chain"`
}

// IndexPage is one page of the paged /pokemon index.
type IndexPage struct {
	Count   int          `json:"count"`
	Next    string       `json:"next"`
	Results []IndexEntry `json:"results"`
}

// IndexEntry is a single index row; ID is derived from the entry URL.
type IndexEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
