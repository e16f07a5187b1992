package pokeapi

import (
	"fmt"
	"sort"

	"pokedexd/internal/dex"
)

// ToRecord converts an API pokemon payload into a validated dex record.
// Species data is optional; when present it supplies flavor text.
func ToRecord(p *Pokemon, species *Species, lang string) (*dex.Record, error) {
	if p == nil {
		return nil, fmt.Errorf("pokemon payload is nil")
	}

	rec := &dex.Record{
		ID:          p.ID,
		Name:        p.Name,
		SpriteFront: p.Sprites.FrontDefault,
		SpriteBack:  p.Sprites.BackDefault,
		HeightDM:    p.Height,
		WeightHG:    p.Weight,
	}

	slots := make([]struct {
		slot  int
		label dex.TypeLabel
	}, 0, len(p.Types))
	for _, entry := range p.Types {
		label, ok := dex.ParseType(entry.Type.Name)
		if !ok {
			return nil, fmt.Errorf("pokemon %d: unknown type %q", p.ID, entry.Type.Name)
		}
		slots = append(slots, struct {
			slot  int
			label dex.TypeLabel
		}{entry.Slot, label})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].slot < slots[j].slot })
	for _, entry := range slots {
		rec.Types = append(rec.Types, entry.label)
	}

	for _, entry := range p.Stats {
		switch entry.Stat.Name {
		case "hp":
			rec.Stats.HP = entry.BaseStat
		case "attack":
			rec.Stats.Attack = entry.BaseStat
		case "defense":
			rec.Stats.Defense = entry.BaseStat
		case "special-attack":
			rec.Stats.SpAtk = entry.BaseStat
		case "special-defense":
			rec.Stats.SpDef = entry.BaseStat
		case "speed":
			rec.Stats.Speed = entry.BaseStat
		}
	}

	if species != nil {
		rec.FlavorText = dex.NormalizeFlavor(species.FlavorText(lang))
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// ChainToEvolutions converts flattened chain edges into domain evolutions.
func ChainToEvolutions(edges []ChainEdge) []dex.Evolution {
	out := make([]dex.Evolution, 0, len(edges))
	for _, edge := range edges {
		if edge.FromID <= 0 || edge.ToID <= 0 {
			continue
		}
		out = append(out, dex.Evolution{
			FromID:   edge.FromID,
			ToID:     edge.ToID,
			Trigger:  edge.Trigger,
			MinLevel: edge.MinLevel,
			Item:     edge.Item,
		})
	}
	return out
}
