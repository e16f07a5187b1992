package store

import (
	"fmt"

	"pokedexd/internal/dex"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*dex.Record, error) {
	var rec dex.Record
	var type1 string
	var type2, spriteFront, spriteBack, flavor *string

	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&type1,
		&type2,
		&rec.Stats.HP,
		&rec.Stats.Attack,
		&rec.Stats.Defense,
		&rec.Stats.SpAtk,
		&rec.Stats.SpDef,
		&rec.Stats.Speed,
		&spriteFront,
		&spriteBack,
		&flavor,
		&rec.HeightDM,
		&rec.WeightHG,
	)
	if err != nil {
		return nil, err
	}

	label, ok := dex.ParseType(type1)
	if !ok {
		return nil, fmt.Errorf("record %d: stored type %q is not valid", rec.ID, type1)
	}
	rec.Types = append(rec.Types, label)
	if type2 != nil && *type2 != "" {
		second, ok := dex.ParseType(*type2)
		if !ok {
			return nil, fmt.Errorf("record %d: stored type %q is not valid", rec.ID, *type2)
		}
		rec.Types = append(rec.Types, second)
	}
	if spriteFront != nil {
		rec.SpriteFront = *spriteFront
	}
	if spriteBack != nil {
		rec.SpriteBack = *spriteBack
	}
	if flavor != nil {
		rec.FlavorText = *flavor
	}
	return &rec, nil
}
