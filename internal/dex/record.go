package dex

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stats holds the six base stat values of a record.
type Stats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	SpAtk   int `json:"sp_atk"`
	SpDef   int `json:"sp_def"`
	Speed   int `json:"speed"`
}

// StatNames lists stat keys in canonical display order.
var StatNames = []string{"hp", "attack", "defense", "sp_atk", "sp_def", "speed"}

// ByName returns the stat value for a canonical stat key.
func (s Stats) ByName(name string) (int, bool) {
	switch name {
	case "hp":
		return s.HP, true
	case "attack":
		return s.Attack, true
	case "defense":
		return s.Defense, true
	case "sp_atk":
		return s.SpAtk, true
	case "sp_def":
		return s.SpDef, true
	case "speed":
		return s.Speed, true
	default:
		return 0, false
	}
}

// Record is a single Pokedex entry. Keyed by ID; immutable once assembled.
type Record struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Types       []TypeLabel `json:"types"`
	Stats       Stats       `json:"stats"`
	SpriteFront string      `json:"sprite_front,omitempty"`
	SpriteBack  string      `json:"sprite_back,omitempty"`
	FlavorText  string      `json:"flavor_text,omitempty"`
	HeightDM    int         `json:"height_dm,omitempty"`
	WeightHG    int         `json:"weight_hg,omitempty"`
}

// Evolution describes a single edge in an evolution chain.
type Evolution struct {
	FromID   int64  `json:"from_id"`
	ToID     int64  `json:"to_id"`
	Trigger  string `json:"trigger,omitempty"`
	MinLevel int    `json:"min_level,omitempty"`
	Item     string `json:"item,omitempty"`
}

var titleCaser = cases.Title(language.English)

// Validate checks the structural invariants of a record.
func (r *Record) Validate() error {
	if r.ID <= 0 {
		return errors.New("record id must be positive")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("record name must not be empty")
	}
	if len(r.Types) < 1 || len(r.Types) > 2 {
		return fmt.Errorf("record %d must carry 1 or 2 types, got %d", r.ID, len(r.Types))
	}
	for _, label := range r.Types {
		if _, ok := typeSet[label]; !ok {
			return fmt.Errorf("record %d carries unknown type %q", r.ID, label)
		}
	}
	return nil
}

// DisplayName renders the record name for views ("mr-mime" becomes "Mr Mime").
func (r *Record) DisplayName() string {
	name := strings.ReplaceAll(r.Name, "-", " ")
	return titleCaser.String(name)
}

// TypeLine renders the types joined for single-line display.
func (r *Record) TypeLine() string {
	parts := make([]string, 0, len(r.Types))
	for _, label := range r.Types {
		parts = append(parts, titleCaser.String(string(label)))
	}
	return strings.Join(parts, ", ")
}

// NormalizeFlavor collapses the whitespace control characters PokeAPI flavor
// text carries (embedded newlines and form feeds) into single spaces.
func NormalizeFlavor(text string) string {
	replacer := strings.NewReplacer("\n", " ", "\f", " ", "\r", " ")
	return strings.Join(strings.Fields(replacer.Replace(text)), " ")
}
