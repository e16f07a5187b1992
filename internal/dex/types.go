package dex

import "strings"

// TypeLabel is one of the fixed Pokemon elemental types.
type TypeLabel string

const (
	TypeNormal   TypeLabel = "normal"
	TypeFire     TypeLabel = "fire"
	TypeWater    TypeLabel = "water"
	TypeElectric TypeLabel = "electric"
	TypeGrass    TypeLabel = "grass"
	TypeIce      TypeLabel = "ice"
	TypeFighting TypeLabel = "fighting"
	TypePoison   TypeLabel = "poison"
	TypeGround   TypeLabel = "ground"
	TypeFlying   TypeLabel = "flying"
	TypePsychic  TypeLabel = "psychic"
	TypeBug      TypeLabel = "bug"
	TypeRock     TypeLabel = "rock"
	TypeGhost    TypeLabel = "ghost"
	TypeDragon   TypeLabel = "dragon"
	TypeDark     TypeLabel = "dark"
	TypeSteel    TypeLabel = "steel"
	TypeFairy    TypeLabel = "fairy"
)

var allTypes = []TypeLabel{
	TypeNormal,
	TypeFire,
	TypeWater,
	TypeElectric,
	TypeGrass,
	TypeIce,
	TypeFighting,
	TypePoison,
	TypeGround,
	TypeFlying,
	TypePsychic,
	TypeBug,
	TypeRock,
	TypeGhost,
	TypeDragon,
	TypeDark,
	TypeSteel,
	TypeFairy,
}

var typeSet = func() map[TypeLabel]struct{} {
	set := make(map[TypeLabel]struct{}, len(allTypes))
	for _, label := range allTypes {
		set[label] = struct{}{}
	}
	return set
}()

// ValidType reports whether value names a known elemental type.
func ValidType(value string) bool {
	_, ok := typeSet[TypeLabel(strings.ToLower(strings.TrimSpace(value)))]
	return ok
}

// ParseType normalizes and validates a type label.
func ParseType(value string) (TypeLabel, bool) {
	label := TypeLabel(strings.ToLower(strings.TrimSpace(value)))
	_, ok := typeSet[label]
	return label, ok
}
