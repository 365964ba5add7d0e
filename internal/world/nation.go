package world

import "github.com/google/uuid"

// GovernmentType categorizes a nation's form of rule.
type GovernmentType uint8

const (
	GovMonarchy GovernmentType = iota
	GovRepublic
	GovTheocracy
	GovTribal
	GovMerchantLeague

	GovernmentCount = 5
)

var governmentNames = [GovernmentCount]string{
	"Monarchy", "Republic", "Theocracy", "Tribal Confederation",
	"Merchant League",
}

// Name returns a human-readable name for the government type.
func (g GovernmentType) Name() string {
	if int(g) < len(governmentNames) {
		return governmentNames[g]
	}
	return "Unknown"
}

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// FlagPattern categorizes the layout of a nation's flag.
type FlagPattern uint8

const (
	FlagHorizontalBands FlagPattern = iota
	FlagVerticalBands
	FlagDiagonal
	FlagCross
	FlagCanton

	FlagPatternCount = 5
)

// Flag is a procedural flag: a pattern plus 2–3 colors.
type Flag struct {
	Pattern FlagPattern
	Colors  []RGB
}

// Personality holds the five behavioural scalars, each in [0,1].
type Personality struct {
	Aggression   float64
	Expansionism float64
	Diplomacy    float64
	Mercantilism float64
	Militarism   float64
}

// Stats holds a nation's aggregate stat scalars.
type Stats struct {
	Population float64
	Military   float64
	Economy    float64
	Diplomacy  float64
}

// Nation is one spawned polity: identity, capital, and the set of cell
// indices it claimed at spawn time ("provinces").
type Nation struct {
	ID          uuid.UUID
	Index       int16 // value written into the ownership layer
	Name        string
	Color       RGB
	Flag        Flag
	Government  GovernmentType
	Personality Personality
	Capital     int // flat cell index
	Provinces   []int
	Stats       Stats
}
