// Package nation generates procedural nation identities: names,
// colors, flags, governments and personalities. All output is
// deterministic for a given seed.
package nation

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/talgya/cartograph/internal/world"
)

// Golden-angle hue stepping spreads nation colors around the wheel
// without clustering.
const goldenAngle = 137.50776405003785

const (
	nameRetries      = 24
	colorRetries     = 8
	minColorDist     = 80.0 // minimum RGB-space distance between nations
	minHueSeparation = 60.0 // degrees between flag colors
)

// Generator issues nation identities one at a time.
type Generator struct {
	rng       *rand.Rand
	seed      int64
	usedNames map[string]bool
	hue       float64
	accepted  []world.RGB
}

// NewGenerator creates an identity generator. The fixed seed offset
// keeps identity draws independent of spawn-site selection.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:       rand.New(rand.NewSource(seed + 300)),
		seed:      seed,
		usedNames: make(map[string]bool),
	}
}

var namePrefixes = []string{
	"Al", "Bel", "Cal", "Dor", "El", "Fen", "Gal", "Hal", "Ith", "Kar",
	"Lor", "Mar", "Nor", "Or", "Per", "Quel", "Ros", "Sar", "Tor", "Ul",
	"Var", "Wes", "Yor", "Zan",
}

var nameMiddles = []string{
	"an", "ar", "en", "ia", "il", "on", "or", "ath", "eth", "und",
}

var nameSuffixes = []string{
	"dor", "gard", "heim", "ia", "land", "mark", "nia", "ria", "stan",
	"thal", "vale", "wyn",
}

// nextName composes an affix name, retrying on collision and falling
// back to a numbered name when retries are exhausted.
func (g *Generator) nextName() string {
	var name string
	for i := 0; i < nameRetries; i++ {
		name = namePrefixes[g.rng.Intn(len(namePrefixes))] +
			nameMiddles[g.rng.Intn(len(nameMiddles))] +
			nameSuffixes[g.rng.Intn(len(nameSuffixes))]
		if !g.usedNames[name] {
			g.usedNames[name] = true
			return name
		}
	}
	// Deterministic fallback: number the colliding name.
	for n := 2; ; n++ {
		numbered := fmt.Sprintf("%s %d", name, n)
		if !g.usedNames[numbered] {
			g.usedNames[numbered] = true
			return numbered
		}
	}
}

// nextColor steps the hue by the golden angle and rejects colors too
// close to an already-issued one, up to a bounded retry count. On
// exhaustion the last candidate is accepted anyway.
func (g *Generator) nextColor() world.RGB {
	var c world.RGB
	for i := 0; i < colorRetries; i++ {
		g.hue = math.Mod(g.hue+goldenAngle, 360)
		sat := 0.55 + g.rng.Float64()*0.3
		val := 0.65 + g.rng.Float64()*0.25
		c = hsvToRGB(g.hue, sat, val)
		if g.farFromAccepted(c) {
			break
		}
	}
	g.accepted = append(g.accepted, c)
	return c
}

func (g *Generator) farFromAccepted(c world.RGB) bool {
	for _, a := range g.accepted {
		dr := float64(c.R) - float64(a.R)
		dg := float64(c.G) - float64(a.G)
		db := float64(c.B) - float64(a.B)
		if math.Sqrt(dr*dr+dg*dg+db*db) < minColorDist {
			return false
		}
	}
	return true
}

// nextFlag picks a pattern and 2–3 colors with separated hues.
func (g *Generator) nextFlag() world.Flag {
	pattern := world.FlagPattern(g.rng.Intn(world.FlagPatternCount))
	count := 2 + g.rng.Intn(2)

	hues := make([]float64, 0, count)
	colors := make([]world.RGB, 0, count)
	for len(colors) < count {
		h := g.rng.Float64() * 360
		ok := true
		for _, prev := range hues {
			if hueDistance(h, prev) < minHueSeparation {
				ok = false
				break
			}
		}
		if !ok {
			// One bounded re-roll, then take it regardless.
			h = math.Mod(h+goldenAngle, 360)
		}
		hues = append(hues, h)
		colors = append(colors, hsvToRGB(h, 0.5+g.rng.Float64()*0.4, 0.5+g.rng.Float64()*0.4))
	}

	return world.Flag{Pattern: pattern, Colors: colors}
}

func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// nextPersonality draws the five scalars from their fixed sub-ranges.
func (g *Generator) nextPersonality() world.Personality {
	return world.Personality{
		Aggression:   0.10 + g.rng.Float64()*0.80,
		Expansionism: 0.20 + g.rng.Float64()*0.75,
		Diplomacy:    0.15 + g.rng.Float64()*0.70,
		Mercantilism: 0.10 + g.rng.Float64()*0.85,
		Militarism:   0.10 + g.rng.Float64()*0.80,
	}
}

// Next issues the identity for the nation at the given ownership index
// and capital cell.
func (g *Generator) Next(index int16, capital int) world.Nation {
	name := g.nextName()
	return world.Nation{
		ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("cartograph:%d:%s", g.seed, name))),
		Index:       index,
		Name:        name,
		Color:       g.nextColor(),
		Flag:        g.nextFlag(),
		Government:  world.GovernmentType(g.rng.Intn(world.GovernmentCount)),
		Personality: g.nextPersonality(),
		Capital:     capital,
		Stats: world.Stats{
			Population: 0.3 + g.rng.Float64()*0.4,
			Military:   0.2 + g.rng.Float64()*0.5,
			Economy:    0.2 + g.rng.Float64()*0.5,
			Diplomacy:  0.2 + g.rng.Float64()*0.5,
		},
	}
}

// hsvToRGB converts hue (degrees), saturation and value in [0,1] to an
// 8-bit RGB triple.
func hsvToRGB(h, s, v float64) world.RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return world.RGB{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
	}
}
