package nation

import (
	"testing"

	"github.com/talgya/cartograph/internal/world"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(42)
	b := NewGenerator(42)

	for i := int16(0); i < 8; i++ {
		na := a.Next(i, int(i)*100)
		nb := b.Next(i, int(i)*100)
		if na.ID != nb.ID || na.Name != nb.Name || na.Color != nb.Color ||
			na.Government != nb.Government || na.Personality != nb.Personality {
			t.Fatalf("draw %d differs between identical seeds: %q vs %q", i, na.Name, nb.Name)
		}
	}
}

func TestGeneratorSeedsDiverge(t *testing.T) {
	a := NewGenerator(1).Next(0, 0)
	b := NewGenerator(2).Next(0, 0)
	if a.ID == b.ID {
		t.Error("different seeds issued the same nation ID")
	}
	if a.Name == b.Name && a.Color == b.Color {
		t.Error("different seeds issued an identical identity")
	}
}

func TestNamesUnique(t *testing.T) {
	g := NewGenerator(7)
	seen := make(map[string]bool)
	for i := int16(0); i < 64; i++ {
		n := g.Next(i, 0)
		if n.Name == "" {
			t.Fatal("empty nation name")
		}
		if seen[n.Name] {
			t.Fatalf("name %q issued twice", n.Name)
		}
		seen[n.Name] = true
	}
}

func TestColorDistanceGate(t *testing.T) {
	g := NewGenerator(99)
	g.accepted = []world.RGB{{R: 200, G: 40, B: 40}}

	if g.farFromAccepted(world.RGB{R: 210, G: 50, B: 50}) {
		t.Error("near-duplicate color passed the distance gate")
	}
	if !g.farFromAccepted(world.RGB{R: 40, G: 200, B: 40}) {
		t.Error("clearly distinct color rejected")
	}

	// The boundary sits exactly at the configured distance.
	exact := world.RGB{R: 200 - uint8(minColorDist), G: 40, B: 40}
	if !g.farFromAccepted(exact) {
		t.Errorf("distance of exactly %f rejected", minColorDist)
	}
}

func TestColorsDistinct(t *testing.T) {
	g := NewGenerator(99)
	seen := make(map[world.RGB]bool)
	for i := int16(0); i < 8; i++ {
		c := g.Next(i, 0).Color
		if seen[c] {
			t.Fatalf("color %+v issued twice in the first 8 draws", c)
		}
		seen[c] = true
	}
}

func TestFlagShape(t *testing.T) {
	g := NewGenerator(3)
	for i := int16(0); i < 16; i++ {
		f := g.Next(i, 0).Flag
		if f.Pattern >= world.FlagPatternCount {
			t.Errorf("flag pattern %d outside the known set", f.Pattern)
		}
		if len(f.Colors) < 2 || len(f.Colors) > 3 {
			t.Errorf("flag has %d colors, want 2 or 3", len(f.Colors))
		}
	}
}

func TestPersonalityRanges(t *testing.T) {
	g := NewGenerator(11)
	for i := int16(0); i < 16; i++ {
		p := g.Next(i, 0).Personality
		for _, v := range []float64{p.Aggression, p.Expansionism, p.Diplomacy, p.Mercantilism, p.Militarism} {
			if v < 0 || v > 1 {
				t.Errorf("personality scalar %f outside [0,1]", v)
			}
		}
	}
}

func TestHSVConversion(t *testing.T) {
	cases := []struct {
		h, s, v float64
		want    world.RGB
	}{
		{0, 1, 1, world.RGB{R: 255}},
		{120, 1, 1, world.RGB{G: 255}},
		{240, 1, 1, world.RGB{B: 255}},
		{0, 0, 1, world.RGB{R: 255, G: 255, B: 255}},
		{0, 0, 0, world.RGB{}},
	}
	for _, c := range cases {
		if got := hsvToRGB(c.h, c.s, c.v); got != c.want {
			t.Errorf("hsvToRGB(%g,%g,%g) = %+v, want %+v", c.h, c.s, c.v, got, c.want)
		}
	}
}

func TestHueDistanceWraps(t *testing.T) {
	if d := hueDistance(350, 10); d != 20 {
		t.Errorf("hueDistance(350,10) = %f, want 20", d)
	}
	if d := hueDistance(90, 90); d != 0 {
		t.Errorf("hueDistance(90,90) = %f, want 0", d)
	}
}
