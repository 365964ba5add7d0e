package gen

import (
	"testing"

	"github.com/talgya/cartograph/internal/world"
)

func TestBucketGridKeepsBestPerBucket(t *testing.T) {
	g := newBucketGrid(20, 20, 10)

	g.offer(1, 1, 21, 0.3)
	g.offer(2, 2, 42, 0.9) // same bucket, better score
	g.offer(3, 3, 63, 0.5)
	g.offer(15, 15, 315, 0.4) // different bucket

	m := world.NewMap(20, 20, 0.4)
	points := g.collect(m, world.PointStrait)

	if len(points) != 2 {
		t.Fatalf("got %d points, want 2 (one per occupied bucket)", len(points))
	}
	for _, p := range points {
		if p.X == 2 && p.Y == 2 {
			if p.Value != 9 {
				t.Errorf("winning candidate value = %d, want 9", p.Value)
			}
			return
		}
	}
	t.Error("best-scoring candidate (2,2) missing from collected points")
}

func TestClampValue(t *testing.T) {
	cases := []struct {
		score float64
		want  int
	}{
		{-0.5, 1},
		{0, 1},
		{0.05, 1},
		{0.5, 5},
		{1.0, 10},
		{3.0, 10},
	}
	for _, c := range cases {
		if got := clampValue(c.score); got != c.want {
			t.Errorf("clampValue(%f) = %d, want %d", c.score, got, c.want)
		}
	}
}

func TestDetectRiverCrossings(t *testing.T) {
	sc := DefaultConfig().Strategic
	m := flatMap(9, 9, 0.5, 0.4)
	// Vertical river through the middle: every cell has land banks
	// left and right.
	for y := 0; y < 9; y++ {
		m.River[m.Index(4, y)] = true
	}

	points := detectRiverCrossings(m, sc)
	if len(points) == 0 {
		t.Fatal("no crossings found on a banked river")
	}
	for _, p := range points {
		if p.Kind != world.PointRiverCrossing {
			t.Fatalf("wrong kind %d", p.Kind)
		}
		if !m.River[m.Index(p.X, p.Y)] {
			t.Errorf("crossing (%d,%d) is not a river cell", p.X, p.Y)
		}
		if p.Value < 1 || p.Value > 10 {
			t.Errorf("crossing value %d outside [1,10]", p.Value)
		}
	}
}

func TestDetectMountainPasses(t *testing.T) {
	cfg := DefaultConfig()
	m := flatMap(32, 32, 0.9, 0.4) // high ground everywhere
	// A saddle cell between highland and mountain levels.
	m.Elevation[m.Index(16, 16)] = 0.75

	points := detectMountainPasses(m, cfg.Biomes, cfg.Strategic)
	if len(points) != 1 {
		t.Fatalf("got %d passes, want 1", len(points))
	}
	p := points[0]
	if p.X != 16 || p.Y != 16 || p.Kind != world.PointMountainPass {
		t.Errorf("unexpected pass %+v", p)
	}
}

func TestDetectStraits(t *testing.T) {
	sc := DefaultConfig().Strategic
	m := flatMap(16, 9, 0.6, 0.4)
	// A horizontal water channel 3 cells tall.
	for y := 3; y <= 5; y++ {
		for x := 0; x < 16; x++ {
			m.Elevation[m.Index(x, y)] = 0.2
		}
	}

	points := detectStraits(m, sc)
	if len(points) == 0 {
		t.Fatal("no straits found in a narrow channel")
	}
	for _, p := range points {
		if p.Kind != world.PointStrait {
			t.Fatalf("wrong kind %d", p.Kind)
		}
		if !m.IsWater(m.Index(p.X, p.Y)) {
			t.Errorf("strait (%d,%d) is not water", p.X, p.Y)
		}
		// Defining condition: land within the gap on both sides of one
		// axis.
		if straitGap(m, p.X, p.Y, 1, 0, sc.StraitMaxGap) == 0 &&
			straitGap(m, p.X, p.Y, 0, 1, sc.StraitMaxGap) == 0 {
			t.Errorf("strait (%d,%d) has no bounded land gap", p.X, p.Y)
		}
	}
}

func TestDetectPeninsulas(t *testing.T) {
	sc := DefaultConfig().Strategic
	m := flatMap(24, 24, 0.2, 0.4) // ocean everywhere
	// A thin finger of land jutting east from a landmass.
	for y := 0; y < 24; y++ {
		for x := 0; x < 4; x++ {
			m.Elevation[m.Index(x, y)] = 0.6
		}
	}
	for x := 4; x <= 12; x++ {
		m.Elevation[m.Index(x, 12)] = 0.6
	}

	points := detectPeninsulas(m, sc)
	if len(points) == 0 {
		t.Fatal("no peninsula found on a land finger")
	}
	for _, p := range points {
		if p.Kind != world.PointPeninsula {
			t.Fatalf("wrong kind %d", p.Kind)
		}
		if m.IsWater(m.Index(p.X, p.Y)) {
			t.Errorf("peninsula (%d,%d) is water", p.X, p.Y)
		}
	}
}

func TestDetectPeninsulasSkipsIslets(t *testing.T) {
	sc := DefaultConfig().Strategic
	m := flatMap(24, 24, 0.2, 0.4)
	// A single land cell: mostly-water neighbourhood but no
	// connectivity.
	m.Elevation[m.Index(12, 12)] = 0.6

	if points := detectPeninsulas(m, sc); len(points) != 0 {
		t.Fatalf("isolated islet detected as peninsula: %+v", points)
	}
}

func TestStrategicPointsDeterministicOrder(t *testing.T) {
	cfg := SmallTestConfig()
	run := func() []world.StrategicPoint {
		m := world.NewMap(cfg.Width, cfg.Height, float32(cfg.SeaLevel))
		generateElevation(m, cfg)
		dist := waterDistance(m)
		carveRivers(m, cfg, dist)
		return detectStrategicPoints(m, cfg)
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("point counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
