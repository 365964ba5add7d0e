package gen

import (
	"testing"

	"github.com/talgya/cartograph/internal/world"
)

// grassland returns an all-land map uniformly classified as grassland,
// the most desirable spawn biome.
func grassland(width, height int) *world.Map {
	m := flatMap(width, height, 0.6, 0.4)
	for i := range m.Biome {
		m.Biome[i] = uint8(world.BiomeGrassland)
	}
	return m
}

func TestSpawnNationsSpacing(t *testing.T) {
	cfg := SmallTestConfig()
	m := grassland(cfg.Width, cfg.Height)

	nations, err := spawnNations(m, cfg)
	if err != nil {
		t.Fatalf("spawnNations: %v", err)
	}
	if len(nations) != cfg.Nations.Count {
		t.Fatalf("spawned %d nations, want %d", len(nations), cfg.Nations.Count)
	}

	min2 := cfg.Nations.MinSpacing * cfg.Nations.MinSpacing
	for i := 0; i < len(nations); i++ {
		for j := i + 1; j < len(nations); j++ {
			ax, ay := m.Coords(nations[i].Capital)
			bx, by := m.Coords(nations[j].Capital)
			dx, dy := float64(ax-bx), float64(ay-by)
			if dx*dx+dy*dy < min2 {
				t.Errorf("capitals %d and %d are %f apart, want >= %f",
					i, j, dx*dx+dy*dy, min2)
			}
		}
	}
}

func TestSpawnNationsTerritory(t *testing.T) {
	cfg := SmallTestConfig()
	m := grassland(cfg.Width, cfg.Height)

	nations, err := spawnNations(m, cfg)
	if err != nil {
		t.Fatalf("spawnNations: %v", err)
	}

	r := cfg.Nations.ClaimRadius
	for _, n := range nations {
		if len(n.Provinces) == 0 {
			t.Fatalf("nation %d has no territory", n.Index)
		}
		cx, cy := m.Coords(n.Capital)
		for _, idx := range n.Provinces {
			if m.Owner[idx] != n.Index {
				t.Errorf("province %d of nation %d owned by %d", idx, n.Index, m.Owner[idx])
			}
			if m.IsWater(idx) {
				t.Errorf("nation %d claimed water cell %d", n.Index, idx)
			}
			x, y := m.Coords(idx)
			if abs(x-cx) > r || abs(y-cy) > r {
				t.Errorf("province (%d,%d) outside claim radius %d of capital (%d,%d)",
					x, y, r, cx, cy)
			}
		}
	}

	// Ownership layer and province lists must agree.
	claimed := 0
	for _, o := range m.Owner {
		if o != world.OwnerNone {
			claimed++
		}
	}
	total := 0
	for _, n := range nations {
		total += len(n.Provinces)
	}
	if claimed != total {
		t.Errorf("owner layer has %d claimed cells, province lists have %d", claimed, total)
	}
}

func TestSpawnNationsNoOverlap(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.Nations.MinSpacing = 4 // force adjacent claim squares
	m := grassland(cfg.Width, cfg.Height)

	nations, err := spawnNations(m, cfg)
	if err != nil {
		t.Fatalf("spawnNations: %v", err)
	}

	seen := make(map[int]int16)
	for _, n := range nations {
		for _, idx := range n.Provinces {
			if prev, ok := seen[idx]; ok {
				t.Fatalf("cell %d claimed by both nation %d and %d", idx, prev, n.Index)
			}
			seen[idx] = n.Index
		}
	}
}

func TestSpawnNationsDeterministic(t *testing.T) {
	cfg := SmallTestConfig()

	run := func() []world.Nation {
		m := grassland(cfg.Width, cfg.Height)
		nations, err := spawnNations(m, cfg)
		if err != nil {
			t.Fatalf("spawnNations: %v", err)
		}
		return nations
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("nation counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Name != b[i].Name || a[i].Capital != b[i].Capital {
			t.Errorf("nation %d differs between runs: %v vs %v", i, a[i].Name, b[i].Name)
		}
		if len(a[i].Provinces) != len(b[i].Provinces) {
			t.Errorf("nation %d territory differs: %d vs %d cells",
				i, len(a[i].Provinces), len(b[i].Provinces))
		}
	}
}

func TestSpawnNationsNoCandidates(t *testing.T) {
	cfg := SmallTestConfig()
	m := flatMap(cfg.Width, cfg.Height, 0.2, 0.4) // all ocean

	if _, err := spawnNations(m, cfg); err == nil {
		t.Fatal("expected an error on an all-water map")
	}
}

func TestSpawnNationsZeroCount(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.Nations.Count = 0
	m := grassland(cfg.Width, cfg.Height)

	nations, err := spawnNations(m, cfg)
	if err != nil {
		t.Fatalf("spawnNations: %v", err)
	}
	if nations != nil {
		t.Fatalf("got %d nations, want none", len(nations))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
