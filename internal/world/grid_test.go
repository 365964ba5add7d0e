package world

import "testing"

func TestIndexRoundTrip(t *testing.T) {
	m := NewMap(7, 5, 0.4)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := m.Index(x, y)
			gx, gy := m.Coords(idx)
			if gx != x || gy != y {
				t.Fatalf("Coords(Index(%d,%d)) = (%d,%d)", x, y, gx, gy)
			}
		}
	}
}

func TestInBounds(t *testing.T) {
	m := NewMap(4, 3, 0.4)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{3, 2, true},
		{-1, 0, false},
		{0, -1, false},
		{4, 0, false},
		{0, 3, false},
	}
	for _, c := range cases {
		if got := m.InBounds(c.x, c.y); got != c.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestLayersShareLength(t *testing.T) {
	m := NewMap(10, 6, 0.4)
	n := m.CellCount()
	if len(m.Elevation) != n || len(m.Temperature) != n || len(m.Humidity) != n ||
		len(m.Biome) != n || len(m.River) != n || len(m.Resource) != n ||
		len(m.Density) != n || len(m.Owner) != n {
		t.Fatal("layer lengths differ from cell count")
	}
}

func TestNewMapUnclaimed(t *testing.T) {
	m := NewMap(3, 3, 0.4)
	for i, o := range m.Owner {
		if o != OwnerNone {
			t.Fatalf("cell %d spawned with owner %d", i, o)
		}
	}
}

func TestCellAtDerivedFlags(t *testing.T) {
	m := NewMap(3, 1, 0.4)
	m.Elevation[0] = 0.2 // water
	m.Elevation[1] = 0.6 // land next to water
	m.Elevation[2] = 0.7 // land next to land only

	c0 := m.CellAt(0, 0)
	if !c0.IsWater || !c0.NearShore {
		t.Errorf("cell 0: IsWater=%v NearShore=%v, want true/true", c0.IsWater, c0.NearShore)
	}
	c1 := m.CellAt(1, 0)
	if c1.IsWater || !c1.NearShore {
		t.Errorf("cell 1: IsWater=%v NearShore=%v, want false/true", c1.IsWater, c1.NearShore)
	}
	c2 := m.CellAt(2, 0)
	if c2.IsWater || c2.NearShore {
		t.Errorf("cell 2: IsWater=%v NearShore=%v, want false/false", c2.IsWater, c2.NearShore)
	}
}

func TestSeaLevelBoundaryIsWater(t *testing.T) {
	m := NewMap(1, 1, 0.4)
	m.Elevation[0] = 0.4
	if !m.IsWater(0) {
		t.Error("cell exactly at sea level must be water")
	}
}

func TestBiomeNamesCover(t *testing.T) {
	for b := Biome(0); b < BiomeCount; b++ {
		if b.Name() == "Unknown" {
			t.Errorf("biome %d has no name", b)
		}
	}
	if Biome(200).Name() != "Unknown" {
		t.Error("out-of-range biome should name as Unknown")
	}
}

func TestHabitability(t *testing.T) {
	uninhabitable := []Biome{BiomeDeepOcean, BiomeOcean, BiomeShore, BiomeGlacier, BiomePolarDesert}
	for _, b := range uninhabitable {
		if b.Habitable() {
			t.Errorf("%s should be uninhabitable", b.Name())
		}
	}
	if !BiomeGrassland.Habitable() || !BiomeDesert.Habitable() {
		t.Error("grassland and desert should be habitable")
	}
}

func TestPointIndex(t *testing.T) {
	points := []StrategicPoint{
		{X: 2, Y: 1, Kind: PointStrait, Value: 7},
		{X: 0, Y: 0, Kind: PointPeninsula, Value: 3},
	}
	pi := NewPointIndex(4, 3, points)

	if got := pi.ValueAt(2, 1); got != 7 {
		t.Errorf("ValueAt(2,1) = %d, want 7", got)
	}
	if got := pi.ValueAt(0, 0); got != 3 {
		t.Errorf("ValueAt(0,0) = %d, want 3", got)
	}
	if got := pi.ValueAt(3, 2); got != 0 {
		t.Errorf("ValueAt(3,2) = %d, want 0", got)
	}
	if got := pi.ValueAt(-1, 5); got != 0 {
		t.Errorf("out-of-bounds ValueAt = %d, want 0", got)
	}
}
