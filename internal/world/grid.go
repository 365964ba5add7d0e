// Package world provides the flat world grid, terrain layers, and the
// record types produced by generation (strategic points, nations).
// All per-cell data lives in parallel arrays indexed y*width+x.
package world

import "fmt"

// OwnerNone marks a cell not claimed by any nation.
const OwnerNone int16 = -1

// Map holds the complete generated world as parallel per-cell layers.
// Every layer has length Width*Height; an index valid in one layer is
// valid in all of them.
type Map struct {
	Width    int
	Height   int
	SeaLevel float32

	Elevation   []float32 // [0,1]
	Temperature []float32 // [0,1]
	Humidity    []float32 // [0,1]
	Biome       []uint8   // 0–25
	River       []bool
	Resource    []uint8 // 0–7
	Density     []uint8 // 0–255 resource density
	Owner       []int16 // nation index, or OwnerNone
}

// NewMap allocates all layers for the given dimensions.
func NewMap(width, height int, seaLevel float32) *Map {
	n := width * height
	m := &Map{
		Width:       width,
		Height:      height,
		SeaLevel:    seaLevel,
		Elevation:   make([]float32, n),
		Temperature: make([]float32, n),
		Humidity:    make([]float32, n),
		Biome:       make([]uint8, n),
		River:       make([]bool, n),
		Resource:    make([]uint8, n),
		Density:     make([]uint8, n),
		Owner:       make([]int16, n),
	}
	for i := range m.Owner {
		m.Owner[i] = OwnerNone
	}
	return m
}

// CellCount returns the total number of cells.
func (m *Map) CellCount() int {
	return m.Width * m.Height
}

// InBounds reports whether (x, y) lies on the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Index converts coordinates to the flat layer index.
func (m *Map) Index(x, y int) int {
	return y*m.Width + x
}

// Coords converts a flat layer index back to coordinates.
func (m *Map) Coords(idx int) (x, y int) {
	return idx % m.Width, idx / m.Width
}

// IsWater reports whether the cell at idx sits at or below sea level.
func (m *Map) IsWater(idx int) bool {
	return m.Elevation[idx] <= m.SeaLevel
}

// Cell is a composed read-only view of one grid cell. It is assembled
// on demand for UI queries and never stored; bulk generation reads the
// layers directly.
type Cell struct {
	X, Y        int
	Elevation   float32
	Temperature float32
	Humidity    float32
	Biome       Biome
	River       bool
	Resource    Resource
	Density     uint8
	Owner       int16
	IsWater     bool
	NearShore   bool
}

// CellAt composes the cell view for (x, y). The NearShore flag is
// derived from the four orthogonal neighbours: a land cell touching
// water, or a water cell touching land.
func (m *Map) CellAt(x, y int) Cell {
	idx := m.Index(x, y)
	water := m.IsWater(idx)

	nearShore := false
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, ny := x+d[0], y+d[1]
		if !m.InBounds(nx, ny) {
			continue
		}
		if m.IsWater(m.Index(nx, ny)) != water {
			nearShore = true
			break
		}
	}

	return Cell{
		X:           x,
		Y:           y,
		Elevation:   m.Elevation[idx],
		Temperature: m.Temperature[idx],
		Humidity:    m.Humidity[idx],
		Biome:       Biome(m.Biome[idx]),
		River:       m.River[idx],
		Resource:    Resource(m.Resource[idx]),
		Density:     m.Density[idx],
		Owner:       m.Owner[idx],
		IsWater:     water,
		NearShore:   nearShore,
	}
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d, sea=%.2f)", m.Width, m.Height, m.SeaLevel)
}

// BiomeCounts returns the distribution of biome ids across the grid.
func BiomeCounts(m *Map) map[Biome]int {
	counts := make(map[Biome]int)
	for _, b := range m.Biome {
		counts[Biome(b)]++
	}
	return counts
}
