// Strategic point detection: four scanners sharing one best-per-bucket
// reducer so detections do not cluster.
package gen

import (
	"math"
	"sort"

	"github.com/talgya/cartograph/internal/world"
)

// bucketGrid keeps the single highest-scoring candidate per spatial
// bucket. Bucket size is chosen per detector, proportional to its
// search radius.
type bucketGrid struct {
	cols, rows, size int
	idx              []int // flat cell index of the best candidate, or -1
	score            []float64
}

func newBucketGrid(width, height, size int) *bucketGrid {
	cols := (width + size - 1) / size
	rows := (height + size - 1) / size
	g := &bucketGrid{
		cols:  cols,
		rows:  rows,
		size:  size,
		idx:   make([]int, cols*rows),
		score: make([]float64, cols*rows),
	}
	for i := range g.idx {
		g.idx[i] = -1
	}
	return g
}

// offer submits a candidate; it survives only if it beats the bucket's
// current best.
func (g *bucketGrid) offer(x, y int, cellIdx int, score float64) {
	b := (y/g.size)*g.cols + x/g.size
	if g.idx[b] < 0 || score > g.score[b] {
		g.idx[b] = cellIdx
		g.score[b] = score
	}
}

// collect runs the second pass over the buckets, emitting one point per
// occupied bucket with the score mapped onto the 1–10 value range.
func (g *bucketGrid) collect(m *world.Map, kind world.PointKind) []world.StrategicPoint {
	var points []world.StrategicPoint
	for b, cellIdx := range g.idx {
		if cellIdx < 0 {
			continue
		}
		x, y := m.Coords(cellIdx)
		points = append(points, world.StrategicPoint{
			X:     x,
			Y:     y,
			Kind:  kind,
			Value: clampValue(g.score[b]),
		})
	}
	return points
}

// clampValue maps a [0,1] score to an integer value in [1,10].
func clampValue(score float64) int {
	v := int(math.Round(score * 10))
	if v < 1 {
		v = 1
	}
	if v > 10 {
		v = 10
	}
	return v
}

// detectStrategicPoints runs all four detectors and returns the merged
// point list in deterministic order.
func detectStrategicPoints(m *world.Map, cfg Config) []world.StrategicPoint {
	sc := cfg.Strategic

	var points []world.StrategicPoint
	points = append(points, detectRiverCrossings(m, sc)...)
	points = append(points, detectMountainPasses(m, cfg.Biomes, sc)...)
	points = append(points, detectStraits(m, sc)...)
	points = append(points, detectPeninsulas(m, sc)...)

	// Bucket iteration order already is deterministic; sort anyway so
	// the published list has a stable, documented order.
	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Kind < b.Kind
	})
	return points
}

// detectRiverCrossings finds river cells with land on both opposing
// perpendicular sides at relatively low elevation. Lower fords score
// higher.
func detectRiverCrossings(m *world.Map, sc StrategicConfig) []world.StrategicPoint {
	g := newBucketGrid(m.Width, m.Height, sc.CrossingBucket)

	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			idx := m.Index(x, y)
			if !m.River[idx] {
				continue
			}
			elev := float64(m.Elevation[idx])
			if elev >= sc.CrossingMaxElevation {
				continue
			}

			left := m.Index(x-1, y)
			right := m.Index(x+1, y)
			up := m.Index(x, y-1)
			down := m.Index(x, y+1)

			horizontal := isBank(m, left) && isBank(m, right)
			vertical := isBank(m, up) && isBank(m, down)
			if !horizontal && !vertical {
				continue
			}

			g.offer(x, y, idx, 1.0-elev/sc.CrossingMaxElevation)
		}
	}

	return g.collect(m, world.PointRiverCrossing)
}

// isBank reports a dry land cell (no river, above sea level).
func isBank(m *world.Map, idx int) bool {
	return !m.IsWater(idx) && !m.River[idx]
}

// passRing holds sparse sample offsets around a candidate saddle cell,
// scaled by the configured ring radius.
var passRing = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// detectMountainPasses finds saddle points: land below the mountain
// threshold but above the highland threshold whose surrounding ring is
// mostly higher ground.
func detectMountainPasses(m *world.Map, bc BiomeConfig, sc StrategicConfig) []world.StrategicPoint {
	g := newBucketGrid(m.Width, m.Height, sc.PassRingRadius*3)
	r := sc.PassRingRadius

	for y := r; y < m.Height-r; y++ {
		for x := r; x < m.Width-r; x++ {
			idx := m.Index(x, y)
			if m.IsWater(idx) {
				continue
			}
			elev := float64(m.Elevation[idx])
			if elev >= bc.MountainLevel || elev < bc.HighlandLevel {
				continue
			}

			higher := 0
			for _, d := range passRing {
				nidx := m.Index(x+d[0]*r, y+d[1]*r)
				if float64(m.Elevation[nidx]) > elev+0.02 {
					higher++
				}
			}

			ratio := float64(higher) / float64(len(passRing))
			if ratio < sc.PassMinHigherRatio {
				continue
			}

			g.offer(x, y, idx, ratio*(elev/bc.MountainLevel))
		}
	}

	return g.collect(m, world.PointMountainPass)
}

// detectStraits finds water cells with land within a bounded distance
// on both opposing sides, horizontally or vertically. Narrow gaps score
// higher.
func detectStraits(m *world.Map, sc StrategicConfig) []world.StrategicPoint {
	g := newBucketGrid(m.Width, m.Height, sc.StraitMaxGap*2)
	maxGap := sc.StraitMaxGap

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := m.Index(x, y)
			if !m.IsWater(idx) {
				continue
			}

			gap := straitGap(m, x, y, 1, 0, maxGap)
			if vGap := straitGap(m, x, y, 0, 1, maxGap); vGap > 0 && (gap <= 0 || vGap < gap) {
				gap = vGap
			}
			if gap <= 0 {
				continue
			}

			g.offer(x, y, idx, 1.0-float64(gap)/float64(2*maxGap))
		}
	}

	return g.collect(m, world.PointStrait)
}

// straitGap returns the total water gap along one axis when land is
// found within maxGap steps on both sides, or 0 when it is not.
func straitGap(m *world.Map, x, y, dx, dy, maxGap int) int {
	a := landDistance(m, x, y, dx, dy, maxGap)
	if a == 0 {
		return 0
	}
	b := landDistance(m, x, y, -dx, -dy, maxGap)
	if b == 0 {
		return 0
	}
	return a + b
}

// landDistance walks up to maxGap steps and returns the step count of
// the first land cell, or 0 if none is reached.
func landDistance(m *world.Map, x, y, dx, dy, maxGap int) int {
	for step := 1; step <= maxGap; step++ {
		nx, ny := x+dx*step, y+dy*step
		if !m.InBounds(nx, ny) {
			return 0
		}
		if !m.IsWater(m.Index(nx, ny)) {
			return step
		}
	}
	return 0
}

// detectPeninsulas finds land cells whose circular neighbourhood is
// mostly water yet still connect to nearby land, so isolated islets do
// not qualify.
func detectPeninsulas(m *world.Map, sc StrategicConfig) []world.StrategicPoint {
	g := newBucketGrid(m.Width, m.Height, sc.PeninsulaRadius*3)
	r := sc.PeninsulaRadius
	r2 := float64(r * r)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := m.Index(x, y)
			if m.IsWater(idx) {
				continue
			}

			water, total := 0, 0
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					if float64(dx*dx+dy*dy) > r2 {
						continue
					}
					nx, ny := x+dx, y+dy
					if !m.InBounds(nx, ny) {
						continue
					}
					total++
					if m.IsWater(m.Index(nx, ny)) {
						water++
					}
				}
			}
			if total == 0 {
				continue
			}

			ratio := float64(water) / float64(total)
			if ratio < sc.PeninsulaWaterRatio {
				continue
			}

			// Connectivity gate: a peninsula still touches land on at
			// least two orthogonal sides somewhere along its neck.
			landNeighbours := 0
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if m.InBounds(nx, ny) && !m.IsWater(m.Index(nx, ny)) {
					landNeighbours++
				}
			}
			if landNeighbours < 2 {
				continue
			}

			g.offer(x, y, idx, ratio)
		}
	}

	return g.collect(m, world.PointPeninsula)
}
