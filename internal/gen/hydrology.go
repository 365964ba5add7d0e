// Water-distance transform: multi-source BFS from every water cell.
package gen

import "github.com/talgya/cartograph/internal/world"

// waterDistance computes, for every cell, the normalised step distance
// to the nearest cell at or below sea level. Water cells are 0; the
// most remote interior cell is 1. Runs in O(cells) over a single flat
// index queue.
func waterDistance(m *world.Map) []float32 {
	n := m.CellCount()
	dist := make([]int32, n)
	for i := range dist {
		dist[i] = -1
	}

	// Seed the frontier with every water cell.
	queue := make([]int32, 0, n)
	for i := 0; i < n; i++ {
		if m.IsWater(i) {
			dist[i] = 0
			queue = append(queue, int32(i))
		}
	}

	maxDist := int32(0)
	width := int32(m.Width)

	push := func(next int32, d int32) {
		if dist[next] >= 0 {
			return
		}
		dist[next] = d
		if d > maxDist {
			maxDist = d
		}
		queue = append(queue, next)
	}

	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		d := dist[idx] + 1

		// 4-connected expansion over flat indices.
		x := idx % width
		if x > 0 {
			push(idx-1, d)
		}
		if x < width-1 {
			push(idx+1, d)
		}
		if idx >= width {
			push(idx-width, d)
		}
		if int(idx) < n-int(width) {
			push(idx+width, d)
		}
	}

	out := make([]float32, n)
	if maxDist == 0 {
		// All water, or no water at all: distance field is flat. A
		// waterless grid reads as fully interior.
		if len(queue) == 0 {
			for i := range out {
				out[i] = 1
			}
		}
		return out
	}

	inv := 1.0 / float32(maxDist)
	for i, d := range dist {
		if d > 0 {
			out[i] = float32(d) * inv
		}
	}
	return out
}
