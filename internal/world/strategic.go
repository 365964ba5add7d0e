package world

// PointKind categorizes a strategic location.
type PointKind uint8

const (
	PointRiverCrossing PointKind = iota // Fordable river cell
	PointMountainPass                   // Low saddle through high ground
	PointStrait                         // Narrow water between land
	PointPeninsula                      // Land surrounded by water
)

var pointKindNames = [...]string{
	"River Crossing", "Mountain Pass", "Strait", "Peninsula",
}

// Name returns a human-readable name for the point kind.
func (k PointKind) Name() string {
	if int(k) < len(pointKindNames) {
		return pointKindNames[k]
	}
	return "Unknown"
}

// StrategicPoint is one detected location of military or economic
// interest. Points are immutable once detected.
type StrategicPoint struct {
	X, Y  int
	Kind  PointKind
	Value int // 1–10
}

// PointIndex provides fast spatial lookup of strategic values: a dense
// per-cell value map alongside the sparse point list.
type PointIndex struct {
	Width, Height int
	Values        []uint8 // 0 = no point at this cell
}

// NewPointIndex builds the dense value map from a point list.
func NewPointIndex(width, height int, points []StrategicPoint) *PointIndex {
	idx := &PointIndex{
		Width:  width,
		Height: height,
		Values: make([]uint8, width*height),
	}
	for _, p := range points {
		idx.Values[p.Y*width+p.X] = uint8(p.Value)
	}
	return idx
}

// ValueAt returns the strategic value at (x, y), or 0 if no point is
// registered there or the coordinates are out of bounds.
func (pi *PointIndex) ValueAt(x, y int) int {
	if x < 0 || x >= pi.Width || y < 0 || y >= pi.Height {
		return 0
	}
	return int(pi.Values[y*pi.Width+x])
}
