package world

// Resource enumerates the per-cell resource categories. Values are part
// of the save format.
type Resource uint8

const (
	ResourceNone Resource = iota
	ResourceGold
	ResourceIron
	ResourceFish
	ResourceFertileSoil
	ResourceTimber
	ResourceStone
	ResourceFurs

	ResourceCount = 8
)

var resourceNames = [ResourceCount]string{
	"None", "Gold", "Iron", "Fish", "Fertile Soil", "Timber", "Stone",
	"Furs",
}

// Name returns a human-readable name for the resource.
func (r Resource) Name() string {
	if int(r) < len(resourceNames) {
		return resourceNames[r]
	}
	return "Unknown"
}
