package world

// Biome identifies one of the 26 fixed terrain categories. The numeric
// values are part of the save format and must not be reordered.
type Biome uint8

const (
	BiomeDeepOcean Biome = iota
	BiomeOcean
	BiomeShore
	BiomeMountain
	BiomeAlpine
	BiomeHighland
	BiomeGlacier
	BiomePolarDesert
	BiomeTundra
	BiomeTaiga
	BiomeBorealForest
	BiomeColdSteppe
	BiomeMoor
	BiomeTemperateRainforest
	BiomeTemperateForest
	BiomeGrassland
	BiomeShrubland
	BiomeMarsh
	BiomeSteppe
	BiomeTropicalRainforest
	BiomeMonsoonForest
	BiomeSavanna
	BiomeDesert
	BiomeBadlands
	BiomeSwamp
	BiomeMangrove

	BiomeCount = 26
)

var biomeNames = [BiomeCount]string{
	"Deep Ocean", "Ocean", "Shore", "Mountain", "Alpine", "Highland",
	"Glacier", "Polar Desert", "Tundra", "Taiga", "Boreal Forest",
	"Cold Steppe", "Moor", "Temperate Rainforest", "Temperate Forest",
	"Grassland", "Shrubland", "Marsh", "Steppe", "Tropical Rainforest",
	"Monsoon Forest", "Savanna", "Desert", "Badlands", "Swamp",
	"Mangrove",
}

// Name returns a human-readable name for the biome.
func (b Biome) Name() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return "Unknown"
}

// IsWater reports whether the biome is an open-water category.
func (b Biome) IsWater() bool {
	return b == BiomeDeepOcean || b == BiomeOcean || b == BiomeShore
}

// Habitable reports whether nations may claim cells of this biome.
// Open water, glacier and polar desert are off limits.
func (b Biome) Habitable() bool {
	switch b {
	case BiomeDeepOcean, BiomeOcean, BiomeShore, BiomeGlacier, BiomePolarDesert:
		return false
	}
	return true
}
