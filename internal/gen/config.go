// Package gen implements the deterministic world generation pipeline:
// noise field synthesis, hydrology, biome classification, resource
// assignment, strategic point detection, and nation spawning.
package gen

import (
	"fmt"
	"hash/fnv"
	"strconv"
)

// NoiseLayerConfig shapes one fractal noise field. Scale is the base
// sampling frequency in cycles per cell; successive octaves multiply
// frequency by Lacunarity and amplitude by Persistence.
type NoiseLayerConfig struct {
	Scale       float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// ElevationConfig extends the base noise layer with continental
// shaping: a very-low-frequency continent bias, a low-frequency
// subtractive ocean carve, and a power-curve redistribution.
type ElevationConfig struct {
	NoiseLayerConfig
	ContinentScale  float64 // frequency of the continent bias layer
	ContinentWeight float64
	OceanScale      float64 // frequency of the subtractive carve layer
	OceanWeight     float64
	Redistribution  float64 // power exponent, >1 flattens lowlands
}

// TemperatureConfig controls the latitude/noise blend and cooling.
type TemperatureConfig struct {
	NoiseLayerConfig
	NoiseWeight      float64 // share of noise vs latitude gradient
	ElevationCooling float64 // cooling per unit elevation above sea
	Continentality   float64 // cooling amplification by inland distance
}

// HumidityConfig controls the coastal/noise blend and drying.
type HumidityConfig struct {
	NoiseLayerConfig
	NoiseWeight     float64 // share of noise vs coastal proximity
	ElevationDrying float64 // drying per unit elevation above sea
}

// RiverConfig controls zero-crossing river carving.
type RiverConfig struct {
	PrimaryScale       float64
	SecondaryScale     float64
	PrimaryThreshold   float64
	SecondaryThreshold float64
	WarpScale          float64
	WarpStrength       float64 // domain warp amplitude in cells
	WidthScale         float64 // width-noise frequency
	ShoreTaper         float64 // normalised water distance over which rivers fade in
	MountainCutoff     float64 // normalised elevation above which rivers vanish
	HumidityRadius     int     // river humidity boost radius in cells
	HumidityBoost      float64 // boost at distance zero
}

// BiomeConfig holds the classifier thresholds.
type BiomeConfig struct {
	JitterMagnitude float64 // temp/humidity jitter amplitude
	DeepBand        float64 // depth below sea level for deep ocean
	OceanBand       float64 // depth below sea level for open ocean
	MountainLevel   float64 // elevation for mountain/alpine
	HighlandLevel   float64 // elevation for highland
	AlpineMaxTemp   float64 // coolness gate for alpine over mountain
}

// ResourceConfig holds the assignment thresholds.
type ResourceConfig struct {
	OreScale        float64 // ore-vein noise frequency
	DensityScale    float64 // density noise frequency
	GoldThreshold   float64 // ore-noise rarity gate for gold
	IronThreshold   float64 // ore-noise gate for iron
	GoldRiverRadius int     // gold must sit this close to a river
	MinDensity      int     // biome-default resources below this become none
}

// StrategicConfig holds the detector radii and gates.
type StrategicConfig struct {
	CrossingMaxElevation float64 // river crossings must sit below this
	CrossingBucket       int
	PassRingRadius       int     // saddle sample ring radius
	PassMinHigherRatio   float64 // ring fraction that must be higher
	StraitMaxGap         int     // max land-to-land water gap
	PeninsulaRadius      int     // neighbourhood scan radius
	PeninsulaWaterRatio  float64 // water fraction gate
}

// NationConfig controls spawning and territory claims.
type NationConfig struct {
	Count       int
	MinSpacing  float64 // Euclidean distance between spawn points
	SampleStep  int     // candidate sampling stride in cells
	ClaimRadius int     // square territory radius around the capital
	RiverBonus  float64 // desirability bonus for river-adjacent sites
}

// Config is the complete input to one generation run.
type Config struct {
	Seed       int64
	Width      int
	Height     int
	SeaLevel   float64
	IslandMode bool

	// Minimum land fraction policy: the sea level is lowered in steps
	// until at least MinLandFraction of sampled cells are land, but
	// never below MinSeaLevel.
	MinLandFraction float64
	MinSeaLevel     float64

	Elevation   ElevationConfig
	Temperature TemperatureConfig
	Humidity    HumidityConfig
	Jitter      NoiseLayerConfig

	Rivers    RiverConfig
	Biomes    BiomeConfig
	Resources ResourceConfig
	Strategic StrategicConfig
	Nations   NationConfig
}

// DefaultConfig returns the standard generation parameters for a
// mid-sized world.
func DefaultConfig() Config {
	return Config{
		Seed:       0,
		Width:      1024,
		Height:     1024,
		SeaLevel:   0.40,
		IslandMode: false,

		MinLandFraction: 0.20,
		MinSeaLevel:     0.20,

		Elevation: ElevationConfig{
			NoiseLayerConfig: NoiseLayerConfig{Scale: 0.012, Octaves: 5, Persistence: 0.5, Lacunarity: 2.0},
			ContinentScale:   0.0025,
			ContinentWeight:  0.45,
			OceanScale:       0.005,
			OceanWeight:      0.25,
			Redistribution:   1.6,
		},
		Temperature: TemperatureConfig{
			NoiseLayerConfig: NoiseLayerConfig{Scale: 0.008, Octaves: 3, Persistence: 0.5, Lacunarity: 2.0},
			NoiseWeight:      0.35,
			ElevationCooling: 0.55,
			Continentality:   0.35,
		},
		Humidity: HumidityConfig{
			NoiseLayerConfig: NoiseLayerConfig{Scale: 0.010, Octaves: 3, Persistence: 0.5, Lacunarity: 2.0},
			NoiseWeight:      0.55,
			ElevationDrying:  0.35,
		},
		Jitter: NoiseLayerConfig{Scale: 0.05, Octaves: 2, Persistence: 0.5, Lacunarity: 2.0},

		Rivers: RiverConfig{
			PrimaryScale:       0.006,
			SecondaryScale:     0.012,
			PrimaryThreshold:   0.022,
			SecondaryThreshold: 0.014,
			WarpScale:          0.015,
			WarpStrength:       18.0,
			WidthScale:         0.02,
			ShoreTaper:         0.06,
			MountainCutoff:     0.80,
			HumidityRadius:     6,
			HumidityBoost:      0.25,
		},
		Biomes: BiomeConfig{
			JitterMagnitude: 0.08,
			DeepBand:        0.15,
			OceanBand:       0.03,
			MountainLevel:   0.82,
			HighlandLevel:   0.68,
			AlpineMaxTemp:   0.30,
		},
		Resources: ResourceConfig{
			OreScale:        0.03,
			DensityScale:    0.015,
			GoldThreshold:   0.82,
			IronThreshold:   0.60,
			GoldRiverRadius: 3,
			MinDensity:      32,
		},
		Strategic: StrategicConfig{
			CrossingMaxElevation: 0.62,
			CrossingBucket:       12,
			PassRingRadius:       4,
			PassMinHigherRatio:   0.6,
			StraitMaxGap:         6,
			PeninsulaRadius:      5,
			PeninsulaWaterRatio:  0.60,
		},
		Nations: NationConfig{
			Count:       8,
			MinSpacing:  48,
			SampleStep:  4,
			ClaimRadius: 12,
			RiverBonus:  2.0,
		},
	}
}

// SmallTestConfig returns a tiny world for rapid iteration and tests.
func SmallTestConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Width = 64
	cfg.Height = 64
	cfg.Nations.Count = 3
	cfg.Nations.MinSpacing = 12
	cfg.Nations.SampleStep = 2
	cfg.Nations.ClaimRadius = 5
	return cfg
}

// SeedFromString turns a textual seed into a numeric one. Strings that
// parse as integers are used directly; anything else is hashed.
func SeedFromString(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// Validate checks the configuration before any grid allocation.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", c.Width, c.Height)
	}
	if c.SeaLevel < 0 || c.SeaLevel > 1 {
		return fmt.Errorf("sea level %.2f outside [0,1]", c.SeaLevel)
	}
	for _, l := range []struct {
		name string
		cfg  NoiseLayerConfig
	}{
		{"elevation", c.Elevation.NoiseLayerConfig},
		{"temperature", c.Temperature.NoiseLayerConfig},
		{"humidity", c.Humidity.NoiseLayerConfig},
		{"jitter", c.Jitter},
	} {
		if l.cfg.Scale <= 0 {
			return fmt.Errorf("%s noise: scale must be positive, got %g", l.name, l.cfg.Scale)
		}
		if l.cfg.Octaves <= 0 {
			return fmt.Errorf("%s noise: octave count must be positive, got %d", l.name, l.cfg.Octaves)
		}
		if l.cfg.Persistence <= 0 || l.cfg.Lacunarity <= 0 {
			return fmt.Errorf("%s noise: persistence and lacunarity must be positive", l.name)
		}
	}
	if c.Elevation.ContinentScale <= 0 || c.Elevation.OceanScale <= 0 {
		return fmt.Errorf("elevation: continent and ocean scales must be positive")
	}
	if c.Elevation.Redistribution <= 0 {
		return fmt.Errorf("elevation: redistribution exponent must be positive, got %g", c.Elevation.Redistribution)
	}
	if c.Rivers.PrimaryScale <= 0 || c.Rivers.SecondaryScale <= 0 || c.Rivers.WarpScale <= 0 || c.Rivers.WidthScale <= 0 {
		return fmt.Errorf("rivers: noise scales must be positive")
	}
	if c.Rivers.HumidityRadius < 0 {
		return fmt.Errorf("rivers: humidity radius must be non-negative, got %d", c.Rivers.HumidityRadius)
	}
	if c.Resources.OreScale <= 0 || c.Resources.DensityScale <= 0 {
		return fmt.Errorf("resources: noise scales must be positive")
	}
	for _, d := range []struct {
		name string
		v    int
	}{
		{"crossing bucket", c.Strategic.CrossingBucket},
		{"pass ring radius", c.Strategic.PassRingRadius},
		{"strait max gap", c.Strategic.StraitMaxGap},
		{"peninsula radius", c.Strategic.PeninsulaRadius},
	} {
		if d.v <= 0 {
			return fmt.Errorf("strategic: %s must be positive, got %d", d.name, d.v)
		}
	}
	if c.Nations.Count < 0 {
		return fmt.Errorf("nations: count must be non-negative, got %d", c.Nations.Count)
	}
	if c.Nations.Count > 0 {
		if c.Nations.SampleStep <= 0 {
			return fmt.Errorf("nations: sample step must be positive, got %d", c.Nations.SampleStep)
		}
		if c.Nations.MinSpacing <= 0 {
			return fmt.Errorf("nations: min spacing must be positive, got %g", c.Nations.MinSpacing)
		}
	}
	return nil
}
