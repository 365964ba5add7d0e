// Package render maps world grid layers onto RGBA pixel buffers, one
// view mode per layer. It holds no generation logic; it is a plain
// colorisation pass over finished layers.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/talgya/cartograph/internal/world"
)

// ViewMode selects which layer is colorised.
type ViewMode uint8

const (
	ViewTerrain ViewMode = iota
	ViewElevation
	ViewTemperature
	ViewHumidity
	ViewBiome
	ViewResources
	ViewPolitical
)

var viewModeNames = map[string]ViewMode{
	"terrain":     ViewTerrain,
	"elevation":   ViewElevation,
	"temperature": ViewTemperature,
	"humidity":    ViewHumidity,
	"biome":       ViewBiome,
	"resources":   ViewResources,
	"political":   ViewPolitical,
}

// ParseViewMode resolves a mode name from the CLI.
func ParseViewMode(name string) (ViewMode, error) {
	if m, ok := viewModeNames[name]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("unknown view mode %q", name)
}

// biomePalette gives each of the 26 biomes a display color.
var biomePalette = [world.BiomeCount]color.RGBA{
	world.BiomeDeepOcean:           {16, 36, 90, 255},
	world.BiomeOcean:               {26, 66, 138, 255},
	world.BiomeShore:               {64, 120, 180, 255},
	world.BiomeMountain:            {128, 122, 118, 255},
	world.BiomeAlpine:              {222, 226, 232, 255},
	world.BiomeHighland:            {146, 140, 108, 255},
	world.BiomeGlacier:             {210, 230, 244, 255},
	world.BiomePolarDesert:         {190, 196, 204, 255},
	world.BiomeTundra:              {150, 162, 140, 255},
	world.BiomeTaiga:               {88, 120, 96, 255},
	world.BiomeBorealForest:        {62, 104, 76, 255},
	world.BiomeColdSteppe:          {156, 160, 118, 255},
	world.BiomeMoor:                {110, 120, 90, 255},
	world.BiomeTemperateRainforest: {38, 110, 66, 255},
	world.BiomeTemperateForest:     {56, 128, 62, 255},
	world.BiomeGrassland:           {120, 160, 80, 255},
	world.BiomeShrubland:           {152, 156, 96, 255},
	world.BiomeMarsh:               {86, 128, 104, 255},
	world.BiomeSteppe:              {172, 160, 96, 255},
	world.BiomeTropicalRainforest:  {24, 98, 44, 255},
	world.BiomeMonsoonForest:       {44, 116, 52, 255},
	world.BiomeSavanna:             {184, 168, 88, 255},
	world.BiomeDesert:              {216, 196, 138, 255},
	world.BiomeBadlands:            {176, 120, 80, 255},
	world.BiomeSwamp:               {70, 96, 66, 255},
	world.BiomeMangrove:            {60, 108, 84, 255},
}

var resourcePalette = [world.ResourceCount]color.RGBA{
	world.ResourceNone:        {40, 40, 40, 255},
	world.ResourceGold:        {240, 200, 60, 255},
	world.ResourceIron:        {170, 170, 180, 255},
	world.ResourceFish:        {90, 160, 220, 255},
	world.ResourceFertileSoil: {130, 190, 70, 255},
	world.ResourceTimber:      {90, 140, 70, 255},
	world.ResourceStone:       {150, 140, 130, 255},
	world.ResourceFurs:        {160, 120, 90, 255},
}

var riverColor = color.RGBA{70, 130, 200, 255}

// Render colorises one view of the world into a fresh RGBA image.
// Nations are only needed for the political view; nil is fine
// otherwise.
func Render(m *world.Map, nations []world.Nation, mode ViewMode) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))

	switch mode {
	case ViewTerrain:
		fillTerrain(img, m)
	case ViewElevation:
		fillGradient(img, m.Elevation, color.RGBA{10, 10, 40, 255}, color.RGBA{250, 250, 250, 255})
	case ViewTemperature:
		fillGradient(img, m.Temperature, color.RGBA{40, 60, 200, 255}, color.RGBA{220, 60, 40, 255})
	case ViewHumidity:
		fillGradient(img, m.Humidity, color.RGBA{190, 170, 110, 255}, color.RGBA{40, 110, 200, 255})
	case ViewBiome:
		fillBiomes(img, m, false)
	case ViewResources:
		fillResources(img, m)
	case ViewPolitical:
		fillPolitical(img, m, nations)
	}
	return img
}

func setPixel(img *image.RGBA, i int, c color.RGBA) {
	base := i * 4
	img.Pix[base+0] = c.R
	img.Pix[base+1] = c.G
	img.Pix[base+2] = c.B
	img.Pix[base+3] = c.A
}

// fillTerrain draws biome colors with depth-shaded water and river
// overdraw.
func fillTerrain(img *image.RGBA, m *world.Map) {
	fillBiomes(img, m, true)
}

func fillBiomes(img *image.RGBA, m *world.Map, shaded bool) {
	for i := range m.Biome {
		b := world.Biome(m.Biome[i])
		c := biomePalette[b]
		if shaded {
			if m.River[i] {
				c = riverColor
			} else if b.IsWater() && m.SeaLevel > 0 {
				// Darken with depth.
				depth := 1.0 - float64(m.Elevation[i])/float64(m.SeaLevel)
				c = scaleColor(c, 1.0-0.5*clamp01f(depth))
			}
		}
		setPixel(img, i, c)
	}
}

func fillResources(img *image.RGBA, m *world.Map) {
	for i := range m.Resource {
		c := resourcePalette[world.Resource(m.Resource[i])]
		if m.IsWater(i) {
			c = biomePalette[world.BiomeOcean]
		}
		setPixel(img, i, c)
	}
}

func fillPolitical(img *image.RGBA, m *world.Map, nations []world.Nation) {
	for i, owner := range m.Owner {
		var c color.RGBA
		switch {
		case m.IsWater(i):
			c = biomePalette[world.BiomeOcean]
		case owner == world.OwnerNone:
			c = color.RGBA{60, 60, 60, 255}
		case int(owner) < len(nations):
			nc := nations[owner].Color
			c = color.RGBA{nc.R, nc.G, nc.B, 255}
		default:
			c = color.RGBA{255, 0, 255, 255} // orphaned owner index
		}
		setPixel(img, i, c)
	}
}

// fillGradient linearly interpolates between two colors over a [0,1]
// scalar layer.
func fillGradient(img *image.RGBA, layer []float32, lo, hi color.RGBA) {
	for i, v := range layer {
		t := clamp01f(float64(v))
		c := color.RGBA{
			R: uint8(float64(lo.R) + t*(float64(hi.R)-float64(lo.R))),
			G: uint8(float64(lo.G) + t*(float64(hi.G)-float64(lo.G))),
			B: uint8(float64(lo.B) + t*(float64(hi.B)-float64(lo.B))),
			A: 255,
		}
		setPixel(img, i, c)
	}
}

func scaleColor(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

func clamp01f(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
