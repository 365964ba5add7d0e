package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/talgya/cartograph/internal/world"
)

// splitMap builds a small map whose left half is ocean and right half is
// grassland, with one river cell and one claimed cell for overlay tests.
func splitMap() *world.Map {
	m := world.NewMap(8, 8, 0.4)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			idx := m.Index(x, y)
			if x < 4 {
				m.Elevation[idx] = 0.2
				m.Biome[idx] = uint8(world.BiomeOcean)
			} else {
				m.Elevation[idx] = 0.6
				m.Biome[idx] = uint8(world.BiomeGrassland)
			}
		}
	}
	m.River[m.Index(5, 5)] = true
	m.Owner[m.Index(6, 6)] = 0
	return m
}

func at(t *testing.T, img *image.RGBA, x, y int) color.RGBA {
	t.Helper()
	return img.RGBAAt(x, y)
}

func TestRenderDimensions(t *testing.T) {
	m := splitMap()
	for _, mode := range []ViewMode{
		ViewTerrain, ViewElevation, ViewTemperature, ViewHumidity,
		ViewBiome, ViewResources, ViewPolitical,
	} {
		img := Render(m, nil, mode)
		b := img.Bounds()
		if b.Dx() != m.Width || b.Dy() != m.Height {
			t.Errorf("mode %d: image is %dx%d, want %dx%d", mode, b.Dx(), b.Dy(), m.Width, m.Height)
		}
		if at(t, img, 0, 0).A != 255 {
			t.Errorf("mode %d: pixels are not opaque", mode)
		}
	}
}

func TestBiomeViewUsesPalette(t *testing.T) {
	m := splitMap()
	img := Render(m, nil, ViewBiome)

	if got := at(t, img, 1, 1); got != biomePalette[world.BiomeOcean] {
		t.Errorf("ocean pixel = %+v, want %+v", got, biomePalette[world.BiomeOcean])
	}
	if got := at(t, img, 6, 1); got != biomePalette[world.BiomeGrassland] {
		t.Errorf("grassland pixel = %+v, want %+v", got, biomePalette[world.BiomeGrassland])
	}
}

func TestTerrainViewOverlaysRivers(t *testing.T) {
	m := splitMap()
	img := Render(m, nil, ViewTerrain)

	if got := at(t, img, 5, 5); got != riverColor {
		t.Errorf("river pixel = %+v, want %+v", got, riverColor)
	}
	// Shaded water is darker than the flat palette entry.
	base := biomePalette[world.BiomeOcean]
	if got := at(t, img, 1, 1); got.R > base.R || got.G > base.G || got.B > base.B {
		t.Errorf("water pixel %+v is not darkened from %+v", got, base)
	}
}

func TestPoliticalView(t *testing.T) {
	m := splitMap()
	nations := []world.Nation{{Index: 0, Color: world.RGB{R: 200, G: 30, B: 30}}}
	img := Render(m, nations, ViewPolitical)

	if got := at(t, img, 6, 6); (got != color.RGBA{200, 30, 30, 255}) {
		t.Errorf("claimed pixel = %+v, want the nation color", got)
	}
	if got := at(t, img, 5, 1); (got != color.RGBA{60, 60, 60, 255}) {
		t.Errorf("unclaimed land pixel = %+v, want neutral grey", got)
	}
	if got := at(t, img, 1, 1); got != biomePalette[world.BiomeOcean] {
		t.Errorf("water pixel = %+v, want ocean blue", got)
	}
}

func TestPoliticalViewOrphanedOwner(t *testing.T) {
	m := splitMap()
	m.Owner[m.Index(7, 7)] = 5 // no such nation
	img := Render(m, nil, ViewPolitical)

	if got := at(t, img, 7, 7); (got != color.RGBA{255, 0, 255, 255}) {
		t.Errorf("orphaned owner pixel = %+v, want magenta", got)
	}
}

func TestGradientEndpoints(t *testing.T) {
	m := world.NewMap(2, 1, 0.4)
	m.Elevation[0] = 0
	m.Elevation[1] = 1
	img := Render(m, nil, ViewElevation)

	if got := at(t, img, 0, 0); (got != color.RGBA{10, 10, 40, 255}) {
		t.Errorf("low endpoint = %+v", got)
	}
	if got := at(t, img, 1, 0); (got != color.RGBA{250, 250, 250, 255}) {
		t.Errorf("high endpoint = %+v", got)
	}
}

func TestResourceView(t *testing.T) {
	m := splitMap()
	m.Resource[m.Index(6, 2)] = uint8(world.ResourceGold)
	img := Render(m, nil, ViewResources)

	if got := at(t, img, 6, 2); got != resourcePalette[world.ResourceGold] {
		t.Errorf("gold pixel = %+v, want %+v", got, resourcePalette[world.ResourceGold])
	}
	if got := at(t, img, 1, 1); got != biomePalette[world.BiomeOcean] {
		t.Errorf("water pixel = %+v, want ocean blue", got)
	}
}

func TestParseViewMode(t *testing.T) {
	for name, want := range viewModeNames {
		got, err := ParseViewMode(name)
		if err != nil || got != want {
			t.Errorf("ParseViewMode(%q) = %d, %v", name, got, err)
		}
	}
	if _, err := ParseViewMode("sonar"); err == nil {
		t.Error("unknown mode accepted")
	}
}
