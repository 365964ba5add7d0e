// Command worldgen generates a deterministic world from a seed and
// writes PNG previews and/or a SQLite save.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/cartograph/internal/gen"
	"github.com/talgya/cartograph/internal/persistence"
	"github.com/talgya/cartograph/internal/render"
	"github.com/talgya/cartograph/internal/world"
)

func main() {
	seedFlag := flag.String("seed", "42", "world seed (integer or any string)")
	width := flag.Int("width", 1024, "map width in cells")
	height := flag.Int("height", 1024, "map height in cells")
	seaLevel := flag.Float64("sea", 0.40, "sea level elevation threshold")
	island := flag.Bool("island", false, "island mode: radial elevation falloff")
	nations := flag.Int("nations", 8, "number of nations to spawn")
	views := flag.String("views", "terrain", "comma-separated PNG views (terrain,elevation,temperature,humidity,biome,resources,political)")
	outPrefix := flag.String("out", "", "PNG output path prefix (empty = no PNGs)")
	dbPath := flag.String("db", "", "SQLite save path (empty = no save)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := gen.DefaultConfig()
	cfg.Seed = gen.SeedFromString(*seedFlag)
	cfg.Width = *width
	cfg.Height = *height
	cfg.SeaLevel = *seaLevel
	cfg.IslandMode = *island
	cfg.Nations.Count = *nations

	slog.Info("generating world",
		"seed", cfg.Seed,
		"cells", humanize.Comma(int64(cfg.Width*cfg.Height)),
	)

	// Generation runs on its own goroutine; an interactive caller would
	// keep servicing its UI here. A run publishes all or nothing.
	type outcome struct {
		res *gen.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := gen.Generate(cfg)
		done <- outcome{res, err}
	}()
	out := <-done
	if out.err != nil {
		slog.Error("generation failed", "error", out.err)
		os.Exit(1)
	}
	res := out.res

	logCensus(res)

	if *outPrefix != "" {
		for _, name := range strings.Split(*views, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			mode, err := render.ParseViewMode(name)
			if err != nil {
				slog.Error("bad view mode", "error", err)
				os.Exit(1)
			}
			path := fmt.Sprintf("%s_%s.png", *outPrefix, name)
			if err := writePNG(path, res, mode); err != nil {
				slog.Error("png write failed", "path", path, "error", err)
				os.Exit(1)
			}
			slog.Info("view rendered", "path", path)
		}
	}

	if *dbPath != "" {
		db, err := persistence.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		id, err := db.SaveWorld(res)
		if err != nil {
			slog.Error("save failed", "error", err)
			os.Exit(1)
		}
		slog.Info("world saved", "db", *dbPath, "world_id", id)
	}
}

// logCensus summarises the generated world.
func logCensus(res *gen.Result) {
	m := res.Map

	counts := world.BiomeCounts(m)
	land := 0
	for b, c := range counts {
		if !b.IsWater() {
			land += c
		}
	}
	slog.Info("census",
		"land_cells", humanize.Comma(int64(land)),
		"water_cells", humanize.Comma(int64(m.CellCount()-land)),
		"strategic_points", len(res.Points),
	)

	for _, n := range res.Nations {
		slog.Info("nation",
			"name", n.Name,
			"government", n.Government.Name(),
			"provinces", len(n.Provinces),
			"aggression", fmt.Sprintf("%.2f", n.Personality.Aggression),
			"expansionism", fmt.Sprintf("%.2f", n.Personality.Expansionism),
		)
	}
}

func writePNG(path string, res *gen.Result, mode render.ViewMode) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, render.Render(res.Map, res.Nations, mode))
}
