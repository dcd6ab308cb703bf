// Command pathmap loads a run configuration, samples atom obstacles onto a
// voxel grid centred on the path origin, runs a flood or point-to-point
// search and writes a JSON report.
//
//	pathmap -config run.toml [-out result.json] [-profile path.png]
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/pathmap/config"
	"github.com/katalvlaran/pathmap/header"
	"github.com/katalvlaran/pathmap/obstacles"
	"github.com/katalvlaran/pathmap/profile"
	"github.com/katalvlaran/pathmap/search"
	"github.com/katalvlaran/pathmap/tilegrid"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// Report is the JSON document written by a run.
type Report struct {
	search.Summary
	Start          [3]float64   `json:"start"`
	Path           [][3]float64 `json:"path,omitempty"`
	Obstacles      int          `json:"obstacle_tiles"`
	FreeComponents int          `json:"free_components"`
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("pathmap", flag.ContinueOnError)
	cfgPath := fs.String("config", "pathmap.toml", "run configuration (.toml, .yaml)")
	outPath := fs.String("out", "", "write the JSON report here instead of stdout")
	profilePath := fs.String("profile", "", "write a cost profile plot of the found path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	// ── Grid ────────────────────────────────────────────────────────
	g, err := buildGrid(cfg, log)
	if err != nil {
		return err
	}
	h := g.Header()

	// ── Obstacles ───────────────────────────────────────────────────
	if err := sampleAtoms(g, cfg, log); err != nil {
		return err
	}
	if err := g.UpdateTiles(cfg.Grid.ObstacleThreshold, cfg.Obstacles.Binarize, cfg.Obstacles.Penalty, true); err != nil {
		return err
	}

	// ── Search ──────────────────────────────────────────────────────
	start, ok := h.VoxelAt(h.PathOrigin)
	if !ok {
		return fmt.Errorf("path origin %v outside grid", h.PathOrigin)
	}
	opts, err := searchOptions(cfg, h, log)
	if err != nil {
		return err
	}
	res, err := search.FindPath(g, start, opts...)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	report := Report{
		Summary:        res.Summary(),
		Start:          vec(h.Position(start)),
		FreeComponents: len(g.FreeComponents()),
	}
	for i := 0; i < g.Len(); i++ {
		if g.Obstacle(i) {
			report.Obstacles++
		}
	}
	for _, idx := range res.Path {
		report.Path = append(report.Path, vec(h.Position(idx)))
	}
	log.Info("run complete",
		zap.String("run_id", report.RunID),
		zap.Int("accessible_tiles", report.Accessible),
		zap.Float64("accessible_volume", report.Volume),
		zap.Bool("found", report.Found),
		zap.Int("obstacle_tiles", report.Obstacles))

	if *profilePath != "" {
		switch err := profile.WritePathProfile(*profilePath, g, res); {
		case errors.Is(err, profile.ErrNoPath):
			log.Warn("no path found, profile skipped", zap.String("file", *profilePath))
		case err != nil:
			return err
		default:
			log.Info("profile written", zap.String("file", *profilePath))
		}
	}

	return writeReport(report, *outPath, stdout)
}

func buildGrid(cfg *config.Config, log *zap.Logger) (*tilegrid.Grid, error) {
	hopts := []header.Option{
		header.WithNeighborRadius(cfg.Grid.NeighborRadius),
		header.WithObstacleThreshold(cfg.Grid.ObstacleThreshold),
	}
	if d := cfg.Grid.Dimensions; d[0] > 0 && d[1] > 0 && d[2] > 0 {
		hopts = append(hopts, header.WithDimensions(d[0], d[1], d[2]))
	}
	h, err := header.NewHeader(cfg.Grid.MaxPathLength, cfg.Grid.Spacing, hopts...)
	if err != nil {
		return nil, err
	}
	h.SetPathOrigin(toVec(cfg.Grid.PathOrigin))

	g, err := tilegrid.New(h, tilegrid.WithLogger(log))
	if err != nil {
		return nil, err
	}
	log.Info("grid ready",
		zap.Int("nx", h.NX), zap.Int("ny", h.NY), zap.Int("nz", h.NZ),
		zap.Float64("spacing", h.Spacing),
		zap.Int("stencil", g.Stencil().Len()))
	return g, nil
}

func sampleAtoms(g *tilegrid.Grid, cfg *config.Config, log *zap.Logger) error {
	atoms := make([]obstacles.Atom, 0, len(cfg.Obstacles.Atoms))
	for _, a := range cfg.Obstacles.Atoms {
		atoms = append(atoms, obstacles.Atom{ID: a.ID, Center: toVec(a.Center), Radius: a.Radius})
	}
	if r := cfg.Obstacles.ExcludeRadius; r > 0 {
		before := len(atoms)
		atoms = obstacles.Exclude(atoms, g.Header().PathOrigin, r)
		log.Debug("atoms excluded near origin", zap.Int("dropped", before-len(atoms)))
	}
	if len(atoms) == 0 {
		log.Info("no obstacle atoms, grid is open")
		return nil
	}
	ix, err := obstacles.NewIndex(atoms)
	if err != nil {
		return err
	}
	covered, err := obstacles.Sample(g, ix, cfg.Obstacles.ExtraRadius, cfg.Obstacles.Density)
	if err != nil {
		return err
	}
	log.Info("atoms sampled", zap.Int("atoms", ix.Len()), zap.Int("covered_voxels", covered))
	return nil
}

func searchOptions(cfg *config.Config, h *header.Header, log *zap.Logger) ([]search.Option, error) {
	mode, err := search.ParseMode(cfg.Search.Mode)
	if err != nil {
		return nil, err
	}
	opts := []search.Option{search.WithMode(mode), search.WithLogger(log)}
	if cfg.Search.ImpassableObstacles {
		opts = append(opts, search.WithImpassableObstacles())
	}
	if cfg.HasTarget() {
		t := toVec(*cfg.Search.Target)
		end, ok := h.VoxelAt(t)
		if !ok {
			return nil, fmt.Errorf("target %v outside grid: %w", t, search.ErrInvalidEndTile)
		}
		opts = append(opts, search.End(end))
	}
	return opts, nil
}

func writeReport(r Report, path string, stdout io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" {
		_, err = stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func toVec(a [3]float64) r3.Vec { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }

func vec(v r3.Vec) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }
