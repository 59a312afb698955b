// Command wfc generates tile maps with wave function collapse.
//
// 2D mode reads square PNG sprites from a directory, derives their edge
// adjacency and writes the collapsed grid as a PNG:
//
//	wfc -mode 2d -tiles ./sprites -w 32 -h 24 -seed 7 -scale 2 -out map.png
//
// 3D mode reads Wavefront OBJ tiles, derives face adjacency and prints the
// collapsed volume one layer at a time:
//
//	wfc -mode 3d -tiles ./meshes -w 8 -h 4 -d 8 -bottom 0,2
//
// -batch N runs N seeds in parallel and writes one file per seed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gitrdm/gowfc/pkg/tileset"
	"github.com/gitrdm/gowfc/pkg/wfc"
)

type options struct {
	mode      string
	tiles     string
	width     int
	height    int
	depth     int
	seed      uint64
	out       string
	scale     int
	batch     int
	workers   int
	maxIter   int
	maxResets int
	recovery  string
	sockets   string
	bottom    string
	check     bool
	verbose   bool
	version   bool
}

func main() {
	var o options
	flag.StringVar(&o.mode, "mode", "2d", "tile model: 2d (sprites) or 3d (meshes)")
	flag.StringVar(&o.tiles, "tiles", "", "directory holding *.png (2d) or *.obj (3d) tiles")
	flag.IntVar(&o.width, "w", 16, "grid width")
	flag.IntVar(&o.height, "h", 16, "grid height")
	flag.IntVar(&o.depth, "d", 8, "grid depth (3d only)")
	flag.Uint64Var(&o.seed, "seed", 0, "random seed")
	flag.StringVar(&o.out, "out", "", "output file; 2d defaults to wfc.png, 3d to stdout")
	flag.IntVar(&o.scale, "scale", 1, "2d output magnification")
	flag.IntVar(&o.batch, "batch", 1, "number of consecutive seeds to generate")
	flag.IntVar(&o.workers, "workers", 0, "batch workers; 0 uses every CPU")
	flag.IntVar(&o.maxIter, "max-iter", 0, "give up after this many steps; 0 is unbounded")
	flag.IntVar(&o.maxResets, "max-resets", 1000, "give up after this many restarts; 0 is unbounded")
	flag.StringVar(&o.recovery, "recovery", "", "contradiction policy: restart or backtrack (default per mode)")
	flag.StringVar(&o.sockets, "sockets", "", "comma-separated edge offsets compared in 2d (default 0,6,13)")
	flag.StringVar(&o.bottom, "bottom", "", "comma-separated base tiles allowed on the 3d bottom ring")
	flag.BoolVar(&o.check, "check", false, "verify the adjacency table is symmetric before solving")
	flag.BoolVar(&o.verbose, "v", false, "log solver events")
	flag.BoolVar(&o.version, "version", false, "print the version and exit")
	flag.Parse()

	if o.version {
		info := wfc.GetVersionInfo()
		fmt.Printf("wfc %s (%s)\n", info.Version, info.GoVersion)
		if info.GitCommit != "" {
			dirty := ""
			if info.Modified {
				dirty = ", modified"
			}
			fmt.Printf("commit %s built %s%s\n", info.GitCommit, info.BuildDate, dirty)
		}
		return
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch o.mode {
	case "2d":
		err = run2D(ctx, o, logger)
	case "3d":
		err = run3D(ctx, o, logger)
	default:
		err = fmt.Errorf("unknown mode %q", o.mode)
	}
	if err != nil {
		logger.Error("generation failed", "err", err)
		os.Exit(1)
	}
}

func run2D(ctx context.Context, o options, logger *slog.Logger) error {
	if o.tiles == "" {
		return errors.New("-tiles is required")
	}
	sprites, err := tileset.LoadSprites(o.tiles)
	if err != nil {
		return err
	}
	opts := &tileset.GraphOptions{}
	if o.sockets != "" {
		if opts.Sockets, err = parseInts(o.sockets); err != nil {
			return fmt.Errorf("-sockets: %w", err)
		}
	}
	graph, err := tileset.BuildTileGraph(sprites, opts)
	if err != nil {
		return err
	}
	logger.Info("tile set loaded", "sprites", len(sprites), "variants", len(graph.Variants()))
	if err := checkTable(o, graph.Table()); err != nil {
		return err
	}

	recovery, err := parseRecovery(o.recovery)
	if err != nil {
		return err
	}
	results, err := generate(ctx, o, logger, func(seed uint64) (wfc.Runner, error) {
		return wfc.NewSolver2D(o.width, o.height, graph.Table(), solverConfig(o, seed, recovery, logger))
	})
	if err != nil {
		return err
	}

	out := o.out
	if out == "" {
		out = "wfc.png"
	}
	for _, r := range results {
		if r.Err != nil {
			logger.Warn("seed failed", "seed", r.Seed, "err", r.Err)
			continue
		}
		img, err := tileset.Compose2D(graph.Variants(), r.States, o.width, o.height, o.scale)
		if err != nil {
			return err
		}
		path := seedPath(out, r.Seed, o.batch)
		if err := writePNG(path, img); err != nil {
			return err
		}
		logger.Info("wrote map", "path", path, "seed", r.Seed, "stats", r.Stats.String())
	}
	return failed(results)
}

func run3D(ctx context.Context, o options, logger *slog.Logger) error {
	if o.tiles == "" {
		return errors.New("-tiles is required")
	}
	paths, err := filepath.Glob(filepath.Join(o.tiles, "*.obj"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .obj files in %s", o.tiles)
	}
	sort.Strings(paths)
	meshes, err := tileset.LoadMeshes(paths)
	if err != nil {
		return err
	}

	opts := &tileset.Graph3DOptions{}
	if o.bottom != "" {
		if opts.BottomEdge, err = parseInts(o.bottom); err != nil {
			return fmt.Errorf("-bottom: %w", err)
		}
	}
	graph, err := tileset.BuildTileGraph3D(meshes, opts)
	if err != nil {
		return err
	}
	logger.Info("tile set loaded", "meshes", len(meshes), "variants", graph.Variants().Len())
	for i, p := range paths {
		logger.Debug("base tile", "index", i, "file", filepath.Base(p))
	}
	if err := checkTable(o, graph.Table()); err != nil {
		return err
	}

	recovery, err := parseRecovery(o.recovery)
	if err != nil {
		return err
	}
	boundary := graph.Boundary()
	results, err := generate(ctx, o, logger, func(seed uint64) (wfc.Runner, error) {
		return wfc.NewSolver3D(o.width, o.height, o.depth, graph.Table(), boundary, solverConfig(o, seed, recovery, logger))
	})
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			logger.Warn("seed failed", "seed", r.Seed, "err", r.Err)
			continue
		}
		w := os.Stdout
		if o.out != "" {
			f, err := os.Create(seedPath(o.out, r.Seed, o.batch))
			if err != nil {
				return err
			}
			w = f
		}
		fmt.Fprintf(w, "# seed %d: %s\n", r.Seed, r.Stats)
		err := tileset.WriteLayers(w, r.States, o.width, o.height, o.depth, boundary.Empty)
		if w != os.Stdout {
			if cerr := w.Close(); err == nil {
				err = cerr
			}
		}
		if err != nil {
			return err
		}
	}
	return failed(results)
}

// generate runs one solver per seed. A single seed runs inline so its log
// lines keep their order.
func generate(ctx context.Context, o options, logger *slog.Logger, newSolver func(uint64) (wfc.Runner, error)) ([]wfc.BatchResult, error) {
	n := max(o.batch, 1)
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = o.seed + uint64(i)
	}
	workers := o.workers
	if n == 1 {
		workers = 1
	}
	logger.Debug("generating", "seeds", n, "workers", workers)
	return wfc.GenerateBatch(ctx, seeds, workers, newSolver)
}

func solverConfig(o options, seed uint64, recovery wfc.Recovery, logger *slog.Logger) *wfc.SolverConfig {
	return &wfc.SolverConfig{
		Seed:          seed,
		Recovery:      recovery,
		MaxIterations: o.maxIter,
		MaxResets:     o.maxResets,
		Logger:        logger.With("seed", seed),
	}
}

func checkTable[D wfc.Direction[D]](o options, t *wfc.Table[D]) error {
	if !o.check {
		return nil
	}
	if err := t.CheckSymmetry(); err != nil {
		return fmt.Errorf("adjacency table is not symmetric: %w", err)
	}
	return nil
}

func parseRecovery(s string) (wfc.Recovery, error) {
	switch s {
	case "":
		return wfc.RecoveryDefault, nil
	case "restart":
		return wfc.RecoveryRestart, nil
	case "backtrack":
		return wfc.RecoveryBacktrack, nil
	default:
		return 0, fmt.Errorf("unknown recovery %q", s)
	}
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// seedPath inserts the seed before the extension when a batch writes
// several files.
func seedPath(path string, seed uint64, batch int) string {
	if batch <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), seed, ext)
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func failed(results []wfc.BatchResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("seed %d: %w", r.Seed, r.Err))
		}
	}
	return errors.Join(errs...)
}
