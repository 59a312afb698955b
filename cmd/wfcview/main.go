// Command wfcview animates 2D wave function collapse in a window.
//
// Each tick runs a few solver steps; newly resolved cells fade in and
// unresolved cells show how many tiles they still allow.
//
// Keys: Space pauses, N steps once while paused, R restarts with the next
// seed, Escape quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/gitrdm/gowfc/pkg/tileset"
	"github.com/gitrdm/gowfc/pkg/wfc"
)

const (
	fadeSeconds = 0.35
	statusLines = 2
)

var errQuit = errors.New("quit")

type viewer struct {
	graph  *tileset.TileGraph
	tiles  []*ebiten.Image
	solver *wfc.Solver[wfc.Dir2]
	log    *slog.Logger

	width, height int
	tileSize      int
	scale         int
	stepsPerTick  int
	seed          uint64

	states []int
	fades  []*gween.Tween
	alpha  []float32
	paused bool
}

func main() {
	tiles := flag.String("tiles", "", "directory of square PNG sprites")
	width := flag.Int("w", 24, "grid width")
	height := flag.Int("h", 18, "grid height")
	seed := flag.Uint64("seed", 0, "first random seed")
	scale := flag.Int("scale", 2, "sprite magnification")
	steps := flag.Int("steps", 1, "solver steps per frame")
	recovery := flag.String("recovery", "restart", "contradiction policy: restart or backtrack")
	verbose := flag.Bool("v", false, "log solver events")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(*tiles, *width, *height, *seed, *scale, *steps, *recovery, logger); err != nil && !errors.Is(err, errQuit) {
		logger.Error("viewer stopped", "err", err)
		os.Exit(1)
	}
}

func run(dir string, width, height int, seed uint64, scale, steps int, recovery string, logger *slog.Logger) error {
	if dir == "" {
		return errors.New("-tiles is required")
	}
	sprites, err := tileset.LoadSprites(dir)
	if err != nil {
		return err
	}
	graph, err := tileset.BuildTileGraph(sprites, nil)
	if err != nil {
		return err
	}

	v := &viewer{
		graph:        graph,
		log:          logger,
		width:        width,
		height:       height,
		tileSize:     sprites[0].Size(),
		scale:        max(scale, 1),
		stepsPerTick: max(steps, 1),
		seed:         seed,
	}
	for _, variant := range graph.Variants() {
		v.tiles = append(v.tiles, ebiten.NewImageFromImage(variant.Sprite.Image()))
	}
	policy := wfc.RecoveryRestart
	if recovery == "backtrack" {
		policy = wfc.RecoveryBacktrack
	}
	if err := v.newSolver(policy); err != nil {
		return err
	}
	logger.Info("tile set loaded", "sprites", len(sprites), "variants", len(graph.Variants()))

	side := v.tileSize * v.scale
	ebiten.SetWindowSize(width*side, height*side+statusLines*16)
	ebiten.SetWindowTitle("wfcview")
	return ebiten.RunGame(v)
}

func (v *viewer) newSolver(policy wfc.Recovery) error {
	s, err := wfc.NewSolver2D(v.width, v.height, v.graph.Table(), &wfc.SolverConfig{
		Seed:     v.seed,
		Recovery: policy,
		Logger:   v.log.With("seed", v.seed),
	})
	if err != nil {
		return err
	}
	v.solver = s
	v.states = s.States()
	v.fades = make([]*gween.Tween, len(v.states))
	v.alpha = make([]float32, len(v.states))
	return nil
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return errQuit
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.paused = !v.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.seed++
		if err := v.newSolver(v.solver.Recovery()); err != nil {
			return err
		}
		v.log.Info("restarted", "seed", v.seed)
	}

	steps := v.stepsPerTick
	if v.paused {
		steps = 0
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			steps = 1
		}
	}
	for i := 0; i < steps && !v.solver.IsCollapsed(); i++ {
		v.solver.Iterate()
	}
	v.refresh()

	dt := float32(1.0 / float64(ebiten.TPS()))
	for i, tw := range v.fades {
		if tw == nil {
			continue
		}
		a, done := tw.Update(dt)
		v.alpha[i] = a
		if done {
			v.fades[i] = nil
		}
	}
	return nil
}

// refresh starts a fade for every cell that resolved since the last frame
// and clears cells a restart or rollback has reopened.
func (v *viewer) refresh() {
	next := v.solver.States()
	for i, st := range next {
		switch {
		case st == v.states[i]:
		case st < 0:
			v.fades[i] = nil
			v.alpha[i] = 0
		default:
			v.fades[i] = gween.New(0, 1, fadeSeconds, ease.OutQuad)
			v.alpha[i] = 0
		}
	}
	v.states = next
}

func (v *viewer) Draw(screen *ebiten.Image) {
	side := v.tileSize * v.scale
	for x := 0; x < v.width; x++ {
		for y := 0; y < v.height; y++ {
			p := wfc.Pos{X: x, Y: y}
			i := v.solver.StateIndex(p)
			st := v.states[i]
			if st < 0 {
				if side >= 16 {
					ebitenutil.DebugPrintAt(screen, fmt.Sprint(v.solver.Entropy(p)), x*side+2, y*side+2)
				}
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(v.scale), float64(v.scale))
			op.GeoM.Translate(float64(x*side), float64(y*side))
			op.ColorScale.ScaleAlpha(v.alpha[i])
			screen.DrawImage(v.tiles[st], op)
		}
	}

	st := v.solver.Stats()
	status := fmt.Sprintf("seed %d  steps %d  contradictions %d  resets %d  backtracks %d",
		v.seed, st.Iterations, st.Contradictions, st.Resets, st.Backtracks)
	if v.solver.IsCollapsed() {
		status += "  done"
	} else if v.paused {
		status += "  paused"
	}
	ebitenutil.DebugPrintAt(screen, status, 4, v.height*side+2)
	ebitenutil.DebugPrintAt(screen, "space pause  n step  r reseed  esc quit", 4, v.height*side+18)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := v.tileSize * v.scale
	return v.width * side, v.height*side + statusLines*16
}
