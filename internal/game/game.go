// Package game wires the window, renderer and scenes into the main loop.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/minirace/internal/config"
	"github.com/Faultbox/minirace/internal/engine/camera"
	"github.com/Faultbox/minirace/internal/engine/debug"
	"github.com/Faultbox/minirace/internal/engine/input"
	"github.com/Faultbox/minirace/internal/engine/mesh"
	"github.com/Faultbox/minirace/internal/engine/renderer"
	"github.com/Faultbox/minirace/internal/engine/scenegraph"
	"github.com/Faultbox/minirace/internal/engine/window"
	"github.com/Faultbox/minirace/internal/game/states"
	"github.com/Faultbox/minirace/internal/logger"
	"github.com/Faultbox/minirace/pkg/math"
)

const (
	// meshSize is the extent every loaded STL is normalized to.
	meshSize = 2
	// maxStepsPerFrame bounds physics catch-up after a stall.
	maxStepsPerFrame = 8
	orthoHalfHeight  = 2
)

// Game is the main game instance.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	meshes   *mesh.Library
	ctx      *states.Context
	stepper  Stepper
	shots    *debug.Screenshots
	capture  bool
	log      *zap.Logger
}

// New opens the window, compiles the pipelines and enters the garage.
func New(cfg *config.Config) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing game",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	g := &Game{
		config:  cfg,
		stepper: Stepper{Step: cfg.Physics.TimeStep, MaxSteps: maxStepsPerFrame},
		shots:   debug.NewScreenshots("screenshots", "minirace"),
		log:     log,
	}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.Size()
	g.renderer, err = renderer.New(width, height)
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()
	g.meshes = mesh.NewLibrary(meshSize)

	cam, err := newCamera(cfg.Camera, width, height)
	if err != nil {
		g.Close()
		return nil, err
	}

	graph := scenegraph.New()
	if err := addFixtures(graph, g.meshes, g.renderer.Flat, g.renderer.Lit); err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	g.ctx = &states.Context{
		Config: cfg,
		Graph:  graph,
		Camera: cam,
		Keys:   g.input,
		Meshes: g.meshes,
		Flat:   g.renderer.Flat,
		Lit:    g.renderer.Lit,
		States: states.NewManager(),
		Quit:   func() { g.running = false },
		Log:    logger.Named("states"),
	}
	g.ctx.States.Change(states.NewGarage(g.ctx))

	log.Info("game initialized successfully")
	return g, nil
}

func newCamera(cfg config.CameraConfig, width, height int) (*camera.FreeCamera, error) {
	kind, err := camera.ParseKind(cfg.Projection)
	if err != nil {
		return nil, err
	}
	cam := camera.NewFreeCamera(math.Vec3{}, camera.Lens{
		Kind:       kind,
		FOV:        cfg.FOV,
		Aspect:     1,
		Near:       cfg.Near,
		Far:        cfg.Far,
		HalfHeight: orthoHalfHeight,
	})
	cam.Resize(width, height)
	if cfg.MouseSpeed > 0 {
		cam.DragSensitivity = cfg.MouseSpeed
	}
	return cam, nil
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		elapsed := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			break
		}
		if err := g.handleEvents(); err != nil {
			return fmt.Errorf("input error: %w", err)
		}

		// 2. Update scenes in fixed steps. Physics poses reach the graph here.
		if _, err := g.stepper.Advance(elapsed, g.ctx.States.Update); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		if err := g.renderer.Frame(g.ctx.Graph, g.ctx.Camera); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if g.capture {
			g.capture = false
			g.screenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("frame", elapsed),
				zap.Int("nodes", g.ctx.Graph.Len()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents() error {
	for _, event := range g.input.Events() {
		switch {
		case event.Type == input.EventWindowResize:
			g.renderer.Resize(event.Width, event.Height)
			g.ctx.Camera.Resize(event.Width, event.Height)
		case event.Type == input.EventKeyDown && event.Key == input.KeyEscape:
			g.running = false
		case event.Type == input.EventKeyDown && event.Key == input.KeyF12:
			g.capture = true
			g.DumpScene()
		default:
			if err := g.ctx.States.HandleInput(event); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Game) screenshot() {
	width, height := g.renderer.Size()
	path, err := g.shots.Save(g.renderer.ReadPixels(), width, height)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// DumpScene logs every world transform at debug level.
func (g *Game) DumpScene() {
	world, err := g.ctx.Graph.WorldTransforms()
	if err != nil {
		g.log.Warn("scene dump failed", zap.Error(err))
		return
	}
	logger.Dump("scene", world)
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.ctx != nil {
		g.DumpScene()
		if err := g.ctx.States.Close(); err != nil {
			g.log.Warn("failed to leave scene", zap.Error(err))
		}
	}
	if g.meshes != nil {
		g.meshes.Release()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
