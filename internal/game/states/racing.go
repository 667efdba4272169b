package states

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/minirace/internal/config"
	"github.com/Faultbox/minirace/internal/engine/bridge"
	"github.com/Faultbox/minirace/internal/engine/input"
	"github.com/Faultbox/minirace/internal/engine/material"
	"github.com/Faultbox/minirace/internal/engine/mesh"
	"github.com/Faultbox/minirace/internal/engine/physics"
	"github.com/Faultbox/minirace/internal/engine/scenegraph"
	"github.com/Faultbox/minirace/internal/game/race"
)

// TrackRoot is the pivot every race node hangs from.
const TrackRoot = "track"

// PlayerNode is the pivot driven by the player's body.
const PlayerNode = "player"

const (
	wallHeight = 0.5
	// carLift raises the car meshes so the wheels rest on the floor.
	carLift = 0.11
)

// Racing drives the chosen car around the walled arena until it reaches the goal.
type Racing struct {
	ctx     *Context
	car     config.CarConfig
	world   *physics.Box2DWorld
	session *race.Session
}

// NewRacing creates a race for car.
func NewRacing(ctx *Context, car config.CarConfig) *Racing {
	return &Racing{ctx: ctx, car: car}
}

// Session returns the running race, or nil before Enter.
func (s *Racing) Session() *race.Session { return s.session }

// Enter builds the physics world and the track subtree.
func (s *Racing) Enter() error {
	cfg := s.ctx.Config
	s.world = physics.NewBox2DWorld(physics.Settings{
		VelocityIterations: cfg.Physics.VelocityIterations,
		PositionIterations: cfg.Physics.PositionIterations,
		LinearDamping:      cfg.Physics.LinearDamping,
		AngularDamping:     cfg.Physics.AngularDamping,
		Density:            cfg.Physics.Density,
		Friction:           cfg.Physics.Friction,
	})
	body, err := race.BuildArena(s.world, cfg.Race)
	if err != nil {
		return err
	}

	if err := s.buildTrack(cfg.Race); err != nil {
		return err
	}
	car, err := buildCar(s.ctx, PlayerNode, TrackRoot, s.car, scenegraph.WithPosition(0, carLift, 0))
	if err != nil {
		return fmt.Errorf("car %s: %w", s.car.Name, err)
	}

	b := bridge.New()
	b.Bind(body, PlayerNode, cfg.Race.HeadingOffset)
	b.AddSpinner(&bridge.WheelSpinner{Body: body, Nodes: car.Wheels, Radius: cfg.Race.WheelRadius})
	s.session = race.NewSession(s.world, body, b, race.ControlsFrom(cfg.Race))

	// Place the car before the first frame is drawn.
	if err := b.Sync(s.ctx.Graph, 0); err != nil {
		return err
	}
	s.follow()
	s.ctx.Log.Info("race started", zap.String("car", s.car.Name))
	return s.ctx.Camera.Update()
}

func (s *Racing) buildTrack(cfg config.RaceConfig) error {
	g := s.ctx.Graph
	if err := g.AddNode(TrackRoot); err != nil {
		return err
	}

	floor, _ := material.Lookup("floor")
	size := 2 * cfg.ArenaHalfSize
	if err := g.AddNode("floor",
		scenegraph.WithParent(TrackRoot),
		scenegraph.WithScale(size, 1, size),
		scenegraph.WithDrawable(s.ctx.Meshes.Shape("quad", mesh.Quad), s.ctx.Lit),
		scenegraph.WithMaterial(floor),
	); err != nil {
		return err
	}

	cube := s.ctx.Meshes.Shape("cube", mesh.Cube)
	stone, _ := material.Lookup("pearl")
	for _, w := range race.Walls(cfg) {
		if err := g.AddNode(w.Name,
			scenegraph.WithParent(TrackRoot),
			scenegraph.WithPosition(w.Center.X, wallHeight/2, w.Center.Y),
			scenegraph.WithScale(2*w.HalfWidth, wallHeight, 2*w.HalfHeight),
			scenegraph.WithDrawable(cube, s.ctx.Lit),
			scenegraph.WithMaterial(stone),
		); err != nil {
			return err
		}
	}

	gold, _ := material.Lookup("gold")
	return g.AddNode(race.GoalZone,
		scenegraph.WithParent(TrackRoot),
		scenegraph.WithPosition(cfg.WinZone[0], 0.01, cfg.WinZone[1]),
		scenegraph.WithScale(cfg.WinRadius, 1, cfg.WinRadius),
		scenegraph.WithDrawable(s.ctx.Meshes.Shape("disc", func() *mesh.Data { return mesh.Disc(48) }), s.ctx.Lit),
		scenegraph.WithMaterial(gold),
	)
}

// Exit removes the track subtree and drops the physics world.
func (s *Racing) Exit() error {
	s.session = nil
	s.world = nil
	return s.ctx.Graph.RemoveNode(TrackRoot)
}

// Update steps the race and moves the chase camera behind the car.
func (s *Racing) Update(dt time.Duration) error {
	won, err := s.session.Update(s.ctx.Graph, s.ctx.Keys, dt)
	if err != nil {
		return err
	}
	s.follow()
	if err := s.ctx.Camera.Update(); err != nil {
		return err
	}
	if won && s.ctx.Quit != nil {
		s.ctx.Quit()
	}
	return nil
}

// HandleInput toggles the projection on P. Driving reads held keys each step.
func (s *Racing) HandleInput(e input.Event) error {
	if e.Type == input.EventKeyDown && e.Key == input.KeyP {
		s.ctx.Camera.ToggleProjection()
	}
	return nil
}

func (s *Racing) follow() {
	p := s.session.Car.Pose()
	cam := s.ctx.Config.Camera
	s.ctx.Camera.Follow(p.Position.X, p.Position.Y, p.Angle, cam.FollowDistance, cam.FollowHeight)
}
