// Package race holds the driving rules: key-to-force mapping, arena layout
// and the win check, kept apart from rendering so they run headless.
package race

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/minirace/internal/config"
	"github.com/Faultbox/minirace/internal/engine/bridge"
	"github.com/Faultbox/minirace/internal/engine/input"
	"github.com/Faultbox/minirace/internal/engine/physics"
	"github.com/Faultbox/minirace/internal/logger"
	"github.com/Faultbox/minirace/pkg/math"
)

// Names used for the race bodies and zone.
const (
	PlayerBody = "player"
	GoalZone   = "goal"
)

// Keys reports keyboard state.
type Keys interface {
	Held(k input.Key) bool
	Pressed(k input.Key) bool
}

// Controls is the tuning of the player's car.
type Controls struct {
	Force         float32
	Torque        float32
	ResetPosition math.Vec2
	ResetAngle    float32
}

// ControlsFrom reads controls from the race config.
func ControlsFrom(cfg config.RaceConfig) Controls {
	return Controls{
		Force:         cfg.Force,
		Torque:        cfg.Torque,
		ResetPosition: math.Vec2{X: cfg.Reset[0], Y: cfg.Reset[1]},
		ResetAngle:    cfg.ResetAngle,
	}
}

// Drive applies the held keys to body: W and S push along the heading,
// A and D turn. SPACE puts the car back at the reset point and reports true.
func Drive(body physics.Body, keys Keys, c Controls) bool {
	if keys.Pressed(input.KeySpace) {
		body.Reset(c.ResetPosition, c.ResetAngle)
		return true
	}

	heading := body.Pose().Heading()
	if keys.Held(input.KeyW) {
		body.ApplyForce(heading.Scale(c.Force))
	}
	if keys.Held(input.KeyS) {
		body.ApplyForce(heading.Scale(-c.Force))
	}
	if keys.Held(input.KeyA) {
		body.ApplyTorque(-c.Torque)
	}
	if keys.Held(input.KeyD) {
		body.ApplyTorque(c.Torque)
	}
	return false
}

// Walls returns the centers and half extents of the four arena walls.
func Walls(cfg config.RaceConfig) []Wall {
	h, t := cfg.ArenaHalfSize, cfg.WallThickness
	return []Wall{
		{Name: "wall_west", Center: math.Vec2{X: -h}, HalfWidth: t, HalfHeight: h},
		{Name: "wall_east", Center: math.Vec2{X: h}, HalfWidth: t, HalfHeight: h},
		{Name: "wall_south", Center: math.Vec2{Y: -h}, HalfWidth: h, HalfHeight: t},
		{Name: "wall_north", Center: math.Vec2{Y: h}, HalfWidth: h, HalfHeight: t},
	}
}

// Wall is a static box on the physics plane.
type Wall struct {
	Name       string
	Center     math.Vec2
	HalfWidth  float32
	HalfHeight float32
}

// Arena is the physics side of a race world.
type Arena interface {
	physics.World
	AddWall(name string, center math.Vec2, halfWidth, halfHeight float32) error
	AddCar(name string, position math.Vec2, angle, halfSize float32) (physics.Body, error)
	AddZone(name string, center math.Vec2, radius float32) error
}

// carHalfSize is the half side of the square car body.
const carHalfSize = 0.5

// BuildArena adds walls, the player car and the goal zone to w.
func BuildArena(w Arena, cfg config.RaceConfig) (physics.Body, error) {
	for _, wall := range Walls(cfg) {
		if err := w.AddWall(wall.Name, wall.Center, wall.HalfWidth, wall.HalfHeight); err != nil {
			return nil, fmt.Errorf("build arena: %w", err)
		}
	}
	body, err := w.AddCar(PlayerBody, math.Vec2{X: cfg.Start[0], Y: cfg.Start[1]}, 0, carHalfSize)
	if err != nil {
		return nil, fmt.Errorf("build arena: %w", err)
	}
	goal := math.Vec2{X: cfg.WinZone[0], Y: cfg.WinZone[1]}
	if err := w.AddZone(GoalZone, goal, cfg.WinRadius); err != nil {
		return nil, fmt.Errorf("build arena: %w", err)
	}
	return body, nil
}

// Session runs one race: input, physics step and graph sync, in that order.
type Session struct {
	World    physics.World
	Car      physics.Body
	Bridge   *bridge.Bridge
	Controls Controls

	won    bool
	resets int
	log    *zap.Logger
}

// NewSession creates a session driving car in world.
func NewSession(world physics.World, car physics.Body, b *bridge.Bridge, c Controls) *Session {
	return &Session{
		World:    world,
		Car:      car,
		Bridge:   b,
		Controls: c,
		log:      logger.Named("race"),
	}
}

// Update advances the race by one fixed step and reports whether the car
// has reached the goal. The graph holds the new poses when it returns.
func (s *Session) Update(g bridge.Graph, keys Keys, dt time.Duration) (bool, error) {
	if Drive(s.Car, keys, s.Controls) {
		s.resets++
		s.log.Info("car reset", zap.Int("resets", s.resets))
	}

	s.World.Step(dt)

	if err := s.Bridge.Sync(g, dt); err != nil {
		return s.won, err
	}

	if s.won {
		return true, nil
	}
	in, err := s.World.InZone(GoalZone, s.Car.Pose().Position)
	if err != nil {
		return false, err
	}
	if in {
		s.won = true
		s.log.Info("you win", zap.Int("resets", s.resets))
	}
	return s.won, nil
}

// Won reports whether the goal has been reached.
func (s *Session) Won() bool { return s.won }
