// Package physics exposes the 2D rigid-body simulation through the small set
// of operations the game needs, so the engine behind it can be swapped.
package physics

import (
	"errors"
	"time"

	"github.com/Faultbox/minirace/pkg/math"
)

var (
	// ErrUnknownBody is returned when a named body does not exist.
	ErrUnknownBody = errors.New("unknown body")
	// ErrUnknownZone is returned when a named sensor zone does not exist.
	ErrUnknownZone = errors.New("unknown zone")
	// ErrDuplicateName is returned when a body or zone name is taken.
	ErrDuplicateName = errors.New("duplicate physics name")
)

// Pose is the state of a body the renderer reads each frame.
// Position is on the ground plane; Angle is counter-clockwise in radians.
type Pose struct {
	Position       math.Vec2
	Angle          float32
	LinearVelocity math.Vec2
}

// Speed returns the magnitude of the linear velocity.
func (p Pose) Speed() float32 {
	return p.LinearVelocity.Length()
}

// Heading returns the unit vector the body faces.
func (p Pose) Heading() math.Vec2 {
	return math.Heading(p.Angle)
}

// Body is a simulated rigid body.
type Body interface {
	Pose() Pose
	// ApplyForce pushes the body at its center of mass until the next step.
	ApplyForce(f math.Vec2)
	ApplyTorque(t float32)
	// Reset teleports the body and stops it.
	Reset(position math.Vec2, angle float32)
}

// World advances the simulation and resolves bodies by name.
type World interface {
	// Step advances the simulation by dt and clears accumulated forces.
	Step(dt time.Duration)
	Body(name string) (Body, error)
	// InZone reports whether p lies inside the named sensor zone.
	InZone(zone string, p math.Vec2) (bool, error)
}
