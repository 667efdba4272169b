package physics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/minirace/pkg/math"
)

const step = time.Second / 60

func newWorld(t *testing.T) *Box2DWorld {
	t.Helper()
	w := NewBox2DWorld(DefaultSettings())
	_, err := w.AddCar("car", math.Vec2{X: 2, Y: 0}, 0, 0.5)
	require.NoError(t, err)
	return w
}

func TestBodyLookup(t *testing.T) {
	w := newWorld(t)

	b, err := w.Body("car")
	require.NoError(t, err)
	pose := b.Pose()
	require.InDelta(t, 2, pose.Position.X, 1e-6)
	require.InDelta(t, 0, pose.Position.Y, 1e-6)
	require.Zero(t, pose.Angle)
	require.Zero(t, pose.Speed())

	_, err = w.Body("ghost")
	require.ErrorIs(t, err, ErrUnknownBody)

	_, err = w.AddCar("car", math.Vec2{}, 0, 0.5)
	require.ErrorIs(t, err, ErrDuplicateName)
	require.ErrorIs(t, w.AddWall("car", math.Vec2{}, 1, 1), ErrDuplicateName)
}

func TestForceMovesBody(t *testing.T) {
	w := newWorld(t)
	b, err := w.Body("car")
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		b.ApplyForce(math.Vec2{Y: 10})
		w.Step(step)
	}
	pose := b.Pose()
	require.Greater(t, pose.Position.Y, float32(0))
	require.InDelta(t, 2, pose.Position.X, 1e-3)
	require.Greater(t, pose.LinearVelocity.Y, float32(0))
}

func TestForcesClearedAfterStep(t *testing.T) {
	w := newWorld(t)
	b, err := w.Body("car")
	require.NoError(t, err)

	b.ApplyForce(math.Vec2{X: 10})
	w.Step(step)
	v1 := b.Pose().LinearVelocity.X
	w.Step(step)
	v2 := b.Pose().LinearVelocity.X

	// Damping only slows the body once the force is gone.
	require.Greater(t, v1, float32(0))
	require.LessOrEqual(t, v2, v1)
}

func TestTorqueRotatesBody(t *testing.T) {
	w := newWorld(t)
	b, err := w.Body("car")
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		b.ApplyTorque(5)
		w.Step(step)
	}
	require.Greater(t, b.Pose().Angle, float32(0))
}

func TestReset(t *testing.T) {
	w := newWorld(t)
	b, err := w.Body("car")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		b.ApplyForce(math.Vec2{X: 10, Y: 10})
		b.ApplyTorque(1)
		w.Step(step)
	}
	b.Reset(math.Vec2{X: 0, Y: -5}, 0)

	pose := b.Pose()
	require.InDelta(t, 0, pose.Position.X, 1e-6)
	require.InDelta(t, -5, pose.Position.Y, 1e-6)
	require.Zero(t, pose.Angle)
	require.Zero(t, pose.Speed())
}

func TestWallStopsCar(t *testing.T) {
	w := NewBox2DWorld(DefaultSettings())
	require.NoError(t, w.AddWall("wall", math.Vec2{X: 0, Y: 3}, 5, 0.5))
	b, err := w.AddCar("car", math.Vec2{}, 0, 0.5)
	require.NoError(t, err)

	for i := 0; i < 600; i++ {
		b.ApplyForce(math.Vec2{Y: 50})
		w.Step(step)
	}
	// The car's front edge cannot pass the wall's near face at y=2.5.
	require.Less(t, b.Pose().Position.Y, float32(2.1))
}

func TestZones(t *testing.T) {
	w := NewBox2DWorld(DefaultSettings())
	require.NoError(t, w.AddZone("goal", math.Vec2{X: 0, Y: 8}, 1))
	require.ErrorIs(t, w.AddZone("goal", math.Vec2{}, 1), ErrDuplicateName)

	in, err := w.InZone("goal", math.Vec2{X: 0.5, Y: 8.5})
	require.NoError(t, err)
	require.True(t, in)

	in, err = w.InZone("goal", math.Vec2{X: 0, Y: 6})
	require.NoError(t, err)
	require.False(t, in)

	_, err = w.InZone("start", math.Vec2{})
	require.ErrorIs(t, err, ErrUnknownZone)
}

func TestPoseHeading(t *testing.T) {
	p := Pose{Angle: 0, LinearVelocity: math.Vec2{X: 3, Y: 4}}
	require.InDelta(t, 5, p.Speed(), 1e-6)
	h := p.Heading()
	require.InDelta(t, 0, h.X, 1e-6)
	require.InDelta(t, 1, h.Y, 1e-6)
}
