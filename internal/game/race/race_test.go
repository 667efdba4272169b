package race

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/minirace/internal/config"
	"github.com/Faultbox/minirace/internal/engine/bridge"
	"github.com/Faultbox/minirace/internal/engine/input"
	"github.com/Faultbox/minirace/internal/engine/physics"
	"github.com/Faultbox/minirace/internal/engine/scenegraph"
	"github.com/Faultbox/minirace/pkg/math"
)

const step = time.Second / 60

type keys struct {
	held    map[input.Key]bool
	pressed map[input.Key]bool
}

func hold(ks ...input.Key) keys {
	k := keys{held: map[input.Key]bool{}, pressed: map[input.Key]bool{}}
	for _, key := range ks {
		k.held[key] = true
	}
	return k
}

func (k keys) Held(key input.Key) bool    { return k.held[key] }
func (k keys) Pressed(key input.Key) bool { return k.pressed[key] }

type mockBody struct {
	pose    physics.Pose
	forces  []math.Vec2
	torques []float32
	log     *[]string
}

func (b *mockBody) Pose() physics.Pose { return b.pose }

func (b *mockBody) ApplyForce(f math.Vec2) {
	b.forces = append(b.forces, f)
	b.record("force")
}

func (b *mockBody) ApplyTorque(t float32) {
	b.torques = append(b.torques, t)
	b.record("torque")
}

func (b *mockBody) Reset(p math.Vec2, angle float32) {
	b.pose = physics.Pose{Position: p, Angle: angle}
	b.record("reset")
}

func (b *mockBody) record(s string) {
	if b.log != nil {
		*b.log = append(*b.log, s)
	}
}

// mockWorld moves the body by its velocity each step.
type mockWorld struct {
	body  *mockBody
	zone  math.Vec2
	steps int
	log   *[]string
}

func (w *mockWorld) Step(dt time.Duration) {
	w.steps++
	w.body.pose.Position = w.body.pose.Position.Add(w.body.pose.LinearVelocity.Scale(float32(dt.Seconds())))
	*w.log = append(*w.log, "step")
}

func (w *mockWorld) Body(name string) (physics.Body, error) { return w.body, nil }

func (w *mockWorld) InZone(zone string, p math.Vec2) (bool, error) {
	if zone != GoalZone {
		return false, physics.ErrUnknownZone
	}
	return p.Sub(w.zone).Length() <= 1.5, nil
}

type recordingGraph struct {
	*scenegraph.Graph
	log *[]string
}

func (g recordingGraph) SetTransform(name string, m math.Mat4) error {
	*g.log = append(*g.log, "sync")
	return g.Graph.SetTransform(name, m)
}

func TestDriveForward(t *testing.T) {
	b := &mockBody{}
	c := Controls{Force: 2, Torque: 0.5}

	require.False(t, Drive(b, hold(input.KeyW), c))
	require.Len(t, b.forces, 1)
	require.InDelta(t, 0, b.forces[0].X, 1e-6)
	require.InDelta(t, 2, b.forces[0].Y, 1e-6)

	b.forces = nil
	Drive(b, hold(input.KeyS), c)
	require.InDelta(t, -2, b.forces[0].Y, 1e-6)
}

func TestDriveFollowsHeading(t *testing.T) {
	b := &mockBody{pose: physics.Pose{Angle: 0.7}}
	Drive(b, hold(input.KeyW), Controls{Force: 1})
	h := math.Heading(0.7)
	require.InDelta(t, h.X, b.forces[0].X, 1e-6)
	require.InDelta(t, h.Y, b.forces[0].Y, 1e-6)
}

func TestDriveTurns(t *testing.T) {
	b := &mockBody{}
	c := Controls{Torque: 0.5}
	Drive(b, hold(input.KeyA), c)
	Drive(b, hold(input.KeyD), c)
	Drive(b, hold(input.KeyA, input.KeyD), c)
	require.Equal(t, []float32{-0.5, 0.5, -0.5, 0.5}, b.torques)
	require.Empty(t, b.forces)
}

func TestDriveReset(t *testing.T) {
	b := &mockBody{pose: physics.Pose{Position: math.Vec2{X: 9, Y: 9}, Angle: 2, LinearVelocity: math.Vec2{X: 1}}}
	k := hold(input.KeyW)
	k.pressed[input.KeySpace] = true

	require.True(t, Drive(b, k, Controls{Force: 1, ResetPosition: math.Vec2{Y: -5}}))
	require.Equal(t, physics.Pose{Position: math.Vec2{Y: -5}}, b.pose)
	require.Empty(t, b.forces)
}

func TestControlsFrom(t *testing.T) {
	c := ControlsFrom(config.Default().Race)
	require.Equal(t, float32(1), c.Force)
	require.Equal(t, float32(0.5), c.Torque)
	require.Equal(t, math.Vec2{X: 0, Y: -5}, c.ResetPosition)
	require.Zero(t, c.ResetAngle)

	cfg := config.Default().Race
	cfg.ResetAngle = 1.25
	body := &mockBody{}
	k := hold()
	k.pressed[input.KeySpace] = true
	require.True(t, Drive(body, k, ControlsFrom(cfg)))
	require.Equal(t, float32(1.25), body.pose.Angle)
}

func TestWalls(t *testing.T) {
	walls := Walls(config.Default().Race)
	require.Len(t, walls, 4)
	require.Equal(t, Wall{Name: "wall_west", Center: math.Vec2{X: -20}, HalfWidth: 0.5, HalfHeight: 20}, walls[0])
	require.Equal(t, Wall{Name: "wall_north", Center: math.Vec2{Y: 20}, HalfWidth: 20, HalfHeight: 0.5}, walls[3])
}

func TestBuildArena(t *testing.T) {
	cfg := config.Default()
	w := physics.NewBox2DWorld(physics.DefaultSettings())

	car, err := BuildArena(w, cfg.Race)
	require.NoError(t, err)
	require.InDelta(t, 2, car.Pose().Position.X, 1e-6)

	for _, name := range []string{"wall_west", "wall_east", "wall_south", "wall_north", PlayerBody} {
		_, err := w.Body(name)
		require.NoError(t, err, name)
	}
	in, err := w.InZone(GoalZone, math.Vec2{X: 0, Y: 8})
	require.NoError(t, err)
	require.True(t, in)

	_, err = BuildArena(w, cfg.Race)
	require.ErrorIs(t, err, physics.ErrDuplicateName)
}

func TestSessionOrderAndWin(t *testing.T) {
	var log []string
	body := &mockBody{pose: physics.Pose{Position: math.Vec2{Y: 4}, LinearVelocity: math.Vec2{Y: 60}}, log: &log}
	world := &mockWorld{body: body, zone: math.Vec2{Y: 8}, log: &log}

	g := scenegraph.New()
	require.NoError(t, g.AddNode("player"))
	b := bridge.New()
	b.Bind(body, "player", bridge.DefaultHeadingOffset)

	s := NewSession(world, body, b, Controls{Force: 1})
	rg := recordingGraph{Graph: g, log: &log}

	won, err := s.Update(rg, hold(input.KeyW), step)
	require.NoError(t, err)
	require.False(t, won)
	require.Equal(t, []string{"force", "step", "sync"}, log)

	// The node shows the pose after the step, not before it.
	a, err := g.Get("player")
	require.NoError(t, err)
	require.InDelta(t, 5, a.Transform.Translation().Z, 1e-5)

	won, err = s.Update(rg, hold(), step)
	require.NoError(t, err)
	require.False(t, won)

	won, err = s.Update(rg, hold(), step)
	require.NoError(t, err)
	require.True(t, won)
	require.True(t, s.Won())

	// Once won, the race stays won even after leaving the zone.
	body.pose.Position = math.Vec2{}
	won, err = s.Update(rg, hold(), step)
	require.NoError(t, err)
	require.True(t, won)
	require.Equal(t, 4, world.steps)
}

func TestSessionReset(t *testing.T) {
	var log []string
	body := &mockBody{pose: physics.Pose{Position: math.Vec2{X: 3}}, log: &log}
	world := &mockWorld{body: body, zone: math.Vec2{Y: 100}, log: &log}
	s := NewSession(world, body, bridge.New(), Controls{ResetPosition: math.Vec2{Y: -5}})

	k := hold()
	k.pressed[input.KeySpace] = true
	_, err := s.Update(scenegraph.New(), k, step)
	require.NoError(t, err)
	require.Equal(t, []string{"reset", "step"}, log)
	require.Equal(t, 1, s.resets)
	require.Equal(t, math.Vec2{Y: -5}, body.pose.Position)
}

func TestSessionSyncError(t *testing.T) {
	var log []string
	body := &mockBody{}
	world := &mockWorld{body: body, log: &log}
	b := bridge.New()
	b.Bind(body, "missing", 0)
	s := NewSession(world, body, b, Controls{})

	_, err := s.Update(scenegraph.New(), hold(), step)
	require.ErrorIs(t, err, scenegraph.ErrUnknownNode)
}
