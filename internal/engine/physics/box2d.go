package physics

import (
	"fmt"
	"time"

	"github.com/ByteArena/box2d"
	"go.uber.org/zap"

	"github.com/Faultbox/minirace/internal/logger"
	"github.com/Faultbox/minirace/pkg/math"
)

// Settings tune the Box2D solver and the bodies created through it.
type Settings struct {
	VelocityIterations int
	PositionIterations int
	LinearDamping      float32
	AngularDamping     float32
	Density            float32
	Friction           float32
}

// DefaultSettings returns the solver settings used by the race.
func DefaultSettings() Settings {
	return Settings{
		VelocityIterations: 6,
		PositionIterations: 2,
		LinearDamping:      0.75,
		AngularDamping:     0.5,
		Density:            5,
		Friction:           1,
	}
}

// Box2DWorld is a World backed by a zero-gravity Box2D world seen from above.
type Box2DWorld struct {
	world    box2d.B2World
	settings Settings
	bodies   map[string]*box2dBody
	zones    map[string]*box2d.B2Fixture
	log      *zap.Logger
}

// NewBox2DWorld creates an empty top-down world.
func NewBox2DWorld(s Settings) *Box2DWorld {
	return &Box2DWorld{
		world:    box2d.MakeB2World(box2d.MakeB2Vec2(0, 0)),
		settings: s,
		bodies:   make(map[string]*box2dBody),
		zones:    make(map[string]*box2d.B2Fixture),
		log:      logger.Named("physics"),
	}
}

// AddWall creates a static box centered at center with the given half extents.
func (w *Box2DWorld) AddWall(name string, center math.Vec2, halfWidth, halfHeight float32) error {
	if err := w.checkName(name); err != nil {
		return err
	}
	def := box2d.MakeB2BodyDef()
	def.Type = box2d.B2BodyType.B2_staticBody
	def.Position = vec(center)
	body := w.world.CreateBody(&def)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(float64(halfWidth), float64(halfHeight))
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = 1
	fd.Friction = float64(w.settings.Friction)
	body.CreateFixtureFromDef(&fd)

	w.bodies[name] = &box2dBody{body: body}
	w.log.Debug("wall added", zap.String("name", name),
		zap.Float32("x", center.X), zap.Float32("y", center.Y))
	return nil
}

// AddCar creates a dynamic square body with the configured damping and density.
func (w *Box2DWorld) AddCar(name string, position math.Vec2, angle, halfSize float32) (Body, error) {
	if err := w.checkName(name); err != nil {
		return nil, err
	}
	def := box2d.MakeB2BodyDef()
	def.Type = box2d.B2BodyType.B2_dynamicBody
	def.Position = vec(position)
	def.Angle = float64(angle)
	def.LinearDamping = float64(w.settings.LinearDamping)
	def.AngularDamping = float64(w.settings.AngularDamping)
	body := w.world.CreateBody(&def)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(float64(halfSize), float64(halfSize))
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = float64(w.settings.Density)
	fd.Friction = float64(w.settings.Friction)
	body.CreateFixtureFromDef(&fd)

	b := &box2dBody{body: body}
	w.bodies[name] = b
	w.log.Debug("car added", zap.String("name", name),
		zap.Float32("x", position.X), zap.Float32("y", position.Y))
	return b, nil
}

// AddZone creates a circular sensor that detects points but never collides.
func (w *Box2DWorld) AddZone(name string, center math.Vec2, radius float32) error {
	if _, ok := w.zones[name]; ok {
		return fmt.Errorf("zone %q: %w", name, ErrDuplicateName)
	}
	def := box2d.MakeB2BodyDef()
	def.Type = box2d.B2BodyType.B2_staticBody
	def.Position = vec(center)
	body := w.world.CreateBody(&def)

	shape := box2d.MakeB2CircleShape()
	shape.M_radius = float64(radius)
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.IsSensor = true
	w.zones[name] = body.CreateFixtureFromDef(&fd)
	return nil
}

// Step advances the world by dt and clears forces applied since the last step.
func (w *Box2DWorld) Step(dt time.Duration) {
	w.world.Step(dt.Seconds(), w.settings.VelocityIterations, w.settings.PositionIterations)
	w.world.ClearForces()
}

// Body returns the named body.
func (w *Box2DWorld) Body(name string) (Body, error) {
	b, ok := w.bodies[name]
	if !ok {
		return nil, fmt.Errorf("body %q: %w", name, ErrUnknownBody)
	}
	return b, nil
}

// InZone reports whether p lies inside the named sensor.
func (w *Box2DWorld) InZone(zone string, p math.Vec2) (bool, error) {
	f, ok := w.zones[zone]
	if !ok {
		return false, fmt.Errorf("zone %q: %w", zone, ErrUnknownZone)
	}
	return f.TestPoint(vec(p)), nil
}

func (w *Box2DWorld) checkName(name string) error {
	if _, ok := w.bodies[name]; ok {
		return fmt.Errorf("body %q: %w", name, ErrDuplicateName)
	}
	return nil
}

type box2dBody struct {
	body *box2d.B2Body
}

func (b *box2dBody) Pose() Pose {
	return Pose{
		Position:       vec2(b.body.GetPosition()),
		Angle:          float32(b.body.GetAngle()),
		LinearVelocity: vec2(b.body.GetLinearVelocity()),
	}
}

func (b *box2dBody) ApplyForce(f math.Vec2) {
	b.body.ApplyForce(vec(f), b.body.GetWorldCenter(), true)
}

func (b *box2dBody) ApplyTorque(t float32) {
	b.body.ApplyTorque(float64(t), true)
}

func (b *box2dBody) Reset(position math.Vec2, angle float32) {
	b.body.SetTransform(vec(position), float64(angle))
	b.body.SetLinearVelocity(box2d.MakeB2Vec2(0, 0))
	b.body.SetAngularVelocity(0)
	b.body.SetAwake(true)
}

func vec(v math.Vec2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(float64(v.X), float64(v.Y))
}

func vec2(v box2d.B2Vec2) math.Vec2 {
	return math.Vec2{X: float32(v.X), Y: float32(v.Y)}
}
