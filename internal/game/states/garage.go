package states

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/minirace/internal/engine/input"
	"github.com/Faultbox/minirace/internal/engine/lighting"
	"github.com/Faultbox/minirace/internal/engine/material"
	"github.com/Faultbox/minirace/internal/engine/mesh"
	"github.com/Faultbox/minirace/internal/engine/scenegraph"
	"github.com/Faultbox/minirace/pkg/math"
)

// GarageRoot is the pivot every garage node hangs from.
const GarageRoot = "garage"

// Garage shows every configured car on its own turntable and lets the
// player pick one.
type Garage struct {
	ctx      *Context
	selected int
	cars     []Car
}

// NewGarage creates the garage scene with the configured car selected.
func NewGarage(ctx *Context) *Garage {
	return &Garage{ctx: ctx, selected: ctx.Config.Garage.Selected}
}

// Selected returns the index of the highlighted car.
func (s *Garage) Selected() int { return s.selected }

func systemName(i int) string   { return fmt.Sprintf("car_system_%d", i) }
func platformName(i int) string { return fmt.Sprintf("platform_%d", i) }
func carName(i int) string      { return fmt.Sprintf("car_%d", i) }

// slotX spreads cars along X: 2, -2, 6, -6, ...
func slotX(i int) float32 {
	x := float32(2 + 4*(i/2))
	if i%2 == 1 {
		return -x
	}
	return x
}

// Enter builds the garage subtree.
func (s *Garage) Enter() error {
	g := s.ctx.Graph
	if err := g.AddNode(GarageRoot); err != nil {
		return err
	}

	platformMesh := s.ctx.Meshes.Shape("disc", func() *mesh.Data { return mesh.Disc(48) })
	obsidian, _ := material.Lookup("obsidian")
	spot := lighting.SpotLight{
		Colors: lighting.Colors{
			Diffuse:  math.Vec3{X: 1, Y: 1, Z: 1},
			Specular: math.Vec3{X: 1, Y: 1, Z: 1},
			Ambient:  math.Vec3{X: 0.05, Y: 0.05, Z: 0.05},
		},
		Attenuation: lighting.Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032},
		CutOff:      0.91,
		OuterCutOff: 0.82,
	}

	s.cars = s.cars[:0]
	for i, car := range s.ctx.Config.Garage.Cars {
		system := systemName(i)
		if err := g.AddNode(system, scenegraph.WithParent(GarageRoot), scenegraph.WithPosition(slotX(i), 0, 0)); err != nil {
			return err
		}
		if err := g.AddNode(platformName(i),
			scenegraph.WithParent(system),
			scenegraph.WithPosition(0, -0.2, 0),
			scenegraph.WithScale(1.2, 1, 1.2),
			scenegraph.WithDrawable(platformMesh, s.ctx.Lit),
			scenegraph.WithMaterial(obsidian),
		); err != nil {
			return err
		}
		if err := g.AddNode(fmt.Sprintf("spotlight_%d", i),
			scenegraph.WithParent(system),
			scenegraph.WithPosition(0, 3, 0),
			scenegraph.WithRotation(-math32.Pi/2, 0, 0),
			scenegraph.WithLight(spot),
			scenegraph.WithPipeline(s.ctx.Lit),
		); err != nil {
			return err
		}
		c, err := buildCar(s.ctx, carName(i), platformName(i), car, scenegraph.WithPosition(0, 0.51, 0))
		if err != nil {
			return fmt.Errorf("car %s: %w", car.Name, err)
		}
		s.cars = append(s.cars, c)
	}

	if s.selected < 0 || s.selected >= len(s.cars) {
		s.selected = 0
	}
	s.focus()
	s.ctx.Log.Info("garage ready", zap.Int("cars", len(s.cars)), zap.Int("selected", s.selected))
	return nil
}

// Exit removes the garage subtree.
func (s *Garage) Exit() error {
	return s.ctx.Graph.RemoveNode(GarageRoot)
}

// Update turns the selected platform and flies the camera with WASD.
func (s *Garage) Update(dt time.Duration) error {
	keys := s.ctx.Keys
	move := s.ctx.Config.Camera.MoveSpeed * float32(dt.Seconds())
	s.ctx.Camera.HandleMovement(axis(keys.Held(input.KeyW), keys.Held(input.KeyS)), axis(keys.Held(input.KeyD), keys.Held(input.KeyA)), move)

	spin := s.ctx.Config.Garage.SpinSpeed * float32(dt.Seconds())
	err := s.ctx.Graph.Update(platformName(s.selected), func(a *scenegraph.Attrs) {
		a.Rotation.Y = math32.Mod(a.Rotation.Y+spin, 2*math32.Pi)
	})
	if err != nil {
		return err
	}
	return s.ctx.Camera.Update()
}

// HandleInput reacts to menu keys and turns the camera on right-button drags.
func (s *Garage) HandleInput(e input.Event) error {
	switch e.Type {
	case input.EventMouseDrag:
		s.ctx.Camera.HandleDrag(float32(e.DX), float32(e.DY))
	case input.EventKeyDown:
		s.handleKey(e.Key)
	}
	return nil
}

func (s *Garage) handleKey(k input.Key) {
	n := len(s.cars)
	if n == 0 {
		return
	}
	switch k {
	case input.KeyRight:
		s.selected = (s.selected + 1) % n
		s.focus()
	case input.KeyLeft:
		s.selected = (s.selected + n - 1) % n
		s.focus()
	case input.KeyP:
		s.ctx.Camera.ToggleProjection()
		s.ctx.Log.Debug("projection", zap.Stringer("kind", s.ctx.Camera.Lens.Kind))
	case input.KeyEnter:
		car := s.ctx.Config.Garage.Cars[s.selected]
		s.ctx.Log.Info("starting race", zap.String("car", car.Name))
		s.ctx.States.Change(NewRacing(s.ctx, car))
	}
}

func axis(pos, neg bool) float32 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}

// focus points the camera at the selected car from above and in front.
func (s *Garage) focus() {
	cam := s.ctx.Camera
	cam.Position = math.Vec3{X: slotX(s.selected), Y: 1.5, Z: 2}
	cam.Yaw = -math32.Pi / 2
	cam.Pitch = -math32.Pi / 4
}
