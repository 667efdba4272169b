// Package bridge copies rigid-body poses from the physics world into scene
// graph override transforms. Data only flows from physics to the graph.
package bridge

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/minirace/internal/engine/physics"
	"github.com/Faultbox/minirace/internal/engine/scenegraph"
	"github.com/Faultbox/minirace/pkg/math"
)

// DefaultHeadingOffset turns car meshes modelled along +X to face the body's +Y heading.
const DefaultHeadingOffset = math32.Pi / 2

// PoseTransform maps a body pose on the physics plane to a node override:
// Translate(x, 0, y) * RotateY(-angle + offset).
func PoseTransform(p physics.Pose, offset float32) math.Mat4 {
	return math.Translate(p.Position.X, 0, p.Position.Y).
		Mul(math.RotateY(-p.Angle + offset))
}

// Binding ties a physics body to the node that shows it.
type Binding struct {
	Body          physics.Body
	Node          string
	HeadingOffset float32
}

// Graph is the part of the scene graph the bridge writes to.
type Graph interface {
	SetTransform(name string, m math.Mat4) error
	Update(name string, fn func(*scenegraph.Attrs)) error
}

// Bridge holds the bindings synced every frame.
type Bridge struct {
	bindings []Binding
	spinners []*WheelSpinner
}

// New returns an empty bridge.
func New() *Bridge {
	return &Bridge{}
}

// Bind registers node to follow body.
func (b *Bridge) Bind(body physics.Body, node string, offset float32) {
	b.bindings = append(b.bindings, Binding{Body: body, Node: node, HeadingOffset: offset})
}

// AddSpinner registers a decorative wheel spinner advanced by Sync.
func (b *Bridge) AddSpinner(s *WheelSpinner) {
	b.spinners = append(b.spinners, s)
}

// Bindings returns the registered bindings.
func (b *Bridge) Bindings() []Binding {
	return b.bindings
}

// Clear drops every binding and spinner.
func (b *Bridge) Clear() {
	b.bindings = nil
	b.spinners = nil
}

// Sync writes each bound body's pose into its node, then spins wheels by dt.
// It must run after the physics step and before the graph is drawn.
func (b *Bridge) Sync(g Graph, dt time.Duration) error {
	for _, bd := range b.bindings {
		if err := g.SetTransform(bd.Node, PoseTransform(bd.Body.Pose(), bd.HeadingOffset)); err != nil {
			return fmt.Errorf("sync %q: %w", bd.Node, err)
		}
	}
	for _, s := range b.spinners {
		if err := s.Spin(g, dt); err != nil {
			return err
		}
	}
	return nil
}
