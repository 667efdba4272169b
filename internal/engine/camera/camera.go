// Package camera provides the free and chase cameras used by the game scenes.
package camera

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/minirace/pkg/math"
)

// Kind selects the projection type.
type Kind int

const (
	Perspective Kind = iota
	Orthographic
)

// ParseKind maps "perspective" or "orthographic" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "perspective":
		return Perspective, nil
	case "orthographic":
		return Orthographic, nil
	default:
		return Perspective, fmt.Errorf("unknown projection %q", s)
	}
}

// String returns the projection name.
func (k Kind) String() string {
	if k == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// Lens describes the projection of a camera.
type Lens struct {
	Kind   Kind
	FOV    float32 // vertical, degrees
	Aspect float32 // width / height
	Near   float32
	Far    float32
	// HalfHeight is the half extent of the orthographic view volume.
	HalfHeight float32
}

// Matrix builds the projection matrix for the lens.
func (l Lens) Matrix() (math.Mat4, error) {
	if l.Kind == Orthographic {
		h := l.HalfHeight
		w := h * l.Aspect
		return math.Ortho(-w, w, -h, h, l.Near, l.Far)
	}
	return math.Perspective(l.FOV, l.Aspect, l.Near, l.Far)
}

// maxPitch keeps the view direction off the up axis so LookAt stays defined.
const maxPitch = math32.Pi/2 - 0.01

var up = math.Vec3{X: 0, Y: 1, Z: 0}

// FreeCamera looks from Position along the direction given by Yaw and Pitch.
// Call Update after changing any field; View and Projection return the
// matrices computed by the last successful Update.
type FreeCamera struct {
	Position math.Vec3
	Yaw      float32 // radians, 0 looks along +X
	Pitch    float32 // radians, positive looks up
	Lens     Lens

	DragSensitivity float32

	view math.Mat4
	proj math.Mat4
}

// NewFreeCamera creates a camera at position with the given lens.
func NewFreeCamera(position math.Vec3, lens Lens) *FreeCamera {
	return &FreeCamera{
		Position:        position,
		Lens:            lens,
		DragSensitivity: 0.01,
		view:            math.Identity(),
		proj:            math.Identity(),
	}
}

// Forward returns the unit view direction.
func (c *FreeCamera) Forward() math.Vec3 {
	sy, cy := math32.Sincos(c.Yaw)
	sp, cp := math32.Sincos(c.Pitch)
	return math.Vec3{X: cy * cp, Y: sp, Z: sy * cp}
}

// Right returns the unit vector to the camera's right on the ground plane.
func (c *FreeCamera) Right() math.Vec3 {
	return c.Forward().Cross(up).Normalize()
}

// Update recomputes the view and projection matrices. On error the previous
// matrices are kept.
func (c *FreeCamera) Update() error {
	view, err := math.LookAt(c.Position, c.Position.Add(c.Forward()), up)
	if err != nil {
		return fmt.Errorf("camera view: %w", err)
	}
	proj, err := c.Lens.Matrix()
	if err != nil {
		return fmt.Errorf("camera projection: %w", err)
	}
	c.view, c.proj = view, proj
	return nil
}

// View returns the view matrix.
func (c *FreeCamera) View() math.Mat4 { return c.view }

// Projection returns the projection matrix.
func (c *FreeCamera) Projection() math.Mat4 { return c.proj }

// Eye returns the camera position for lighting.
func (c *FreeCamera) Eye() math.Vec3 { return c.Position }

// HandleDrag turns the camera by a mouse drag delta in pixels.
func (c *FreeCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.DragSensitivity
	c.Pitch -= deltaY * c.DragSensitivity
	c.Pitch = clamp(c.Pitch, -maxPitch, maxPitch)
}

// HandleMovement moves along the view direction and to the right, scaled by distance.
func (c *FreeCamera) HandleMovement(forward, right, distance float32) {
	c.Position = c.Position.
		Add(c.Forward().Scale(forward * distance)).
		Add(c.Right().Scale(right * distance))
}

// Resize updates the lens aspect ratio for a new framebuffer size.
func (c *FreeCamera) Resize(width, height int) {
	if width > 0 && height > 0 {
		c.Lens.Aspect = float32(width) / float32(height)
	}
}

// ToggleProjection switches between perspective and orthographic.
func (c *FreeCamera) ToggleProjection() {
	if c.Lens.Kind == Perspective {
		c.Lens.Kind = Orthographic
	} else {
		c.Lens.Kind = Perspective
	}
}

// Follow places the camera Distance behind and Height above a body at
// (x, y) on the physics plane facing angle, looking along its heading.
func (c *FreeCamera) Follow(x, y, angle, distance, height float32) {
	s, co := math32.Sincos(angle)
	c.Position = math.Vec3{X: x + distance*s, Y: height, Z: y - distance*co}
	c.Yaw = angle + math32.Pi/2
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
