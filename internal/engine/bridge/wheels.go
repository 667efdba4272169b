package bridge

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/minirace/internal/engine/physics"
	"github.com/Faultbox/minirace/internal/engine/scenegraph"
)

// WheelSpinner rolls wheel nodes about their Z axis in proportion to the
// body's linear speed. The spin is visual only and never reaches physics.
type WheelSpinner struct {
	Body   physics.Body
	Nodes  []string
	Radius float32
}

// Spin advances every wheel by speed*dt/radius radians. Moving backwards
// along the heading spins the wheels the other way.
func (s *WheelSpinner) Spin(g Graph, dt time.Duration) error {
	if s.Radius <= 0 {
		return nil
	}
	pose := s.Body.Pose()
	speed := pose.LinearVelocity.Dot(pose.Heading())
	delta := speed * float32(dt.Seconds()) / s.Radius
	if delta == 0 {
		return nil
	}
	for _, n := range s.Nodes {
		err := g.Update(n, func(a *scenegraph.Attrs) {
			a.Rotation.Z = math32.Mod(a.Rotation.Z+delta, 2*math32.Pi)
		})
		if err != nil {
			return fmt.Errorf("spin %q: %w", n, err)
		}
	}
	return nil
}
