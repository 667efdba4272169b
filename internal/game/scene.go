package game

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/minirace/internal/engine/lighting"
	"github.com/Faultbox/minirace/internal/engine/mesh"
	"github.com/Faultbox/minirace/internal/engine/scenegraph"
	"github.com/Faultbox/minirace/internal/game/states"
	"github.com/Faultbox/minirace/pkg/math"
)

// SunNode is the directional light shared by every scene.
const SunNode = "sun"

const axisLength = 3

// addFixtures adds the nodes that outlive scene changes: an axis gizmo at
// the origin and the sun.
func addFixtures(g *scenegraph.Graph, meshes states.MeshLoader, flat, lit scenegraph.Pipeline) error {
	axes := []struct {
		name    string
		r, g, b float32
	}{
		{"axis_x", 1, 0, 0},
		{"axis_y", 0, 1, 0},
		{"axis_z", 0, 0, 1},
	}
	for i, a := range axes {
		axis := i
		m := meshes.Shape(a.name, func() *mesh.Data { return mesh.Axis(axis) })
		if err := g.AddNode(a.name,
			scenegraph.WithScale(axisLength, axisLength, axisLength),
			scenegraph.WithDrawable(m, flat),
			scenegraph.WithDrawMode(scenegraph.Lines),
			scenegraph.WithColor(a.r, a.g, a.b),
		); err != nil {
			return err
		}
	}

	sun := lighting.DirectionalLight{Colors: lighting.Colors{
		Diffuse:  math.Vec3{X: 0.6, Y: 0.6, Z: 0.6},
		Specular: math.Vec3{X: 0.4, Y: 0.4, Z: 0.4},
		Ambient:  math.Vec3{X: 0.25, Y: 0.25, Z: 0.25},
	}}
	return g.AddNode(SunNode,
		scenegraph.WithRotation(-math32.Pi/4, 0, 0),
		scenegraph.WithLight(sun),
		scenegraph.WithPipeline(lit),
	)
}
