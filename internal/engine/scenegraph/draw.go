package scenegraph

import (
	"fmt"

	"github.com/Faultbox/minirace/pkg/math"
)

// Uniform names written by Draw.
const (
	UniformModel      = "u_model"
	UniformView       = "u_view"
	UniformProjection = "u_projection"
	UniformViewPos    = "u_viewPos"
	UniformColor      = "u_color"
)

// Draw traverses the graph once in pre-order and submits every drawable node.
//
// A drawable node binds its pipeline, receives camera, model, material and
// color uniforms the pipeline declares, then draws its mesh. A light node
// writes its uniforms into its own pipeline, or into the pipeline bound at
// that point of the traversal. Lights are not scoped to a subtree: the last
// light of each kind visited wins for every object drawn with that pipeline.
func (g *Graph) Draw(cam Camera) error {
	view, proj := math.Identity(), math.Identity()
	var eye math.Vec3
	var hasEye bool
	var bound Pipeline
	if cam != nil {
		view, proj = cam.View(), cam.Projection()
		if v, ok := cam.(Viewer); ok {
			eye, hasEye = v.Eye(), true
		}
	}

	err := g.traverse(func(name string, a *Attrs, world math.Mat4) error {
		if a.Light != nil {
			target := bound
			if a.Pipeline != nil {
				a.Pipeline.Use()
				target = a.Pipeline
				bound = target
			}
			if target != nil {
				a.Light.Upload(target, world)
			}
		}

		d := a.Drawable
		if d == nil {
			return nil
		}
		p := d.Pipeline
		p.Use()
		bound = p

		if cam != nil {
			setMat4(p, UniformView, view)
			setMat4(p, UniformProjection, proj)
			if hasEye {
				setVec3(p, UniformViewPos, eye)
			}
		}
		setMat4(p, UniformModel, world)
		if a.Material != nil {
			a.Material.Upload(p)
		}
		setVec3(p, UniformColor, a.Color)

		d.Mesh.Draw(a.DrawMode)
		return nil
	})
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}

func setMat4(p Pipeline, name string, m math.Mat4) {
	if p.HasUniform(name) {
		p.SetMat4(name, m)
	}
}

func setVec3(p Pipeline, name string, v math.Vec3) {
	if p.HasUniform(name) {
		p.SetVec3(name, v)
	}
}
