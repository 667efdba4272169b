package scenegraph

import (
	"github.com/Faultbox/minirace/internal/engine/lighting"
	"github.com/Faultbox/minirace/internal/engine/material"
	"github.com/Faultbox/minirace/pkg/math"
)

// DrawMode is the primitive topology used for a node's draw call.
type DrawMode int

const (
	Triangles DrawMode = iota
	Lines
	LineStrip
	Points
)

// String returns the mode name.
func (m DrawMode) String() string {
	switch m {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	case LineStrip:
		return "line_strip"
	case Points:
		return "points"
	default:
		return "unknown"
	}
}

// Mesh is an uploaded vertex buffer the graph can draw.
type Mesh interface {
	Draw(mode DrawMode)
}

// Pipeline is a shader program that accepts named uniform writes.
// Setters are only called for names HasUniform reports as declared.
type Pipeline interface {
	Use()
	HasUniform(name string) bool
	SetMat4(name string, m math.Mat4)
	SetVec3(name string, v math.Vec3)
	SetFloat(name string, v float32)
}

// Camera supplies the view and projection matrices for a frame.
type Camera interface {
	View() math.Mat4
	Projection() math.Mat4
}

// Viewer is implemented by cameras that can report their world position.
// Draw uses it to fill u_viewPos.
type Viewer interface {
	Eye() math.Vec3
}

// Drawable pairs a mesh with the pipeline it is rendered through.
type Drawable struct {
	Mesh     Mesh
	Pipeline Pipeline
}

// Attrs are the per-node attributes.
//
// Transform is an override composed in front of the parent's world
// transform, so physics can place a node without touching its local
// position, rotation or scale.
type Attrs struct {
	Position math.Vec3
	Rotation math.Vec3 // Euler radians, applied X then Y then Z
	Scale    math.Vec3

	Transform math.Mat4

	Drawable *Drawable
	Material *material.Material
	Light    lighting.Light
	// Pipeline receives the uniforms of a light node. When nil the light
	// writes into whichever pipeline is bound when it is visited.
	Pipeline Pipeline

	DrawMode DrawMode
	Color    math.Vec3
}

// DefaultAttrs returns attributes for an identity pivot node.
func DefaultAttrs() Attrs {
	return Attrs{
		Scale:     math.One(),
		Transform: math.Identity(),
		DrawMode:  Triangles,
		Color:     math.One(),
	}
}

// Local returns T * Rx * Ry * Rz * S for the node.
func (a Attrs) Local() math.Mat4 {
	return math.Compose(a.Position, a.Rotation, a.Scale)
}

// clone copies the material and drawable so no two Attrs share them.
func (a Attrs) clone() Attrs {
	if a.Material != nil {
		m := *a.Material
		a.Material = &m
	}
	if a.Drawable != nil {
		d := *a.Drawable
		a.Drawable = &d
	}
	return a
}

func (a Attrs) validate() bool {
	if a.Drawable != nil && (a.Drawable.Mesh == nil || a.Drawable.Pipeline == nil) {
		return false
	}
	return true
}

type addOptions struct {
	parent string
	attrs  Attrs
}

// Option configures a node created by AddNode.
type Option func(*addOptions)

// WithParent attaches the node under parent instead of the root.
func WithParent(parent string) Option {
	return func(o *addOptions) { o.parent = parent }
}

// WithPosition sets the local position.
func WithPosition(x, y, z float32) Option {
	return func(o *addOptions) { o.attrs.Position = math.Vec3{X: x, Y: y, Z: z} }
}

// WithRotation sets the local Euler rotation in radians.
func WithRotation(x, y, z float32) Option {
	return func(o *addOptions) { o.attrs.Rotation = math.Vec3{X: x, Y: y, Z: z} }
}

// WithScale sets the local scale.
func WithScale(x, y, z float32) Option {
	return func(o *addOptions) { o.attrs.Scale = math.Vec3{X: x, Y: y, Z: z} }
}

// WithTransform sets the override transform.
func WithTransform(m math.Mat4) Option {
	return func(o *addOptions) { o.attrs.Transform = m }
}

// WithDrawable makes the node render mesh through pipeline.
func WithDrawable(mesh Mesh, pipeline Pipeline) Option {
	return func(o *addOptions) { o.attrs.Drawable = &Drawable{Mesh: mesh, Pipeline: pipeline} }
}

// WithMaterial attaches a copy of m.
func WithMaterial(m material.Material) Option {
	return func(o *addOptions) { o.attrs.Material = &m }
}

// WithLight attaches a light.
func WithLight(l lighting.Light) Option {
	return func(o *addOptions) { o.attrs.Light = l }
}

// WithPipeline sets the pipeline a light node writes into.
func WithPipeline(p Pipeline) Option {
	return func(o *addOptions) { o.attrs.Pipeline = p }
}

// WithColor sets the flat fallback color.
func WithColor(r, g, b float32) Option {
	return func(o *addOptions) { o.attrs.Color = math.Vec3{X: r, Y: g, Z: b} }
}

// WithDrawMode sets the primitive topology.
func WithDrawMode(m DrawMode) Option {
	return func(o *addOptions) { o.attrs.DrawMode = m }
}

// WithAttrs replaces every attribute at once. Later options still apply.
func WithAttrs(a Attrs) Option {
	return func(o *addOptions) { o.attrs = a }
}
