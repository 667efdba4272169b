// Package mesh builds vertex data from STL files and primitive shapes and
// uploads it to the GPU as scene graph drawables.
package mesh

import (
	"github.com/chewxy/math32"
)

// Vertex is the interleaved layout uploaded to the GPU: position then normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Extent returns the largest side of the box.
func (b Bounds) Extent() float32 {
	return math32.Max(b.Max[0]-b.Min[0], math32.Max(b.Max[1]-b.Min[1], b.Max[2]-b.Min[2]))
}

// Data is CPU-side indexed geometry.
type Data struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Triangles returns the number of indexed triangles.
func (d *Data) Triangles() int {
	return len(d.Indices) / 3
}

// ComputeBounds recalculates Bounds from the vertices.
func (d *Data) ComputeBounds() {
	if len(d.Vertices) == 0 {
		d.Bounds = Bounds{}
		return
	}
	b := Bounds{Min: d.Vertices[0].Position, Max: d.Vertices[0].Position}
	for _, v := range d.Vertices[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = math32.Min(b.Min[i], v.Position[i])
			b.Max[i] = math32.Max(b.Max[i], v.Position[i])
		}
	}
	d.Bounds = b
}

// Normalize centers the geometry on its bounding box and scales it so the
// largest side measures size.
func (d *Data) Normalize(size float32) {
	d.ComputeBounds()
	extent := d.Bounds.Extent()
	if extent == 0 {
		return
	}
	c := d.Bounds.Center()
	s := size / extent
	for i := range d.Vertices {
		p := &d.Vertices[i].Position
		for k := 0; k < 3; k++ {
			p[k] = (p[k] - c[k]) * s
		}
	}
	d.ComputeBounds()
}
