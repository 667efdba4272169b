package mesh

import (
	"github.com/chewxy/math32"
)

// Cube returns a unit cube centered on the origin with per-face normals.
func Cube() *Data {
	faces := []struct {
		normal [3]float32
		quad   [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	}
	d := &Data{}
	for _, f := range faces {
		d.addQuad(f.quad, f.normal)
	}
	d.ComputeBounds()
	return d
}

// Quad returns a unit square on the XZ plane facing +Y.
func Quad() *Data {
	d := &Data{}
	d.addQuad([4][3]float32{
		{-0.5, 0, 0.5}, {0.5, 0, 0.5}, {0.5, 0, -0.5}, {-0.5, 0, -0.5},
	}, [3]float32{0, 1, 0})
	d.ComputeBounds()
	return d
}

// Disc returns a unit-radius disc on the XZ plane facing +Y, as a triangle fan
// expanded into triangles.
func Disc(segments int) *Data {
	if segments < 3 {
		segments = 3
	}
	d := &Data{}
	up := [3]float32{0, 1, 0}
	d.Vertices = append(d.Vertices, Vertex{Normal: up})
	for i := 0; i < segments; i++ {
		s, c := math32.Sincos(2 * math32.Pi * float32(i) / float32(segments))
		d.Vertices = append(d.Vertices, Vertex{Position: [3]float32{c, 0, -s}, Normal: up})
	}
	for i := 1; i <= segments; i++ {
		next := uint32(i%segments + 1)
		d.Indices = append(d.Indices, 0, uint32(i), next)
	}
	d.ComputeBounds()
	return d
}

// Axis returns a unit line segment from the origin along axis 0 (X), 1 (Y) or 2 (Z).
// Draw it with the Lines mode.
func Axis(axis int) *Data {
	var end [3]float32
	end[axis%3] = 1
	d := &Data{
		Vertices: []Vertex{{}, {Position: end}},
		Indices:  []uint32{0, 1},
	}
	d.ComputeBounds()
	return d
}

func (d *Data) addQuad(q [4][3]float32, normal [3]float32) {
	base := uint32(len(d.Vertices))
	for _, p := range q {
		d.Vertices = append(d.Vertices, Vertex{Position: p, Normal: normal})
	}
	d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
}
