// Package material defines Phong surface materials and a set of named presets.
package material

import (
	"sort"

	"github.com/Faultbox/minirace/pkg/math"
)

// Uniforms is the subset of a shader pipeline materials write to.
type Uniforms interface {
	HasUniform(name string) bool
	SetVec3(name string, v math.Vec3)
	SetFloat(name string, v float32)
}

// Material describes how a surface reflects light.
type Material struct {
	Ambient   math.Vec3
	Diffuse   math.Vec3
	Specular  math.Vec3
	Shininess float32
}

// Upload writes u_material.* for every field the pipeline declares.
func (m Material) Upload(u Uniforms) {
	for _, f := range []struct {
		name string
		v    math.Vec3
	}{
		{"u_material.ambient", m.Ambient},
		{"u_material.diffuse", m.Diffuse},
		{"u_material.specular", m.Specular},
	} {
		if u.HasUniform(f.name) {
			u.SetVec3(f.name, f.v)
		}
	}
	if u.HasUniform("u_material.shininess") {
		u.SetFloat("u_material.shininess", m.Shininess)
	}
}

// shininessScale converts the 0..1 exponents of the classic OpenGL material table.
const shininessScale = 128

func rgb(r, g, b float32) math.Vec3 { return math.Vec3{X: r, Y: g, Z: b} }

// presets from the classic OpenGL material table (devernay.free.fr).
var presets = map[string]Material{
	"amethyst": {Ambient: rgb(138.0/255, 43.0/255, 226.0/255), Diffuse: rgb(138.0/255, 43.0/255, 226.0/255), Specular: rgb(1, 1, 1), Shininess: shininessScale},
	"silver":   {Ambient: rgb(0.19225, 0.19225, 0.19225), Diffuse: rgb(0.50754, 0.50754, 0.50754), Specular: rgb(0.508273, 0.508273, 0.508273), Shininess: shininessScale * 0.4},
	"rubber":   {Ambient: rgb(0.02, 0.02, 0.02), Diffuse: rgb(0.01, 0.01, 0.01), Specular: rgb(0.4, 0.4, 0.4), Shininess: shininessScale * 0.078125},
	"gold":     {Ambient: rgb(0.24725, 0.1995, 0.0745), Diffuse: rgb(0.75164, 0.60648, 0.22648), Specular: rgb(0.628281, 0.555802, 0.366065), Shininess: shininessScale * 0.4},
	"pearl":    {Ambient: rgb(0.25, 0.20725, 0.20725), Diffuse: rgb(1, 0.829, 0.829), Specular: rgb(0.296648, 0.296648, 0.296648), Shininess: shininessScale * 0.088},
	"emerald":  {Ambient: rgb(0.0215, 0.1745, 0.0215), Diffuse: rgb(0.07568, 0.61424, 0.07568), Specular: rgb(0.633, 0.727811, 0.633), Shininess: shininessScale * 0.6},
	"obsidian": {Ambient: rgb(0.05375, 0.05, 0.06625), Diffuse: rgb(0.18275, 0.17, 0.22525), Specular: rgb(0.332741, 0.328634, 0.346435), Shininess: shininessScale * 0.3},
	"chrome":   {Ambient: rgb(0.25, 0.25, 0.25), Diffuse: rgb(0.4, 0.4, 0.4), Specular: rgb(0.774597, 0.774597, 0.774597), Shininess: shininessScale * 0.6},
	"copper":   {Ambient: rgb(0.19125, 0.0735, 0.0225), Diffuse: rgb(0.7038, 0.27048, 0.0828), Specular: rgb(0.256777, 0.137622, 0.086014), Shininess: shininessScale * 0.1},
	"ruby":     {Ambient: rgb(0.1745, 0.01175, 0.01175), Diffuse: rgb(0.61424, 0.04136, 0.04136), Specular: rgb(0.727811, 0.626959, 0.626959), Shininess: shininessScale * 0.6},
	"floor":    {Ambient: rgb(0.1, 0.1, 0.1), Diffuse: rgb(1, 1, 1), Specular: rgb(0.5, 0.5, 0.5), Shininess: 256},
}

// Lookup returns the preset with the given name.
func Lookup(name string) (Material, bool) {
	m, ok := presets[name]
	return m, ok
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
