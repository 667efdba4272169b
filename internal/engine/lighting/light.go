// Package lighting defines the light variants a scene node can carry and how
// each one is written into shader uniforms.
package lighting

import (
	"github.com/Faultbox/minirace/pkg/math"
)

// Kind identifies a light variant.
type Kind int

const (
	KindDirectional Kind = iota
	KindPoint
	KindSpot
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindDirectional:
		return "directional"
	case KindPoint:
		return "point"
	case KindSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// Uniforms is the subset of a shader pipeline lights write to.
// Writes to names the pipeline does not declare must be skipped by the caller.
type Uniforms interface {
	HasUniform(name string) bool
	SetVec3(name string, v math.Vec3)
	SetFloat(name string, v float32)
}

// Light is one of DirectionalLight, PointLight or SpotLight.
type Light interface {
	Kind() Kind
	// Upload writes the light into u. world is the owning node's world
	// transform; it supplies position and, for lights that have one, direction.
	Upload(u Uniforms, world math.Mat4)
	isLight()
}

// Forward is the local direction a directional or spot light shines along
// before its node's rotation is applied.
var Forward = math.Vec3{X: 0, Y: 0, Z: -1}

// Colors holds the Phong terms shared by every variant.
type Colors struct {
	Diffuse  math.Vec3
	Specular math.Vec3
	Ambient  math.Vec3
}

// Attenuation holds distance falloff constants.
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// DefaultAttenuation returns falloff for a light reaching roughly 7 units.
func DefaultAttenuation() Attenuation {
	return Attenuation{Constant: 1, Linear: 0.7, Quadratic: 1.8}
}

// DirectionalLight lights everything from one direction, like the sun.
type DirectionalLight struct {
	Colors
}

// PointLight radiates from the node's position with attenuation.
type PointLight struct {
	Colors
	Attenuation
}

// SpotLight is a point light limited to a cone around the node's forward axis.
// CutOff and OuterCutOff are cosines; CutOff must be greater than OuterCutOff.
type SpotLight struct {
	Colors
	Attenuation
	CutOff      float32
	OuterCutOff float32
}

func (DirectionalLight) Kind() Kind { return KindDirectional }
func (PointLight) Kind() Kind       { return KindPoint }
func (SpotLight) Kind() Kind        { return KindSpot }

func (DirectionalLight) isLight() {}
func (PointLight) isLight()       {}
func (SpotLight) isLight()        {}

// Upload writes u_dirLight.*.
func (l DirectionalLight) Upload(u Uniforms, world math.Mat4) {
	setVec3(u, "u_dirLight.direction", direction(world))
	l.Colors.upload(u, "u_dirLight")
}

// Upload writes u_pointLight.*.
func (l PointLight) Upload(u Uniforms, world math.Mat4) {
	setVec3(u, "u_pointLight.position", world.Translation())
	l.Colors.upload(u, "u_pointLight")
	l.Attenuation.upload(u, "u_pointLight")
}

// Upload writes u_spotLight.*.
func (l SpotLight) Upload(u Uniforms, world math.Mat4) {
	setVec3(u, "u_spotLight.position", world.Translation())
	setVec3(u, "u_spotLight.direction", direction(world))
	l.Colors.upload(u, "u_spotLight")
	l.Attenuation.upload(u, "u_spotLight")
	setFloat(u, "u_spotLight.cutOff", l.CutOff)
	setFloat(u, "u_spotLight.outerCutOff", l.OuterCutOff)
}

func (c Colors) upload(u Uniforms, prefix string) {
	setVec3(u, prefix+".diffuse", c.Diffuse)
	setVec3(u, prefix+".specular", c.Specular)
	setVec3(u, prefix+".ambient", c.Ambient)
}

func (a Attenuation) upload(u Uniforms, prefix string) {
	setFloat(u, prefix+".constant", a.Constant)
	setFloat(u, prefix+".linear", a.Linear)
	setFloat(u, prefix+".quadratic", a.Quadratic)
}

func direction(world math.Mat4) math.Vec3 {
	return world.TransformDirection(Forward).Normalize()
}

func setVec3(u Uniforms, name string, v math.Vec3) {
	if u.HasUniform(name) {
		u.SetVec3(name, v)
	}
}

func setFloat(u Uniforms, name string, v float32) {
	if u.HasUniform(name) {
		u.SetFloat(name, v)
	}
}
