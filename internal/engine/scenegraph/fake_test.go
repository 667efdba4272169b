package scenegraph

import (
	"github.com/Faultbox/minirace/pkg/math"
)

type fakePipeline struct {
	declared map[string]bool
	uses     int
	mats     map[string]math.Mat4
	vecs     map[string]math.Vec3
	floats   map[string]float32
	// writes records every uniform write in order.
	writes []string
}

func newFakePipeline(declared ...string) *fakePipeline {
	p := &fakePipeline{
		declared: make(map[string]bool),
		mats:     make(map[string]math.Mat4),
		vecs:     make(map[string]math.Vec3),
		floats:   make(map[string]float32),
	}
	for _, d := range declared {
		p.declared[d] = true
	}
	return p
}

func (p *fakePipeline) Use() { p.uses++ }

func (p *fakePipeline) HasUniform(name string) bool { return p.declared[name] }

func (p *fakePipeline) SetMat4(name string, m math.Mat4) {
	p.check(name)
	p.mats[name] = m
}

func (p *fakePipeline) SetVec3(name string, v math.Vec3) {
	p.check(name)
	p.vecs[name] = v
}

func (p *fakePipeline) SetFloat(name string, v float32) {
	p.check(name)
	p.floats[name] = v
}

func (p *fakePipeline) check(name string) {
	if !p.declared[name] {
		panic("write to undeclared uniform " + name)
	}
	p.writes = append(p.writes, name)
}

type drawCall struct {
	mesh  string
	mode  DrawMode
	model math.Mat4
}

type fakeMesh struct {
	name     string
	pipeline *fakePipeline
	calls    *[]drawCall
}

func (m *fakeMesh) Draw(mode DrawMode) {
	*m.calls = append(*m.calls, drawCall{mesh: m.name, mode: mode, model: m.pipeline.mats[UniformModel]})
}

type fakeCamera struct {
	view, proj math.Mat4
	eye        math.Vec3
}

func (c fakeCamera) View() math.Mat4       { return c.view }
func (c fakeCamera) Projection() math.Mat4 { return c.proj }
func (c fakeCamera) Eye() math.Vec3        { return c.eye }
