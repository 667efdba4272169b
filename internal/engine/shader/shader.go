// Package shader compiles OpenGL programs and exposes them as scene graph pipelines.
package shader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/minirace/internal/logger"
	"github.com/Faultbox/minirace/pkg/math"
)

// Program is a linked shader program that knows which uniforms it declares.
// It implements scenegraph.Pipeline.
type Program struct {
	name     string
	id       uint32
	uniforms map[string]int32
}

// NewProgram compiles and links a program and records its active uniforms.
func NewProgram(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", name, err)
	}
	p := &Program{name: name, id: id, uniforms: activeUniforms(id)}
	logger.Debug("shader program linked",
		zap.String("name", name),
		zap.Uint32("id", id),
		zap.Strings("uniforms", p.Uniforms()))
	return p, nil
}

// NewFlat builds the unlit single-color program.
func NewFlat() (*Program, error) {
	return NewProgram("flat", FlatVertexShader, FlatFragmentShader)
}

// NewLit builds the Phong program.
func NewLit() (*Program, error) {
	return NewProgram("lit", LitVertexShader, LitFragmentShader)
}

// Name returns the program's name.
func (p *Program) Name() string { return p.name }

// ID returns the GL program object.
func (p *Program) ID() uint32 { return p.id }

// Use binds the program.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// HasUniform reports whether the linked program declares name as an active uniform.
func (p *Program) HasUniform(name string) bool {
	_, ok := p.uniforms[name]
	return ok
}

// Uniforms returns the active uniform names, sorted.
func (p *Program) Uniforms() []string {
	names := make([]string, 0, len(p.uniforms))
	for n := range p.uniforms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetMat4 uploads a column-major matrix. The program must be bound.
func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc, ok := p.uniforms[name]; ok {
		gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	}
}

// SetVec3 uploads a vector. The program must be bound.
func (p *Program) SetVec3(name string, v math.Vec3) {
	if loc, ok := p.uniforms[name]; ok {
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

// SetFloat uploads a scalar. The program must be bound.
func (p *Program) SetFloat(name string, v float32) {
	if loc, ok := p.uniforms[name]; ok {
		gl.Uniform1f(loc, v)
	}
}

// Delete releases the GL program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func activeUniforms(program uint32) map[string]int32 {
	var count, maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	if maxLen <= 0 {
		maxLen = 256
	}

	uniforms := make(map[string]int32, count)
	buf := make([]uint8, maxLen)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(program, uint32(i), maxLen, &length, &size, &xtype, &buf[0])
		name := uniformName(string(buf[:length]))
		uniforms[name] = gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	}
	return uniforms
}

// uniformName strips the "[0]" suffix drivers report for array uniforms.
func uniformName(raw string) string {
	return strings.TrimSuffix(raw, "[0]")
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", programLog(program))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, strings.TrimRight(string(log), "\x00"))
	}

	return shader, nil
}

func programLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	log := make([]byte, logLen+1)
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}
