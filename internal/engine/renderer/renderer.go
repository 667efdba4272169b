// Package renderer owns the OpenGL state and the shader pipelines the scene
// graph draws through.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/minirace/internal/engine/scenegraph"
	"github.com/Faultbox/minirace/internal/engine/shader"
	"github.com/Faultbox/minirace/internal/logger"
)

// Renderer handles frame setup and holds the shared pipelines.
type Renderer struct {
	width, height int

	// Flat draws unlit single-color geometry such as the axis gizmo.
	Flat *shader.Program
	// Lit draws Phong-shaded geometry and receives light uniforms.
	Lit *shader.Program
}

// New initializes OpenGL and compiles the pipelines.
// It must be called after the OpenGL context is created.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{width: width, height: height}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.85, 0.87, 0.9, 1.0)
	gl.Viewport(0, 0, int32(width), int32(height))

	var err error
	if r.Flat, err = shader.NewFlat(); err != nil {
		return nil, fmt.Errorf("failed to create flat pipeline: %w", err)
	}
	if r.Lit, err = shader.NewLit(); err != nil {
		r.Flat.Delete()
		return nil, fmt.Errorf("failed to create lit pipeline: %w", err)
	}
	for _, p := range []*shader.Program{r.Flat, r.Lit} {
		logger.Debug("pipeline ready",
			zap.String("name", p.Name()),
			zap.Uint32("id", p.ID()),
			zap.Strings("uniforms", p.Uniforms()))
	}

	return r, nil
}

// Close releases the pipelines.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.Flat != nil {
		r.Flat.Delete()
	}
	if r.Lit != nil {
		r.Lit.Delete()
	}
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Frame clears the buffers and draws g as seen by cam.
func (r *Renderer) Frame(g *scenegraph.Graph, cam scenegraph.Camera) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return g.Draw(cam)
}

// ReadPixels reads the back buffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() []byte {
	pixels := make([]byte, r.width*r.height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
