package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/minirace/internal/config"
	"github.com/Faultbox/minirace/internal/engine/camera"
	"github.com/Faultbox/minirace/internal/engine/mesh"
	"github.com/Faultbox/minirace/internal/engine/scenegraph"
	"github.com/Faultbox/minirace/internal/game/race"
)

// MeshLoader supplies uploaded meshes.
type MeshLoader interface {
	Load(path string) (*mesh.GPU, error)
	Shape(name string, build func() *mesh.Data) *mesh.GPU
}

// Context is the application state shared by every scene.
type Context struct {
	Config *config.Config
	Graph  *scenegraph.Graph
	Camera *camera.FreeCamera
	Keys   race.Keys
	Meshes MeshLoader
	Flat   scenegraph.Pipeline
	Lit    scenegraph.Pipeline
	States *Manager
	// Quit asks the game loop to stop after the current frame.
	Quit func()
	Log  *zap.Logger
}
