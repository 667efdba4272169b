package mesh

import (
	"go.uber.org/zap"

	"github.com/Faultbox/minirace/internal/logger"
)

// Library loads STL meshes once and shares the uploaded copies.
type Library struct {
	size   float32
	meshes map[string]*GPU
	upload func(*Data) *GPU
}

// NewLibrary returns a library that normalizes every mesh to size units.
func NewLibrary(size float32) *Library {
	return &Library{size: size, meshes: make(map[string]*GPU), upload: Upload}
}

// Load returns the mesh at path, reading and uploading it on first use.
func (l *Library) Load(path string) (*GPU, error) {
	if m, ok := l.meshes[path]; ok {
		return m, nil
	}
	d, err := LoadSTL(path)
	if err != nil {
		return nil, err
	}
	d.Normalize(l.size)
	m := l.upload(d)
	l.meshes[path] = m
	logger.Debug("mesh loaded",
		zap.String("path", path),
		zap.Int("triangles", d.Triangles()))
	return m, nil
}

// Shape uploads generated geometry under name, reusing an earlier upload.
func (l *Library) Shape(name string, build func() *Data) *GPU {
	if m, ok := l.meshes[name]; ok {
		return m
	}
	m := l.upload(build())
	l.meshes[name] = m
	return m
}

// Len returns the number of cached meshes.
func (l *Library) Len() int {
	return len(l.meshes)
}

// Release deletes every cached mesh.
func (l *Library) Release() {
	for k, m := range l.meshes {
		m.Delete()
		delete(l.meshes, k)
	}
}
