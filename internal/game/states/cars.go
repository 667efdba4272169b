package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/minirace/internal/config"
	"github.com/Faultbox/minirace/internal/engine/material"
	"github.com/Faultbox/minirace/internal/engine/mesh"
	"github.com/Faultbox/minirace/internal/engine/scenegraph"
)

// defaultMaterial is used when a configured material name is unknown.
const defaultMaterial = "silver"

// Car is the set of nodes a car was built from.
type Car struct {
	Pivot  string
	Wheels []string
}

// buildCar adds pivot under parent and hangs the car's parts from it.
func buildCar(ctx *Context, pivot, parent string, car config.CarConfig, opts ...scenegraph.Option) (Car, error) {
	opts = append([]scenegraph.Option{scenegraph.WithParent(parent)}, opts...)
	if err := ctx.Graph.AddNode(pivot, opts...); err != nil {
		return Car{}, err
	}

	out := Car{Pivot: pivot}
	parts := []struct {
		suffix string
		part   *config.PartConfig
		wheel  bool
	}{
		{"_chassis", &car.Chassis, false},
		{"_front_wheels", &car.FrontWheels, true},
		{"_rear_wheels", &car.RearWheels, true},
		{"_spare_wheels", car.SpareWheels, false},
	}
	for _, p := range parts {
		if p.part == nil {
			continue
		}
		name := pivot + p.suffix
		if err := addPart(ctx, name, pivot, *p.part); err != nil {
			return Car{}, err
		}
		if p.wheel {
			out.Wheels = append(out.Wheels, name)
		}
	}
	return out, nil
}

func addPart(ctx *Context, name, parent string, part config.PartConfig) error {
	scale := part.Scale
	if scale == [3]float32{} {
		scale = [3]float32{1, 1, 1}
	}
	return ctx.Graph.AddNode(name,
		scenegraph.WithParent(parent),
		scenegraph.WithPosition(part.Position[0], part.Position[1], part.Position[2]),
		scenegraph.WithScale(scale[0], scale[1], scale[2]),
		scenegraph.WithDrawable(loadMesh(ctx, part.Mesh), ctx.Lit),
		scenegraph.WithMaterial(lookupMaterial(ctx, part.Material)),
	)
}

// loadMesh returns the STL at path, or a cube when path is empty or unreadable.
func loadMesh(ctx *Context, path string) *mesh.GPU {
	if path != "" {
		m, err := ctx.Meshes.Load(path)
		if err == nil {
			return m
		}
		ctx.Log.Warn("mesh unavailable, using a box", zap.String("path", path), zap.Error(err))
	}
	return ctx.Meshes.Shape("cube", mesh.Cube)
}

func lookupMaterial(ctx *Context, name string) material.Material {
	if m, ok := material.Lookup(name); ok {
		return m
	}
	ctx.Log.Warn("unknown material", zap.String("name", name), zap.String("fallback", defaultMaterial))
	m, _ := material.Lookup(defaultMaterial)
	return m
}
