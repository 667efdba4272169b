// Package config handles loading and saving minirace settings.
package config

import "time"

// Config holds all settings for the demo.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Physics PhysicsConfig `yaml:"physics"`
	Race    RaceConfig    `yaml:"race"`
	Garage  GarageConfig  `yaml:"garage"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds projection and chase camera settings.
type CameraConfig struct {
	Projection     string  `yaml:"projection"` // perspective or orthographic
	FOV            float32 `yaml:"fov"`        // vertical, degrees
	Near           float32 `yaml:"near"`
	Far            float32 `yaml:"far"`
	FollowDistance float32 `yaml:"follow_distance"`
	FollowHeight   float32 `yaml:"follow_height"`
	MoveSpeed      float32 `yaml:"move_speed"`
	MouseSpeed     float32 `yaml:"mouse_speed"`
}

// PhysicsConfig holds rigid-body world settings.
type PhysicsConfig struct {
	TimeStep           time.Duration `yaml:"time_step"`
	VelocityIterations int           `yaml:"velocity_iterations"`
	PositionIterations int           `yaml:"position_iterations"`
	LinearDamping      float32       `yaml:"linear_damping"`
	AngularDamping     float32       `yaml:"angular_damping"`
	Density            float32       `yaml:"density"`
	Friction           float32       `yaml:"friction"`
}

// RaceConfig holds the track layout and driving controls.
type RaceConfig struct {
	ArenaHalfSize float32    `yaml:"arena_half_size"`
	WallThickness float32    `yaml:"wall_thickness"`
	Start         [2]float32 `yaml:"start"`
	Reset         [2]float32 `yaml:"reset"`
	ResetAngle    float32    `yaml:"reset_angle"` // radians
	WinZone       [2]float32 `yaml:"win_zone"`
	WinRadius     float32    `yaml:"win_radius"`
	Force         float32    `yaml:"force"`
	Torque        float32    `yaml:"torque"`
	HeadingOffset float32    `yaml:"heading_offset"` // radians added to the body angle
	WheelRadius   float32    `yaml:"wheel_radius"`
}

// GarageConfig holds the car selection scene.
type GarageConfig struct {
	SpinSpeed float32     `yaml:"spin_speed"` // platform radians per second
	Selected  int         `yaml:"selected"`
	Cars      []CarConfig `yaml:"cars"`
}

// CarConfig describes one selectable car.
type CarConfig struct {
	Name        string      `yaml:"name"`
	Chassis     PartConfig  `yaml:"chassis"`
	FrontWheels PartConfig  `yaml:"front_wheels"`
	RearWheels  PartConfig  `yaml:"rear_wheels"`
	SpareWheels *PartConfig `yaml:"spare_wheels,omitempty"`
}

// PartConfig places one car mesh relative to the car pivot.
type PartConfig struct {
	Mesh     string     `yaml:"mesh"` // binary STL path; empty uses a box
	Material string     `yaml:"material"`
	Position [3]float32 `yaml:"position"`
	Scale    [3]float32 `yaml:"scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock garage and track.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "minirace",
			Width:  720,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			Projection:     "perspective",
			FOV:            90,
			Near:           0.01,
			Far:            1000,
			FollowDistance: 2,
			FollowHeight:   2,
			MoveSpeed:      1,
			MouseSpeed:     0.01,
		},
		Physics: PhysicsConfig{
			TimeStep:           time.Second / 60,
			VelocityIterations: 6,
			PositionIterations: 2,
			LinearDamping:      0.75,
			AngularDamping:     0.5,
			Density:            5,
			Friction:           1,
		},
		Race: RaceConfig{
			ArenaHalfSize: 20,
			WallThickness: 0.5,
			Start:         [2]float32{2, 0},
			Reset:         [2]float32{0, -5},
			WinZone:       [2]float32{0, 8},
			WinRadius:     1,
			Force:         1,
			Torque:        0.5,
			HeadingOffset: 1.5707964,
			WheelRadius:   0.1,
		},
		Garage: GarageConfig{
			SpinSpeed: 2,
			Cars:      DefaultCars(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultCars returns the four stock cars.
func DefaultCars() []CarConfig {
	part := func(mesh, material string, pos [3]float32, s float32) PartConfig {
		return PartConfig{Mesh: mesh, Material: material, Position: pos, Scale: [3]float32{s, s, s}}
	}
	return []CarConfig{
		{
			Name:        "mean_machine",
			Chassis:     part("assets/mean_machine_chassis.stl", "amethyst", [3]float32{0.2, 0.09, 0}, 1),
			FrontWheels: part("assets/mean_machine_front_wheels.stl", "rubber", [3]float32{-0.435, -0.1, 0}, 0.2),
			RearWheels:  part("assets/mean_machine_rear_wheels.stl", "rubber", [3]float32{0.28, -0.1, 0}, 0.3),
		},
		{
			Name:        "army_surplus_special",
			Chassis:     part("assets/army_surplus_special_chassis.stl", "emerald", [3]float32{-0.125, 0.335, 0}, 1),
			FrontWheels: part("assets/army_surplus_special_front_wheels.stl", "rubber", [3]float32{0.55, -0.09, 0}, 0.2),
			RearWheels:  part("assets/army_surplus_special_rear_wheels.stl", "rubber", [3]float32{0, -0.03, 0}, 0.5),
		},
		{
			Name:        "turbo_terrific",
			Chassis:     part("assets/turbo_terrific_chassis.stl", "ruby", [3]float32{-0.025, -0.045, 0}, 1),
			FrontWheels: part("assets/turbo_terrific_front_wheels.stl", "rubber", [3]float32{0.375, -0.105, 0}, 0.225),
			RearWheels:  part("assets/turbo_terrific_rear_wheels.stl", "rubber", [3]float32{-0.49, 0.01, 0}, 0.42),
		},
		{
			Name:        "bulletproof_bomb",
			Chassis:     part("assets/bulletproof_bomb_chassis.stl", "copper", [3]float32{0, 0.14, 0}, 1),
			FrontWheels: part("assets/bulletproof_bomb_front_wheels.stl", "rubber", [3]float32{-0.642, 0, 0.087}, 0.505),
			RearWheels:  part("assets/bulletproof_bomb_rear_wheels.stl", "rubber", [3]float32{0.527, 0.004, -0.012}, 0.42),
			SpareWheels: &PartConfig{
				Mesh:     "assets/bulletproof_bomb_spare_wheels.stl",
				Material: "rubber",
				Position: [3]float32{0.159, -0.037, 0.115},
				Scale:    [3]float32{0.615, 0.615, 0.615},
			},
		},
	}
}
