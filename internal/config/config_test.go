package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 720 || cfg.Window.Height != 720 {
		t.Errorf("expected 720x720 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Camera.Projection != "perspective" {
		t.Errorf("expected perspective camera, got %s", cfg.Camera.Projection)
	}
	if cfg.Physics.TimeStep != time.Second/60 {
		t.Errorf("expected 60Hz physics, got %v", cfg.Physics.TimeStep)
	}
	if cfg.Physics.VelocityIterations != 6 || cfg.Physics.PositionIterations != 2 {
		t.Errorf("expected 6/2 solver iterations, got %d/%d",
			cfg.Physics.VelocityIterations, cfg.Physics.PositionIterations)
	}
	if cfg.Race.WinZone != [2]float32{0, 8} || cfg.Race.WinRadius != 1 {
		t.Errorf("unexpected win zone %v r=%v", cfg.Race.WinZone, cfg.Race.WinRadius)
	}
	if len(cfg.Garage.Cars) != 4 {
		t.Fatalf("expected 4 stock cars, got %d", len(cfg.Garage.Cars))
	}
	if cfg.Garage.Cars[3].SpareWheels == nil {
		t.Error("expected the last stock car to carry a spare wheel")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)

	yamlContent := `
window:
  width: 1280
  height: 720
  fullscreen: true
  vsync: false

camera:
  projection: orthographic
  fov: 60

physics:
  time_step: 10ms
  velocity_iterations: 8

race:
  force: 2.5
  win_zone: [3, 4]

garage:
  selected: 0
  cars:
    - name: box
      chassis:
        material: gold
        position: [0, 0.1, 0]
        scale: [1, 0.5, 2]

logging:
  level: debug
  log_file: minirace.log
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1280 || !cfg.Window.Fullscreen || cfg.Window.VSync {
		t.Errorf("window not loaded: %+v", cfg.Window)
	}
	if cfg.Camera.Projection != "orthographic" || cfg.Camera.FOV != 60 {
		t.Errorf("camera not loaded: %+v", cfg.Camera)
	}
	if cfg.Camera.Near != 0.01 {
		t.Errorf("unset fields should keep defaults, near = %v", cfg.Camera.Near)
	}
	if cfg.Physics.TimeStep != 10*time.Millisecond || cfg.Physics.VelocityIterations != 8 {
		t.Errorf("physics not loaded: %+v", cfg.Physics)
	}
	if cfg.Race.Force != 2.5 || cfg.Race.WinZone != [2]float32{3, 4} {
		t.Errorf("race not loaded: %+v", cfg.Race)
	}
	if len(cfg.Garage.Cars) != 1 || cfg.Garage.Cars[0].Chassis.Material != "gold" {
		t.Errorf("cars not replaced: %+v", cfg.Garage.Cars)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "minirace.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/minirace.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"bad projection", func(c *Config) { c.Camera.Projection = "fisheye" }},
		{"abbreviated projection", func(c *Config) { c.Camera.Projection = "ortho" }},
		{"empty projection", func(c *Config) { c.Camera.Projection = "" }},
		{"zero time step", func(c *Config) { c.Physics.TimeStep = 0 }},
		{"no cars", func(c *Config) { c.Garage.Cars = nil }},
		{"selected out of range", func(c *Config) { c.Garage.Selected = 9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "car flag",
			setup: func() { *flagCar = 2 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Garage.Selected != 2 {
					t.Errorf("expected car 2, got %d", cfg.Garage.Selected)
				}
			},
			teardown: func() { *flagCar = -1 },
		},
		{
			name:  "ortho flag",
			setup: func() { *flagOrtho = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Camera.Projection != "orthographic" {
					t.Errorf("expected orthographic, got %s", cfg.Camera.Projection)
				}
			},
			teardown: func() { *flagOrtho = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default()
	cfg.Race.Force = 3

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := &Config{}
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Race.Force != 3 || loaded.Physics.TimeStep != cfg.Physics.TimeStep {
		t.Errorf("saved config not reloaded: %+v", loaded.Race)
	}
	if loaded.Garage.Cars[3].SpareWheels == nil {
		t.Error("spare wheel lost on save")
	}
}
