// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Assets   AssetsConfig   `yaml:"assets"`
	Controls ControlsConfig `yaml:"controls"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AssetsConfig holds model lookup settings.
type AssetsConfig struct {
	// Aliases maps short tokens to model paths, merged over the
	// builtin alias table.
	Aliases map[string]string `yaml:"aliases"`
	// StartupModel is loaded on launch when set (path or alias).
	StartupModel string `yaml:"startup_model"`
}

// ControlsConfig holds input sensitivity settings.
type ControlsConfig struct {
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	MoveStep        float32 `yaml:"move_step"`
	ScaleStep       float32 `yaml:"scale_step"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
		},
		Controls: ControlsConfig{
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
			MoveStep:        0.1,
			ScaleStep:       0.05,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
