package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}

	if cfg.Assets.StartupModel != "" {
		t.Errorf("expected no startup model, got %s", cfg.Assets.StartupModel)
	}
	if len(cfg.Assets.Aliases) != 0 {
		t.Errorf("expected no aliases, got %v", cfg.Assets.Aliases)
	}

	if cfg.Controls.DragSensitivity != 0.005 {
		t.Errorf("expected drag sensitivity 0.005, got %f", cfg.Controls.DragSensitivity)
	}
	if cfg.Controls.ZoomSensitivity != 0.1 {
		t.Errorf("expected zoom sensitivity 0.1, got %f", cfg.Controls.ZoomSensitivity)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "objview.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080

assets:
  startup_model: "/models/chair.obj"
  aliases:
    chair: "/models/chair.obj"
    lamp: "/models/lamp.obj"

controls:
  drag_sensitivity: 0.01
  zoom_sensitivity: 0.2

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}

	if cfg.Assets.StartupModel != "/models/chair.obj" {
		t.Errorf("expected startup model /models/chair.obj, got %s", cfg.Assets.StartupModel)
	}
	if cfg.Assets.Aliases["lamp"] != "/models/lamp.obj" {
		t.Errorf("expected lamp alias, got %v", cfg.Assets.Aliases)
	}

	if cfg.Controls.DragSensitivity != 0.01 {
		t.Errorf("expected drag sensitivity 0.01, got %f", cfg.Controls.DragSensitivity)
	}
	// Unset keys keep their defaults.
	if cfg.Controls.MoveStep != 0.1 {
		t.Errorf("expected default move step 0.1, got %f", cfg.Controls.MoveStep)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/objview.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
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

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "model flag",
			setup: func() { *flagModel = "/models/teapot.obj" },
			verify: func(cfg *Config) {
				if cfg.Assets.StartupModel != "/models/teapot.obj" {
					t.Errorf("expected startup model override, got %s", cfg.Assets.StartupModel)
				}
			},
			teardown: func() { *flagModel = "" },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "objview.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag overrides the file; file overrides the default.
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

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "objview.yaml")

	cfg := Default()
	cfg.Graphics.Width = 800
	cfg.Assets.Aliases = map[string]string{"chair": "/models/chair.obj"}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if loaded.Graphics.Width != 800 {
		t.Errorf("expected width 800 after round trip, got %d", loaded.Graphics.Width)
	}
	if loaded.Assets.Aliases["chair"] != "/models/chair.obj" {
		t.Errorf("expected alias to survive round trip, got %v", loaded.Assets.Aliases)
	}
}
