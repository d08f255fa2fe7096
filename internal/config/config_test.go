package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 10s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Model.Path != "models/weather_predictor.onnx" {
		t.Errorf("Model.Path = %q", cfg.Model.Path)
	}
	if cfg.Model.InputName != "input" || cfg.Model.OutputName != "output" {
		t.Errorf("Model names = %q/%q, want input/output", cfg.Model.InputName, cfg.Model.OutputName)
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = true, want false by default")
	}
	if got := cfg.GetServerAddr(); got != ":8080" {
		t.Errorf("GetServerAddr() = %q, want :8080", got)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("server:\n  port: 9090\nmodel:\n  path: /srv/weather.onnx\nlog:\n  format: json\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WEATHER_API_STORAGE_PATH", "/tmp/history.db")

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Model.Path != "/srv/weather.onnx" {
		t.Errorf("Model.Path = %q, want /srv/weather.onnx", cfg.Model.Path)
	}
	if cfg.Storage.Path != "/tmp/history.db" {
		t.Errorf("Storage.Path = %q, want /tmp/history.db", cfg.Storage.Path)
	}
	if ec := cfg.EngineConfig(); ec.ModelPath != "/srv/weather.onnx" || ec.InputName != "input" {
		t.Errorf("EngineConfig() = %+v", ec)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load with a missing explicit file succeeded, want error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "ok", cfg: Config{Server: ServerConfig{Port: 8080}, Model: ModelConfig{Path: "m.onnx"}}},
		{name: "zero port", cfg: Config{Model: ModelConfig{Path: "m.onnx"}}, wantErr: true},
		{name: "port too large", cfg: Config{Server: ServerConfig{Port: 70000}, Model: ModelConfig{Path: "m.onnx"}}, wantErr: true},
		{name: "blank model path", cfg: Config{Server: ServerConfig{Port: 8080}, Model: ModelConfig{Path: "  "}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := Config{Log: LogConfig{Level: tt.level}}
		logger := cfg.NewLogger()
		if !logger.Enabled(context.Background(), tt.want) {
			t.Errorf("level %q: %v not enabled", tt.level, tt.want)
		}
		if tt.want > slog.LevelDebug && logger.Enabled(context.Background(), tt.want-1) {
			t.Errorf("level %q: %v enabled, want disabled", tt.level, tt.want-1)
		}
	}
}
