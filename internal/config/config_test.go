package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mudra-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}

	def := Default()
	if cfg.CameraID != def.CameraID || cfg.ListenAddr != def.ListenAddr {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, def)
	}
	if !cfg.Mirror {
		t.Error("mirror should default to true")
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
camera_id: 2
listen_addr: ":9090"
static_dir: /srv/mirror/web
data_dir: /var/lib/mudra
mirror: false
detector:
  max_hands: 1
  min_confidence: 0.8
  min_tracking_confidence: 0.6
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CameraID != 2 {
		t.Errorf("camera_id = %d, want 2", cfg.CameraID)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("listen_addr = %q, want :9090", cfg.ListenAddr)
	}
	if cfg.StaticDir != "/srv/mirror/web" {
		t.Errorf("static_dir = %q", cfg.StaticDir)
	}
	if cfg.DataDir != "/var/lib/mudra" {
		t.Errorf("data_dir = %q", cfg.DataDir)
	}
	if cfg.Mirror {
		t.Error("mirror: false should be honored")
	}
	if cfg.Detector.MaxHands != 1 || cfg.Detector.MinConfidence != 0.8 || cfg.Detector.MinTrackingConf != 0.6 {
		t.Errorf("detector = %+v", cfg.Detector)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "camera_id: 1\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CameraID != 1 {
		t.Errorf("camera_id = %d, want 1", cfg.CameraID)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("listen_addr = %q, want default :8080", cfg.ListenAddr)
	}
	if !cfg.Mirror {
		t.Error("mirror should keep its default when absent")
	}
	if cfg.Detector.MaxHands != 2 {
		t.Errorf("detector.max_hands = %d, want default 2", cfg.Detector.MaxHands)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "camera_id: [not a number\n")

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative camera", "camera_id: -1\n"},
		{"empty listen addr", `listen_addr: ""` + "\n"},
		{"zero max hands", "detector:\n  max_hands: 0\n"},
		{"confidence out of range", "detector:\n  min_confidence: 1.5\n"},
		{"tracking out of range", "detector:\n  min_tracking_confidence: -0.1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load() should reject invalid config")
			}
		})
	}
}
