package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Recognizer.Scale != 80 {
		t.Errorf("expected Scale=80, got %v", cfg.Recognizer.Scale)
	}
	if cfg.Recognizer.Timeout != 30*time.Second {
		t.Errorf("expected Timeout=30s, got %s", cfg.Recognizer.Timeout)
	}
	if cfg.Palette.Equals != "#fdbf14" {
		t.Errorf("expected equals color #fdbf14, got %s", cfg.Palette.Equals)
	}
	if cfg.Grey.Color != "#aaaaaa" || cfg.Grey.WidthScale != 1 {
		t.Errorf("unexpected grey style %+v", cfg.Grey)
	}
	if cfg.Overlay.HintOffset != 40 || cfg.Overlay.MinHintWidth != 200 {
		t.Errorf("unexpected overlay defaults %+v", cfg.Overlay)
	}
	if len(cfg.Motivations) == 0 {
		t.Error("expected default motivations")
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mathscout.yaml")
	content := `
recognizer:
  endpoint: http://gpu-box:5000
  timeout: 5s
palette:
  equals: "#ff0000"
grey:
  color: "#cccccc"
motivations:
  - Nice!
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Recognizer.Endpoint != "http://gpu-box:5000" {
		t.Errorf("unexpected endpoint %s", cfg.Recognizer.Endpoint)
	}
	if cfg.Recognizer.Timeout != 5*time.Second {
		t.Errorf("expected Timeout=5s, got %s", cfg.Recognizer.Timeout)
	}
	if cfg.Recognizer.Scale != 80 {
		t.Errorf("unset scale should keep its default, got %v", cfg.Recognizer.Scale)
	}
	if cfg.Palette.Equals != "#ff0000" || cfg.Palette.Number != "#004e8a" {
		t.Errorf("palette not merged over defaults: %+v", cfg.Palette)
	}
	if cfg.Grey.Color != "#cccccc" || cfg.Grey.WidthScale != 1 {
		t.Errorf("grey not merged over defaults: %+v", cfg.Grey)
	}
	if len(cfg.Motivations) != 1 || cfg.Motivations[0] != "Nice!" {
		t.Errorf("unexpected motivations %v", cfg.Motivations)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mathscout.yaml")
	if err := os.WriteFile(configPath, []byte("recognizer:\n  scale: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(configPath); err == nil {
		t.Fatal("expected error for zero scale")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mathscout.yaml")
	if err := os.WriteFile(configPath, []byte("recognizer: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(configPath); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveAndReload(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "mathscout.yaml")
	cfg := DefaultConfig()
	cfg.Recognizer.Timeout = 12 * time.Second
	cfg.Overlay.ParticleSeed = 42
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Recognizer.Timeout != 12*time.Second || loaded.Overlay.ParticleSeed != 42 {
		t.Fatalf("values lost on round trip: %+v", loaded)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RECOGNIZER_HOST", "http://env-host:7000/")
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.Recognizer.Endpoint != "http://env-host:7000" {
		t.Fatalf("expected env endpoint, got %s", cfg.Recognizer.Endpoint)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv("MATHSCOUT_CONFIG", "")
	if got := ResolvePath(""); got != DefaultPath {
		t.Fatalf("expected default path, got %s", got)
	}
	t.Setenv("MATHSCOUT_CONFIG", "/etc/mathscout.yaml")
	if got := ResolvePath(""); got != "/etc/mathscout.yaml" {
		t.Fatalf("expected env path, got %s", got)
	}
	if got := ResolvePath("custom.yaml"); got != "custom.yaml" {
		t.Fatalf("flag should win, got %s", got)
	}
}
