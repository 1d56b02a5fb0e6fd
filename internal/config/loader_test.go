package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	p := writeTemp(t, "cfg.yaml", "addr: \":9090\"\ndata_dir: /srv/gauges\nsafe_threshold: 0.7\nrefresh_minutes: 15\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.DataDir != "/srv/gauges" || cfg.SafeThreshold != 0.7 || cfg.RefreshMinutes != 15 {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	p := writeTemp(t, "cfg.json", `{"addr":":8081","model_version":"2020","cors_enabled":true,"cors_origins":["https://crwa.org"]}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.ModelVersion != "2020" || !cfg.CORSEnabled || len(cfg.CORSOrigins) != 1 {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	p := writeTemp(t, "cfg.toml", "addr = \":8082\"\nlog_level = \"debug\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8082" || cfg.LogLevel != "debug" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	p := writeTemp(t, "cfg.ini", "addr=:1\n")
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for .ini")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Config{SafeThreshold: 0.65, RefreshMinutes: 10}); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if err := Validate(Config{SafeThreshold: 1.2}); err == nil {
		t.Fatal("expected threshold error")
	}
	if err := Validate(Config{RefreshMinutes: -1}); err == nil {
		t.Fatal("expected refresh error")
	}
	if err := Validate(Config{CORSEnabled: true}); err == nil {
		t.Fatal("expected cors origin error")
	}
}
