package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != ":8080" {
		t.Errorf("unexpected default port: %s", cfg.Port)
	}
	if cfg.UTMZone != 36 || !cfg.UTMNorthern {
		t.Errorf("unexpected default projection: zone=%d northern=%v", cfg.UTMZone, cfg.UTMNorthern)
	}
	if cfg.OutputDir == "" {
		t.Error("output dir must have a default")
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	if _, err := Load("/nonexistent/config.yml"); err != nil {
		t.Errorf("missing file should fall back to defaults, got %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	raw := "port: \":9090\"\nutmZone: 17\nutmNorthern: false\noutputDir: /tmp/maps\n"
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != ":9090" {
		t.Errorf("expected port :9090, got %s", cfg.Port)
	}
	if cfg.UTMZone != 17 || cfg.UTMNorthern {
		t.Errorf("projection not taken from file: zone=%d northern=%v", cfg.UTMZone, cfg.UTMNorthern)
	}
	if cfg.OutputDir != "/tmp/maps" {
		t.Errorf("unexpected output dir: %s", cfg.OutputDir)
	}
	// Unset fields keep their defaults
	if cfg.DBPath != defaults.DBPath {
		t.Errorf("db path should default, got %s", cfg.DBPath)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("port: \":9090\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", ":7070")
	t.Setenv("UTM_ZONE", "12")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != ":7070" {
		t.Errorf("env must win over file, got %s", cfg.Port)
	}
	if cfg.UTMZone != 12 {
		t.Errorf("expected zone 12 from env, got %d", cfg.UTMZone)
	}
}

func TestLoad_InvalidZoneRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("utmZone: 99\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for utm zone 99")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(": not yaml ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
