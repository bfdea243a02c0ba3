package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shockdb/stringspace/internal/config"
)

func TestLoad_DefaultsApplyWhenNoFilesExist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, _, err := config.Load(dir, "", config.Config{DataFile: "/tmp/words.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Host != config.DefaultHost || cfg.Port != config.DefaultPort {
		t.Fatalf("got %+v, want defaults applied", cfg)
	}

	if cfg.DataFile != "/tmp/words.txt" {
		t.Fatalf("cli override not applied: %+v", cfg)
	}
}

func TestLoad_MissingDataFileIsInvalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, err := config.Load(dir, "", config.Config{})
	if err == nil {
		t.Fatal("expected an error when data_file is never set")
	}
}

func TestLoad_ProjectConfigOverridesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	projectPath := filepath.Join(dir, config.ConfigFileName)

	content := `{
		// trailing comment allowed, per the JSONC config format
		"data_file": "/srv/words.txt",
		"port": 9000,
	}`

	if err := os.WriteFile(projectPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, sources, err := config.Load(dir, "", config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 9000 || cfg.DataFile != "/srv/words.txt" {
		t.Fatalf("got %+v, want project overrides applied", cfg)
	}

	if sources.Project != projectPath {
		t.Fatalf("sources.Project = %q, want %q", sources.Project, projectPath)
	}
}

func TestLoad_CLIOverrideWinsOverProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	projectPath := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(projectPath, []byte(`{"data_file": "/srv/words.txt", "port": 9000}`), 0o600); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, _, err := config.Load(dir, "", config.Config{Port: 7777})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 7777 {
		t.Fatalf("got port %d, want CLI override 7777", cfg.Port)
	}
}

func TestLoad_ExplicitConfigPathMustExist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, err := config.Load(dir, "missing.json", config.Config{})
	if err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}
