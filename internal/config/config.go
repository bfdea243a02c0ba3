// Package config implements the completion engine's configuration layer
// (component C9): a JSON-with-comments config file with a global/project/
// explicit-file/CLI precedence chain, defaults, and validation.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// ConfigFileName is the default project config file name.
const ConfigFileName = ".completiond.json"

// Defaults.
const (
	DefaultHost         = "127.0.0.1"
	DefaultPort         = 7700
	DefaultResultLimit  = 15
	DefaultEchoMetadata = false
)

var (
	errDataFileRequired = errors.New("config: data_file is required")
	errConfigFileRead   = errors.New("config: failed to read config file")
	errConfigInvalid    = errors.New("config: invalid config file")
)

// Config holds every setting the server and CLI need.
type Config struct {
	DataFile     string `json:"data_file"`                //nolint:tagliatelle
	Host         string `json:"host,omitempty"`           //nolint:tagliatelle
	Port         int    `json:"port,omitempty"`           //nolint:tagliatelle
	DefaultLimit int    `json:"default_limit,omitempty"`  //nolint:tagliatelle
	EchoMetadata bool   `json:"echo_metadata,omitempty"`  //nolint:tagliatelle
}

// Sources tracks which config files contributed to a loaded Config.
type Sources struct {
	Global  string
	Project string
}

// Default returns the configuration's baseline values before any file or
// CLI override is applied.
func Default() Config {
	return Config{
		Host:         DefaultHost,
		Port:         DefaultPort,
		DefaultLimit: DefaultResultLimit,
		EchoMetadata: DefaultEchoMetadata,
	}
}

// Load resolves a Config with the following precedence (highest wins):
//  1. Defaults
//  2. Global user config (~/.config/completiond/config.json, or
//     $XDG_CONFIG_HOME/completiond/config.json if set)
//  3. One config file: the explicit file at configPath if configPath is
//     non-empty (it must exist), otherwise the project config file at
//     workDir/.completiond.json, if present. The project file is not read
//     when configPath is given.
//  4. CLI overrides (cliOverride's non-zero fields)
func Load(workDir, configPath string, cliOverride Config) (Config, Sources, error) {
	cfg := Default()

	var sources Sources

	globalCfg, globalPath, err := loadGlobalConfig()
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Global = globalPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, configPath)
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	cfg = merge(cfg, cliOverride)

	if err := validate(cfg); err != nil {
		return Config{}, Sources{}, err
	}

	return cfg, sources, nil
}

func globalConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "completiond", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "completiond", "config.json")
}

func loadGlobalConfig() (Config, string, error) {
	path := globalConfigPath()
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadConfigFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var path string

	mustExist := configPath != ""

	if mustExist {
		path = configPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
	} else {
		path = filepath.Join(workDir, ConfigFileName)
	}

	cfg, loaded, err := loadConfigFile(path, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s", errConfigFileRead, path)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	return cfg, true, nil
}

// merge overlays overlay's non-zero fields onto base.
func merge(base, overlay Config) Config {
	if overlay.DataFile != "" {
		base.DataFile = overlay.DataFile
	}

	if overlay.Host != "" {
		base.Host = overlay.Host
	}

	if overlay.Port != 0 {
		base.Port = overlay.Port
	}

	if overlay.DefaultLimit != 0 {
		base.DefaultLimit = overlay.DefaultLimit
	}

	if overlay.EchoMetadata {
		base.EchoMetadata = true
	}

	return base
}

func validate(cfg Config) error {
	if cfg.DataFile == "" {
		return errDataFileRequired
	}

	return nil
}

// Format returns cfg as indented JSON, for `completiond status`-style
// introspection.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("config: failed to format: %w", err)
	}

	return string(data), nil
}
