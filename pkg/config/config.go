// Package config loads the YAML configuration of the golox command.
//
// A configuration file looks like:
//
//	prompt: "lox> "
//	history_file: ~/.golox_history
//	color: auto
//	debug: false
//	max_call_depth: 10000
//	extensions: [math, string]
//
// Missing keys keep their defaults and unknown keys are rejected.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings of the command line interpreter.
type Config struct {
	Prompt        string `yaml:"prompt"`
	HistoryFile   string `yaml:"history_file"`
	Color         string `yaml:"color"`
	Debug         bool   `yaml:"debug"`
	DumpAST       bool   `yaml:"dump_ast"`
	MaxCallDepth  int    `yaml:"max_call_depth"`
	MaxParseDepth int    `yaml:"max_parse_depth"`
	CacheSize     int    `yaml:"cache_size"`

	// Extensions names the optional native libraries to install.
	Extensions []string `yaml:"extensions"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Prompt:        "> ",
		HistoryFile:   defaultHistoryFile(),
		Color:         ColorAuto,
		MaxCallDepth:  10000,
		MaxParseDepth: 512,
		CacheSize:     64,
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".golox_history")
}

// Load reads the YAML file at path on top of the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r on top of the defaults. An empty document yields
// the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	switch c.Color {
	case "":
		c.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	if strings.HasPrefix(c.HistoryFile, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			c.HistoryFile = filepath.Join(home, c.HistoryFile[2:])
		}
	}
	if c.MaxCallDepth < 0 || c.MaxParseDepth < 0 || c.CacheSize < 0 {
		return fmt.Errorf("depth and cache limits must not be negative")
	}
	return nil
}
