// Package config loads motion.yaml settings and scene files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/motion/pkg/easing"
)

// FileName is the optional settings file looked up in the project root.
const FileName = "motion.yaml"

// SupportedMajor is the file format major version this build reads.
const SupportedMajor = "v1"

// Collision modes.
const (
	CollisionsReplace = "replace"
	CollisionsStack   = "stack"
)

// Config represents the optional motion.yaml configuration.
type Config struct {
	Version string       `yaml:"version,omitempty"`
	Engine  EngineConfig `yaml:"engine"`
	Log     LogConfig    `yaml:"log"`
}

// EngineConfig contains engine defaults.
type EngineConfig struct {
	FPS        int           `yaml:"fps,omitempty"`
	Duration   time.Duration `yaml:"duration,omitempty"`
	Easing     string        `yaml:"easing,omitempty"`
	Collisions string        `yaml:"collisions,omitempty"`
}

// LogConfig controls error output.
type LogConfig struct {
	Verbose bool `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	Version    string
	FPS        int
	Duration   time.Duration
	Easing     string
	Collisions string
	Verbose    bool
}

// FrameInterval returns the simulated time between frames.
func (r *Resolved) FrameInterval() time.Duration {
	return time.Second / time.Duration(r.FPS)
}

// LoadOptional reads motion.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads motion.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	version, err := checkVersion(FileName, cfg.Version)
	if err != nil {
		return nil, err
	}

	fps := cfg.Engine.FPS
	switch {
	case fps == 0:
		fps = 60
	case fps < 0 || fps > 1000:
		return nil, fmt.Errorf("engine.fps must be between 1 and 1000 (got %d)", fps)
	}

	duration := cfg.Engine.Duration
	switch {
	case duration == 0:
		duration = 400 * time.Millisecond
	case duration < 0:
		return nil, fmt.Errorf("engine.duration cannot be negative (got %s)", duration)
	}

	ease := strings.TrimSpace(cfg.Engine.Easing)
	if ease == "" {
		ease = "swing"
	}
	if _, err := easing.Default().Get(ease); err != nil {
		return nil, fmt.Errorf("engine.easing: %w", err)
	}

	collisions, err := collisionMode(cfg.Engine.Collisions)
	if err != nil {
		return nil, fmt.Errorf("engine.collisions: %w", err)
	}

	return &Resolved{
		Root:       dir,
		Version:    version,
		FPS:        fps,
		Duration:   duration,
		Easing:     ease,
		Collisions: collisions,
		Verbose:    cfg.Log.Verbose,
	}, nil
}

// FindProjectRoot walks up from the current directory to find motion.yaml
// or go.mod. It returns the current directory when neither exists.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := cwd; ; {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// checkVersion validates a file format version. An empty version means the
// current one.
func checkVersion(file, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return SupportedMajor + ".0.0", nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%s: invalid version %q", file, v)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return "", fmt.Errorf("%s: version %s is not supported (want %s.x)", file, v, SupportedMajor)
	}
	return semver.Canonical(v), nil
}

func collisionMode(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", CollisionsReplace:
		return CollisionsReplace, nil
	case CollisionsStack:
		return CollisionsStack, nil
	default:
		return "", fmt.Errorf("unknown mode %q (use replace or stack)", s)
	}
}
