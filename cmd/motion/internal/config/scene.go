package config

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Scene is a scripted set of tweens run headlessly by "motion run".
type Scene struct {
	Version string `yaml:"version,omitempty"`
	// FPS overrides engine.fps for this scene.
	FPS int `yaml:"fps,omitempty"`
	// Limit bounds the simulated time. Defaults to one minute.
	Limit time.Duration `yaml:"limit,omitempty"`
	// Targets maps target names to their initial property values.
	Targets    map[string]map[string]any `yaml:"targets"`
	Animations []Animation               `yaml:"animations"`
	Actions    []Action                  `yaml:"actions,omitempty"`
}

// Animation starts one set of tweens at a point in scene time.
type Animation struct {
	Name       string         `yaml:"name,omitempty"`
	At         time.Duration  `yaml:"at,omitempty"`
	Targets    []string       `yaml:"targets"`
	Properties map[string]any `yaml:"properties"`
	Duration   *time.Duration `yaml:"duration,omitempty"`
	Delay      time.Duration  `yaml:"delay,omitempty"`
	Easing     string         `yaml:"easing,omitempty"`
	Collisions string         `yaml:"collisions,omitempty"`
	Paused     bool           `yaml:"paused,omitempty"`
}

// Action controls a named animation at a point in scene time.
type Action struct {
	At        time.Duration `yaml:"at"`
	Do        string        `yaml:"do"`
	Animation string        `yaml:"animation"`
}

// Action verbs.
var actionVerbs = []string{"start", "pause", "resume", "stop"}

// DefaultLimit bounds scenes that set no limit.
const DefaultLimit = time.Minute

// LoadScene reads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	return ParseScene(path, data)
}

// ParseScene parses and validates scene YAML. name labels errors.
func ParseScene(name string, data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	version, err := checkVersion(name, s.Version)
	if err != nil {
		return nil, err
	}
	s.Version = version
	if s.Limit == 0 {
		s.Limit = DefaultLimit
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &s, nil
}

func (s *Scene) validate() error {
	if s.FPS < 0 || s.FPS > 1000 {
		return fmt.Errorf("fps must be between 1 and 1000 (got %d)", s.FPS)
	}
	if s.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if len(s.Animations) == 0 {
		return fmt.Errorf("no animations")
	}

	names := make(map[string]bool)
	for i, a := range s.Animations {
		if len(a.Targets) == 0 {
			return fmt.Errorf("animations[%d]: no targets", i)
		}
		for _, t := range a.Targets {
			if _, ok := s.Targets[t]; !ok {
				return fmt.Errorf("animations[%d]: unknown target %q", i, t)
			}
		}
		if len(a.Properties) == 0 {
			return fmt.Errorf("animations[%d]: no properties", i)
		}
		if a.At < 0 || a.Delay < 0 || (a.Duration != nil && *a.Duration < 0) {
			return fmt.Errorf("animations[%d]: negative time", i)
		}
		if a.Collisions != "" {
			mode, err := collisionMode(a.Collisions)
			if err != nil {
				return fmt.Errorf("animations[%d]: %w", i, err)
			}
			s.Animations[i].Collisions = mode
		}
		if a.Name != "" {
			if names[a.Name] {
				return fmt.Errorf("animations[%d]: duplicate name %q", i, a.Name)
			}
			names[a.Name] = true
		}
	}

	for i, act := range s.Actions {
		verb := strings.ToLower(act.Do)
		if !slices.Contains(actionVerbs, verb) {
			return fmt.Errorf("actions[%d]: unknown action %q (use %s)", i, act.Do, strings.Join(actionVerbs, ", "))
		}
		s.Actions[i].Do = verb
		if !names[act.Animation] {
			return fmt.Errorf("actions[%d]: unknown animation %q", i, act.Animation)
		}
		if act.At < 0 {
			return fmt.Errorf("actions[%d]: negative time", i)
		}
	}

	sort.SliceStable(s.Animations, func(i, j int) bool { return s.Animations[i].At < s.Animations[j].At })
	sort.SliceStable(s.Actions, func(i, j int) bool { return s.Actions[i].At < s.Actions[j].At })
	return nil
}

// TargetNames returns the target names in sorted order.
func (s *Scene) TargetNames() []string {
	names := make([]string, 0, len(s.Targets))
	for name := range s.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
