package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/motion/cmd/motion/internal/config"
	"github.com/go-drift/motion/pkg/event"
	motiontest "github.com/go-drift/motion/pkg/testing"
	"github.com/go-drift/motion/pkg/tween"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Simulate a scene",
		Long: `Simulate a scene file frame by frame and print what happens.

The scene runs against a simulated clock at the configured frame rate, so
output is deterministic and independent of the machine. Each line is stamped
with the scene time and shows a property write, a lifecycle event, or an
action from the scene's actions list.

Flags:
  --events   Print lifecycle events and actions only, not property writes

Frame rate, default duration, default easing, and collision mode come from
motion.yaml; the scene's own fps overrides engine.fps.`,
		Usage: "motion run <scene.yaml> [--events]",
		Run:   runRun,
	})
}

func runRun(args []string) error {
	var path string
	var eventsOnly bool
	for _, arg := range args {
		switch {
		case arg == "--events":
			eventsOnly = true
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag %q", arg)
		case path == "":
			path = arg
		default:
			return fmt.Errorf("unexpected argument %q", arg)
		}
	}
	if path == "" {
		return fmt.Errorf("scene file is required\n\nUsage: motion run <scene.yaml>")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	scene, err := config.LoadScene(path)
	if err != nil {
		return err
	}
	return simulate(stdout, settings, scene, eventsOnly)
}

// simulation runs a scene against a fake clock and manual frames.
type simulation struct {
	w          io.Writer
	settings   *config.Resolved
	clock      *motiontest.FakeClock
	frames     *motiontest.ManualFrames
	engine     *tween.Engine
	names      map[any]string
	epoch      time.Time
	eventsOnly bool
}

func simulate(w io.Writer, settings *config.Resolved, scene *config.Scene, eventsOnly bool) error {
	step := settings.FrameInterval()
	if scene.FPS > 0 {
		step = time.Second / time.Duration(scene.FPS)
	}

	clock := motiontest.NewFakeClock()
	s := &simulation{
		w:          w,
		settings:   settings,
		clock:      clock,
		frames:     motiontest.NewManualFrames(clock),
		names:      make(map[any]string),
		epoch:      clock.Now(),
		eventsOnly: eventsOnly,
	}
	s.engine = tween.NewEngine(tween.Config{
		Clock:         clock,
		Frames:        s.frames,
		Accessor:      tween.AccessorFuncs{GetFunc: tween.PropertiesAccessor{}.Get, SetFunc: s.set},
		Emitter:       event.EmitterFunc(s.emit),
		DefaultEasing: settings.Easing,
	})

	targets := make(map[string]*motiontest.PropertyBag)
	for _, name := range scene.TargetNames() {
		bag := motiontest.NewPropertyBag(name, scene.Targets[name])
		targets[name] = bag
		s.names[bag] = name
	}

	anims, actions := scene.Animations, scene.Actions
	var elapsed time.Duration
	for ; ; elapsed += step {
		if elapsed > scene.Limit {
			return fmt.Errorf("scene did not settle within %s", scene.Limit)
		}
		clock.Set(s.epoch.Add(elapsed))

		for len(anims) > 0 && anims[0].At <= elapsed {
			if err := s.start(anims[0], targets); err != nil {
				return err
			}
			anims = anims[1:]
		}
		for len(actions) > 0 && actions[0].At <= elapsed {
			s.act(actions[0])
			actions = actions[1:]
		}

		s.frames.Pump()
		if len(anims) == 0 && len(actions) == 0 && s.frames.Pending() == 0 {
			break
		}
	}

	fmt.Fprintf(w, "settled at %s after %d frames\n", elapsed, s.engine.Ticks())
	return nil
}

func (s *simulation) start(a config.Animation, targets map[string]*motiontest.PropertyBag) error {
	list := make([]any, len(a.Targets))
	for i, name := range a.Targets {
		list[i] = targets[name]
	}

	collisions := a.Collisions
	if collisions == "" {
		collisions = s.settings.Collisions
	}
	opts := tween.Options{
		Delay:           a.Delay,
		Duration:        s.settings.Duration,
		AllowCollisions: collisions == config.CollisionsStack,
		Paused:          a.Paused,
	}
	if a.Duration != nil {
		opts.Duration = *a.Duration
	}
	if a.Easing != "" {
		opts.Easing = a.Easing
	}

	anim, err := s.engine.Animate(list, tween.Spec(a.Properties), opts)
	if err != nil {
		if a.Name != "" {
			return fmt.Errorf("animation %q: %w", a.Name, err)
		}
		return err
	}
	if a.Name != "" {
		s.engine.RegisterAnimation(a.Name, anim)
	}
	return nil
}

func (s *simulation) act(a config.Action) {
	s.printf("action %s %s", a.Do, a.Animation)
	anim := s.engine.Animation(a.Animation)
	var ok bool
	switch a.Do {
	case "start":
		ok = anim.Start()
	case "pause":
		ok = anim.Pause()
	case "resume":
		ok = anim.Resume()
	case "stop":
		ok = anim.Stop()
	}
	if !ok {
		s.printf("action %s %s had no effect", a.Do, a.Animation)
	}
}

func (s *simulation) set(target any, property string, v any) error {
	if err := (tween.PropertiesAccessor{}).Set(target, property, v); err != nil {
		return err
	}
	if !s.eventsOnly {
		s.printf("%s.%s = %s", s.names[target], property, formatValue(v))
	}
	return nil
}

func (s *simulation) emit(e event.Event) {
	if e.ID == 0 {
		if e.Animation == "" {
			s.printf("event %s", e.Name)
			return
		}
		s.printf("event %s %s", e.Name, e.Animation)
		return
	}
	s.printf("event %s %s.%s id=%d", e.Name, s.names[e.Target], e.Property, e.ID)
}

func (s *simulation) printf(format string, args ...any) {
	at := s.clock.Now().Sub(s.epoch)
	fmt.Fprintf(s.w, "%8s  %s\n", at, fmt.Sprintf(format, args...))
}

// formatValue prints numbers with at most four decimals.
func formatValue(v any) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}
