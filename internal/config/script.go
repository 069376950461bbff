package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/sortie/internal/core"
)

// Segment holds inputs steady for a span of mission time. Hold actions
// are pressed on every tick of the segment, Tap actions on its first tick.
type Segment struct {
	Seconds float64  `yaml:"seconds"`
	MoveX   int      `yaml:"move_x"`
	MoveY   int      `yaml:"move_y"`
	Hold    []string `yaml:"hold"`
	Tap     []string `yaml:"tap"`

	hold []core.Action
	tap  []core.Action
}

// Script is a scripted input timeline for headless runs.
type Script struct {
	Segments []Segment
}

// LoadScript reads an input script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-selected script file
	if err != nil {
		return Script{}, fmt.Errorf("config: failed to read script %s: %w", path, err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML list of segments.
func ParseScript(data []byte) (Script, error) {
	var segs []Segment
	if err := yaml.Unmarshal(data, &segs); err != nil {
		return Script{}, fmt.Errorf("config: failed to parse script: %w", err)
	}
	for i := range segs {
		s := &segs[i]
		if s.Seconds <= 0 {
			return Script{}, fmt.Errorf("config: script segment %d: seconds must be positive", i)
		}
		var err error
		if s.hold, err = parseActions(s.Hold); err != nil {
			return Script{}, fmt.Errorf("config: script segment %d: %w", i, err)
		}
		if s.tap, err = parseActions(s.Tap); err != nil {
			return Script{}, fmt.Errorf("config: script segment %d: %w", i, err)
		}
	}
	return Script{Segments: segs}, nil
}

// Duration returns the total scripted time.
func (s Script) Duration() float64 {
	var d float64
	for _, seg := range s.Segments {
		d += seg.Seconds
	}
	return d
}

// Frame returns the input for the tick that starts at mission time t and
// lasts dt. Past the end of the script the frame is idle.
func (s Script) Frame(t, dt float64) core.InputFrame {
	f := core.NewInputFrame()
	start := 0.0
	for _, seg := range s.Segments {
		end := start + seg.Seconds
		if t < end {
			f.MoveX = seg.MoveX
			f.MoveY = seg.MoveY
			for _, a := range seg.hold {
				f.Set(a)
			}
			if t-dt < start {
				for _, a := range seg.tap {
					f.Set(a)
				}
			}
			return f
		}
		start = end
	}
	return f
}

// ParseAction maps an action name such as "fire" or "charge_release" to
// its action.
func ParseAction(name string) (core.Action, bool) {
	key := strings.ReplaceAll(name, "_", "")
	for a := core.ActionJump; a <= core.ActionQuit; a++ {
		if strings.EqualFold(a.String(), key) {
			return a, true
		}
	}
	return core.ActionNone, false
}

func parseActions(names []string) ([]core.Action, error) {
	out := make([]core.Action, 0, len(names))
	for _, n := range names {
		a, ok := ParseAction(n)
		if !ok {
			return nil, fmt.Errorf("unknown action %q", n)
		}
		out = append(out, a)
	}
	return out, nil
}
