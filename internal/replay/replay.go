// Package replay records the inputs of a run and re-simulates them.
// A recording holds everything a run depends on besides the mission
// template: seed, dt clamp, unlock flags, and the per-tick input and dt.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/mission"
)

// formatVersion is bumped whenever the encoded layout changes.
const formatVersion = 1

// ErrVersion is returned for recordings written by an incompatible build.
var ErrVersion = errors.New("replay: unsupported recording version")

// Frame is one recorded tick.
type Frame struct {
	DT      float64       `msgpack:"dt"`
	MoveX   int8          `msgpack:"mx"`
	MoveY   int8          `msgpack:"my"`
	Actions []core.Action `msgpack:"a,omitempty"`
}

// Input rebuilds the tick's input frame.
func (f Frame) Input() core.InputFrame {
	in := core.NewInputFrame()
	in.MoveX = int(f.MoveX)
	in.MoveY = int(f.MoveY)
	for _, a := range f.Actions {
		in.Set(a)
	}
	return in
}

// Recording is a complete replay of one run.
type Recording struct {
	Version    int      `msgpack:"v"`
	ID         string   `msgpack:"id"`
	MissionID  string   `msgpack:"mission"`
	Difficulty string   `msgpack:"difficulty,omitempty"`
	Seed       int64    `msgpack:"seed"`
	MaxDT      float64  `msgpack:"max_dt"`
	Unlocks    []string `msgpack:"unlocks,omitempty"`
	Frames     []Frame  `msgpack:"frames"`
	// Hash is the final snapshot hash of the recorded run, 0 if unknown.
	Hash uint64 `msgpack:"hash"`
}

// Options returns the run options the recording was made with.
func (r Recording) Options() mission.Options {
	unlocks := make(core.Unlocks, len(r.Unlocks))
	for _, f := range r.Unlocks {
		unlocks[f] = true
	}
	return mission.Options{Unlocks: unlocks, MaxDT: r.MaxDT, Seed: r.Seed}
}

// Duration returns the recorded time before clamping.
func (r Recording) Duration() float64 {
	var d float64
	for _, f := range r.Frames {
		d += f.DT
	}
	return d
}

// Recorder captures the inputs fed to a run.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a run of missionID with opts.
func NewRecorder(missionID, difficulty string, opts mission.Options) *Recorder {
	return &Recorder{rec: Recording{
		Version:    formatVersion,
		ID:         uuid.NewString(),
		MissionID:  missionID,
		Difficulty: difficulty,
		Seed:       opts.Seed,
		MaxDT:      opts.MaxDT,
		Unlocks:    opts.Unlocks.Flags(),
	}}
}

// Record appends one tick. Call it with exactly what was passed to Tick.
func (r *Recorder) Record(in core.InputFrame, dt float64) {
	x, y := in.Axis()
	r.rec.Frames = append(r.rec.Frames, Frame{
		DT:      dt,
		MoveX:   int8(x), //#nosec G115 -- axis is clamped to [-1, 1]
		MoveY:   int8(y), //#nosec G115 -- axis is clamped to [-1, 1]
		Actions: in.Pressed(),
	})
}

// Len returns the number of recorded ticks.
func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Reset drops recorded ticks, keeping the header. Used on mission restart.
func (r *Recorder) Reset() {
	r.rec.Frames = nil
	r.rec.Hash = 0
}

// Finish stamps the final snapshot and returns the recording.
func (r *Recorder) Finish(final mission.Snapshot) Recording {
	r.rec.Hash = final.Hash()
	out := r.rec
	out.Frames = append([]Frame(nil), r.rec.Frames...)
	return out
}

// Encode writes the recording as msgpack.
func Encode(w io.Writer, rec Recording) error {
	if err := msgpack.NewEncoder(w).Encode(&rec); err != nil {
		return fmt.Errorf("replay: cannot encode recording: %w", err)
	}
	return nil
}

// Decode reads a msgpack recording.
func Decode(r io.Reader) (Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return Recording{}, fmt.Errorf("replay: cannot decode recording: %w", err)
	}
	if rec.Version != formatVersion {
		return Recording{}, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	return rec, nil
}

// Save writes the recording to path.
func Save(path string, rec Recording) error {
	f, err := os.Create(path) //#nosec G304 -- user-selected replay file
	if err != nil {
		return fmt.Errorf("replay: cannot create %s: %w", path, err)
	}
	if err := Encode(f, rec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a recording from path.
func Load(path string) (Recording, error) {
	f, err := os.Open(path) //#nosec G304 -- user-selected replay file
	if err != nil {
		return Recording{}, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Result is the outcome of re-simulating a recording.
type Result struct {
	Outcome  mission.Outcome
	Snapshot mission.Snapshot
	Ticks    int
	// Match is true when the recording carries a hash and the
	// re-simulated final snapshot hashes to the same value.
	Match bool
}

// Play re-simulates rec against cfg. observe, when not nil, receives the
// events of every tick.
func Play(cfg mission.Config, rec Recording, observe func([]mission.Event)) Result {
	run := mission.Start(cfg, rec.Options())
	ticks := 0
	for _, f := range rec.Frames {
		if run.Outcome() != mission.OutcomeRunning {
			break
		}
		run.Tick(f.Input(), f.DT)
		ticks++
		if observe != nil {
			observe(run.Events())
		}
	}
	snap := run.Snapshot()
	return Result{
		Outcome:  run.Outcome(),
		Snapshot: snap,
		Ticks:    ticks,
		Match:    rec.Hash != 0 && snap.Hash() == rec.Hash,
	}
}
