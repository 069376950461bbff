// Package timeline maps elapsed mission time onto named cycle phases.
//
// Nothing here is stateful: a Cycle is a description and Cycle.At is a pure
// function of elapsed time. Hazards derive their phase from it every tick
// instead of counting frames, so a hazard queried after a pause, a long
// frame or a rewind lands in the same phase it would have reached by
// stepping there frame by frame.
package timeline

import "math"

// Phase names a sub-interval of a hazard cycle.
type Phase uint8

const (
	Dormant Phase = iota
	Warning
	Active
	Descend
	Hold
	Retract
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case Dormant:
		return "dormant"
	case Warning:
		return "warning"
	case Active:
		return "active"
	case Descend:
		return "descend"
	case Hold:
		return "hold"
	case Retract:
		return "retract"
	default:
		return "unknown"
	}
}

// Segment is one named interval inside a cycle.
type Segment struct {
	Phase    Phase
	Duration float64
}

// Cycle describes a repeating sequence of segments.
// Segments are laid end to end from the start of each cycle; whatever
// remains of Length after the last segment is spent in Rest.
type Cycle struct {
	Length   float64 // Cycle length in seconds; <= 0 means sum of segments
	Offset   float64 // Time of the first cycle start
	Segments []Segment
	Rest     Phase // Phase outside every segment (zero value is Dormant)
}

// Sample is the result of evaluating a cycle at one instant.
type Sample struct {
	Phase    Phase
	Index    int     // Segment index, -1 while resting
	Fraction float64 // Progress through the segment in [0, 1)
	Local    float64 // Time since the current cycle started
	Cycle    int64   // Cycle stamp: floor((elapsed-Offset)/Length), -1 before Offset
}

// New builds a cycle from a length and its segments.
func New(length float64, segments ...Segment) Cycle {
	return Cycle{Length: length, Segments: segments}
}

// Span returns the effective cycle length.
func (c Cycle) Span() float64 {
	if c.Length > 0 {
		return c.Length
	}
	total := 0.0
	for _, s := range c.Segments {
		if s.Duration > 0 {
			total += s.Duration
		}
	}
	return total
}

// At evaluates the cycle at elapsed seconds.
func (c Cycle) At(elapsed float64) Sample {
	rest := Sample{Phase: c.Rest, Index: -1}

	if math.IsNaN(elapsed) || elapsed < c.Offset {
		rest.Cycle = -1
		return rest
	}

	span := c.Span()
	if span <= 0 {
		return rest
	}

	since := elapsed - c.Offset
	stamp := math.Floor(since / span)
	local := since - stamp*span
	// Floating point can leave local a hair outside [0, span).
	if local < 0 {
		local = 0
	}
	if local >= span {
		local = 0
		stamp++
	}

	rest.Local = local
	rest.Cycle = int64(stamp)

	start := 0.0
	for i, s := range c.Segments {
		if s.Duration <= 0 {
			continue
		}
		end := start + s.Duration
		if local < end {
			return Sample{
				Phase:    s.Phase,
				Index:    i,
				Fraction: (local - start) / s.Duration,
				Local:    local,
				Cycle:    rest.Cycle,
			}
		}
		start = end
	}

	if remain := span - start; remain > 0 {
		rest.Fraction = (local - start) / remain
	}
	return rest
}

// PhaseAt is shorthand for At(elapsed).Phase.
func (c Cycle) PhaseAt(elapsed float64) Phase {
	return c.At(elapsed).Phase
}

// Stamp returns the cycle stamp at elapsed seconds.
func (c Cycle) Stamp(elapsed float64) int64 {
	return c.At(elapsed).Cycle
}

// Clock accumulates frame deltas into a monotonic elapsed time.
type Clock struct {
	elapsed float64
	maxDT   float64
}

// NewClock creates a clock that clamps every advance to [0, maxDT].
// A non-positive maxDT disables the upper clamp.
func NewClock(maxDT float64) *Clock {
	return &Clock{maxDT: maxDT}
}

// Advance clamps dt, adds it to the clock and returns the clamped value.
func (c *Clock) Advance(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	if c.maxDT > 0 && dt > c.maxDT {
		dt = c.maxDT
	}
	c.elapsed += dt
	return dt
}

// Elapsed returns the accumulated time.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Reset rewinds the clock to zero.
func (c *Clock) Reset() {
	c.elapsed = 0
}
