// Package timing resolves which tempo and scroll velocity are in force
// at any point in a beatmap's timeline, and derives slider durations
// from them.
package timing

import "sort"

// Millis is a location in time in signed milliseconds. Negative values
// address events before audio start.
type Millis int

// Marker is one entry of a timing chain: either a TempoMarker or a
// VelocityMarker.
type Marker interface {
	Time() Millis
}

// TempoMarker declares the beat duration and meter from its timestamp
// onward (an uninherited timing point).
type TempoMarker struct {
	At      Millis
	BeatLen float64 // milliseconds per beat
	Meter   int     // beats per measure
}

func (m TempoMarker) Time() Millis { return m.At }

// BPM returns the tempo in beats per minute.
func (m TempoMarker) BPM() float64 { return 60000.0 / m.BeatLen }

// VelocityMarker scales the base slider velocity from its timestamp
// onward, relative to the governing tempo section (an inherited timing
// point).
type VelocityMarker struct {
	At         Millis
	Multiplier float64
}

func (m VelocityMarker) Time() Millis { return m.At }

// Chain is a by-timestamp ordered sequence of timing markers. Queries
// are pure; a Chain never mutates after construction.
type Chain struct {
	markers []Marker
}

// NewChain copies and stably sorts the given markers by timestamp.
// The stable sort matters: a velocity marker frequently shares its
// timestamp with the tempo marker it modifies and must keep its
// declaration order so it resolves after the reset.
func NewChain(markers []Marker) *Chain {
	sorted := make([]Marker, len(markers))
	copy(sorted, markers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time() < sorted[j].Time()
	})
	return &Chain{markers: sorted}
}

// Markers returns the sorted markers. The slice is shared; treat it as
// read-only.
func (c *Chain) Markers() []Marker { return c.markers }

// TempoAt returns the tempo marker governing time t, or ok=false if no
// tempo marker is at or before t (including the empty chain).
func (c *Chain) TempoAt(t Millis) (TempoMarker, bool) {
	var current TempoMarker
	found := false
	for _, m := range c.markers {
		if m.Time() > t {
			break
		}
		if tempo, isTempo := m.(TempoMarker); isTempo {
			current = tempo
			found = true
		}
	}
	return current, found
}

// VelocityMultiplierAt returns the scroll-velocity multiplier in force
// at time t. Each tempo marker resets the multiplier to 1.0 until a
// later velocity marker overrides it; with nothing in force the base
// rate 1.0 applies.
func (c *Chain) VelocityMultiplierAt(t Millis) float64 {
	current := 1.0
	for _, m := range c.markers {
		if m.Time() > t {
			break
		}
		switch m := m.(type) {
		case TempoMarker:
			current = 1.0
		case VelocityMarker:
			current = m.Multiplier
		}
	}
	return current
}
