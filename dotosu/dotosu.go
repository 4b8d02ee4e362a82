// Package dotosu decodes the .osu text beatmap format into the timing
// markers and slider specs the geometry engine consumes. Only the
// sections that feed timing and path resolution are modeled; hitsound,
// editor and storyboard data is skipped.
package dotosu

import (
	"math"

	"osugeom/spline"
	"osugeom/timing"
)

// earlyVersionOffset is added to every timestamp of format versions
// before 5, which stored times 24ms early.
const earlyVersionOffset = 24

// Beatmap is the decoded subset of a .osu file.
type Beatmap struct {
	FormatVersion int
	Mode          int

	Title, Artist, Creator, Version string
	BeatmapID, BeatmapSetID         int

	// Difficulty settings; SliderMultiplier is the beatmap-wide base
	// velocity scale of the duration formula.
	HPDrainRate       float64
	CircleSize        float64
	OverallDifficulty float64
	ApproachRate      float64
	SliderMultiplier  float64
	SliderTickRate    float64

	Markers []timing.Marker
	Objects []HitObject
}

// Chain builds the stably-sorted timing chain for this beatmap.
func (b *Beatmap) Chain() *timing.Chain {
	return timing.NewChain(b.Markers)
}

// SliderDuration returns the duration in milliseconds of one traversal
// of the slider, or ok=false when the beatmap has no tempo in force at
// its start time.
func (b *Beatmap) SliderDuration(s Slider) (float64, bool) {
	return timing.SliderDurationMS(s.Spec(), s.Time, b.SliderMultiplier, b.Chain())
}

// HitObject is a circle, slider, spinner or hold note.
type HitObject interface {
	StartTime() timing.Millis
	Head() spline.ControlPoint
}

// Circle is a plain tap object.
type Circle struct {
	Pos  spline.ControlPoint
	Time timing.Millis
}

func (c Circle) StartTime() timing.Millis { return c.Time }
func (c Circle) Head() spline.ControlPoint { return c.Pos }

// Slider is a curved-path object. Control includes the head position
// as its first point.
type Slider struct {
	Pos         spline.ControlPoint
	Time        timing.Millis
	Kind        spline.Kind
	Control     []spline.ControlPoint
	Repeats     int // traversal count; 1 means head to tail once
	PixelLength float64
}

func (s Slider) StartTime() timing.Millis { return s.Time }
func (s Slider) Head() spline.ControlPoint { return s.Pos }

// Spec returns the slider's path as the spline engine's input.
func (s Slider) Spec() spline.SliderSpec {
	return spline.SliderSpec{
		Kind:        s.Kind,
		Control:     s.Control,
		PixelLength: s.PixelLength,
	}
}

// Spinner occupies a time range with no path.
type Spinner struct {
	Pos     spline.ControlPoint
	Time    timing.Millis
	EndTime timing.Millis
}

func (s Spinner) StartTime() timing.Millis { return s.Time }
func (s Spinner) Head() spline.ControlPoint { return s.Pos }

// Hold is a mania hold note.
type Hold struct {
	Pos     spline.ControlPoint
	Time    timing.Millis
	EndTime timing.Millis
}

func (h Hold) StartTime() timing.Millis { return h.Time }
func (h Hold) Head() spline.ControlPoint { return h.Pos }

// markerFromLine converts one [TimingPoints] row. A negative beat
// length declares a velocity marker whose multiplier is 100/-beatLen;
// a positive one declares a tempo marker.
func markerFromLine(parts []string, offset int) (timing.Marker, bool) {
	if len(parts) < 2 {
		return nil, false
	}
	// old maps store fractional timestamps here; truncate like the client
	t := timing.Millis(int(atof(parts[0], 0)) + offset)
	beatLen := atof(parts[1], math.NaN())
	if math.IsNaN(beatLen) || beatLen == 0 {
		return nil, false
	}

	if beatLen < 0 {
		return timing.VelocityMarker{At: t, Multiplier: 100.0 / -beatLen}, true
	}

	meter := 4
	if len(parts) >= 3 {
		meter = atoi(parts[2], 4)
		if meter == 0 {
			meter = 4
		}
	}
	return timing.TempoMarker{At: t, BeatLen: beatLen, Meter: meter}, true
}
