package timing

import "osugeom/spline"

// SliderDurationMS returns the time in milliseconds one traversal of
// the slider takes, or ok=false when no tempo is resolvable at start.
//
// The path length is traversed at 100 osu!pixels per beat, scaled by
// the beatmap's base velocity multiplier and the velocity multiplier in
// force at the slider's start time. Repeats are the caller's concern.
// When no path length is declared, the natural length of the flattened
// curve applies.
func SliderDurationMS(spec spline.SliderSpec, start Millis, baseVelocityScale float64, chain *Chain) (float64, bool) {
	tempo, ok := chain.TempoAt(start)
	if !ok {
		return 0, false
	}
	sv := chain.VelocityMultiplierAt(start)

	length := spec.PixelLength
	if length <= 0 {
		length = spline.FromControl(spec.Kind, spec.Control, 0).PixelLength()
	}

	pixelsPerBeat := 100.0 * baseVelocityScale * sv
	return length / pixelsPerBeat * tempo.BeatLen, true
}
