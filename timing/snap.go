package timing

import "math"

// snapDivisors are the beat snappings the editor offers.
var snapDivisors = []int{1, 2, 3, 4, 6, 8, 12, 16}

// snapLeniency is how far, in milliseconds, a timestamp may sit from
// the nearest snapping and still count as on it.
const snapLeniency = 3.0

// BeatPosition locates a timestamp relative to a tempo marker as whole
// measures plus a fraction Num/Denom of a measure.
type BeatPosition struct {
	Tempo    TempoMarker
	Measures int
	Num      int
	Denom    int
}

// Millis converts the beat-relative position back to an absolute
// timestamp.
func (b BeatPosition) Millis() Millis {
	perMeasure := b.Tempo.BeatLen * float64(b.Tempo.Meter)
	at := float64(b.Tempo.At) +
		perMeasure*float64(b.Measures) +
		perMeasure*float64(b.Num)/float64(b.Denom)
	return Millis(at)
}

// SnapToBeat expresses t relative to the given tempo marker, snapped to
// the nearest editor beat division. ok=false means t sits further than
// the leniency from every snapping and has no beat-relative form.
func SnapToBeat(t Millis, tempo TempoMarker) (BeatPosition, bool) {
	perMeasure := tempo.BeatLen * float64(tempo.Meter)

	measures := int(float64(t-tempo.At) / perMeasure)
	measureStart := float64(tempo.At) + float64(measures)*perMeasure
	offset := float64(t) - measureStart

	best := BeatPosition{Tempo: tempo, Measures: measures}
	bestDelta := math.Inf(1)
	for _, denom := range snapDivisors {
		// scan a full measure past the end as well, since offset may
		// round up into the next measure
		for i := 0; i <= denom*2; i++ {
			snapAt := perMeasure * float64(i) / float64(denom)
			delta := math.Abs(offset - snapAt)
			if delta < bestDelta {
				bestDelta = delta
				best.Num = i
				best.Denom = denom
			}
		}
	}

	if bestDelta > snapLeniency {
		return BeatPosition{}, false
	}
	return best, true
}
