package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"osugeom/spline"
)

func lineSpec(length float64) spline.SliderSpec {
	return spline.SliderSpec{
		Kind: spline.Linear,
		Control: []spline.ControlPoint{
			{X: 0, Y: 0},
			{X: 100, Y: 0},
		},
		PixelLength: length,
	}
}

func TestSliderDuration(t *testing.T) {
	c := NewChain([]Marker{
		TempoMarker{At: 0, BeatLen: 500, Meter: 4},
	})

	// 300px at 100px/beat * 1.4, one beat = 500ms
	dur, ok := SliderDurationMS(lineSpec(300), 0, 1.4, c)
	assert.True(t, ok)
	assert.InDelta(t, 1071.43, dur, 0.01)
}

func TestSliderDurationUsesVelocityMultiplier(t *testing.T) {
	c := NewChain([]Marker{
		TempoMarker{At: 0, BeatLen: 500, Meter: 4},
		VelocityMarker{At: 0, Multiplier: 2.0},
	})

	dur, ok := SliderDurationMS(lineSpec(300), 0, 1.4, c)
	assert.True(t, ok)
	assert.InDelta(t, 535.71, dur, 0.01)
}

func TestSliderDurationNaturalLengthFallback(t *testing.T) {
	c := NewChain([]Marker{
		TempoMarker{At: 0, BeatLen: 1000, Meter: 4},
	})

	// no declared length: flatten the 100px line and use that
	dur, ok := SliderDurationMS(lineSpec(0), 0, 1.0, c)
	assert.True(t, ok)
	assert.InDelta(t, 1000.0, dur, 1e-6)
}

func TestSliderDurationUnresolvedWithoutTempo(t *testing.T) {
	_, ok := SliderDurationMS(lineSpec(300), 0, 1.4, NewChain(nil))
	assert.False(t, ok)

	c := NewChain([]Marker{
		TempoMarker{At: 1000, BeatLen: 500, Meter: 4},
	})
	_, ok = SliderDurationMS(lineSpec(300), 500, 1.4, c)
	assert.False(t, ok, "slider starts before the first tempo marker")
}
