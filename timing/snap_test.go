package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapToBeat(t *testing.T) {
	tempo := TempoMarker{At: 0, BeatLen: 500, Meter: 4}

	// 1500ms into a 2000ms measure is the 3/4 division
	pos, ok := SnapToBeat(1500, tempo)
	assert.True(t, ok)
	assert.Equal(t, 0, pos.Measures)
	assert.Equal(t, 3, pos.Num)
	assert.Equal(t, 4, pos.Denom)
	assert.Equal(t, Millis(1500), pos.Millis())

	pos, ok = SnapToBeat(4500, tempo)
	assert.True(t, ok)
	assert.Equal(t, 2, pos.Measures)
	assert.Equal(t, Millis(4500), pos.Millis())
}

func TestSnapToBeatWithinLeniency(t *testing.T) {
	tempo := TempoMarker{At: 0, BeatLen: 500, Meter: 4}

	pos, ok := SnapToBeat(1502, tempo)
	assert.True(t, ok)
	assert.Equal(t, Millis(1500), pos.Millis())
}

func TestSnapToBeatOffGrid(t *testing.T) {
	tempo := TempoMarker{At: 0, BeatLen: 500, Meter: 4}

	// 1506 is 6ms from the nearest 1/16 division
	_, ok := SnapToBeat(1506, tempo)
	assert.False(t, ok)
}
