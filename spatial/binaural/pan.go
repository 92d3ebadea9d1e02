package binaural

import (
	"math"

	"github.com/cwbudde/algo-spatial/dsp/core"
)

// PanGain returns the constant-power gain of a channel positioned at
// channel (-1 left, +1 right) for a source at pan in [-1, 1].
//
// Left and right gains satisfy l² + r² = 1; a centered source gets
// sqrt(1/2) on both sides. A channel of 0 is a mono path and always
// returns 1.
func PanGain(channel, pan float64) float64 {
	if math.IsNaN(pan) {
		pan = 0
	}

	theta := (core.Clamp(pan, -1, 1) + 1) * math.Pi / 4

	switch {
	case channel < 0:
		return math.Cos(theta)
	case channel > 0:
		return math.Sin(theta)
	default:
		return 1
	}
}
