package physics

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/cwbudde/algo-spatial/spatial/geom"
)

// Wander drives a body's velocity from smooth OpenSimplex noise so that
// generative scenes can move emitters without scripted paths.
//
// The same seed always produces the same trajectory.
type Wander struct {
	noise opensimplex.Noise
	speed float64
	rate  float64
	time  float64
}

// NewWander returns a driver with the given seed, top speed in m/s and
// rate (noise cycles per second, roughly how often direction changes).
func NewWander(seed int64, speed, rate float64) *Wander {
	return &Wander{
		noise: opensimplex.NewNormalized(seed),
		speed: speed,
		rate:  rate,
	}
}

// Drive advances the noise clock by delta seconds and writes a new
// velocity into b. Each axis samples an independent noise row.
func (w *Wander) Drive(b *Body, delta float64) {
	if !(delta > 0) || math.IsInf(delta, 0) {
		return
	}

	w.time += delta * w.rate

	b.Velocity = geom.Vec(
		w.axis(0),
		w.axis(1),
		w.axis(2),
	).Scale(w.speed)
}

// axis maps normalized noise in [0,1] to [-1,1].
func (w *Wander) axis(row float64) float64 {
	return w.noise.Eval2(w.time, row*17.31)*2 - 1
}
