// Package ear computes, once per frame, what one emitter sounds like to a
// listener and pushes the result to a binaural output.
//
// The steps are: relative geometry, quantization of (distance, dot
// product), memo table lookup, model evaluation on a miss, output push.
// Model results for a quantized pair are reused until [Ear.Reset], so an
// Ear must be rebuilt whenever its models change.
//
// Ear is not thread-safe.
package ear

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-spatial/dsp/core"
	"github.com/cwbudde/algo-spatial/spatial/binaural"
	"github.com/cwbudde/algo-spatial/spatial/filter"
	"github.com/cwbudde/algo-spatial/spatial/gain"
	"github.com/cwbudde/algo-spatial/spatial/memo"
	"github.com/cwbudde/algo-spatial/spatial/physics"
)

const (
	defaultDistanceStep = 0.01
	defaultDotStep      = 0.01
)

// Output consumes the per-frame snapshot. *binaural.Binaural satisfies it.
type Output interface {
	Update(binaural.Snapshot) error
}

// Result describes one emitter as heard in one frame.
type Result struct {
	Distance   float64
	DotProduct float64
	Pan        float64

	Gain      float64
	Frequency float64

	// ReverbSend is the level sent to the external reverb.
	ReverbSend float64

	// Cached reports whether the model values came from the memo table.
	Cached bool
}

type entry struct {
	gain      float64
	frequency float64
}

// Option mutates ear construction parameters.
type Option func(*config) error

type config struct {
	distanceStep float64
	dotStep      float64
	reverbSend   float64
	output       Output
}

// WithGranularity sets the quantization steps for distance (meters) and
// dot product used as memo keys. Both must be > 0 and finite.
func WithGranularity(distanceStep, dotStep float64) Option {
	return func(cfg *config) error {
		if !(distanceStep > 0) || !core.IsFinite(distanceStep) ||
			!(dotStep > 0) || !core.IsFinite(dotStep) {
			return fmt.Errorf("ear granularity must be > 0 and finite: distance=%f dot=%f",
				distanceStep, dotStep)
		}
		cfg.distanceStep = distanceStep
		cfg.dotStep = dotStep
		return nil
	}
}

// WithReverbSend sets the reverb send level in [0, 1]. The send grows as
// the direct gain falls.
func WithReverbSend(level float64) Option {
	return func(cfg *config) error {
		if level < 0 || level > 1 || !core.IsFinite(level) {
			return fmt.Errorf("ear reverb send must be in [0, 1]: %f", level)
		}
		cfg.reverbSend = level
		return nil
	}
}

// WithOutput sets where Update pushes snapshots.
func WithOutput(out Output) Option {
	return func(cfg *config) error {
		cfg.output = out
		return nil
	}
}

// Ear evaluates one emitter against one listener with its own models and
// memo table.
type Ear struct {
	gain   gain.Model
	filter filter.Model

	distanceQ memo.Quantizer
	dotQ      memo.Quantizer
	cache     *memo.Table2[entry]

	reverbSend float64
	output     Output
	last       Result
}

// New returns an ear evaluating g and f.
func New(g gain.Model, f filter.Model, opts ...Option) (*Ear, error) {
	if g == nil || f == nil {
		return nil, errors.New("ear: gain and filter models must not be nil")
	}

	cfg := config{
		distanceStep: defaultDistanceStep,
		dotStep:      defaultDotStep,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Ear{
		gain:       g,
		filter:     f,
		distanceQ:  memo.Quantizer{Step: cfg.distanceStep},
		dotQ:       memo.Quantizer{Step: cfg.dotStep},
		cache:      memo.NewTable2[entry](),
		reverbSend: cfg.reverbSend,
		output:     cfg.output,
	}, nil
}

// GainModel returns the gain model.
func (e *Ear) GainModel() gain.Model { return e.gain }

// FilterModel returns the filter model.
func (e *Ear) FilterModel() filter.Model { return e.filter }

// Last returns the result of the most recent Compute or Update.
func (e *Ear) Last() Result { return e.last }

// CacheStats returns the memo table counters.
func (e *Ear) CacheStats() memo.Stats { return e.cache.Stats() }

// CacheLen returns the number of memoized pairs.
func (e *Ear) CacheLen() int { return e.cache.Len() }

// SetOutput replaces the output Update pushes to. A nil output disables
// pushing.
func (e *Ear) SetOutput(out Output) { e.output = out }

// Reset clears the memo table.
func (e *Ear) Reset() { e.cache.Reset() }

// Destroy releases the memo table and detaches the output.
func (e *Ear) Destroy() {
	e.cache.Destroy()
	e.output = nil
}

// Compute evaluates emitter relative to listener without pushing to the
// output.
//
// On a cache miss both models are evaluated at the grid point of the
// quantized (distance, dot product) key rather than at the raw values, so
// every input sharing a key gets the same result. The gain error is
// therefore bounded by the curve slope over half a distance step; near
// 1 m under an inverse-square law the default step keeps it below 0.1 dB.
func (e *Ear) Compute(listener, emitter *physics.Body) Result {
	distance, dot, pan := Geometry(listener, emitter)

	dk, ak := e.distanceQ.Key(distance), e.dotQ.Key(dot)

	v, cached := e.cache.Probe(dk, ak)
	if !cached {
		v = entry{
			gain:      e.gain.Calculate(e.distanceQ.Snap(distance)),
			frequency: e.filter.Calculate(core.Clamp(e.dotQ.Snap(dot), -1, 1)),
		}
		e.cache.Set(dk, ak, v)
	}

	e.last = Result{
		Distance:   distance,
		DotProduct: dot,
		Pan:        pan,
		Gain:       v.gain,
		Frequency:  v.frequency,
		ReverbSend: e.send(v.gain),
		Cached:     cached,
	}

	return e.last
}

// Update evaluates emitter relative to listener and pushes the snapshot
// to the output, if any.
func (e *Ear) Update(listener, emitter *physics.Body) (Result, error) {
	r := e.Compute(listener, emitter)
	if e.output == nil {
		return r, nil
	}

	err := e.output.Update(binaural.Snapshot{
		Gain:      r.Gain,
		Frequency: r.Frequency,
		Pan:       r.Pan,
	})
	if err != nil {
		return r, fmt.Errorf("ear: output update: %w", err)
	}

	return r, nil
}

func (e *Ear) send(g float64) float64 {
	s := e.reverbSend * (1 - g)
	if s < core.ZeroGain {
		return core.ZeroGain
	}
	return s
}

// Geometry returns the distance from listener to emitter, the dot product
// of the listener's forward vector with the direction to the emitter, and
// the emitter's pan (dot product with the listener's right vector).
//
// When the two positions coincide the direction is undefined; the
// emitter is then treated as directly ahead (dot 1, pan 0). A
// non-finite distance (an infinite or NaN position) is reported as +Inf,
// directly ahead, so the gain models place the emitter at the silence
// floor.
func Geometry(listener, emitter *physics.Body) (distance, dot, pan float64) {
	relative := emitter.Position.Subtract(listener.Position)

	distance = relative.Distance()
	switch {
	case distance == 0:
		return 0, 1, 0
	case !core.IsFinite(distance):
		return math.Inf(1), 1, 0
	}

	direction := relative.Scale(1 / distance)
	dot = clampUnit(direction.DotProduct(listener.Euler()))
	pan = clampUnit(direction.DotProduct(listener.Right()))

	return distance, dot, pan
}

func clampUnit(v float64) float64 {
	return core.Clamp(v, -1, 1)
}
