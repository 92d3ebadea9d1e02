package gain

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-spatial/dsp/core"
	"github.com/cwbudde/algo-spatial/dsp/interp"
)

// Kind names a gain curve family.
type Kind string

// Gain curve families.
const (
	KindLinear           Kind = "linear"
	KindExponential      Kind = "exponential"
	KindLogarithmic      Kind = "logarithmic"
	KindRealistic        Kind = "realistic"
	KindRealisticHorizon Kind = "realisticHorizon"
)

// ErrUnknownKind is returned for a gain model name that is not registered.
var ErrUnknownKind = errors.New("gain: unknown model kind")

// Kinds returns every registered kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindExponential, KindLinear, KindLogarithmic, KindRealistic, KindRealisticHorizon}
}

// Parse returns the kind registered under name.
func Parse(name string) (Kind, error) {
	k := Kind(name)
	if slices.Contains(Kinds(), k) {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Model maps distance to gain.
type Model interface {
	Kind() Kind
	Params() Params
	Calculate(distance float64) float64
}

// Params holds the tunable parameters shared by the gain curves. Each
// kind reads only the fields it needs.
type Params struct {
	MinDistance  float64 `yaml:"minDistance"`
	MaxDistance  float64 `yaml:"maxDistance"`
	MinGain      float64 `yaml:"minGain"`
	MaxGain      float64 `yaml:"maxGain"`
	Power        float64 `yaml:"power"`
	Base         float64 `yaml:"base"`
	HorizonPower float64 `yaml:"horizonPower"`
}

// Defaults returns the default parameters for kind.
func Defaults(kind Kind) (Params, error) {
	p := Params{
		MinDistance:  1,
		MaxDistance:  100,
		MinGain:      core.ZeroGain,
		MaxGain:      1,
		Power:        2,
		Base:         10,
		HorizonPower: 1,
	}

	switch kind {
	case KindLinear, KindExponential, KindLogarithmic, KindRealistic:
	case KindRealisticHorizon:
		p.MinDistance = 0
		p.MaxDistance = 1000
	default:
		return Params{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	return p, nil
}

// New builds a model of the given kind from its defaults and opts.
func New(kind Kind, opts ...Option) (Model, error) {
	p, err := Defaults(kind)
	if err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&p); err != nil {
			return nil, err
		}
	}

	switch kind {
	case KindLinear:
		return &Linear{params: p}, nil
	case KindExponential:
		return &Exponential{params: p}, nil
	case KindLogarithmic:
		return &Logarithmic{params: p}, nil
	case KindRealistic:
		return &Realistic{params: p}, nil
	default:
		return &RealisticHorizon{params: p}, nil
	}
}

// ratio maps distance onto [0,1] between MinDistance and MaxDistance.
func (p Params) ratio(distance float64) float64 {
	return core.Clamp(interp.Scale(sanitizeDistance(distance), p.MinDistance, p.MaxDistance, 0, 1), 0, 1)
}

// sanitizeDistance clamps negative and NaN distances to 0.
func sanitizeDistance(d float64) float64 {
	if !(d > 0) {
		return 0
	}
	return d
}

// bound applies the shared floor policy: clamp to [lo, hi], then never
// below core.ZeroGain. NaN collapses to the floor.
func bound(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return core.ZeroGain
	}

	v = core.Clamp(v, lo, hi)
	if v < core.ZeroGain {
		return core.ZeroGain
	}

	return v
}

// inversePower returns 1/max(1,d)^power.
func inversePower(distance, power float64) float64 {
	return 1 / math.Pow(math.Max(1, sanitizeDistance(distance)), power)
}
