package filter

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-spatial/dsp/core"
	"github.com/cwbudde/algo-spatial/dsp/interp"
)

// Kind names a filter curve family.
type Kind string

// Filter curve families.
const (
	KindHead    Kind = "head"
	KindMusical Kind = "musical"
)

// ErrUnknownKind is returned for a filter model name that is not registered.
var ErrUnknownKind = errors.New("filter: unknown model kind")

// Kinds returns every registered kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindHead, KindMusical}
}

// Parse returns the kind registered under name.
func Parse(name string) (Kind, error) {
	k := Kind(name)
	if slices.Contains(Kinds(), k) {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Model maps a direction dot product to a frequency.
type Model interface {
	Kind() Kind
	Params() Params
	Calculate(dotProduct float64) float64
}

// Params holds the tunable parameters of the filter curves.
type Params struct {
	// ConeRadius sets the upper end of the dot product mapping to
	// sin(ConeRadius). Directions within pi/2 - ConeRadius of forward
	// receive the brightest output.
	ConeRadius float64 `yaml:"coneRadius"`

	// Width is the head width in meters (head model).
	Width float64 `yaml:"width"`

	// Frequency is the fundamental the color is derived from (musical model).
	Frequency float64 `yaml:"frequency"`
	MinColor  float64 `yaml:"minColor"`
	MaxColor  float64 `yaml:"maxColor"`

	Power float64 `yaml:"power"`
}

// Defaults returns the default parameters for kind.
func Defaults(kind Kind) (Params, error) {
	if !slices.Contains(Kinds(), kind) {
		return Params{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	return Params{
		ConeRadius: math.Pi / 4,
		Width:      0.1524,
		Frequency:  440,
		MinColor:   1,
		MaxColor:   8,
		Power:      2,
	}, nil
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

	if kind == KindHead {
		return &Head{params: p}, nil
	}
	return &Musical{params: p}, nil
}

// ratio maps dotProduct from [-1, sin(ConeRadius)] onto [0, 1].
// NaN is treated as directly ahead.
func (p Params) ratio(dotProduct float64) float64 {
	if math.IsNaN(dotProduct) {
		dotProduct = 1
	}
	return core.Clamp(interp.Scale(dotProduct, -1, math.Sin(p.ConeRadius), 0, 1), 0, 1)
}

// bound caps v at core.MaxFrequency and lifts non-positive or NaN values
// to core.MinFrequency.
func bound(v float64) float64 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return core.MinFrequency
	case v > core.MaxFrequency:
		return core.MaxFrequency
	}
	return v
}

// Head interpolates from the head-shadow cutoff SpeedOfSound/Width behind
// the listener to core.MaxFrequency inside the frontal cone.
type Head struct {
	params Params
}

// Kind returns KindHead.
func (m *Head) Kind() Kind { return KindHead }

// Params returns the model parameters.
func (m *Head) Params() Params { return m.params }

// ShadowFrequency returns the cutoff applied directly behind the listener.
func (m *Head) ShadowFrequency() float64 {
	return bound(core.SpeedOfSound / m.params.Width)
}

// Calculate returns the cutoff frequency for dotProduct.
func (m *Head) Calculate(dotProduct float64) float64 {
	p := m.params
	return bound(interp.LerpExp(core.SpeedOfSound/p.Width, core.MaxFrequency, p.ratio(dotProduct), p.Power))
}

// Musical interpolates a harmonic color from Frequency*MinColor behind
// the listener to Frequency*MaxColor inside the frontal cone.
type Musical struct {
	params Params
}

// Kind returns KindMusical.
func (m *Musical) Kind() Kind { return KindMusical }

// Params returns the model parameters.
func (m *Musical) Params() Params { return m.params }

// Calculate returns the color frequency for dotProduct.
func (m *Musical) Calculate(dotProduct float64) float64 {
	p := m.params
	return bound(interp.LerpExp(p.Frequency*p.MinColor, p.Frequency*p.MaxColor, p.ratio(dotProduct), p.Power))
}
