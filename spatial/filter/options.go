package filter

import (
	"fmt"

	"github.com/cwbudde/algo-spatial/dsp/core"
)

// Option mutates filter model parameters before construction.
type Option func(*Params) error

func finite(name string, v float64) error {
	if !core.IsFinite(v) {
		return fmt.Errorf("filter %s must be finite: %f", name, v)
	}
	return nil
}

func set(name string, v float64, field func(*Params) *float64) Option {
	return func(p *Params) error {
		if err := finite(name, v); err != nil {
			return err
		}
		*field(p) = v
		return nil
	}
}

// WithConeRadius sets the frontal cone half-angle in radians.
func WithConeRadius(radians float64) Option {
	return set("cone radius", radians, func(p *Params) *float64 { return &p.ConeRadius })
}

// WithWidth sets the head width in meters.
func WithWidth(meters float64) Option {
	return set("width", meters, func(p *Params) *float64 { return &p.Width })
}

// WithFrequency sets the musical model's fundamental in Hz.
func WithFrequency(hz float64) Option {
	return set("frequency", hz, func(p *Params) *float64 { return &p.Frequency })
}

// WithMinColor sets the harmonic multiplier used behind the listener.
func WithMinColor(multiplier float64) Option {
	return set("min color", multiplier, func(p *Params) *float64 { return &p.MinColor })
}

// WithMaxColor sets the harmonic multiplier used inside the frontal cone.
func WithMaxColor(multiplier float64) Option {
	return set("max color", multiplier, func(p *Params) *float64 { return &p.MaxColor })
}

// WithPower sets the interpolation exponent.
func WithPower(power float64) Option {
	return set("power", power, func(p *Params) *float64 { return &p.Power })
}

// WithParams replaces every parameter at once.
func WithParams(params Params) Option {
	return func(p *Params) error {
		for _, v := range []float64{
			params.ConeRadius, params.Width, params.Frequency,
			params.MinColor, params.MaxColor, params.Power,
		} {
			if err := finite("parameter", v); err != nil {
				return err
			}
		}
		*p = params
		return nil
	}
}
