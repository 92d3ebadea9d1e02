package gain

import (
	"fmt"

	"github.com/cwbudde/algo-spatial/dsp/core"
)

// Option mutates gain model parameters before construction.
type Option func(*Params) error

func finite(name string, v float64) error {
	if !core.IsFinite(v) {
		return fmt.Errorf("gain %s must be finite: %f", name, v)
	}
	return nil
}

// WithMinDistance sets the distance at which attenuation starts.
func WithMinDistance(d float64) Option {
	return func(p *Params) error {
		if err := finite("min distance", d); err != nil {
			return err
		}
		p.MinDistance = d
		return nil
	}
}

// WithMaxDistance sets the distance at which attenuation reaches MinGain.
func WithMaxDistance(d float64) Option {
	return func(p *Params) error {
		if err := finite("max distance", d); err != nil {
			return err
		}
		p.MaxDistance = d
		return nil
	}
}

// WithMinGain sets the gain reached at MaxDistance.
func WithMinGain(g float64) Option {
	return func(p *Params) error {
		if err := finite("min gain", g); err != nil {
			return err
		}
		p.MinGain = g
		return nil
	}
}

// WithMaxGain sets the gain at or inside MinDistance.
func WithMaxGain(g float64) Option {
	return func(p *Params) error {
		if err := finite("max gain", g); err != nil {
			return err
		}
		p.MaxGain = g
		return nil
	}
}

// WithPower sets the curve exponent (exponential) or the inverse-power
// law exponent (realistic family).
func WithPower(power float64) Option {
	return func(p *Params) error {
		if err := finite("power", power); err != nil {
			return err
		}
		p.Power = power
		return nil
	}
}

// WithBase sets the logarithm base of the logarithmic curve.
func WithBase(base float64) Option {
	return func(p *Params) error {
		if err := finite("base", base); err != nil {
			return err
		}
		p.Base = base
		return nil
	}
}

// WithHorizonPower sets the exponent of the horizon fade.
func WithHorizonPower(power float64) Option {
	return func(p *Params) error {
		if err := finite("horizon power", power); err != nil {
			return err
		}
		p.HorizonPower = power
		return nil
	}
}

// WithParams replaces every parameter at once.
func WithParams(params Params) Option {
	return func(p *Params) error {
		for _, f := range []struct {
			name string
			v    float64
		}{
			{"min distance", params.MinDistance},
			{"max distance", params.MaxDistance},
			{"min gain", params.MinGain},
			{"max gain", params.MaxGain},
			{"power", params.Power},
			{"base", params.Base},
			{"horizon power", params.HorizonPower},
		} {
			if err := finite(f.name, f.v); err != nil {
				return err
			}
		}
		*p = params
		return nil
	}
}
