package gain

import (
	"math"

	"github.com/cwbudde/algo-spatial/dsp/interp"
)

// Linear falls off in a straight line from MaxGain at MinDistance to
// MinGain at MaxDistance.
type Linear struct {
	params Params
}

// Kind returns KindLinear.
func (m *Linear) Kind() Kind { return KindLinear }

// Params returns the model parameters.
func (m *Linear) Params() Params { return m.params }

// Calculate returns the gain at distance.
func (m *Linear) Calculate(distance float64) float64 {
	p := m.params
	return bound(interp.Lerp(p.MaxGain, p.MinGain, p.ratio(distance)), p.MinGain, p.MaxGain)
}

// Exponential falls off along (1-ratio)^Power, losing most of its level
// close to MinDistance.
type Exponential struct {
	params Params
}

// Kind returns KindExponential.
func (m *Exponential) Kind() Kind { return KindExponential }

// Params returns the model parameters.
func (m *Exponential) Params() Params { return m.params }

// Calculate returns the gain at distance.
func (m *Exponential) Calculate(distance float64) float64 {
	p := m.params
	return bound(interp.LerpExp(p.MinGain, p.MaxGain, 1-p.ratio(distance), p.Power), p.MinGain, p.MaxGain)
}

// Logarithmic falls off along log_Base(1 + ratio*(Base-1)), decaying
// slowly toward MaxDistance.
type Logarithmic struct {
	params Params
}

// Kind returns KindLogarithmic.
func (m *Logarithmic) Kind() Kind { return KindLogarithmic }

// Params returns the model parameters.
func (m *Logarithmic) Params() Params { return m.params }

// Calculate returns the gain at distance.
func (m *Logarithmic) Calculate(distance float64) float64 {
	p := m.params
	return bound(interp.LerpLog(p.MaxGain, p.MinGain, p.ratio(distance), p.Base), p.MinGain, p.MaxGain)
}

// Realistic follows the inverse-power law 1/max(1,d)^Power over an
// unbounded domain. Only Power is read.
type Realistic struct {
	params Params
}

// Kind returns KindRealistic.
func (m *Realistic) Kind() Kind { return KindRealistic }

// Params returns the model parameters.
func (m *Realistic) Params() Params { return m.params }

// Calculate returns the gain at distance.
func (m *Realistic) Calculate(distance float64) float64 {
	return bound(inversePower(distance, m.params.Power), 0, 1)
}

// RealisticHorizon follows the inverse-power law scaled by a horizon fade
// (1 - ratio)^HorizonPower, reaching the silence floor at MaxDistance.
type RealisticHorizon struct {
	params Params
}

// Kind returns KindRealisticHorizon.
func (m *RealisticHorizon) Kind() Kind { return KindRealisticHorizon }

// Params returns the model parameters.
func (m *RealisticHorizon) Params() Params { return m.params }

// Calculate returns the gain at distance.
func (m *RealisticHorizon) Calculate(distance float64) float64 {
	p := m.params
	r := p.ratio(distance)

	horizon := 0.0
	if r < 1 {
		horizon = math.Pow(1-r, p.HorizonPower)
	}

	return bound(inversePower(distance, p.Power)*horizon, 0, 1)
}
