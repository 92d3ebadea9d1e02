// Package gain provides distance attenuation models.
//
// Each model maps a distance in meters to a linear gain. For fixed
// parameters every model is non-increasing in distance, and every output
// is bounded to [MinGain, MaxGain] and never below [core.ZeroGain].
//
// Available models:
//
//   - [Linear]:           straight-line falloff between MinDistance and MaxDistance
//   - [Exponential]:      power-shaped falloff, steep near the listener
//   - [Logarithmic]:      logarithmic falloff, slow far from the listener
//   - [Realistic]:        inverse-power law 1/max(1,d)^Power
//   - [RealisticHorizon]: inverse-power law faded to silence at MaxDistance
//
// Parameters are not range-checked: a model configured with MinDistance
// above MaxDistance or a negative power evaluates whatever its formula
// gives, bounded as above. Non-finite parameters are rejected.
//
// Models are immutable once built and safe to share for reading.
package gain
