// Package filter provides directional filter models that approximate
// head shadowing.
//
// A model maps the dot product between the listener's forward vector and
// the normalized direction to an emitter (1 directly ahead, -1 directly
// behind) to a cutoff or color frequency in Hz. The input is remapped
// from [-1, sin(ConeRadius)] onto [0, 1] and clamped, so everything
// inside the frontal cone gets the model's brightest output.
//
// Outputs are always in (0, core.MaxFrequency].
package filter
