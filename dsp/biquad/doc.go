// Package biquad provides a second-order IIR section in Direct Form II
// Transposed and the low-pass design the binaural channels use for their
// head-shadow cutoff.
package biquad
