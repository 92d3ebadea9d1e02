// Package shadow measures how dark a rendered ear channel sounds.
//
// [Analyze] windows a block, takes its power spectrum and reports the
// spectral centroid and the share of energy above a split frequency. A
// source behind the listener, rendered through a head-shadow filter,
// shows a lower centroid and a smaller high-band ratio than the same
// source in front.
package shadow
