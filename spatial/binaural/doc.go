// Package binaural turns per-frame spatial parameters into a two-channel
// image.
//
// A [Binaural] owns two [Monaural] paths, left (pan -1) and right
// (pan +1). Every [Binaural.Update] hands both paths the same
// [Snapshot]; each path applies its own side of a constant-power pan law
// and pushes gain and cutoff targets to its [Sink].
//
// The audio graph that consumes those targets lives outside this
// package. [Renderer] is a reference implementation that smooths the
// targets and applies them to sample blocks, which is enough for offline
// rendering and tests.
package binaural
