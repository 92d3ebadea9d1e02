package main

import (
	"math"
	"math/rand/v2"
)

// source fills mono blocks for one emitter.
type source interface {
	fill(dst []float64)
}

func newSource(o renderOptions, index int) source {
	if o.source == "sine" {
		return &sine{
			step:  2 * math.Pi * math.Min(o.freq*float64(index+1), o.sampleRate/2.5) / o.sampleRate,
			level: o.level,
		}
	}
	return &noise{
		rng:   rand.New(rand.NewPCG(uint64(o.seed), uint64(index))),
		level: o.level,
	}
}

type noise struct {
	rng   *rand.Rand
	level float64
}

func (n *noise) fill(dst []float64) {
	for i := range dst {
		dst[i] = (n.rng.Float64()*2 - 1) * n.level
	}
}

type sine struct {
	phase float64
	step  float64
	level float64
}

func (s *sine) fill(dst []float64) {
	for i := range dst {
		dst[i] = math.Sin(s.phase) * s.level
		s.phase += s.step
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}
}
