package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-spatial/dsp/core"
	"github.com/cwbudde/algo-spatial/spatial/binaural"
	"github.com/cwbudde/algo-spatial/spatial/scene"
)

const wavFormatPCM = 1

type renderOptions struct {
	duration   float64
	sampleRate float64
	blockSize  int
	bitDepth   int
	source     string
	freq       float64
	level      float64
	seed       int64

	// trace, when set, receives every frame's ear results.
	trace *trace
}

func (o renderOptions) validate() error {
	switch {
	case !(o.duration > 0) || math.IsInf(o.duration, 0):
		return fmt.Errorf("duration must be > 0: %f", o.duration)
	case !(o.sampleRate >= 8000) || o.sampleRate > 384000:
		return fmt.Errorf("sample rate must be in [8000, 384000]: %f", o.sampleRate)
	case o.blockSize < 16:
		return fmt.Errorf("block size must be >= 16: %d", o.blockSize)
	case o.bitDepth != 16 && o.bitDepth != 24:
		return fmt.Errorf("bit depth must be 16 or 24: %d", o.bitDepth)
	case o.source != "noise" && o.source != "sine":
		return fmt.Errorf("unknown source %q", o.source)
	case !(o.freq > 0) || o.freq >= o.sampleRate/2:
		return fmt.Errorf("sine frequency must be in (0, Nyquist): %f", o.freq)
	case o.level < 0 || o.level > 1:
		return fmt.Errorf("level must be in [0, 1]: %f", o.level)
	}
	return nil
}

type renderStats struct {
	frames  uint64
	samples int
	peak    float64
	clipped int
}

// voice is one emitter's source and renderer.
type voice struct {
	src      source
	renderer *binaural.Renderer
	pair     *binaural.Binaural
	block    []float64
}

// render ticks sc once per block and writes the stereo mix to w.
func render(sc *scene.Scene, w io.WriteSeeker, o renderOptions) (stats renderStats, err error) {
	popts := []core.ProcessorOption{
		core.WithSampleRate(o.sampleRate),
		core.WithBlockSize(o.blockSize),
	}

	voices := make([]*voice, 0, sc.Len())
	defer func() {
		var errs []error
		for _, v := range voices {
			errs = append(errs, v.pair.Destroy())
		}
		if derr := errors.Join(errs...); err == nil && derr != nil {
			err = fmt.Errorf("release outputs: %w", derr)
		}
	}()

	for i, e := range sc.Emitters() {
		r := binaural.NewRenderer(popts...)
		pair, err := binaural.New(r.Left(), r.Right())
		if err != nil {
			return stats, err
		}
		if err := sc.Attach(e.ID, pair); err != nil {
			return stats, err
		}

		voices = append(voices, &voice{
			src:      newSource(o, i),
			renderer: r,
			pair:     pair,
			block:    make([]float64, o.blockSize),
		})
	}

	enc := wav.NewEncoder(w, int(o.sampleRate), o.bitDepth, 2, wavFormatPCM)

	left := make([]float64, o.blockSize)
	right := make([]float64, o.blockSize)
	q := newQuantizer(o.bitDepth, o.seed, o.blockSize)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: int(o.sampleRate)},
		SourceBitDepth: o.bitDepth,
	}

	delta := float64(o.blockSize) / o.sampleRate
	total := int(math.Round(o.duration * o.sampleRate))

	for written := 0; written < total; {
		n := min(o.blockSize, total-written)

		if err := sc.Tick(scene.Frame{Delta: delta}); err != nil {
			return stats, fmt.Errorf("tick: %w", err)
		}
		if o.trace != nil {
			if err := o.trace.record(sc); err != nil {
				return stats, fmt.Errorf("trace: %w", err)
			}
		}

		clear(left)
		clear(right)
		for _, v := range voices {
			v.src.fill(v.block)
			v.renderer.From(v.block)
			if err := v.renderer.MixTo(left, right); err != nil {
				return stats, err
			}
		}

		stats.peak = math.Max(stats.peak, math.Max(vecmath.MaxAbs(left[:n]), vecmath.MaxAbs(right[:n])))

		var clipped int
		buf.Data, clipped = q.interleave(buf.Data[:0], left[:n], right[:n])
		stats.clipped += clipped

		if err := enc.Write(buf); err != nil {
			return stats, fmt.Errorf("write wav: %w", err)
		}

		written += n
		stats.samples += n
		stats.frames++
	}

	if err := enc.Close(); err != nil {
		return stats, fmt.Errorf("close wav: %w", err)
	}

	return stats, nil
}

// quantizer converts float blocks to dithered integer PCM.
type quantizer struct {
	scale   float64
	max     int
	dither  *vecmath.DitherState
	scratch []float64
}

func newQuantizer(bitDepth int, seed int64, blockSize int) *quantizer {
	m := 1<<(bitDepth-1) - 1
	return &quantizer{
		scale:   float64(m),
		max:     m,
		dither:  vecmath.NewDitherState(seed),
		scratch: make([]float64, 2*blockSize),
	}
}

// interleave appends the dithered, clamped integer frames of left and
// right to dst and reports how many samples were clipped.
func (q *quantizer) interleave(dst []int, left, right []float64) ([]int, int) {
	s := q.scratch[:2*len(left)]
	for i := range left {
		s[2*i] = left[i] * q.scale
		s[2*i+1] = right[i] * q.scale
	}

	vecmath.AddDitherTPDF(s, 1, q.dither)

	clipped := 0
	for _, x := range s {
		v := int(math.Round(x))
		if v > q.max {
			v = q.max
			clipped++
		} else if v < -q.max {
			v = -q.max
			clipped++
		}
		dst = append(dst, v)
	}

	return dst, clipped
}
