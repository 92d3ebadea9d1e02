package binaural

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spatial/dsp/biquad"
	"github.com/cwbudde/algo-spatial/dsp/core"
)

const (
	// freqSnap is how close (Hz) a gliding cutoff must get to its target
	// before it snaps and the filter stops being redesigned.
	freqSnap = 1e-3

	// designInterval is the number of samples between low-pass redesigns
	// while the cutoff glides.
	designInterval = 32
)

// Channel is a [Sink] that renders sample blocks. Gain and cutoff glide
// toward their targets with a one-pole smoother; the cutoff drives a
// second-order Butterworth low-pass. The first target of each kind is
// applied without a glide.
//
// Channel is not thread-safe.
type Channel struct {
	sampleRate float64
	coef       float64
	coefChunk  float64

	gain, targetGain float64
	freq, targetFreq float64
	gainSet, freqSet bool

	lp       biquad.Section
	designed float64
	env      []float64
	closed   bool
}

// NewChannel returns a silent, unfiltered channel.
func NewChannel(cfg core.ProcessorConfig) *Channel {
	c := &Channel{
		sampleRate: cfg.SampleRate,
		coef:       core.SmoothingCoefficient(cfg.SmoothingSeconds, cfg.SampleRate),
		freq:       core.MaxFrequency,
		targetFreq: core.MaxFrequency,
	}
	c.coefChunk = math.Pow(c.coef, designInterval)
	c.design()
	return c
}

// SetGain sets the gain target.
func (c *Channel) SetGain(target float64) {
	c.targetGain = target
	if !c.gainSet {
		c.gain = target
		c.gainSet = true
	}
}

// SetFrequency sets the low-pass cutoff target in Hz.
func (c *Channel) SetFrequency(target float64) {
	c.targetFreq = target
	if !c.freqSet {
		c.freq = target
		c.freqSet = true
	}
}

// Gain returns the current (smoothed) gain.
func (c *Channel) Gain() float64 { return c.gain }

// Frequency returns the current (smoothed) cutoff.
func (c *Channel) Frequency() float64 { return c.freq }

// Close disconnects the channel; later blocks render silence.
func (c *Channel) Close() error {
	c.closed = true
	return nil
}

// Closed reports whether Close was called.
func (c *Channel) Closed() bool { return c.closed }

// Reset clears filter state and snaps parameters to their targets.
func (c *Channel) Reset() {
	c.lp.Reset()
	c.gain = c.targetGain
	c.freq = c.targetFreq
	c.design()
}

func (c *Channel) design() {
	c.lp.Coefficients = biquad.Lowpass(c.freq, 0, c.sampleRate)
	c.designed = c.freq
}

// glide advances the cutoff by m samples of smoothing and redesigns the
// low-pass when it moved.
func (c *Channel) glide(m int) {
	if c.freq != c.targetFreq {
		k := c.coefChunk
		if m != designInterval {
			k = math.Pow(c.coef, float64(m))
		}
		c.freq = c.targetFreq + (c.freq-c.targetFreq)*k
		if math.Abs(c.freq-c.targetFreq) < freqSnap {
			c.freq = c.targetFreq
		}
	}
	if c.freq != c.designed {
		c.design()
	}
}

// Process renders src into dst. dst must be at least as long as src.
func (c *Channel) Process(dst, src []float64) {
	n := len(src)
	dst = dst[:n]

	if c.closed {
		for i := range dst {
			dst[i] = 0
		}
		return
	}

	c.env = core.EnsureLen(c.env, n)
	for i := range c.env {
		c.gain = c.targetGain + (c.gain-c.targetGain)*c.coef
		c.env[i] = c.gain
	}

	for start := 0; start < n; start += designInterval {
		end := min(start+designInterval, n)
		c.glide(end - start)
		c.lp.ProcessBlockTo(dst[start:end], src[start:end])
	}

	vecmath.MulBlockInPlace(dst, c.env)
}

// Renderer pairs a left and right [Channel] and renders a mono input
// block to stereo.
type Renderer struct {
	cfg         core.ProcessorConfig
	left, right *Channel

	input    []float64
	scratchL []float64
	scratchR []float64
	peakL    float64
	peakR    float64
}

// NewRenderer returns a renderer configured by opts.
func NewRenderer(opts ...core.ProcessorOption) *Renderer {
	cfg := core.ApplyProcessorOptions(opts...)
	return &Renderer{
		cfg:   cfg,
		left:  NewChannel(cfg),
		right: NewChannel(cfg),
	}
}

// Config returns the processing configuration.
func (r *Renderer) Config() core.ProcessorConfig { return r.cfg }

// Left returns the left channel sink.
func (r *Renderer) Left() *Channel { return r.left }

// Right returns the right channel sink.
func (r *Renderer) Right() *Channel { return r.right }

// From routes mono as the input of both channels for the next render.
// The slice is read, not copied, by To, ToInterleaved and MixTo.
func (r *Renderer) From(mono []float64) {
	r.input = mono
}

// To renders the current input into left and right.
func (r *Renderer) To(left, right []float64) error {
	if err := r.checkLen(len(left), len(right)); err != nil {
		return err
	}

	r.left.Process(left, r.input)
	r.right.Process(right, r.input)
	r.measure(left[:len(r.input)], right[:len(r.input)])

	return nil
}

// MixTo renders the current input and adds it onto left and right.
func (r *Renderer) MixTo(left, right []float64) error {
	if err := r.checkLen(len(left), len(right)); err != nil {
		return err
	}

	n := len(r.input)
	r.scratchL = core.EnsureLen(r.scratchL, n)
	r.scratchR = core.EnsureLen(r.scratchR, n)

	r.left.Process(r.scratchL, r.input)
	r.right.Process(r.scratchR, r.input)
	r.measure(r.scratchL, r.scratchR)

	vecmath.AddBlockInPlace(left[:n], r.scratchL)
	vecmath.AddBlockInPlace(right[:n], r.scratchR)

	return nil
}

// ToInterleaved renders the current input into an interleaved stereo
// buffer (L, R, L, R, ...) of twice the input length.
func (r *Renderer) ToInterleaved(buf []float64) error {
	n := len(r.input)
	if len(buf) < 2*n {
		return fmt.Errorf("binaural renderer: interleaved buffer too short: %d < %d", len(buf), 2*n)
	}

	r.scratchL = core.EnsureLen(r.scratchL, n)
	r.scratchR = core.EnsureLen(r.scratchR, n)

	r.left.Process(r.scratchL, r.input)
	r.right.Process(r.scratchR, r.input)
	r.measure(r.scratchL, r.scratchR)

	for i := range n {
		buf[2*i] = r.scratchL[i]
		buf[2*i+1] = r.scratchR[i]
	}

	return nil
}

// Peak returns the absolute peak of each channel in the last rendered block.
func (r *Renderer) Peak() (left, right float64) {
	return r.peakL, r.peakR
}

// Reset clears both channels' filter state.
func (r *Renderer) Reset() {
	r.left.Reset()
	r.right.Reset()
	r.peakL, r.peakR = 0, 0
}

func (r *Renderer) checkLen(left, right int) error {
	n := len(r.input)
	if left < n || right < n {
		return fmt.Errorf("binaural renderer: output buffers shorter than input: left=%d right=%d input=%d",
			left, right, n)
	}
	return nil
}

func (r *Renderer) measure(left, right []float64) {
	if len(left) == 0 {
		r.peakL, r.peakR = 0, 0
		return
	}
	r.peakL = vecmath.MaxAbs(left)
	r.peakR = vecmath.MaxAbs(right)
}
