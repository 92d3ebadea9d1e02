package shadow

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spatial/dsp/core"
)

const defaultSplitHz = 4000.0

// ErrNotDarker is returned by Darker when back is not darker than front.
var ErrNotDarker = errors.New("shadow: back channel is not darker than front")

// Result holds the spectral summary of one block.
type Result struct {
	// Centroid is the power-weighted mean frequency in Hz.
	Centroid float64
	// HighRatio is the share of power at or above the split frequency.
	HighRatio float64
	// Energy is the total windowed power over bins 0..Nyquist.
	Energy float64
	// BinHz is the spectral resolution.
	BinHz float64
}

// Option configures Analyze.
type Option func(*config) error

type config struct {
	splitHz float64
	fftSize int
}

// WithSplit sets the frequency separating the high band. Default 4 kHz.
func WithSplit(hz float64) Option {
	return func(cfg *config) error {
		if !(hz > 0) || !core.IsFinite(hz) {
			return fmt.Errorf("shadow split frequency must be > 0 and finite: %f", hz)
		}
		cfg.splitHz = hz
		return nil
	}
}

// WithFFTSize fixes the transform size. It must be a power of two; longer
// signals are truncated, shorter ones zero-padded. By default the size is
// the next power of two at or above the signal length.
func WithFFTSize(n int) Option {
	return func(cfg *config) error {
		if n < 2 || n&(n-1) != 0 {
			return fmt.Errorf("shadow FFT size must be a power of two >= 2: %d", n)
		}
		cfg.fftSize = n
		return nil
	}
}

// Analyze returns the spectral summary of signal sampled at sampleRate.
// A silent or empty signal yields a zero Result.
func Analyze(signal []float64, sampleRate float64, opts ...Option) (Result, error) {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return Result{}, fmt.Errorf("shadow: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := config{splitHz: defaultSplitHz}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return Result{}, err
		}
	}

	if len(signal) == 0 {
		return Result{}, nil
	}

	n := cfg.fftSize
	if n == 0 {
		n = nextPowerOf2(len(signal))
	}
	if len(signal) > n {
		signal = signal[:n]
	}

	power, err := powerSpectrum(signal, n)
	if err != nil {
		return Result{}, err
	}

	binHz := sampleRate / float64(n)
	splitBin := int(math.Ceil(cfg.splitHz / binHz))

	var weighted, high float64
	for k, p := range power {
		weighted += float64(k) * binHz * p
		if k >= splitBin {
			high += p
		}
	}

	total := vecmath.Sum(power)
	if total <= 0 {
		return Result{BinHz: binHz}, nil
	}

	return Result{
		Centroid:  weighted / total,
		HighRatio: high / total,
		Energy:    total,
		BinHz:     binHz,
	}, nil
}

// powerSpectrum returns |X[k]|^2 for k in 0..n/2 of the Hann-windowed,
// zero-padded signal.
func powerSpectrum(signal []float64, n int) ([]float64, error) {
	win := hann(len(signal))

	in := make([]complex128, n)
	for i, x := range signal {
		in[i] = complex(x*win[i], 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("shadow: fft plan: %w", err)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("shadow: fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	return power, nil
}

// hann returns a symmetric Hann window of the given length.
func hann(length int) []float64 {
	w := make([]float64, length)
	if length == 1 {
		w[0] = 1
		return w
	}

	den := float64(length - 1)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/den)
	}
	return w
}

func nextPowerOf2(n int) int {
	p := 2
	for p < n {
		p <<= 1
	}
	return p
}

// Darker reports an error unless back has both a lower centroid and a
// smaller high-band ratio than front.
func Darker(front, back Result) error {
	if back.Centroid < front.Centroid && back.HighRatio < front.HighRatio {
		return nil
	}
	return fmt.Errorf("%w: centroid %.1f vs %.1f Hz, high ratio %.3f vs %.3f",
		ErrNotDarker, back.Centroid, front.Centroid, back.HighRatio, front.HighRatio)
}
