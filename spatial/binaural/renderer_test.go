package binaural

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spatial/dsp/core"
	"github.com/cwbudde/algo-spatial/internal/testutil"
)

func newTestRenderer(smoothing float64) *Renderer {
	return NewRenderer(core.WithSampleRate(48000), core.WithSmoothing(smoothing))
}

func TestRendererPansThroughBinaural(t *testing.T) {
	r := newTestRenderer(0)
	b, err := New(r.Left(), r.Right())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := b.Update(Snapshot{Gain: 1, Frequency: core.MaxFrequency, Pan: 1}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	in := testutil.DeterministicSine(440, 48000, 1, 2048)
	left := make([]float64, len(in))
	right := make([]float64, len(in))

	r.From(in)
	if err := r.To(left, right); err != nil {
		t.Fatalf("To() error = %v", err)
	}

	testutil.RequireFinite(t, left)
	testutil.RequireFinite(t, right)

	pl, pr := r.Peak()
	if pl > 1e-9 {
		t.Fatalf("left peak = %v, want silence for a hard-right source", pl)
	}
	if pr < 0.9 || pr > 1.0001 {
		t.Fatalf("right peak = %v, want ~1", pr)
	}
}

func TestChannelLowpassDarkens(t *testing.T) {
	in := testutil.DeterministicNoise(3, 1, 8192)

	bright := NewChannel(core.ApplyProcessorOptions(core.WithSmoothing(0)))
	bright.SetGain(1)
	bright.SetFrequency(core.MaxFrequency)

	dark := NewChannel(core.ApplyProcessorOptions(core.WithSmoothing(0)))
	dark.SetGain(1)
	dark.SetFrequency(200)

	outB := make([]float64, len(in))
	outD := make([]float64, len(in))
	bright.Process(outB, in)
	dark.Process(outD, in)

	if rms(outD) >= 0.5*rms(outB) {
		t.Fatalf("rms dark=%v bright=%v, want dark well below bright", rms(outD), rms(outB))
	}
}

func TestChannelSmoothing(t *testing.T) {
	c := NewChannel(core.ApplyProcessorOptions(core.WithSampleRate(1000), core.WithSmoothing(0.01)))
	c.SetGain(0)
	c.SetGain(1)

	in := testutil.DC(1, 10)
	out := make([]float64, len(in))
	c.Process(out, in)

	// After one time constant (10 samples) the gain covered 1 - 1/e.
	testutil.RequireNearlyEqual(t, c.Gain(), 1-math.Exp(-1), 1e-9)
	testutil.RequireNonDecreasing(t, out, 0)
}

func TestChannelFirstTargetJumps(t *testing.T) {
	c := NewChannel(core.ApplyProcessorOptions(core.WithSmoothing(1)))
	c.SetGain(0.3)
	c.SetFrequency(900)
	if c.Gain() != 0.3 || c.Frequency() != 900 {
		t.Fatalf("gain=%v freq=%v, want 0.3 900", c.Gain(), c.Frequency())
	}
}

func TestClosedChannelIsSilent(t *testing.T) {
	c := NewChannel(core.DefaultProcessorConfig())
	c.SetGain(1)
	_ = c.Close()

	out := testutil.DC(5, 16)
	c.Process(out, testutil.DC(1, 16))
	testutil.RequireSliceNearlyEqual(t, out, make([]float64, 16), 0)
	if !c.Closed() {
		t.Fatal("Closed() = false after Close")
	}
}

func TestMixToAccumulates(t *testing.T) {
	r := newTestRenderer(0)
	r.Left().SetGain(0.5)
	r.Right().SetGain(0.5)

	in := testutil.DC(1, 4096)
	left := testutil.DC(1, len(in))
	right := testutil.DC(1, len(in))

	r.From(in)
	if err := r.MixTo(left, right); err != nil {
		t.Fatalf("MixTo() error = %v", err)
	}

	// The low-pass settles on DC, so the tail is 1 + 0.5.
	testutil.RequireNearlyEqual(t, left[len(left)-1], 1.5, 1e-9)
	testutil.RequireNearlyEqual(t, right[len(right)-1], 1.5, 1e-9)
}

func TestToInterleavedMatchesTo(t *testing.T) {
	in := testutil.DeterministicNoise(11, 0.5, 256)

	r1 := newTestRenderer(0.005)
	r2 := newTestRenderer(0.005)
	for _, r := range []*Renderer{r1, r2} {
		r.Left().SetGain(0.2)
		r.Right().SetGain(0.9)
		r.Left().SetFrequency(3000)
		r.Right().SetFrequency(12000)
		r.From(in)
	}

	left := make([]float64, len(in))
	right := make([]float64, len(in))
	if err := r1.To(left, right); err != nil {
		t.Fatalf("To() error = %v", err)
	}

	buf := make([]float64, 2*len(in))
	if err := r2.ToInterleaved(buf); err != nil {
		t.Fatalf("ToInterleaved() error = %v", err)
	}

	for i := range in {
		if buf[2*i] != left[i] || buf[2*i+1] != right[i] {
			t.Fatalf("sample %d: interleaved (%v,%v) vs (%v,%v)", i, buf[2*i], buf[2*i+1], left[i], right[i])
		}
	}
}

func TestRendererBufferErrors(t *testing.T) {
	r := newTestRenderer(0)
	r.From(make([]float64, 8))

	if err := r.To(make([]float64, 4), make([]float64, 8)); err == nil {
		t.Fatal("expected error for short left buffer")
	}
	if err := r.MixTo(make([]float64, 8), make([]float64, 2)); err == nil {
		t.Fatal("expected error for short right buffer")
	}
	if err := r.ToInterleaved(make([]float64, 15)); err == nil {
		t.Fatal("expected error for short interleaved buffer")
	}
}

func rms(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func TestChannelCutoffGlideIsBlockInvariant(t *testing.T) {
	cfg := core.ApplyProcessorOptions(core.WithSampleRate(48000), core.WithSmoothing(0.01))
	whole, split := NewChannel(cfg), NewChannel(cfg)
	for _, c := range []*Channel{whole, split} {
		c.SetGain(1)
		c.SetFrequency(core.MaxFrequency)
		c.SetFrequency(500)
	}

	in := testutil.DeterministicNoise(5, 1, 3*designInterval)
	outWhole := make([]float64, len(in))
	outSplit := make([]float64, len(in))

	whole.Process(outWhole, in)
	for start := 0; start < len(in); start += designInterval {
		end := start + designInterval
		split.Process(outSplit[start:end], in[start:end])
	}

	testutil.RequireSliceNearlyEqual(t, outWhole, outSplit, 0)
	testutil.RequireFinite(t, outWhole)

	coef := core.SmoothingCoefficient(0.01, 48000)
	want := 500 + (core.MaxFrequency-500)*math.Pow(coef, float64(len(in)))
	testutil.RequireNearlyEqual(t, whole.Frequency(), want, 1e-6)
	if whole.designed != whole.Frequency() {
		t.Fatalf("low-pass designed at %v, cutoff is %v", whole.designed, whole.Frequency())
	}
}

func TestChannelPartialBlockGlide(t *testing.T) {
	cfg := core.ApplyProcessorOptions(core.WithSampleRate(48000), core.WithSmoothing(0.01))
	c := NewChannel(cfg)
	c.SetGain(1)
	c.SetFrequency(8000)
	c.SetFrequency(1000)

	n := designInterval + 7
	out := make([]float64, n)
	c.Process(out, testutil.DeterministicNoise(9, 1, n))

	coef := core.SmoothingCoefficient(0.01, 48000)
	want := 1000 + 7000*math.Pow(coef, float64(n))
	testutil.RequireNearlyEqual(t, c.Frequency(), want, 1e-6)
}
