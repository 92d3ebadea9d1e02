package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spatial/dsp/core"
	"github.com/cwbudde/algo-spatial/internal/testutil"
)

func mustNew(t *testing.T, kind Kind, opts ...Option) Model {
	t.Helper()
	m, err := New(kind, opts...)
	if err != nil {
		t.Fatalf("New(%q) error = %v", kind, err)
	}
	return m
}

func TestNonDecreasingAcrossCone(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			m := mustNew(t, kind)
			upper := math.Sin(m.Params().ConeRadius)
			freqs := testutil.Map(testutil.Sweep(-1, upper, 500), m.Calculate)
			testutil.RequireNonDecreasing(t, freqs, 0)

			// Inside the cone the output is flat.
			inside := testutil.Map(testutil.Sweep(upper, 1, 50), m.Calculate)
			for _, f := range inside {
				testutil.RequireNearlyEqual(t, f, inside[0], 0)
			}
		})
	}
}

func TestOutputRange(t *testing.T) {
	dots := append(testutil.Sweep(-1, 1, 201), math.NaN(), -5, 5)

	for _, kind := range Kinds() {
		for _, opts := range [][]Option{
			nil,
			{WithFrequency(8000), WithMaxColor(16)},
			{WithWidth(0)},
			{WithFrequency(-100)},
		} {
			m := mustNew(t, kind, opts...)
			for _, d := range dots {
				f := m.Calculate(d)
				if !(f > 0 && f <= core.MaxFrequency) {
					t.Fatalf("%s: Calculate(%v) = %v outside (0, %v]", kind, d, f, core.MaxFrequency)
				}
			}
		}
	}
}

func TestHeadAhead(t *testing.T) {
	m := mustNew(t, KindHead)
	if got := m.Calculate(1); got != core.MaxFrequency {
		t.Fatalf("Calculate(1) = %v, want %v", got, core.MaxFrequency)
	}
}

func TestHeadBehind(t *testing.T) {
	m := mustNew(t, KindHead, WithWidth(0.1524))
	want := core.SpeedOfSound / 0.1524
	testutil.RequireNearlyEqual(t, m.Calculate(-1), want, 1e-9)

	head, ok := m.(*Head)
	if !ok {
		t.Fatalf("New(head) returned %T", m)
	}
	testutil.RequireNearlyEqual(t, head.ShadowFrequency(), want, 1e-9)
}

func TestHeadNaNTreatedAsAhead(t *testing.T) {
	m := mustNew(t, KindHead)
	if got := m.Calculate(math.NaN()); got != core.MaxFrequency {
		t.Fatalf("Calculate(NaN) = %v, want %v", got, core.MaxFrequency)
	}
}

func TestMusicalColors(t *testing.T) {
	m := mustNew(t, KindMusical, WithFrequency(220), WithMinColor(2), WithMaxColor(6))

	testutil.RequireNearlyEqual(t, m.Calculate(-1), 440, 1e-9)
	testutil.RequireNearlyEqual(t, m.Calculate(1), 1320, 1e-9)

	capped := mustNew(t, KindMusical, WithFrequency(5000), WithMaxColor(10))
	if got := capped.Calculate(1); got != core.MaxFrequency {
		t.Fatalf("capped Calculate(1) = %v, want %v", got, core.MaxFrequency)
	}
}

func TestConeRadiusShiftsBrightZone(t *testing.T) {
	small := mustNew(t, KindHead, WithConeRadius(math.Pi/8))
	large := mustNew(t, KindHead, WithConeRadius(math.Pi/2))

	// Beside the listener (dot 0) a larger radius maps further from the
	// bright end, so it is darker.
	if large.Calculate(0) >= small.Calculate(0) {
		t.Fatalf("large=%v small=%v, want large darker", large.Calculate(0), small.Calculate(0))
	}

	// A zero radius brightens everything from the side forward.
	zero := mustNew(t, KindHead, WithConeRadius(0))
	if got := zero.Calculate(0); got != core.MaxFrequency {
		t.Fatalf("zero radius Calculate(0) = %v, want %v", got, core.MaxFrequency)
	}
}

func TestOptionsRejectNonFinite(t *testing.T) {
	for _, opt := range []Option{
		WithConeRadius(math.NaN()),
		WithWidth(math.Inf(1)),
		WithFrequency(math.NaN()),
		WithMinColor(math.Inf(-1)),
		WithMaxColor(math.NaN()),
		WithPower(math.Inf(1)),
		WithParams(Params{Width: math.NaN()}),
	} {
		if _, err := New(KindHead, opt); err == nil {
			t.Fatal("expected error for non-finite option")
		}
	}
}

func TestParse(t *testing.T) {
	if k, err := Parse("musical"); err != nil || k != KindMusical {
		t.Fatalf("Parse(musical) = %q, %v", k, err)
	}
	if _, err := Parse("hrtf"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("Parse(hrtf) error = %v", err)
	}
	if _, err := New("hrtf"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("New(hrtf) error = %v", err)
	}
}
