package memo

import (
	"math"
	"testing"
)

func TestTable2RoundTrip(t *testing.T) {
	tab := NewTable2[float64]()

	if tab.Has(1, 2) {
		t.Fatal("empty table reports entry")
	}
	if _, ok := tab.Get(1, 2); ok {
		t.Fatal("empty table returned value")
	}

	tab.Set(1, 2, 0.5)

	if !tab.Has(1, 2) {
		t.Fatal("Has() = false after Set")
	}
	if v, ok := tab.Get(1, 2); !ok || v != 0.5 {
		t.Fatalf("Get() = %v,%v want 0.5,true", v, ok)
	}
	if tab.Has(2, 1) {
		t.Fatal("key order must matter")
	}

	tab.Reset()

	if tab.Has(1, 2) || tab.Len() != 0 {
		t.Fatal("entry survived Reset")
	}
}

func TestTable3RoundTrip(t *testing.T) {
	tab := NewTable3[string]()
	tab.Set(1, 2, 3, "a")
	tab.Set(1, 2, 4, "b")

	if v, _ := tab.Get(1, 2, 3); v != "a" {
		t.Fatalf("Get(1,2,3) = %q, want a", v)
	}
	if v, _ := tab.Get(1, 2, 4); v != "b" {
		t.Fatalf("Get(1,2,4) = %q, want b", v)
	}
	if tab.Has(1, 2, 5) {
		t.Fatal("missing path segment reported present")
	}

	tab.Destroy()
	if tab.Len() != 0 {
		t.Fatalf("Len() = %d after Destroy", tab.Len())
	}
	tab.Set(0, 0, 0, "c")
	if !tab.Has(0, 0, 0) {
		t.Fatal("destroyed table not reusable")
	}
}

func TestLookupComputesOnce(t *testing.T) {
	tab := NewTable2[int]()
	calls := 0
	compute := func() int {
		calls++
		return 42
	}

	for range 5 {
		if v := tab.Lookup(3, -7, compute); v != 42 {
			t.Fatalf("Lookup() = %d, want 42", v)
		}
	}

	if calls != 1 {
		t.Fatalf("compute called %d times, want 1", calls)
	}
	if s := tab.Stats(); s.Hits != 4 || s.Misses != 1 {
		t.Fatalf("Stats() = %+v, want 4 hits 1 miss", s)
	}

	tab.Reset()
	if s := tab.Stats(); s != (Stats{}) {
		t.Fatalf("Stats() after Reset = %+v", s)
	}
}

func TestTable3Lookup(t *testing.T) {
	tab := NewTable3[float64]()
	calls := 0
	for range 3 {
		tab.Lookup(1, 1, 1, func() float64 { calls++; return 1 })
	}
	if calls != 1 || tab.Stats().Hits != 2 {
		t.Fatalf("calls=%d stats=%+v", calls, tab.Stats())
	}
}

func TestQuantizer(t *testing.T) {
	q := Quantizer{Step: 0.5}

	tests := []struct {
		in   float64
		want int64
	}{
		{in: 0, want: 0},
		{in: 0.2, want: 0},
		{in: 0.3, want: 1},
		{in: 10, want: 20},
		{in: -1.1, want: -2},
		{in: math.NaN(), want: 0},
		{in: math.Inf(1), want: math.MaxInt64},
		{in: math.Inf(-1), want: math.MinInt64},
	}

	for _, tt := range tests {
		if got := q.Key(tt.in); got != tt.want {
			t.Errorf("Key(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}

	if got := q.Snap(10.2); got != 10 {
		t.Fatalf("Snap(10.2) = %v, want 10", got)
	}
	if got := (Quantizer{}).Key(2.6); got != 3 {
		t.Fatalf("zero-step Key(2.6) = %d, want 3", got)
	}
}

func TestProbeCounts(t *testing.T) {
	tab := NewTable2[string]()

	if _, ok := tab.Probe(1, 2); ok {
		t.Fatal("Probe() hit on empty table")
	}
	tab.Set(1, 2, "x")
	if v, ok := tab.Probe(1, 2); !ok || v != "x" {
		t.Fatalf("Probe() = %q, %v", v, ok)
	}
	tab.Get(1, 2)

	if s := tab.Stats(); s.Hits != 1 || s.Misses != 1 {
		t.Fatalf("Stats() = %+v, want 1 hit 1 miss (Get is not counted)", s)
	}

	t3 := NewTable3[int]()
	t3.Probe(0, 0, 0)
	if s := t3.Stats(); s.Misses != 1 {
		t.Fatalf("Table3 Stats() = %+v", s)
	}
}
