package random

import (
	"bytes"
	"testing"
)

func TestProvider_IntInRange_Bounds(t *testing.T) {
	p := New(42)
	for i := 0; i < 1000; i++ {
		v := p.IntInRange(3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("value out of range [3,7]: %d", v)
		}
	}
}

func TestProvider_IntInRange_SingleValue(t *testing.T) {
	p := New(42)
	if v := p.IntInRange(5, 5); v != 5 {
		t.Fatalf("expected 5, got %d", v)
	}
}

func TestProvider_Reproducible(t *testing.T) {
	p1 := New(99)
	p2 := New(99)
	for i := 0; i < 100; i++ {
		if v1, v2 := p1.IntInRange(0, 1000), p2.IntInRange(0, 1000); v1 != v2 {
			t.Fatalf("draw %d diverged: %d vs %d", i, v1, v2)
		}
	}
}

func TestProvider_DifferentSeedsDiverge(t *testing.T) {
	p1 := New(1)
	p2 := New(2)
	same := true
	for i := 0; i < 20; i++ {
		if p1.IntInRange(0, 1<<30) != p2.IntInRange(0, 1<<30) {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical draw sequences")
	}
}

func TestProvider_Date_Format(t *testing.T) {
	p := New(42)
	for i := 0; i < 100; i++ {
		d := p.Date(1940, 2000)
		if len(d) != 10 || d[4] != '-' || d[7] != '-' {
			t.Fatalf("date not in YYYY-MM-DD format: %s", d)
		}
	}
}

func TestProvider_DateTime_Format(t *testing.T) {
	p := New(42)
	dt := p.DateTime(2018, 2025)
	if len(dt) != 25 || dt[10] != 'T' {
		t.Fatalf("unexpected date-time format: %s", dt)
	}
}

func TestProvider_Bool_Extremes(t *testing.T) {
	p := New(42)
	for i := 0; i < 50; i++ {
		if p.Bool(0) {
			t.Fatal("probability 0 returned true")
		}
		if !p.Bool(1) {
			t.Fatal("probability 1 returned false")
		}
	}
}

func TestChoice_Reproducible(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e"}
	p1 := New(7)
	p2 := New(7)
	for i := 0; i < 50; i++ {
		if Choice(p1, pool) != Choice(p2, pool) {
			t.Fatalf("choice diverged at draw %d", i)
		}
	}
}

func TestSample_Distinct(t *testing.T) {
	pool := []int{1, 2, 3, 4, 5, 6, 7, 8}
	p := New(42)
	out := Sample(p, pool, 5)
	if len(out) != 5 {
		t.Fatalf("expected 5 elements, got %d", len(out))
	}
	seen := make(map[int]bool)
	for _, v := range out {
		if seen[v] {
			t.Fatalf("duplicate element in sample: %d", v)
		}
		seen[v] = true
	}
}

func TestSample_KLargerThanPool(t *testing.T) {
	pool := []int{1, 2, 3}
	p := New(42)
	if out := Sample(p, pool, 10); len(out) != 3 {
		t.Fatalf("expected whole pool, got %d elements", len(out))
	}
}

func TestWeightedChoice_RespectsWeights(t *testing.T) {
	items := []Weighted[string]{
		{Value: "heavy", Weight: 99},
		{Value: "light", Weight: 1},
	}
	p := New(42)
	heavy := 0
	for i := 0; i < 1000; i++ {
		if WeightedChoice(p, items) == "heavy" {
			heavy++
		}
	}
	if heavy < 900 {
		t.Fatalf("expected heavy value to dominate, got %d/1000", heavy)
	}
}

func TestWeightedChoice_ZeroWeightNeverDrawn(t *testing.T) {
	items := []Weighted[string]{
		{Value: "never", Weight: 0},
		{Value: "always", Weight: 1},
	}
	p := New(42)
	for i := 0; i < 100; i++ {
		if WeightedChoice(p, items) == "never" {
			t.Fatal("zero-weight value was drawn")
		}
	}
}

func TestNewFromEntropy_ReportsSeed(t *testing.T) {
	p, seed, err := NewFromEntropy()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil {
		t.Fatal("expected non-nil provider")
	}
	if seed < 0 {
		t.Fatalf("expected non-negative seed, got %d", seed)
	}
	// The disclosed seed must reproduce the provider's sequence.
	replay := New(seed)
	for i := 0; i < 20; i++ {
		if p.IntInRange(0, 1<<30) != replay.IntInRange(0, 1<<30) {
			t.Fatal("disclosed seed does not reproduce the sequence")
		}
	}
}

func TestNewFromEntropy_RedrawsZeroSeed(t *testing.T) {
	// Eight zero bytes derive seed 0, which callers treat as "no seed"; the
	// draw must be repeated until a disclosable value comes out.
	entropy := append(make([]byte, 8), 0, 0, 0, 0, 0, 0, 0, 42)
	p, seed, err := newFromReader(bytes.NewReader(entropy))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil {
		t.Fatal("expected non-nil provider")
	}
	if seed != 21 {
		t.Fatalf("expected redrawn seed 21, got %d", seed)
	}
}

func TestNewFromEntropy_ExhaustedSource(t *testing.T) {
	_, _, err := newFromReader(bytes.NewReader([]byte{1, 2, 3}))
	if err == nil {
		t.Fatal("expected error from short entropy source")
	}
}
