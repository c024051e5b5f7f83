// Package random provides the deterministic fact provider all generation
// draws from. A Provider is seeded exactly once and owned by a single
// assembly run; it is passed by reference to every builder so the sequence of
// draws, and therefore the whole generated document, is a pure function of
// the seed. Nothing in this module touches the global math/rand source.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
)

// Provider is a seeded pseudo-random source.
type Provider struct {
	rng *rand.Rand
}

// New returns a Provider seeded with the given value.
func New(seed int64) *Provider {
	return &Provider{rng: rand.New(rand.NewSource(seed))}
}

// NewFromEntropy derives a seed from the system entropy source and returns it
// alongside the provider so callers can disclose it for reproduction.
func NewFromEntropy() (*Provider, int64, error) {
	return newFromReader(crand.Reader)
}

func newFromReader(r io.Reader) (*Provider, int64, error) {
	var buf [8]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, 0, fmt.Errorf("reading entropy: %w", err)
		}
		seed := int64(binary.BigEndian.Uint64(buf[:]) >> 1)
		// Seed 0 is the "draw from entropy" sentinel everywhere else, so a
		// drawn 0 would be disclosed as a value that does not reproduce the
		// run. Redraw instead.
		if seed != 0 {
			return New(seed), seed, nil
		}
	}
}

// IntInRange returns a uniform integer in [lo, hi]. It panics if hi < lo,
// which is always a programming error in the caller.
func (p *Provider) IntInRange(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("random: invalid range [%d, %d]", lo, hi))
	}
	return lo + p.rng.Intn(hi-lo+1)
}

// Float64 returns a uniform value in [0, 1).
func (p *Provider) Float64() float64 {
	return p.rng.Float64()
}

// Bool returns true with the given probability. Probability 1 always draws so
// the provider consumes the same number of values regardless of outcome.
func (p *Provider) Bool(probability float64) bool {
	return p.rng.Float64() < probability
}

// Date returns a YYYY-MM-DD date with the year in [minYear, maxYear]. Days
// are capped at 28 so every drawn date is valid in every month.
func (p *Provider) Date(minYear, maxYear int) string {
	y := p.IntInRange(minYear, maxYear)
	m := p.IntInRange(1, 12)
	d := p.IntInRange(1, 28)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// DateTime returns a date-time on the hour between 06:00 and 18:00 CET with
// the year in [minYear, maxYear].
func (p *Provider) DateTime(minYear, maxYear int) string {
	return fmt.Sprintf("%sT%02d:00:00+01:00", p.Date(minYear, maxYear), p.IntInRange(6, 18))
}

// Choice returns a uniformly drawn element of pool.
func Choice[T any](p *Provider, pool []T) T {
	return pool[p.rng.Intn(len(pool))]
}

// Sample returns k distinct elements of pool, drawn without replacement. If
// k exceeds the pool size the whole pool is returned (shuffled).
func Sample[T any](p *Provider, pool []T, k int) []T {
	if k > len(pool) {
		k = len(pool)
	}
	idx := p.rng.Perm(len(pool))
	out := make([]T, k)
	for i := 0; i < k; i++ {
		out[i] = pool[idx[i]]
	}
	return out
}

// Weighted pairs a value with its selection weight.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// WeightedChoice draws one value with probability proportional to its weight.
// Items are an ordered slice rather than a map: map iteration order would
// leak nondeterminism into the draw sequence.
func WeightedChoice[T any](p *Provider, items []Weighted[T]) T {
	total := 0
	for _, it := range items {
		if it.Weight > 0 {
			total += it.Weight
		}
	}
	if total == 0 {
		panic("random: weighted choice over zero total weight")
	}
	n := p.rng.Intn(total)
	for _, it := range items {
		if it.Weight <= 0 {
			continue
		}
		if n < it.Weight {
			return it.Value
		}
		n -= it.Weight
	}
	// Unreachable: n < total by construction.
	return items[len(items)-1].Value
}
