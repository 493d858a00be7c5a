// Package prng provides the deterministic randomness behind every Optio
// pipeline.
//
// All randomness is derived from a single 32-bit seed computed from the
// passphrase. The generator uses only 32-bit unsigned arithmetic until the
// final division, so a given seed produces the same stream on every platform.
//
// # Streams
//
// A pipeline draws from one shared [Source]: first the transform parameters,
// then the order shuffle. Transforms that need their own randomness (for
// example the substitution alphabet) build a fresh Source from a parameter
// seed. Block-oriented transforms build one Source per block with [Block], so
// the draws for block i never depend on how many blocks were processed before
// it.
//
//	src := prng.New(prng.Seed("passphrase"))
//	shift := src.Range(1, 25) // 1..25
//	src.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
package prng

// increment is the Weyl-sequence step added to the state on every draw.
const increment uint32 = 0x6D2B79F5

// scale is 2^32, used to map a 32-bit mix into [0,1).
const scale = 4294967296.0

// Seed derives a 32-bit seed from a passphrase.
//
// Each code point is folded into the accumulator as acc*31 + cp with 32-bit
// wraparound. A result of zero is replaced by 1, so the empty passphrase
// yields seed 1.
func Seed(key string) uint32 {
	var h uint32
	for _, r := range key {
		h = (h << 5) - h + uint32(r)
	}
	if h == 0 {
		return 1
	}
	return h
}

// Source is a deterministic generator of floats in [0,1).
// It is not safe for concurrent use.
type Source struct {
	state uint32
}

// New returns a Source starting from seed. A zero seed starts from 1.
func New(seed uint32) *Source {
	if seed == 0 {
		seed = 1
	}
	return &Source{state: seed}
}

// Block returns a fresh Source for block-local randomness seeded by
// seed+offset. It never shares state with any other Source.
func Block(seed, offset uint32) *Source {
	return New(seed + offset)
}

// Uint32 advances the state and returns the next 32-bit mix.
func (s *Source) Uint32() uint32 {
	s.state += increment
	t := (s.state ^ (s.state >> 15)) * (s.state | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0,1).
func (s *Source) Float64() float64 {
	return float64(s.Uint32()) / scale
}

// Intn returns floor(Float64()*n), a value in [0,n). It returns 0 for n <= 0
// after consuming a draw, so the stream position never depends on n.
func (s *Source) Intn(n int) int {
	f := s.Float64()
	if n <= 0 {
		return 0
	}
	return int(f * float64(n))
}

// Range returns lo + Intn(n), a value in [lo, lo+n).
func (s *Source) Range(lo, n int) int {
	return lo + s.Intn(n)
}

// Shuffle performs a descending Fisher-Yates shuffle over n elements,
// consuming exactly n-1 draws.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}
