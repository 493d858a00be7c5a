package transform

import (
	"slices"

	"github.com/matzehuels/optio/pkg/prng"
)

// railPattern returns the rail each position of an n-character text lands on
// when written in a zig-zag across rails rows.
func railPattern(n, rails int) []int {
	pat := make([]int, n)
	rail, dir := 0, 1
	for i := range pat {
		pat[i] = rail
		rail += dir
		if rail == 0 || rail == rails-1 {
			dir = -dir
		}
	}
	return pat
}

func railFence(text []rune, rails int, dir Direction) []rune {
	rails = max(rails, 2)
	pat := railPattern(len(text), rails)

	if dir == Forward {
		out := make([]rune, 0, len(text))
		for r := 0; r < rails; r++ {
			for i, p := range pat {
				if p == r {
					out = append(out, text[i])
				}
			}
		}
		return out
	}

	// Count how many characters each rail holds, cut the text into rails,
	// then walk the zig-zag taking the next character from each rail.
	counts := make([]int, rails)
	for _, p := range pat {
		counts[p]++
	}
	next := make([]int, rails)
	for r, offset := 0, 0; r < rails; r++ {
		next[r] = offset
		offset += counts[r]
	}
	out := make([]rune, len(text))
	for i, p := range pat {
		out[i] = text[next[p]]
		next[p]++
	}
	return out
}

// blocks splits text into consecutive chunks of size n; the last may be
// shorter.
func blocks(text []rune, n int) [][]rune {
	var out [][]rune
	for start := 0; start < len(text); start += n {
		out = append(out, text[start:min(start+n, len(text))])
	}
	return out
}

// rotation rotates each block left by an amount drawn from a fresh source
// seeded by seed+i.
func rotation(text []rune, seed uint32, dir Direction) []rune {
	size := prng.New(seed).Range(3, 4)
	out := make([]rune, 0, len(text))
	for i, b := range blocks(text, size) {
		rot := prng.Block(seed, uint32(i)).Intn(len(b))
		if dir == Inverse {
			rot = (len(b) - rot) % len(b)
		}
		out = append(out, b[rot:]...)
		out = append(out, b[:rot]...)
	}
	return out
}

// inversion reverses each block whose fresh source, seeded by seed+i*1000,
// draws above one half. It is its own inverse.
func inversion(text []rune, seed uint32) []rune {
	size := prng.New(seed).Range(2, 3)
	out := make([]rune, 0, len(text))
	for i, b := range blocks(text, size) {
		if prng.Block(seed, uint32(i)*1000).Float64() > 0.5 {
			b = slices.Clone(b)
			slices.Reverse(b)
		}
		out = append(out, b...)
	}
	return out
}
