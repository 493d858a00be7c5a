package transform

import "github.com/matzehuels/optio/pkg/prng"

// portaSuffix is appended to the passphrase to form the Porta running key.
const portaSuffix = "abc"

func caesar(text []rune, shift int, dir Direction) []rune {
	d := signed(shift, dir)
	out := make([]rune, len(text))
	for i, r := range text {
		out[i] = shiftLetter(r, d)
	}
	return out
}

func atbash(text []rune) []rune {
	out := make([]rune, len(text))
	for i, r := range text {
		if pos, base, ok := letter(r); ok {
			out[i] = base + rune(caseSize-1-pos)
		} else {
			out[i] = r
		}
	}
	return out
}

// vigenere shifts the letter at index i by the value of key[i mod len(key)].
// The key index advances on every code point, letters or not, and a key code
// point without an alphabetic value leaves its letter unchanged.
func vigenere(text, key []rune, dir Direction) []rune {
	out := make([]rune, len(text))
	for i, r := range text {
		out[i] = r
		if len(key) == 0 {
			continue
		}
		if kv, ok := keyValue(key[i%len(key)]); ok {
			out[i] = shiftLetter(r, signed(kv, dir))
		}
	}
	return out
}

// beaufort maps each letter to (key - letter) mod 26 within its case, using
// the same indexing as vigenere. It is its own inverse.
func beaufort(text, key []rune) []rune {
	out := make([]rune, len(text))
	for i, r := range text {
		out[i] = r
		if len(key) == 0 {
			continue
		}
		pos, base, ok := letter(r)
		if !ok {
			continue
		}
		if kv, ok := keyValue(key[i%len(key)]); ok {
			out[i] = base + rune(mod26(kv-pos))
		}
	}
	return out
}

func porta(text, key []rune, dir Direction) []rune {
	k := make([]rune, 0, len(key)+len(portaSuffix))
	k = append(k, key...)
	k = append(k, []rune(portaSuffix)...)
	return vigenere(text, k, dir)
}

// trithemius shifts the letter at index i by i.
func trithemius(text []rune, dir Direction) []rune {
	out := make([]rune, len(text))
	for i, r := range text {
		out[i] = shiftLetter(r, signed(i%caseSize, dir))
	}
	return out
}

// permutedAlphabet shuffles the 52-letter alphabet with a source seeded by
// seed.
func permutedAlphabet(seed uint32) [alphabetSize]rune {
	var perm [alphabetSize]rune
	copy(perm[:], []rune(alphabet))
	prng.New(seed).Shuffle(alphabetSize, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	return perm
}

func substitution(text []rune, seed uint32, dir Direction) []rune {
	perm := permutedAlphabet(seed)

	var table [alphabetSize]rune
	if dir == Inverse {
		for i, c := range perm {
			table[alphabetIndex(c)] = rune(alphabet[i])
		}
	} else {
		table = perm
	}

	out := make([]rune, len(text))
	for i, r := range text {
		if idx := alphabetIndex(r); idx >= 0 {
			out[i] = table[idx]
		} else {
			out[i] = r
		}
	}
	return out
}

// splitCaesar applies shift1 to text[:p] and shift2 to text[p:].
func splitCaesar(text []rune, p, shift1, shift2 int, dir Direction) []rune {
	out := caesar(text[:p], shift1, dir)
	return append(out, caesar(text[p:], shift2, dir)...)
}

// alberti derives two shifts and a split point between 30% and 70% of the
// text from a source seeded by seed.
func alberti(text []rune, seed uint32, dir Direction) []rune {
	src := prng.New(seed)
	shift1 := src.Range(1, 25)
	shift2 := src.Range(1, 25)
	p := int(float64(len(text)) * (0.3 + src.Float64()*0.4))
	return splitCaesar(text, p, shift1, shift2, dir)
}

// bifurcation derives two shifts from a source seeded by seed and splits at
// the midpoint.
func bifurcation(text []rune, seed uint32, dir Direction) []rune {
	src := prng.New(seed)
	shift1 := src.Range(1, 25)
	shift2 := src.Range(1, 25)
	return splitCaesar(text, len(text)/2, shift1, shift2, dir)
}
