package transform

import "unicode"

// alphabet is the 52-letter substitution alphabet: upper case then lower case.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	caseSize     = 26
	alphabetSize = 2 * caseSize
)

// letter returns the case-relative position of r (0..25) and the first letter
// of its case. ok is false for anything outside A-Z and a-z.
func letter(r rune) (pos int, base rune, ok bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), 'A', true
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), 'a', true
	}
	return 0, 0, false
}

// alphabetIndex returns the position of r in alphabet, or -1.
func alphabetIndex(r rune) int {
	pos, base, ok := letter(r)
	if !ok {
		return -1
	}
	if base == 'a' {
		return caseSize + pos
	}
	return pos
}

// keyValue returns the alphabetic value (0..25) of a running-key code point.
// The code point is upper-cased first; anything that is not then A-Z has no
// value.
func keyValue(r rune) (int, bool) {
	u := unicode.ToUpper(r)
	if u >= 'A' && u <= 'Z' {
		return int(u - 'A'), true
	}
	return 0, false
}

func mod26(n int) int {
	n %= caseSize
	if n < 0 {
		n += caseSize
	}
	return n
}

// shiftLetter shifts a letter by d positions within its case. Non-letters are
// returned unchanged.
func shiftLetter(r rune, d int) rune {
	pos, base, ok := letter(r)
	if !ok {
		return r
	}
	return base + rune(mod26(pos+d))
}

// signed negates v for the inverse direction.
func signed(v int, dir Direction) int {
	if dir == Inverse {
		return -v
	}
	return v
}
