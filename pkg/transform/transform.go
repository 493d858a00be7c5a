package transform

import "fmt"

// Apply runs transform k over text in the given direction and returns a new
// slice; text is never modified. key is the passphrase, used by the
// running-key transforms.
//
// Apply panics if k is not a member of the catalog.
func Apply(k Kind, text []rune, p Params, dir Direction, key []rune) []rune {
	switch k {
	case Caesar:
		return caesar(text, p.Shift, dir)
	case Atbash:
		return atbash(text)
	case Vigenere:
		return vigenere(text, key, dir)
	case Beaufort:
		return beaufort(text, key)
	case Porta:
		return porta(text, key, dir)
	case Trithemius:
		return trithemius(text, dir)
	case Substitution:
		return substitution(text, p.SubstitutionSeed, dir)
	case Alberti:
		return alberti(text, p.AlbertiSeed, dir)
	case Bifurcation:
		return bifurcation(text, p.BifurcationSeed, dir)
	case RailFence:
		return railFence(text, p.Rails, dir)
	case Rotation:
		return rotation(text, p.RotationSeed, dir)
	case Inversion:
		return inversion(text, p.InversionSeed)
	}
	panic(fmt.Sprintf("transform: unknown kind %d", k))
}

// ApplyString is Apply for string input and output.
func ApplyString(k Kind, text string, p Params, dir Direction, key string) string {
	return string(Apply(k, []rune(text), p, dir, []rune(key)))
}
