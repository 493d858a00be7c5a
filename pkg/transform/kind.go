// Package transform implements the catalog of reversible text transforms used
// by the Optio pipeline.
//
// The catalog is a closed set of twelve classical ciphers, identified by
// [Kind]. Each transform has a forward and an inverse application and is a
// pure function of its input text, its [Params], and the passphrase:
//
//	out := transform.Apply(transform.Caesar, []rune("Hello"), p, transform.Forward, key)
//	back := transform.Apply(transform.Caesar, out, p, transform.Inverse, key)
//
// # Alphabet
//
// All substitution transforms work on the 52 ASCII letters. Case is preserved
// (except by [Substitution], whose permutation spans both cases) and every
// other code point passes through unchanged. Transposition transforms
// ([RailFence], [Rotation], [Inversion]) move whole code points and touch
// every character.
//
// # Parameters
//
// Parameterised transforms read their values from [Params], which
// [GenerateParams] fills from a shared [prng.Source] in catalog declaration
// order. Transforms that need further randomness build their own fresh
// sources from a parameter seed.
package transform

import (
	"strings"

	"github.com/matzehuels/optio/pkg/errors"
)

// Kind identifies one transform in the catalog.
type Kind uint8

// The catalog, in declaration order. Parameter generation walks this order,
// so it must never change.
const (
	Caesar Kind = iota
	Atbash
	Vigenere
	Beaufort
	Porta
	Trithemius
	Substitution
	Alberti
	Bifurcation
	RailFence
	Rotation
	Inversion

	numKinds = int(Inversion) + 1
)

var kindNames = [numKinds]string{
	Caesar:       "caesar",
	Atbash:       "atbash",
	Vigenere:     "vigenere",
	Beaufort:     "beaufort",
	Porta:        "porta",
	Trithemius:   "trithemius",
	Substitution: "substitution",
	Alberti:      "alberti",
	Bifurcation:  "bifurcation",
	RailFence:    "railfence",
	Rotation:     "rotation",
	Inversion:    "inversion",
}

// String returns the lower-case name of the transform.
func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k is a member of the catalog.
func (k Kind) Valid() bool {
	return int(k) < numKinds
}

// ParseKind looks up a transform by name, ignoring case.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidTransform, "unknown transform: %q", name)
}

// MarshalText encodes k as its name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidTransform, "unknown transform: %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a transform name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Catalog returns a fresh slice of every transform in declaration order.
// Callers may reorder the result freely.
func Catalog() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Direction selects the forward or inverse application of a transform.
type Direction uint8

const (
	Forward Direction = iota
	Inverse
)

// String returns "forward" or "inverse".
func (d Direction) String() string {
	if d == Inverse {
		return "inverse"
	}
	return "forward"
}
