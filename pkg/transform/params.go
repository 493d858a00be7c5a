package transform

import (
	"fmt"

	"github.com/matzehuels/optio/pkg/prng"
)

// seedSpace bounds every per-transform random seed to [0, seedSpace).
const seedSpace = 1_000_000

// Params holds the numeric parameters derived for one pipeline run.
// Transforms without a generator (Atbash, Vigenere, Beaufort, Porta,
// Trithemius) have no field here.
type Params struct {
	Shift            int    `json:"shift"`             // Caesar, 1..25
	SubstitutionSeed uint32 `json:"substitution_seed"` // Substitution alphabet permutation
	AlbertiSeed      uint32 `json:"alberti_seed"`      // Alberti shifts and split point
	BifurcationSeed  uint32 `json:"bifurcation_seed"`  // Bifurcation shifts
	Rails            int    `json:"rails"`             // RailFence, 2..5
	RotationSeed     uint32 `json:"rotation_seed"`     // Rotation block size and amounts
	InversionSeed    uint32 `json:"inversion_seed"`    // Inversion block size and decisions
}

// GenerateParams draws every parameter from src in catalog declaration order.
// It always consumes exactly seven draws.
func GenerateParams(src *prng.Source) Params {
	var p Params
	for _, k := range Catalog() {
		switch k {
		case Caesar:
			p.Shift = src.Range(1, 25)
		case Substitution:
			p.SubstitutionSeed = uint32(src.Intn(seedSpace))
		case Alberti:
			p.AlbertiSeed = uint32(src.Intn(seedSpace))
		case Bifurcation:
			p.BifurcationSeed = uint32(src.Intn(seedSpace))
		case RailFence:
			p.Rails = src.Range(2, 4)
		case Rotation:
			p.RotationSeed = uint32(src.Intn(seedSpace))
		case Inversion:
			p.InversionSeed = uint32(src.Intn(seedSpace))
		}
	}
	return p
}

// Describe returns a short human-readable summary of the parameter that
// drives transform k, e.g. "shift=7" or "running key".
func (p Params) Describe(k Kind) string {
	switch k {
	case Caesar:
		return fmt.Sprintf("shift=%d", p.Shift)
	case Vigenere, Beaufort:
		return "running key"
	case Porta:
		return "running key + " + portaSuffix
	case Trithemius:
		return "progressive"
	case Substitution:
		return fmt.Sprintf("seed=%d", p.SubstitutionSeed)
	case Alberti:
		return fmt.Sprintf("seed=%d", p.AlbertiSeed)
	case Bifurcation:
		return fmt.Sprintf("seed=%d", p.BifurcationSeed)
	case RailFence:
		return fmt.Sprintf("rails=%d", p.Rails)
	case Rotation:
		return fmt.Sprintf("seed=%d", p.RotationSeed)
	case Inversion:
		return fmt.Sprintf("seed=%d", p.InversionSeed)
	}
	return "-"
}
