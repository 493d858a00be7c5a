package pipeline

import (
	"github.com/matzehuels/optio/pkg/envelope"
	"github.com/matzehuels/optio/pkg/prng"
	"github.com/matzehuels/optio/pkg/transform"
)

// Plan is everything a passphrase determines about a run: the seed, the
// transform parameters, and the order the transforms are applied in.
type Plan struct {
	Seed   uint32           `json:"seed"`
	Params transform.Params `json:"params"`
	Order  []transform.Kind `json:"order"`
}

// Stage is one step of a traced run.
type Stage struct {
	Index     int                 `json:"index"`
	Kind      transform.Kind      `json:"transform"`
	Direction transform.Direction `json:"-"`
	Output    string              `json:"output"`
}

// NewPlan derives the plan for key. Parameters are drawn first, in catalog
// order, then a fresh copy of the catalog is shuffled on the same stream.
func NewPlan(key string) Plan {
	seed := prng.Seed(key)
	src := prng.New(seed)

	params := transform.GenerateParams(src)

	order := transform.Catalog()
	src.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	return Plan{Seed: seed, Params: params, Order: order}
}

// Forward applies every transform in plan order.
func (p Plan) Forward(text, key string) string {
	k := []rune(key)
	out := []rune(text)
	for _, kind := range p.Order {
		out = transform.Apply(kind, out, p.Params, transform.Forward, k)
	}
	return string(out)
}

// Inverse applies every inverse transform in reverse plan order.
func (p Plan) Inverse(text, key string) string {
	k := []rune(key)
	out := []rune(text)
	for i := len(p.Order) - 1; i >= 0; i-- {
		out = transform.Apply(p.Order[i], out, p.Params, transform.Inverse, k)
	}
	return string(out)
}

// Trace runs the plan in direction dir and records the text after every
// stage. Stages are listed in the order they were applied.
func (p Plan) Trace(text, key string, dir transform.Direction) []Stage {
	k := []rune(key)
	out := []rune(text)
	stages := make([]Stage, 0, len(p.Order))
	for step := range p.Order {
		i := step
		if dir == transform.Inverse {
			i = len(p.Order) - 1 - step
		}
		kind := p.Order[i]
		out = transform.Apply(kind, out, p.Params, dir, k)
		stages = append(stages, Stage{
			Index:     i,
			Kind:      kind,
			Direction: dir,
			Output:    string(out),
		})
	}
	return stages
}

// Encrypt obfuscates message under key and returns the enveloped ciphertext.
// It is deterministic: the same key and message always give the same result.
func Encrypt(key, message string) string {
	return envelope.Encode(NewPlan(key).Forward(message, key))
}

// Decrypt reverses Encrypt. It fails only when ciphertext is not a valid
// envelope, with an error whose code is DECODE_FAILURE. A wrong key is not
// detected and yields a garbled message.
func Decrypt(key, ciphertext string) (string, error) {
	text, err := envelope.Decode(ciphertext)
	if err != nil {
		return "", err
	}
	return NewPlan(key).Inverse(text, key), nil
}
