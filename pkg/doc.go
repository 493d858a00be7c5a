// Package pkg provides the core libraries for Optio text obfuscation.
//
// # Overview
//
// Optio runs a message through twelve classical ciphers whose parameters and
// order are all derived from a passphrase, and frames the result as base64.
// It is obfuscation, not encryption: there is no integrity check and a wrong
// passphrase simply yields garbled text.
//
// # Architecture
//
// The data flow through Optio:
//
//	passphrase
//	     ↓
//	[prng] (seed derivation + deterministic stream)
//	     ↓
//	[transform] (parameters drawn in catalog order)
//	     ↓
//	[pipeline] (catalog shuffled into the plan order, transforms applied)
//	     ↓
//	[envelope] (base64 framing)
//	     ↓
//	ciphertext
//
// # Quick Start
//
//	import "github.com/matzehuels/optio/pkg/optio"
//
//	ciphertext := optio.Encrypt("test", "Hello, World!")
//	message, err := optio.Decrypt("test", ciphertext)
//
// # Main Packages
//
// [optio] - The two public entry points and decode-failure detection.
//
// [pipeline] - Plan derivation, forward and inverse runs, per-stage tracing
// and the Runner used by CLI and HTTP API. Ensures consistent behavior across
// both entry points.
//
// [transform] - The closed catalog of twelve reversible transforms and their
// parameters.
//
// [prng] - Passphrase hashing and the mulberry32 generator. Outputs are fixed
// bit for bit, since every ciphertext depends on them.
//
// [envelope] - Base64 framing with forgiving decoding.
//
// [errors] - Structured error codes and input validation.
//
// [observability] - Hooks for metrics without a hard dependency on any
// backend.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/transform/   # Specific package
//	go test -run Example ./... # Examples only
//
// [optio]: https://pkg.go.dev/github.com/matzehuels/optio/pkg/optio
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/optio/pkg/pipeline
// [transform]: https://pkg.go.dev/github.com/matzehuels/optio/pkg/transform
// [prng]: https://pkg.go.dev/github.com/matzehuels/optio/pkg/prng
// [envelope]: https://pkg.go.dev/github.com/matzehuels/optio/pkg/envelope
// [errors]: https://pkg.go.dev/github.com/matzehuels/optio/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/optio/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/optio/pkg/buildinfo
package pkg
