// Package optio is a layered, passphrase-keyed text obfuscator.
//
// A message is run through twelve classical ciphers (Caesar, Atbash,
// Vigenère, Beaufort, Porta, Trithemius, a keyed substitution, Alberti, a
// split-alphabet Caesar, rail fence, block rotation and block reversal). The
// passphrase alone fixes every cipher parameter and the order they are
// applied in, and the result is framed as base64.
//
// Optio is obfuscation, not encryption. It offers no confidentiality against
// anyone who tries, and no integrity: decrypting with the wrong passphrase
// yields garbled text, not an error.
//
// # Usage
//
//	ciphertext := optio.Encrypt("test", "Hello, World!")
//	// ciphertext == "LEUhZktFcWdLIGZEVQ=="
//
//	message, err := optio.Decrypt("test", ciphertext)
//	if optio.IsDecodeFailure(err) {
//	    // ciphertext was not a valid envelope
//	}
//
// For validation, logging and per-stage tracing use [pipeline.Runner].
package optio

import (
	"github.com/matzehuels/optio/pkg/errors"
	"github.com/matzehuels/optio/pkg/pipeline"
)

// Encrypt obfuscates message under key. The same inputs always produce the
// same ciphertext. Any key is accepted, including the empty one.
func Encrypt(key, message string) string {
	return pipeline.Encrypt(key, message)
}

// Decrypt recovers the message from ciphertext. It fails only when
// ciphertext is not valid base64 or does not decode to UTF-8; check with
// [IsDecodeFailure].
func Decrypt(key, ciphertext string) (string, error) {
	return pipeline.Decrypt(key, ciphertext)
}

// IsDecodeFailure reports whether err came from a malformed ciphertext.
func IsDecodeFailure(err error) bool {
	return errors.Is(err, errors.ErrCodeDecodeFailure)
}
