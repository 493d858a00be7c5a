package errors

import (
	"unicode/utf8"
)

const (
	// MaxKeyBytes is the longest passphrase accepted by ValidateKey.
	MaxKeyBytes = 4096

	// MaxTextBytes is the largest message accepted by ValidateText.
	MaxTextBytes = 1 << 20

	// MaxCiphertextBytes is the largest ciphertext accepted by
	// ValidateCiphertext. It leaves room for the base64 expansion of a
	// MaxTextBytes message plus line wrapping.
	MaxCiphertextBytes = 2 * MaxTextBytes
)

// ValidateKey validates a passphrase supplied through the CLI or HTTP API.
//
// The library itself accepts any passphrase, including the empty one (which
// derives seed 1 and disables the running-key transforms). The outer surfaces
// are stricter:
//   - No empty passphrases
//   - Must be valid UTF-8
//   - Maximum length of MaxKeyBytes
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "passphrase cannot be empty")
	}

	if len(key) > MaxKeyBytes {
		return New(ErrCodeInvalidKey, "passphrase too long (max %d bytes)", MaxKeyBytes)
	}

	if !utf8.ValidString(key) {
		return New(ErrCodeInvalidKey, "passphrase is not valid UTF-8")
	}

	return nil
}

// ValidateText validates a message before it enters the pipeline.
// Empty text is valid. Text must be UTF-8 because every transform works on
// code points, and invalid bytes would not survive a round trip.
func ValidateText(text string) error {
	if len(text) > MaxTextBytes {
		return New(ErrCodeInputTooLarge, "input too large (max %d bytes)", MaxTextBytes)
	}

	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidEncoding, "input is not valid UTF-8")
	}

	return nil
}

// ValidateCiphertext validates a ciphertext before it is decoded. It has
// the same rules as ValidateText with a larger size limit; whether the text
// is base64 is left to the envelope decoder.
func ValidateCiphertext(text string) error {
	if len(text) > MaxCiphertextBytes {
		return New(ErrCodeInputTooLarge, "ciphertext too large (max %d bytes)", MaxCiphertextBytes)
	}

	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidEncoding, "ciphertext is not valid UTF-8")
	}

	return nil
}
