// Package envelope frames transformed text for transport.
//
// An envelope is the standard, padded base64 encoding of the UTF-8 bytes of a
// text. Decoding is forgiving in the same way a browser's atob is: ASCII
// whitespace anywhere in the input is ignored and trailing padding may be
// omitted. Anything else that is not base64, and any payload that is not
// valid UTF-8, fails with a DECODE_FAILURE error.
package envelope

import (
	"encoding/base64"
	stderrors "errors"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/optio/pkg/errors"
)

// Sentinel causes wrapped by Decode failures.
var (
	// ErrInvalidBase64 is the cause when the envelope is not base64.
	ErrInvalidBase64 = stderrors.New("invalid base64")

	// ErrInvalidUTF8 is the cause when the decoded bytes are not UTF-8.
	ErrInvalidUTF8 = stderrors.New("invalid UTF-8")
)

// Encode wraps text in an envelope.
func Encode(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// Decode opens an envelope. On failure it returns an *errors.Error with code
// DECODE_FAILURE whose cause is ErrInvalidBase64 or ErrInvalidUTF8.
func Decode(s string) (string, error) {
	raw, ok := normalize(s)
	if !ok {
		return "", errors.Wrap(errors.ErrCodeDecodeFailure, ErrInvalidBase64, "ciphertext is not valid base64")
	}

	data, err := base64.RawStdEncoding.DecodeString(raw)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDecodeFailure, stderrors.Join(ErrInvalidBase64, err), "ciphertext is not valid base64")
	}

	if !utf8.Valid(data) {
		return "", errors.Wrap(errors.ErrCodeDecodeFailure, ErrInvalidUTF8, "ciphertext does not decode to UTF-8 text")
	}
	return string(data), nil
}

// Valid reports whether s is an envelope that Decode would accept.
func Valid(s string) bool {
	_, err := Decode(s)
	return err == nil
}

// normalize strips ASCII whitespace and trailing padding. It reports false
// when the remaining length can never be valid base64.
func normalize(s string) (string, bool) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, s)

	if len(s)%4 == 0 {
		s = strings.TrimSuffix(s, "=")
		s = strings.TrimSuffix(s, "=")
	}
	if len(s)%4 == 1 {
		return "", false
	}
	return s, true
}
