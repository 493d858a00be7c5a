// Package pipeline provides the Optio obfuscation pipeline.
//
// This package composes the transform catalog, the passphrase-derived
// parameters and the passphrase-derived order into the two operations the
// rest of the system uses. CLI and HTTP API both go through this package so
// their behaviour cannot drift apart.
//
// # Architecture
//
// A run has three stages:
//
//  1. Plan: derive a seed from the passphrase, draw the transform parameters
//     and shuffle the catalog into an order ([NewPlan])
//  2. Transform: apply every transform forward in plan order, or inverse in
//     reverse plan order
//  3. Envelope: base64-frame the result, or open the frame first when
//     decrypting
//
// The plan is a pure function of the passphrase, so nothing about it needs to
// travel with the ciphertext.
//
// # Usage
//
// The pure functions cover most callers:
//
//	ciphertext := pipeline.Encrypt(key, message)
//	message, err := pipeline.Decrypt(key, ciphertext)
//
// The Runner adds input validation, logging, observability hooks and optional
// per-stage tracing:
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Encrypt(ctx, pipeline.Options{Key: key, Input: message})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/optio/pkg/errors"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains the input for one Runner call.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Key is the passphrase. It is never serialized or logged.
	Key string `json:"-"`

	// Input is the message (Encrypt) or the ciphertext (Decrypt).
	Input string `json:"input"`

	// Trace records every intermediate stage in Result.Stages.
	Trace bool `json:"trace,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Validate checks the passphrase and a message input and applies defaults.
func (o *Options) Validate() error {
	return o.validate(errors.ValidateText)
}

// ValidateCiphertext is Validate for a ciphertext input.
func (o *Options) ValidateCiphertext() error {
	return o.validate(errors.ValidateCiphertext)
}

func (o *Options) validate(checkInput func(string) error) error {
	if err := errors.ValidateKey(o.Key); err != nil {
		return err
	}
	if err := checkInput(o.Input); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a Runner call.
type Result struct {
	// Output is the ciphertext (Encrypt) or the recovered message (Decrypt).
	Output string

	// Plan is the plan derived from the passphrase.
	Plan Plan

	// Stages holds every intermediate text when Options.Trace is set.
	Stages []Stage

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains execution statistics. Lengths are in code points.
type Stats struct {
	InputLen  int
	OutputLen int
	Duration  time.Duration
}
