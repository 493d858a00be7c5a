package pipeline

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/optio/pkg/envelope"
	"github.com/matzehuels/optio/pkg/observability"
	"github.com/matzehuels/optio/pkg/transform"
)

// Runner wraps the pure pipeline with validation, logging and observability
// hooks. Both CLI and API use it.
//
// The Runner holds no per-call state, so multiple goroutines can safely use
// the same Runner.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Encrypt validates opts and obfuscates opts.Input under opts.Key.
func (r *Runner) Encrypt(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnEncryptStart(ctx, len(opts.Input))
	start := time.Now()

	plan := NewPlan(opts.Key)
	result := &Result{Plan: plan}

	var text string
	if opts.Trace {
		result.Stages = plan.Trace(opts.Input, opts.Key, transform.Forward)
		text = finalText(opts.Input, result.Stages)
	} else {
		text = plan.Forward(opts.Input, opts.Key)
	}
	result.Output = envelope.Encode(text)
	result.Stats = Stats{
		InputLen:  utf8.RuneCountInString(opts.Input),
		OutputLen: utf8.RuneCountInString(result.Output),
		Duration:  time.Since(start),
	}

	r.logStages(opts.Logger, result.Stages)
	opts.Logger.Debug("encrypted message",
		"input_len", result.Stats.InputLen,
		"output_len", result.Stats.OutputLen,
		"duration", result.Stats.Duration)
	hooks.OnEncryptComplete(ctx, len(result.Output), result.Stats.Duration, nil)

	return result, nil
}

// Decrypt validates opts and recovers the message in opts.Input under
// opts.Key. The only runtime failure is a DECODE_FAILURE for a malformed
// envelope; a wrong key returns a garbled message without error.
func (r *Runner) Decrypt(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateCiphertext(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnDecryptStart(ctx, len(opts.Input))
	start := time.Now()

	text, err := envelope.Decode(opts.Input)
	if err != nil {
		opts.Logger.Debug("decode failed", "err", err)
		hooks.OnDecryptComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}

	plan := NewPlan(opts.Key)
	result := &Result{Plan: plan}

	if opts.Trace {
		result.Stages = plan.Trace(text, opts.Key, transform.Inverse)
		result.Output = finalText(text, result.Stages)
	} else {
		result.Output = plan.Inverse(text, opts.Key)
	}
	result.Stats = Stats{
		InputLen:  utf8.RuneCountInString(opts.Input),
		OutputLen: utf8.RuneCountInString(result.Output),
		Duration:  time.Since(start),
	}

	r.logStages(opts.Logger, result.Stages)
	opts.Logger.Debug("decrypted message",
		"input_len", result.Stats.InputLen,
		"output_len", result.Stats.OutputLen,
		"duration", result.Stats.Duration)
	hooks.OnDecryptComplete(ctx, len(result.Output), result.Stats.Duration, nil)

	return result, nil
}

// logStages logs one debug line per traced stage. Stage text is not logged.
func (r *Runner) logStages(logger *log.Logger, stages []Stage) {
	for step, s := range stages {
		logger.Debug("applied transform",
			"step", step,
			"index", s.Index,
			"transform", s.Kind,
			"direction", s.Direction,
			"len", utf8.RuneCountInString(s.Output))
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func finalText(input string, stages []Stage) string {
	if len(stages) == 0 {
		return input
	}
	return stages[len(stages)-1].Output
}
