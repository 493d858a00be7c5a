package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/optio/pkg/pipeline"
)

// encryptCommand creates the encrypt command.
func (c *CLI) encryptCommand() *cobra.Command {
	var (
		keys  keyOpts
		files ioOpts
	)

	cmd := &cobra.Command{
		Use:   "encrypt [message]",
		Short: "Obfuscate a message",
		Long: `Obfuscate a message and print the ciphertext.

The message is taken from the argument, else from --in, else from stdin.
Files and stdin are read verbatim, including any trailing newline.

The passphrase is taken from --key, else --key-file, else the OPTIO_KEY
environment variable, else key_file from the config file.`,
		Example: `  optio encrypt -k test "Hello, World!"
  OPTIO_KEY=test optio encrypt < message.txt > message.optio`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCrypt(cmd.Context(), cmd, args, keys, files, true)
		},
	}

	keys.register(cmd)
	files.register(cmd)

	return cmd
}

// decryptCommand creates the decrypt command.
func (c *CLI) decryptCommand() *cobra.Command {
	var (
		keys  keyOpts
		files ioOpts
	)

	cmd := &cobra.Command{
		Use:   "decrypt [ciphertext]",
		Short: "Recover a message from a ciphertext",
		Long: `Recover a message from a ciphertext produced by encrypt.

Whitespace in the ciphertext is ignored and trailing '=' padding may be
omitted. A ciphertext that is not valid base64 fails with DECODE_FAILURE.
A wrong passphrase is not detected and prints garbled text.`,
		Example: `  optio decrypt -k test LEUhZktFcWdLIGZEVQ==
  optio decrypt --key-file ~/.optio-key -i message.optio`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCrypt(cmd.Context(), cmd, args, keys, files, false)
		},
	}

	keys.register(cmd)
	files.register(cmd)

	return cmd
}

// runCrypt resolves the passphrase and input, runs the pipeline in the
// requested direction and writes the result.
func (c *CLI) runCrypt(ctx context.Context, cmd *cobra.Command, args []string, keys keyOpts, files ioOpts, encrypt bool) error {
	logger := loggerFromContext(ctx)

	key, source, err := c.resolveKey(keys)
	if err != nil {
		return err
	}
	logger.Debug("resolved passphrase", "source", source)

	input, err := readInput(cmd, args, files.in)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	runner := c.newRunner()
	opts := pipeline.Options{Key: key, Input: input, Logger: logger}

	var (
		res  *pipeline.Result
		verb string
	)
	if encrypt {
		res, err = runner.Encrypt(ctx, opts)
		verb = "Encrypted"
	} else {
		res, err = runner.Decrypt(ctx, opts)
		verb = "Decrypted"
	}
	if err != nil {
		return err
	}
	prog.done(verb, "input_len", res.Stats.InputLen, "output_len", res.Stats.OutputLen)

	if err := writeOutput(cmd, files.out, res.Output); err != nil {
		return err
	}
	if files.out != "" {
		printSuccess(cmd.ErrOrStderr(), "%s %d characters", verb, res.Stats.InputLen)
		printFile(cmd.ErrOrStderr(), files.out)
	}
	return nil
}
