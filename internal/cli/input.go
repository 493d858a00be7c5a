package cli

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/optio/pkg/errors"
)

// keyOpts holds the passphrase flags shared by every keyed command.
type keyOpts struct {
	key     string // --key
	keyFile string // --key-file
}

func (o *keyOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.key, "key", "k", "", "passphrase (visible in process lists; prefer --key-file or "+envKey+")")
	cmd.Flags().StringVar(&o.keyFile, "key-file", "", "read the passphrase from a file")
}

// resolveKey finds the passphrase. Sources are tried in order: --key,
// --key-file, OPTIO_KEY, then key_file from the config file.
func (c *CLI) resolveKey(o keyOpts) (string, string, error) {
	key, source, err := c.lookupKey(o)
	if err != nil {
		return "", "", err
	}
	if err := errors.ValidateKey(key); err != nil {
		return "", "", err
	}
	return key, source, nil
}

func (c *CLI) lookupKey(o keyOpts) (string, string, error) {
	if o.key != "" {
		return o.key, "flag", nil
	}
	if o.keyFile != "" {
		key, err := readKeyFile(o.keyFile)
		return key, "key-file", err
	}
	if key, ok := os.LookupEnv(envKey); ok && key != "" {
		return key, "env", nil
	}
	if c.config.KeyFile != "" {
		key, err := readKeyFile(c.config.KeyFile)
		return key, "config", err
	}
	return "", "", errors.New(errors.ErrCodeInvalidKey,
		"no passphrase given: use --key, --key-file or set %s", envKey)
}

// readKeyFile reads a passphrase file. A single trailing line break is
// dropped so files written by editors and echo work as expected.
func readKeyFile(path string) (string, error) {
	path = expandHome(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "key file %s", path)
		}
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read key file %s", path)
	}
	key := strings.TrimSuffix(string(data), "\n")
	key = strings.TrimSuffix(key, "\r")
	return key, nil
}

// ioOpts holds the input and output flags of encrypt and decrypt.
type ioOpts struct {
	in  string // --in, "-" for stdin
	out string // --out
}

func (o *ioOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.in, "in", "i", "", "read input from a file (- for stdin)")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write output to a file instead of stdout")
}

// readInput returns the text to process: the positional argument if
// present, else the --in file, else stdin. Files and stdin are read
// verbatim. Reading stops just past the ciphertext limit, so oversized input
// still fails validation.
func readInput(cmd *cobra.Command, args []string, in string) (string, error) {
	if len(args) > 0 {
		if in != "" {
			return "", errors.New(errors.ErrCodeInvalidInput, "give either an argument or --in, not both")
		}
		return args[0], nil
	}

	var r io.Reader = cmd.InOrStdin()
	if in != "" && in != "-" {
		f, err := os.Open(expandHome(in))
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s", in)
			}
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "open input %s", in)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, errors.MaxCiphertextBytes+1))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read input")
	}
	return string(data), nil
}

// writeOutput writes text to the --out file, or to stdout followed by a
// newline.
func writeOutput(cmd *cobra.Command, out, text string) error {
	if out == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), text+"\n")
		return err
	}
	if err := os.WriteFile(expandHome(out), []byte(text), 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write output %s", out)
	}
	return nil
}
