package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/optio/internal/server"
	"github.com/matzehuels/optio/pkg/errors"
)

// configFileName is the file looked up inside configDir.
const configFileName = "config.toml"

// Config is the optional TOML configuration file.
//
//	key_file = "~/.optio-key"
//
//	[server]
//	addr = ":8080"
//	rate_limit = 120
type Config struct {
	// KeyFile is read for the passphrase when no flag or OPTIO_KEY is set.
	KeyFile string `toml:"key_file"`

	Server ServerConfig `toml:"server"`
}

// ServerConfig holds the defaults for the serve command.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	RateLimit int    `toml:"rate_limit"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:      server.DefaultAddr,
			RateLimit: server.DefaultRateLimit,
		},
	}
}

// LoadConfig reads the configuration at path on top of DefaultConfig.
// An empty path means the default location, which may be absent. An explicit
// path that does not exist is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFileName)
	}
	path = expandHome(path)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	return cfg, nil
}
