package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-formmsg/pkg/renderers/tui"
)

// Configuration keys shared by flags, env vars and config files.
const (
	KeyFormat   = "format"
	KeySanitize = "sanitize"
	KeyVerbose  = "verbose"
)

// EnvPrefix namespaces environment overrides, e.g. FORMMSG_FORMAT.
const EnvPrefix = "FORMMSG"

// Config is the resolved CLI configuration.
type Config struct {
	Format   tui.OutputFormat
	Sanitize bool
	Verbose  bool
}

// Defaults registers default values and env bindings on v.
func Defaults(v *viper.Viper) {
	v.SetDefault(KeyFormat, string(tui.OutputFormatJSON))
	v.SetDefault(KeySanitize, false)
	v.SetDefault(KeyVerbose, false)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// Load reads the optional config file and resolves the configuration.
func Load(v *viper.Viper, file string) (Config, error) {
	if v == nil {
		return Config{}, errors.New("config: viper instance is required")
	}
	Defaults(v)

	if path := strings.TrimSpace(file); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	raw := strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat)))
	format, ok := tui.ParseOutputFormat(raw)
	if !ok {
		return Config{}, fmt.Errorf("config: unsupported format %q", raw)
	}

	return Config{
		Format:   format,
		Sanitize: v.GetBool(KeySanitize),
		Verbose:  v.GetBool(KeyVerbose),
	}, nil
}
