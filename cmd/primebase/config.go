package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/JoshOrndorff/PrimeBase/primebase"
)

const envPrefix = "PRIMEBASE"

const (
	keyMaxOrdinal       = "max-ordinal"
	keyMaxMagnitudeBits = "max-magnitude-bits"
	keyLogLevel         = "log-level"
	keyOutput           = "output"
	keyWorkers          = "workers"
)

// settings is the resolved configuration of one invocation.
type settings struct {
	MaxOrdinal       int
	MaxMagnitudeBits int
	LogLevel         string
	Output           string
	Workers          int
}

func registerFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.Int(keyMaxOrdinal, primebase.DefaultMaxOrdinal, "largest prime ordinal a factorization may use")
	flags.Int(keyMaxMagnitudeBits, primebase.DefaultMaxMagnitudeBits, "largest magnitude, in bits, that will be computed")
	flags.String(keyLogLevel, "warn", "log level (debug, info, warn, error)")
	flags.StringP(keyOutput, "o", "text", "output format (text, json, yaml)")
	flags.Int(keyWorkers, 4, "concurrent evaluations for describe")
}

// loadSettings reads flags, PRIMEBASE_* environment variables and the
// optional config file, in that order of precedence.
func loadSettings(v *viper.Viper, flags *pflag.FlagSet) (settings, error) {
	for _, key := range []string{keyMaxOrdinal, keyMaxMagnitudeBits, keyLogLevel, keyOutput, keyWorkers} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return settings{}, fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	s := settings{
		MaxOrdinal:       v.GetInt(keyMaxOrdinal),
		MaxMagnitudeBits: v.GetInt(keyMaxMagnitudeBits),
		LogLevel:         v.GetString(keyLogLevel),
		Output:           strings.ToLower(v.GetString(keyOutput)),
		Workers:          v.GetInt(keyWorkers),
	}
	switch s.Output {
	case "text", "json", "yaml":
	default:
		return settings{}, fmt.Errorf("unknown output format %q", s.Output)
	}
	if s.Workers < 1 {
		s.Workers = 1
	}
	return s, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
