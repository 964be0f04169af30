// Package config loads the settings of the cache commands.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes environment overrides, e.g. LFU_CAPACITY.
const EnvPrefix = "LFU"

type Config struct {
	// Shards is the number of independently locked LFU cores.
	Shards int `mapstructure:"shards"`
	// Capacity is the total number of keys, split across shards.
	Capacity int `mapstructure:"capacity"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log-level"`
}

func Default() Config {
	return Config{
		Shards:   4,
		Capacity: 1024,
		LogLevel: "info",
	}
}

/*
Load reads the config.

Config values merge rules:
 1. defaults
 2. config file value (yaml, json or toml by extension) overrides default
 3. LFU_* environment value overrides file

An empty path skips the file.
*/
func Load(path string) (Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("shards", def.Shards)
	v.SetDefault("capacity", def.Capacity)
	v.SetDefault("log-level", def.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Shards <= 0 {
		return errors.Errorf("shards must be positive, got %d", c.Shards)
	}
	if c.Capacity < 0 {
		return errors.Errorf("capacity must not be negative, got %d", c.Capacity)
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}
