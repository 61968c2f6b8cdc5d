// Package config loads settings from flags, CONNECT4_ environment
// variables and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug         = "debug"
	ConfigMaxDepth      = "max-depth"
	ConfigDifficulty    = "difficulty"
	ConfigFirst         = "first"
	ConfigOpponent      = "opponent"
	ConfigSearchTimeout = "search-timeout"
	ConfigThreads       = "threads"
	ConfigHistoryFile   = "history-file"
	ConfigCPUProfile    = "cpu-profile"
	ConfigOpeningPlies  = "opening-plies"
	ConfigFile          = "config"
)

const envPrefix = "CONNECT4"

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config with defaults only; it does not read the
// environment. Tests use it.
func DefaultConfig() *Config {
	c := &Config{viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigMaxDepth, 10)
	c.SetDefault(ConfigDifficulty, "hard")
	c.SetDefault(ConfigFirst, "x")
	c.SetDefault(ConfigOpponent, "bot")
	c.SetDefault(ConfigSearchTimeout, time.Duration(0))
	c.SetDefault(ConfigThreads, 4)
	c.SetDefault(ConfigHistoryFile, "/tmp/connect4-history")
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigOpeningPlies, 2)
}

// Load parses args and merges flags, environment and config file.
// It returns the positional arguments left after flag parsing.
func (c *Config) Load(args []string) ([]string, error) {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("connect4", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigMaxDepth, 10, "search depth in plies for the hard bot")
	fs.String(ConfigDifficulty, "hard", "bot difficulty: easy, medium or hard")
	fs.String(ConfigFirst, "x", "who moves first: x, o or random")
	fs.String(ConfigOpponent, "bot", "who plays O: bot or human")
	fs.Duration(ConfigSearchTimeout, 0, "per-move search time limit (0 for none)")
	fs.Int(ConfigThreads, 4, "worker goroutines for analysis and autoplay")
	fs.String(ConfigHistoryFile, "/tmp/connect4-history", "readline history file")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.Int(ConfigOpeningPlies, 2, "random plies at the start of each autoplay game")
	fs.String(ConfigFile, "", "YAML config file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.BindPFlags(fs); err != nil {
		return nil, err
	}

	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		if err := c.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

var (
	errBadDepth      = errors.New("max-depth must be between 1 and 42")
	errBadDifficulty = errors.New("difficulty must be easy, medium or hard")
	errBadThreads    = errors.New("threads must be at least 1")
)

func (c *Config) Validate() error {
	if d := c.GetInt(ConfigMaxDepth); d < 1 || d > 42 {
		return errBadDepth
	}
	switch c.GetString(ConfigDifficulty) {
	case "easy", "medium", "hard":
	default:
		return errBadDifficulty
	}
	if c.GetInt(ConfigThreads) < 1 {
		return errBadThreads
	}
	return nil
}
