// Package config loads process configuration for the engine binaries,
// mirroring the shape cmd/server/main.go expects from the teacher's
// (unretrieved) internal/config package: a single Load(path) entry point
// returning a struct with Logging/Server-shaped sections.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig controls internal/enginelog construction.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig controls internal/api's websocket listener.
type ServerConfig struct {
	WebSocketAddress string        `mapstructure:"websocket_address"`
	MaxSessions      int           `mapstructure:"max_sessions"`
	PollTimeout      time.Duration `mapstructure:"poll_timeout"`
}

// BattleConfig controls default battle creation parameters.
type BattleConfig struct {
	VictoryPointThreshold int  `mapstructure:"victory_point_threshold"`
	DeterministicSeed     bool `mapstructure:"deterministic_seed"`
}

// PersistConfig controls internal/persist's file-backed save store.
type PersistConfig struct {
	Directory string `mapstructure:"directory"`
}

// Config is the full process configuration tree.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
	Battle  BattleConfig  `mapstructure:"battle"`
	Persist PersistConfig `mapstructure:"persist"`
}

// Load reads path (YAML) via viper, applying defaults for anything unset.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("server.websocket_address", ":9001")
	v.SetDefault("server.max_sessions", 256)
	v.SetDefault("server.poll_timeout", 30*time.Second)
	v.SetDefault("battle.victory_point_threshold", 25)
	v.SetDefault("battle.deterministic_seed", false)
	v.SetDefault("persist.directory", "./data/saves")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return cfg, nil
}
