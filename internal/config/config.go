package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"headsupholdem-server/internal/util"
	"headsupholdem-server/pkg/token"
)

// Config provides configuration for the heads-up hold'em server
type Config struct {
	loaded bool

	// SigningKey signs session tokens. If empty, an ephemeral key is
	// generated at startup and sessions will not survive a restart.
	SigningKey string `yaml:"signingKey" envconfig:"signing_key"`

	Log struct {
		Level             string `yaml:"level" envconfig:"log_level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}

	Game struct {
		StartingStack int `yaml:"startingStack" envconfig:"starting_stack"`
		BigBlind      int `yaml:"bigBlind" envconfig:"big_blind"`
		RunoutDelayMs int `yaml:"runoutDelayMs" envconfig:"runout_delay_ms"`
		SettleDelayMs int `yaml:"settleDelayMs" envconfig:"settle_delay_ms"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	config = Config{}
	config.Game.StartingStack = 1000
	config.Game.BigBlind = 20
	config.Game.RunoutDelayMs = 800
	config.Game.SettleDelayMs = 3000

	configFile := util.Getenv("HH_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("hh", &config); err != nil {
		return err
	}

	if config.SigningKey == "" {
		key, err := token.Generate(64)
		if err != nil {
			return err
		}

		logrus.Warn("no signing key configured, sessions will not survive a restart")
		config.SigningKey = key
	}

	config.loaded = true
	return nil
}
