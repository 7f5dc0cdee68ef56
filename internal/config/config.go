package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Bot       Bot       `yaml:"bot"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Bot struct {
	Difficulty string        `yaml:"difficulty" env:"BOT_DIFFICULTY" env-default:"hard"`
	Mark       string        `yaml:"mark" env:"BOT_MARK" env-default:"O"`
	ThinkDelay time.Duration `yaml:"think-delay" env:"BOT_THINK_DELAY" env-default:"0s"`
}

// Telemetry is disabled while OTLPEndpoint is empty.
type Telemetry struct {
	OTLPEndpoint   string `yaml:"otlp-endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName    string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"tictactoe-engine"`
	ServiceVersion string `yaml:"service-version" env-default:"v0.1.0"`
}

func (that *Telemetry) Enabled() bool {
	return that.OTLPEndpoint != ""
}

// Load reads the config file at path with environment overrides on top.
// An empty path reads the environment only.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	return config, nil
}

// MustLoad - same as Load but panics on failure.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}
