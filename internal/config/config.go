package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultVariant        = "seating-adjacent"
	DefaultPreset         = "sample"
	DefaultDataDir        = ".cellgrid"
	DefaultTheme          = "classic"
	DefaultLogLevel       = "warn"
	DefaultMaxGenerations = 10000
	DefaultFrameRate      = 8
)

type Config struct {
	Variant        string `yaml:"variant"`
	Input          string `yaml:"input"`
	Preset         string `yaml:"preset"`
	Generations    int    `yaml:"generations"`
	MaxGenerations int    `yaml:"max_generations"`
	Render         bool   `yaml:"render"`
	Metrics        bool   `yaml:"metrics"`
	Theme          string `yaml:"theme"`
	DataDir        string `yaml:"data_dir"`
	LogLevel       string `yaml:"log_level"`
	FrameRate      int    `yaml:"frame_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant:        DefaultVariant,
		MaxGenerations: DefaultMaxGenerations,
		Theme:          DefaultTheme,
		DataDir:        DefaultDataDir,
		LogLevel:       DefaultLogLevel,
		FrameRate:      DefaultFrameRate,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks values that do not depend on the variant registry.
func (c *Config) Validate() error {
	if c.Generations < 0 {
		return fmt.Errorf("generations must not be negative, got %d", c.Generations)
	}
	if c.MaxGenerations < 0 {
		return fmt.Errorf("max_generations must not be negative, got %d", c.MaxGenerations)
	}
	if c.FrameRate < 0 {
		return fmt.Errorf("frame_rate must not be negative, got %d", c.FrameRate)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (logrus.Level, error) {
	if c.LogLevel == "" {
		return logrus.WarnLevel, nil
	}
	return logrus.ParseLevel(c.LogLevel)
}

// NewLogger builds the process logger from the configured level.
func (c *Config) NewLogger() (*logrus.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log, nil
}
