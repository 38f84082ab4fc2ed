package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAlgorithm = "bubble"
	DefaultSize      = 30
	DefaultMin       = 5
	DefaultMax       = 100
	DefaultPattern   = "random"
	DefaultSpeed     = 50.0
	DefaultBaseDelay = time.Second
	DefaultTheme     = "retro"
	DefaultDataDir   = ".algoviz"
	DefaultAddr      = "localhost:8080"
	MaxSize          = 500
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Algorithm string         `yaml:"algorithm" validate:"required,oneof=bubble quick merge insertion selection heap"`
	Input     InputConfig    `yaml:"input"`
	Playback  PlaybackConfig `yaml:"playback"`
	Theme     string         `yaml:"theme" validate:"omitempty,oneof=retro ocean sunset mono"`
	DataDir   string         `yaml:"data_dir"`
	Log       LogConfig      `yaml:"log"`
	Server    ServerConfig   `yaml:"server"`
}

type InputConfig struct {
	Size    int    `yaml:"size" validate:"min=1,max=500"`
	Min     int    `yaml:"min"`
	Max     int    `yaml:"max" validate:"gtefield=Min"`
	Pattern string `yaml:"pattern" validate:"omitempty,oneof=random reversed nearly_sorted few_unique"`
	Seed    int64  `yaml:"seed"`
}

type PlaybackConfig struct {
	Speed     float64       `yaml:"speed" validate:"gt=0,lte=1000"`
	BaseDelay time.Duration `yaml:"base_delay" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=auto text json"`
	File   string `yaml:"file"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Input: InputConfig{
			Size:    DefaultSize,
			Min:     DefaultMin,
			Max:     DefaultMax,
			Pattern: DefaultPattern,
		},
		Playback: PlaybackConfig{
			Speed:     DefaultSpeed,
			BaseDelay: DefaultBaseDelay,
		},
		Theme:   DefaultTheme,
		DataDir: DefaultDataDir,
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field constraint and reports all violations at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}
