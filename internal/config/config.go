// Package config provides configuration loading and management for pourover.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/metalagman/pourover/internal/brew"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. POUROVER_POUR_TIME.
	EnvPrefix = "POUROVER"
	// FileName is the config file name searched for without extension.
	FileName = "pourover"
	// DefaultPath is where init writes a config when no path is given.
	DefaultPath = "pourover.yaml"
)

// Keys understood by the loader.
const (
	KeyDefaultWater     = "defaults.water"
	KeyDefaultCoffee    = "defaults.coffee"
	KeyPourTime         = "pour_time"
	KeyBloomTime        = "bloom_time"
	KeySecondIncrements = "second_increments"
	KeyFormat           = "format"
)

// Config is the root configuration.
type Config struct {
	Defaults         Defaults   `json:"defaults"          mapstructure:"defaults"          yaml:"defaults"`
	PourTime         brew.Clock `json:"pour_time"         mapstructure:"pour_time"         yaml:"pour_time"`
	BloomTime        int        `json:"bloom_time"        mapstructure:"bloom_time"        yaml:"bloom_time"`
	SecondIncrements int        `json:"second_increments" mapstructure:"second_increments" yaml:"second_increments"`
	Format           string     `json:"format"            mapstructure:"format"            yaml:"format"`
}

// Defaults is the brew used when no complete water/coffee/ratio pairing is given.
type Defaults struct {
	Water  int `json:"water"  mapstructure:"water"  yaml:"water"`
	Coffee int `json:"coffee" mapstructure:"coffee" yaml:"coffee"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Defaults:         Defaults{Water: brew.DefaultWater, Coffee: brew.DefaultCoffee},
		PourTime:         brew.Clock(brew.DefaultPourTime),
		BloomTime:        brew.DefaultBloomTime,
		SecondIncrements: brew.DefaultIncrement,
		Format:           "text",
	}
}

// Plan returns the fallback brew plan.
func (c Config) Plan() brew.Plan {
	return brew.Plan{Water: c.Defaults.Water, Coffee: c.Defaults.Coffee}
}

// Timing returns the schedule timing.
func (c Config) Timing() brew.Timing {
	return brew.Timing{
		PourTime:  c.PourTime.Seconds(),
		BloomTime: c.BloomTime,
		Increment: c.SecondIncrements,
	}
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault(KeyDefaultWater, def.Defaults.Water)
	v.SetDefault(KeyDefaultCoffee, def.Defaults.Coffee)
	v.SetDefault(KeyPourTime, def.PourTime.String())
	v.SetDefault(KeyBloomTime, def.BloomTime)
	v.SetDefault(KeySecondIncrements, def.SecondIncrements)
	v.SetDefault(KeyFormat, def.Format)
}

// BindEnv loads .env when present and enables POUROVER_* overrides.
func BindEnv(v *viper.Viper) {
	_ = godotenv.Load()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Read reads the config file into v and returns the path used. With an empty
// path the working directory and the user config dir are searched, and a
// missing file is not an error.
func Read(v *viper.Viper, path string) (string, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, FileName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load validates the merged settings of v and decodes them. v is expected to
// carry SetDefaults.
func Load(v *viper.Viper) (Config, error) {
	if err := ValidateSettings(v.AllSettings()); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	if _, err := parseClock(v.GetString(KeyPourTime)); err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyPourTime, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(ClockHookFunc())); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

var clockType = reflect.TypeOf(brew.Clock(0))

// ClockHookFunc decodes "M:SS" strings, or plain seconds, into brew.Clock.
func ClockHookFunc() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != clockType {
			return data, nil
		}
		text, ok := data.(string)
		if !ok {
			return data, nil
		}
		c, err := parseClock(text)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

func parseClock(text string) (brew.Clock, error) {
	if secs, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("%w: %q: negative seconds", brew.ErrFormat, text)
		}
		return brew.Clock(secs), nil
	}
	return brew.ParseClock(text)
}

// WriteFile writes cfg as YAML to path. An existing file is only replaced
// when force is set.
func WriteFile(path string, cfg Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
