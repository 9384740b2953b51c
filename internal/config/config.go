package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterkuimelis/swipecity/internal/game"
	"github.com/peterkuimelis/swipecity/internal/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SWIPECITY_SEED.
const EnvPrefix = "SWIPECITY"

// DefaultTransitionMS is the card-off/card-in animation length.
const DefaultTransitionMS = 300

type Config struct {
	Catalog      string                      `mapstructure:"catalog" yaml:"catalog,omitempty" json:"catalog,omitempty"`
	Seed         int64                       `mapstructure:"seed" yaml:"seed" json:"seed"`
	CascadeDepth int                         `mapstructure:"cascade_depth" yaml:"cascade_depth" json:"cascade_depth"`
	TransitionMS int                         `mapstructure:"transition_ms" yaml:"transition_ms" json:"transition_ms"`
	Resources    map[string]ResourceConfig   `mapstructure:"resources" yaml:"resources" json:"resources"`
	Dependencies map[string]DependencyConfig `mapstructure:"dependencies" yaml:"dependencies" json:"dependencies"`
}

type ResourceConfig struct {
	Initial int `mapstructure:"initial" yaml:"initial" json:"initial"`
	Min     int `mapstructure:"min" yaml:"min" json:"min"`
	Max     int `mapstructure:"max" yaml:"max" json:"max"`
}

// DependencyConfig is keyed by its source resource. A zero factor disables
// the entry.
type DependencyConfig struct {
	Target string  `mapstructure:"target" yaml:"target" json:"target"`
	Factor float64 `mapstructure:"factor" yaml:"factor" json:"factor"`
}

func key(rt game.ResourceType) string {
	return strings.ToLower(rt.String())
}

// Default returns the stock configuration.
func Default() *Config {
	ledger := game.DefaultLedgerConfig()
	cfg := &Config{
		CascadeDepth: ledger.CascadeDepth,
		TransitionMS: DefaultTransitionMS,
		Resources:    make(map[string]ResourceConfig),
		Dependencies: make(map[string]DependencyConfig),
	}
	for _, r := range ledger.Resources {
		cfg.Resources[key(r.Type)] = ResourceConfig{Initial: r.Initial, Min: r.Min, Max: r.Max}
	}
	for _, d := range ledger.Dependencies {
		cfg.Dependencies[key(d.Source)] = DependencyConfig{Target: key(d.Target), Factor: d.Factor}
	}
	return cfg
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalog", cfg.Catalog)
	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("cascade_depth", cfg.CascadeDepth)
	v.SetDefault("transition_ms", cfg.TransitionMS)
	for name, r := range cfg.Resources {
		v.SetDefault("resources."+name+".initial", r.Initial)
		v.SetDefault("resources."+name+".min", r.Min)
		v.SetDefault("resources."+name+".max", r.Max)
	}
	for name, d := range cfg.Dependencies {
		v.SetDefault("dependencies."+name+".target", d.Target)
		v.SetDefault("dependencies."+name+".factor", d.Factor)
	}
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"catalog":       "catalog",
	"seed":          "seed",
	"cascade-depth": "cascade_depth",
	"transition-ms": "transition_ms",
}

// Load reads configuration with the precedence flags > environment > file >
// defaults. An empty path looks for swipecity.yaml in the working directory
// and tolerates its absence. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("swipecity")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, k := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if _, err := cfg.LedgerConfig(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LedgerConfig converts the resource and dependency tables and validates them.
func (c *Config) LedgerConfig() (game.LedgerConfig, error) {
	for name := range c.Resources {
		if _, err := game.ParseResourceType(name); err != nil {
			return game.LedgerConfig{}, fmt.Errorf("resources: %w", err)
		}
	}
	for name := range c.Dependencies {
		if _, err := game.ParseResourceType(name); err != nil {
			return game.LedgerConfig{}, fmt.Errorf("dependencies: %w", err)
		}
	}

	lc := game.LedgerConfig{CascadeDepth: c.CascadeDepth}
	for _, rt := range game.AllResources {
		r, ok := c.Resources[key(rt)]
		if !ok {
			return game.LedgerConfig{}, fmt.Errorf("resources: %s not configured", rt)
		}
		lc.Resources = append(lc.Resources, game.ResourceSpec{Type: rt, Initial: r.Initial, Min: r.Min, Max: r.Max})
	}
	for _, rt := range game.AllResources {
		d, ok := c.Dependencies[key(rt)]
		if !ok || d.Factor == 0 {
			continue
		}
		target, err := game.ParseResourceType(d.Target)
		if err != nil {
			return game.LedgerConfig{}, fmt.Errorf("dependencies.%s: %w", key(rt), err)
		}
		lc.Dependencies = append(lc.Dependencies, game.Dependency{Source: rt, Target: target, Factor: d.Factor})
	}

	if err := lc.Validate(); err != nil {
		return game.LedgerConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return lc, nil
}

// LoadCatalog returns the configured cards, or the built-in set when no
// catalog file is named.
func (c *Config) LoadCatalog() ([]*game.Card, error) {
	if c.Catalog == "" {
		return game.DefaultCatalog(), nil
	}
	cards, err := game.ParseCatalogFile(c.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", c.Catalog, err)
	}
	return cards, nil
}

// EngineConfig assembles everything an engine needs.
func (c *Config) EngineConfig(logger log.EventLogger) (game.Config, error) {
	ledger, err := c.LedgerConfig()
	if err != nil {
		return game.Config{}, err
	}
	cards, err := c.LoadCatalog()
	if err != nil {
		return game.Config{}, err
	}
	return game.Config{Catalog: cards, Ledger: ledger, Logger: logger, Seed: c.Seed}, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Write saves the configuration as YAML.
func (c *Config) Write(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
