//Package config loads the molgraph command line settings from a YAML file,
//MOLGRAPH_* environment variables and defaults, with viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rmera/molgraph/internal/logging"
	"github.com/spf13/viper"
)

const envPrefix = "MOLGRAPH"

//GeometryConfig controls the coordinate synthesis and the structure files written.
type GeometryConfig struct {
	ComponentSpacing float64 `mapstructure:"component_spacing" yaml:"component_spacing"`
	Compress         bool    `mapstructure:"compress" yaml:"compress"` //write .mol.zst files
	Plot             bool    `mapstructure:"plot" yaml:"plot"`         //also write a PNG projection
}

//StoreConfig sets the classification ledger. An empty path disables it.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

//Config is the full molgraph configuration.
type Config struct {
	Log      logging.Config `mapstructure:"log" yaml:"log"`
	Geometry GeometryConfig `mapstructure:"geometry" yaml:"geometry"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`
}

var defaults = map[string]interface{}{
	"log.level":                  "info",
	"log.format":                 "console",
	"log.output_paths":           []string{"stderr"},
	"geometry.component_spacing": 10.0,
	"geometry.compress":          false,
	"geometry.plot":              false,
	"store.path":                 "",
}

//newViper returns a viper that reads YAML, takes MOLGRAPH_ environment variables
//("geometry.compress" is MOLGRAPH_GEOMETRY_COMPRESS) and knows every key, so the
//environment can override keys missing from the file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	return v
}

//Load reads the YAML file at path, if path is not empty, applies the environment
//overrides and the defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

//Default returns the configuration with only the defaults applied.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

//Validate returns every problem found in the configuration, joined.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of console, json", c.Log.Format))
	}
	if c.Geometry.ComponentSpacing <= 0 {
		errs = append(errs, fmt.Errorf("geometry.component_spacing must be positive, got %g", c.Geometry.ComponentSpacing))
	}
	return errors.Join(errs...)
}
