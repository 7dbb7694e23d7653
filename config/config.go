// Package config loads the viewer settings from defaults, an optional
// YAML file, C3DVIEW_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("invalid configuration")

// Camera is the initial camera orientation.
type Camera struct {
	Theta float64 `mapstructure:"theta"`
	Phi   float64 `mapstructure:"phi"`
	Rho   float64 `mapstructure:"rho"`
}

type Config struct {
	LogLevel string `mapstructure:"logLevel"`
	Width    int    `mapstructure:"width"`
	Height   int    `mapstructure:"height"`
	// Trail is the initial number of points kept per marker.
	Trail  int    `mapstructure:"trail"`
	Camera Camera `mapstructure:"camera"`
}

var defaults = map[string]interface{}{
	"logLevel":     "info",
	"width":        800,
	"height":       600,
	"trail":        1,
	"camera.theta": 350.0,
	"camera.phi":   300.0,
	"camera.rho":   1.0,
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "YAML configuration file")
	fs.String("log-level", defaults["logLevel"].(string), "log level (trace, debug, info, warn, error)")
	fs.Int("width", defaults["width"].(int), "window width")
	fs.Int("height", defaults["height"].(int), "window height")
	fs.Int("trail", defaults["trail"].(int), "initial trail length per marker")
	fs.Float64("rho", defaults["camera.rho"].(float64), "initial zoom")
}

var flagKeys = map[string]string{
	"log-level": "logLevel",
	"width":     "width",
	"height":    "height",
	"trail":     "trail",
	"rho":       "camera.rho",
}

// Load builds the configuration. fs may be nil; otherwise its flags
// registered by RegisterFlags override every other source.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.SetEnvPrefix("C3DVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Trail < 1:
		return fmt.Errorf("%w: trail %d", ErrInvalid, c.Trail)
	case !(c.Camera.Rho > 0):
		return fmt.Errorf("%w: rho %v", ErrInvalid, c.Camera.Rho)
	}
	return nil
}
