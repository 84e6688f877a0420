/*
 * config.go, part of alphaparser.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package config loads alphaparser settings. Values come, in increasing
//order of priority, from the defaults, an optional TOML file, ALPHAPARSER_*
//environment variables and command line flags bound by the caller.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/rmera/alphaparser/vis"
)

//Config is the full set of settings for one run.
type Config struct {
	Vis  VisConfig  `mapstructure:"vis"`
	Plot PlotConfig `mapstructure:"plot"`
	Log  LogConfig  `mapstructure:"log"`
}

//VisConfig controls the visualization exporter.
type VisConfig struct {
	Backend  string `mapstructure:"backend"`  //pymol or chimerax
	Spectrum string `mapstructure:"spectrum"` //ygb, rg or mwc
	Command  string `mapstructure:"command"`  //program to run, empty means the backend default
	Template string `mapstructure:"template"` //argument template, empty means the backend default
}

//PlotConfig controls the heatmap. Sizes are in inches.
type PlotConfig struct {
	Width   float64 `mapstructure:"width"`
	Height  float64 `mapstructure:"height"`
	DPI     int     `mapstructure:"dpi"`
	Palette string  `mapstructure:"palette"` //a ColorBrewer sequential palette name
	Reverse bool    `mapstructure:"reverse"`
}

type LogConfig struct {
	JSON    bool `mapstructure:"json"`
	Verbose bool `mapstructure:"verbose"`
}

//EnvPrefix is the prefix for the environment variables read.
const EnvPrefix = "ALPHAPARSER"

//SetDefaults sets the default value of every key in v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("vis.backend", "pymol")
	v.SetDefault("vis.spectrum", "ygb")
	v.SetDefault("vis.command", "")
	v.SetDefault("vis.template", "")

	//same figure as the one seaborn produced: 5x3.75 in, 600 dpi, YlGnBu_r
	v.SetDefault("plot.width", 5.0)
	v.SetDefault("plot.height", 3.75)
	v.SetDefault("plot.dpi", 600)
	v.SetDefault("plot.palette", "YlGnBu")
	v.SetDefault("plot.reverse", true)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbose", false)
}

//New returns a viper instance with defaults and environment binding set.
//If file is not empty, it is read and must exist. Otherwise alphaparser.toml
//is looked for in the current directory and in $HOME/.config/alphaparser,
//and its absence is not an error.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("toml")
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", file)
		}
		return v, nil
	}
	v.SetConfigName("alphaparser")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "alphaparser"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config file")
		}
	}
	return v, nil
}

//Load unmarshals v into a Config and checks it, including the visualization
//backend and spectrum, which are rejected even if no session is written.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return nil, errors.Newf("plot size must be positive, got %gx%g in", c.Plot.Width, c.Plot.Height)
	}
	if c.Plot.DPI <= 0 {
		return nil, errors.Newf("plot dpi must be positive, got %d", c.Plot.DPI)
	}
	h, err := vis.NewHandle(c.Vis.Backend)
	if err != nil {
		return nil, err
	}
	if _, err := h.Color(vis.Spectrum(c.Vis.Spectrum)); err != nil {
		return nil, err
	}
	return &c, nil
}
