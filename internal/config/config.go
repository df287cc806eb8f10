// SPDX-License-Identifier: MIT

// Package config resolves the butterfly scenario settings from defaults, an
// optional YAML/JSON file, FMMTL_* environment variables and command-line
// flags, in increasing precedence.
package config

import (
	"fmt"
	"math"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nipinghe/fmmtl/kernel"
)

// EnvPrefix prefixes environment overrides: FMMTL_ORDER=6.
const EnvPrefix = "FMMTL"

// Setting keys, shared by the file, the environment and the flags.
const (
	KeyDim        = "dim"
	KeyOrder      = "order"
	KeyDepth      = "depth"
	KeySplit      = "split"
	KeyKernel     = "kernel"
	KeyOmega      = "omega"
	KeySources    = "sources"
	KeyTargets    = "targets"
	KeyLayout     = "layout"
	KeySeparation = "separation"
	KeySeed       = "seed"
	KeyWorkers    = "workers"
)

// Point layouts.
const (
	LayoutGrid   = "grid"   // cell centers of a regular grid, one per leaf where possible
	LayoutRandom = "random" // uniform in the unit cube
)

// Config is one scenario: geometry, kernel and transform parameters.
type Config struct {
	Dim        int     `mapstructure:"dim"`
	Order      int     `mapstructure:"order"`
	Depth      int     `mapstructure:"depth"`
	Split      int     `mapstructure:"split"`
	Kernel     string  `mapstructure:"kernel"`
	Omega      float64 `mapstructure:"omega"`
	Sources    int     `mapstructure:"sources"`
	Targets    int     `mapstructure:"targets"`
	Layout     string  `mapstructure:"layout"`
	Separation float64 `mapstructure:"separation"`
	Seed       int64   `mapstructure:"seed"`
	Workers    int     `mapstructure:"workers"`
}

// Default returns the built-in scenario: two 16-point grids in the plane,
// the radial kernel at ω = 2 and an order-4 two-level transform.
func Default() Config {
	return Config{
		Dim:        2,
		Order:      4,
		Depth:      2,
		Split:      -1,
		Kernel:     kernel.NameRadial,
		Omega:      2,
		Sources:    16,
		Targets:    16,
		Layout:     LayoutGrid,
		Separation: 3,
		Seed:       1,
		Workers:    1,
	}
}

// BindFlags registers one flag per setting on fs, defaulting to Default().
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int(KeyDim, d.Dim, "spatial dimension D")
	fs.Int(KeyOrder, d.Order, "Chebyshev nodes per axis Q")
	fs.Int(KeyDepth, d.Depth, "tree depth L_max")
	fs.Int(KeySplit, d.Split, "M2L target level (-1 for depth/2)")
	fs.String(KeyKernel, d.Kernel, "kernel: identity, radial or fourier")
	fs.Float64(KeyOmega, d.Omega, "kernel frequency")
	fs.Int(KeySources, d.Sources, "number of source points")
	fs.Int(KeyTargets, d.Targets, "number of target points")
	fs.String(KeyLayout, d.Layout, "point layout: grid or random")
	fs.Float64(KeySeparation, d.Separation, "offset of the target cube along axis 0")
	fs.Int64(KeySeed, d.Seed, "random seed for charges and random layouts")
	fs.Int(KeyWorkers, d.Workers, "goroutines per pass")
}

// Load merges defaults, the file at path (skipped when empty), the
// environment and the flags in fs (nil allowed), then validates.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s: %w: %v", path, ErrRead, err)
		}
	}
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyDim, d.Dim)
	v.SetDefault(KeyOrder, d.Order)
	v.SetDefault(KeyDepth, d.Depth)
	v.SetDefault(KeySplit, d.Split)
	v.SetDefault(KeyKernel, d.Kernel)
	v.SetDefault(KeyOmega, d.Omega)
	v.SetDefault(KeySources, d.Sources)
	v.SetDefault(KeyTargets, d.Targets)
	v.SetDefault(KeyLayout, d.Layout)
	v.SetDefault(KeySeparation, d.Separation)
	v.SetDefault(KeySeed, d.Seed)
	v.SetDefault(KeyWorkers, d.Workers)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Dim < 1:
		return fmt.Errorf("dim %d: %w", c.Dim, ErrInvalidDimension)
	case c.Order < 1:
		return fmt.Errorf("order %d: %w", c.Order, ErrInvalidOrder)
	case c.Depth < 0:
		return fmt.Errorf("depth %d: %w", c.Depth, ErrInvalidDepth)
	case c.Split < -1 || c.Split > c.Depth:
		return fmt.Errorf("split %d: %w", c.Split, ErrInvalidSplit)
	case c.Sources < 1 || c.Targets < 1:
		return fmt.Errorf("sources %d, targets %d: %w", c.Sources, c.Targets, ErrInvalidCount)
	case c.Workers < 1:
		return fmt.Errorf("workers %d: %w", c.Workers, ErrInvalidWorkers)
	case math.IsNaN(c.Separation) || math.IsInf(c.Separation, 0) || c.Separation < 0:
		return fmt.Errorf("separation %v: %w", c.Separation, ErrInvalidSeparation)
	case math.IsNaN(c.Omega) || math.IsInf(c.Omega, 0):
		return fmt.Errorf("omega %v: %w", c.Omega, ErrInvalidOmega)
	}
	if _, err := c.KernelFunc(); err != nil {
		return err
	}
	if c.Layout != LayoutGrid && c.Layout != LayoutRandom {
		return fmt.Errorf("layout %q: %w", c.Layout, ErrUnknownLayout)
	}

	return nil
}

// KernelFunc resolves Kernel and Omega.
func (c Config) KernelFunc() (kernel.Kernel, error) {
	k, err := kernel.ByName(c.Kernel, c.Omega)
	if err != nil {
		return nil, fmt.Errorf("kernel %q: %w", c.Kernel, ErrUnknownKernel)
	}

	return k, nil
}
