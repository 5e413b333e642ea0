// Package config holds the settings of the cairostep driver.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/PolyhedraZK/ObliviousCairo/cairo"
	"github.com/PolyhedraZK/ObliviousCairo/field"
)

// LookupBitsEnv names the environment variable holding the range-check limb width.
const LookupBitsEnv = "LOOKUP_BITS"

const (
	ModeMock    = "mock"
	ModeGroth16 = "groth16"
	ModePlonk   = "plonk"
)

var (
	ErrMissingLookupBits = errors.New(LookupBitsEnv + " is not set")
	ErrInvalidConfig     = errors.New("invalid config")
)

// Config is the driver configuration. LookupBits comes from the environment,
// everything else from flags.
type Config struct {
	LookupBits   int
	Curve        string
	Mode         string
	Steps        int
	CheckIndices bool
	Strict       bool
}

// Default returns a configuration with every optional setting filled in.
func Default() *Config {
	return &Config{
		Curve: "bn254",
		Mode:  ModeMock,
		Steps: 1,
	}
}

// LoadEnv reads LookupBits from the environment. Call it after the flags
// are parsed, so that -h works without LOOKUP_BITS.
func (c *Config) LoadEnv() error {
	bits, err := LookupBits()
	if err != nil {
		return err
	}
	c.LookupBits = bits
	return nil
}

// LookupBits parses LOOKUP_BITS.
func LookupBits() (int, error) {
	s, ok := os.LookupEnv(LookupBitsEnv)
	if !ok || s == "" {
		return 0, ErrMissingLookupBits
	}
	bits, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, LookupBitsEnv, s, err)
	}
	if bits <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, LookupBitsEnv, bits)
	}
	return bits, nil
}

// RegisterFlags binds the flag-driven settings to fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Curve, "curve", c.Curve, "curve whose scalar field the circuit is built over")
	fs.StringVar(&c.Mode, "mode", c.Mode, "mock, groth16 or plonk")
	fs.IntVar(&c.Steps, "steps", c.Steps, "number of steps to chain")
	fs.BoolVar(&c.CheckIndices, "check", c.CheckIndices, "range check the addresses each step reads")
	fs.BoolVar(&c.Strict, "strict", c.Strict, "reject out-of-range reads instead of reading 0")
}

// Validate checks the settings against each other.
func (c *Config) Validate() error {
	if c.LookupBits <= 0 {
		return fmt.Errorf("%w: lookup bits must be positive, got %d", ErrInvalidConfig, c.LookupBits)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	}
	switch c.Mode {
	case ModeMock, ModeGroth16, ModePlonk:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if _, err := c.Field(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Field returns the scalar field of the configured curve.
func (c *Config) Field() (*field.Field, error) {
	return field.GetFieldFromName(c.Curve)
}

// StepConfig returns the configuration of the step relation.
func (c *Config) StepConfig() cairo.Config {
	cfg := cairo.Config{
		LookupBits:   c.LookupBits,
		CheckIndices: c.CheckIndices || c.Strict,
	}
	if c.Strict {
		cfg.Gather = cairo.GatherStrict
	}
	return cfg
}

// MachineStrict reports whether the native machine must fail on reads the
// circuit would reject.
func (c *Config) MachineStrict() bool {
	return c.CheckIndices || c.Strict
}
