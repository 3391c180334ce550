// Package grain synthesizes deterministic procedural grain overlays for
// wallpaper rendering. The synthesizer is pure: the same inputs always
// produce a byte-identical buffer.
package grain

import (
	"fmt"
	"math"
)

// Size selects the base spatial frequency of the grain pattern.
type Size string

const (
	SizeFine   Size = "fine"
	SizeNormal Size = "normal"
	SizeCoarse Size = "coarse"
)

// Algorithm selects the noise generator strategy.
type Algorithm string

const (
	AlgorithmFBM       Algorithm = "fbm"
	AlgorithmBlueNoise Algorithm = "blue-noise"
)

// IntensityCurve remaps raw noise magnitude before it becomes visual intensity.
type IntensityCurve string

const (
	CurveLinear IntensityCurve = "linear"
	CurveS      IntensityCurve = "s-curve"
)

// ChromaConfig controls the secondary color-noise channels.
type ChromaConfig struct {
	Enabled   bool
	Intensity float64 // [0,1]
}

// Config is the immutable grain configuration for one synthesis call.
// All fields are validated once at the Synthesize entry point; out-of-domain
// values are rejected with a ConfigError, never silently clamped.
type Config struct {
	Enabled        bool
	Amount         float64 // [0,100], overall strength
	Size           Size
	Algorithm      Algorithm
	Octaves        int     // >= 1, fbm only
	Lacunarity     float64 // > 0, per-octave frequency multiplier
	Gain           float64 // > 0, per-octave amplitude multiplier
	Chroma         ChromaConfig
	IntensityCurve IntensityCurve
	ProtectShadows float64 // [0,1], 0 = no suppression
}

// DefaultConfig returns the stock grain settings used by the CLI.
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		Amount:         65,
		Size:           SizeNormal,
		Algorithm:      AlgorithmFBM,
		Octaves:        4,
		Lacunarity:     2.0,
		Gain:           0.55,
		Chroma:         ChromaConfig{Enabled: true, Intensity: 0.12},
		IntensityCurve: CurveLinear,
		ProtectShadows: 0.0,
	}
}

// ConfigError reports a configuration field outside its documented domain.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("grain config: %s: %s", e.Field, e.Reason)
}

// sizeBaseFrequency maps a grain size to the fbm base frequency in cycles
// per pixel. Smaller grain means higher frequency.
var sizeBaseFrequency = map[Size]float64{
	SizeFine:   0.45,
	SizeNormal: 0.18,
	SizeCoarse: 0.06,
}

// sizeCellWidth maps a grain size to the blue-noise cell width in pixels.
var sizeCellWidth = map[Size]int{
	SizeFine:   1,
	SizeNormal: 2,
	SizeCoarse: 5,
}

// Validate checks every field against its documented domain. The parameters
// that only feed the fbm generator are validated regardless of the selected
// algorithm so that a stored configuration is auditable as a whole.
func (c Config) Validate() error {
	if err := checkFinite("amount", c.Amount); err != nil {
		return err
	}
	if c.Amount < 0 || c.Amount > 100 {
		return &ConfigError{Field: "amount", Reason: fmt.Sprintf("%g outside [0,100]", c.Amount)}
	}
	if _, ok := sizeBaseFrequency[c.Size]; !ok {
		return &ConfigError{Field: "size", Reason: fmt.Sprintf("unknown value %q", string(c.Size))}
	}
	switch c.Algorithm {
	case AlgorithmFBM, AlgorithmBlueNoise:
	default:
		return &ConfigError{Field: "algorithm", Reason: fmt.Sprintf("unknown value %q", string(c.Algorithm))}
	}
	if c.Octaves < 1 {
		return &ConfigError{Field: "octaves", Reason: fmt.Sprintf("%d is not a positive integer", c.Octaves)}
	}
	if err := checkFinite("lacunarity", c.Lacunarity); err != nil {
		return err
	}
	if c.Lacunarity <= 0 {
		return &ConfigError{Field: "lacunarity", Reason: fmt.Sprintf("%g is not positive", c.Lacunarity)}
	}
	if err := checkFinite("gain", c.Gain); err != nil {
		return err
	}
	if c.Gain <= 0 {
		return &ConfigError{Field: "gain", Reason: fmt.Sprintf("%g is not positive", c.Gain)}
	}
	if err := checkFinite("chroma.intensity", c.Chroma.Intensity); err != nil {
		return err
	}
	if c.Chroma.Intensity < 0 || c.Chroma.Intensity > 1 {
		return &ConfigError{Field: "chroma.intensity", Reason: fmt.Sprintf("%g outside [0,1]", c.Chroma.Intensity)}
	}
	switch c.IntensityCurve {
	case CurveLinear, CurveS:
	default:
		return &ConfigError{Field: "intensityCurve", Reason: fmt.Sprintf("unknown value %q", string(c.IntensityCurve))}
	}
	if err := checkFinite("protectShadows", c.ProtectShadows); err != nil {
		return err
	}
	if c.ProtectShadows < 0 || c.ProtectShadows > 1 {
		return &ConfigError{Field: "protectShadows", Reason: fmt.Sprintf("%g outside [0,1]", c.ProtectShadows)}
	}
	return nil
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ConfigError{Field: field, Reason: "value is not finite"}
	}
	return nil
}
