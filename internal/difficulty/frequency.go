// Package difficulty computes word difficulty: frequency normalization,
// syllable estimation, domain specificity, and the weighted composite
// score with tier mapping. All functions are pure and deterministic.
package difficulty

import "math"

// Signal is a normalized frequency value. Measured distinguishes a real
// mid-range observation from the flagged default used when the external
// provider had no data for the word.
type Signal struct {
	Value    float64 // 0..1, higher = more common
	Measured bool
}

// unknownFrequency is the flagged default for words without frequency data.
const unknownFrequency = 0.5

// NormalizerConfig holds the tunables of frequency normalization. The
// ceiling is calibrated against the external provider's observed value
// range and lives in configuration, not in the scorer.
type NormalizerConfig struct {
	MaxExpectedFrequency float64
	// Exponent compresses the high end of the difficulty contribution
	// (values < 1 are convex). Zero disables shaping.
	Exponent float64
	// Floor is the minimum difficulty contribution, so ultra-common
	// words never score exactly zero.
	Floor float64
}

// NormalizeFrequency maps a raw provider frequency to a Signal in [0,1].
func NormalizeFrequency(raw float64, cfg NormalizerConfig) Signal {
	if raw < 0 {
		raw = 0
	}
	normalized := math.Min(raw/cfg.MaxExpectedFrequency, 1)
	return Signal{Value: normalized, Measured: true}
}

// UnknownFrequency returns the flagged default signal for words the
// provider had no data for. Callers can tell it apart from a measured
// mid-frequency value via Measured.
func UnknownFrequency() Signal {
	return Signal{Value: unknownFrequency, Measured: false}
}

// DifficultyContribution converts a Signal into a difficulty sub-score
// in [0,1] where higher means rarer. Monotonically non-increasing in the
// raw frequency.
func DifficultyContribution(sig Signal, cfg NormalizerConfig) float64 {
	contribution := 1 - sig.Value
	if cfg.Exponent > 0 {
		contribution = math.Pow(contribution, cfg.Exponent)
	}
	if contribution < cfg.Floor {
		contribution = cfg.Floor
	}
	if contribution > 1 {
		contribution = 1
	}
	return contribution
}
