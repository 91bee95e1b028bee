package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// Invalid weights or thresholds are rejected here, never mid-batch.
func (c *Config) Validate() error {
	if err := c.Scoring.validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Selection.validate(); err != nil {
		return fmt.Errorf("selection: %w", err)
	}
	if err := c.Enrichment.validate(); err != nil {
		return fmt.Errorf("enrichment: %w", err)
	}
	return nil
}

func (s *ScoringConfig) validate() error {
	for name, w := range map[string]float64{
		"length":    s.Weights.Length,
		"syllables": s.Weights.Syllables,
		"frequency": s.Weights.Frequency,
		"polysemy":  s.Weights.Polysemy,
		"pos":       s.Weights.POS,
		"domain":    s.Weights.Domain,
	} {
		if w < 0 {
			return fmt.Errorf("weights.%s must be >= 0 (got %v)", name, w)
		}
	}

	if s.BeginnerMax <= 0 || s.BeginnerMax >= 1 {
		return fmt.Errorf("beginner_max must be in (0,1) (got %v)", s.BeginnerMax)
	}
	if s.IntermediateMax <= 0 || s.IntermediateMax >= 1 {
		return fmt.Errorf("intermediate_max must be in (0,1) (got %v)", s.IntermediateMax)
	}
	if s.BeginnerMax >= s.IntermediateMax {
		return fmt.Errorf("beginner_max (%v) must be < intermediate_max (%v)", s.BeginnerMax, s.IntermediateMax)
	}

	if s.MaxExpectedFrequency <= 0 {
		return fmt.Errorf("max_expected_frequency must be > 0 (got %v)", s.MaxExpectedFrequency)
	}
	if s.FrequencyExponent <= 0 {
		return fmt.Errorf("frequency_exponent must be > 0 (got %v)", s.FrequencyExponent)
	}
	if s.FrequencyFloor < 0 || s.FrequencyFloor >= 1 {
		return fmt.Errorf("frequency_floor must be in [0,1) (got %v)", s.FrequencyFloor)
	}

	return nil
}

func (s *SelectionConfig) validate() error {
	if s.LookbackDays <= 0 {
		return fmt.Errorf("lookback_days must be > 0 (got %d)", s.LookbackDays)
	}
	if s.PerLevelCounts <= 0 {
		return fmt.Errorf("per_level_counts must be > 0 (got %d)", s.PerLevelCounts)
	}

	targets := []float64{s.POSTargets.Noun, s.POSTargets.Verb, s.POSTargets.Adjective, s.POSTargets.Adverb}
	var sum float64
	for _, t := range targets {
		if t < 0 {
			return fmt.Errorf("pos_targets must be >= 0 (got %v)", t)
		}
		sum += t
	}
	if sum <= 0 {
		return fmt.Errorf("pos_targets must not all be zero")
	}

	return nil
}

func (e *EnrichmentConfig) validate() error {
	if e.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", e.BatchSize)
	}
	if e.RateLimitInterval <= 0 {
		return fmt.Errorf("rate_limit_interval must be > 0 (got %v)", e.RateLimitInterval)
	}
	if e.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", e.MaxRetries)
	}
	if e.MaxConsecutiveFailures <= 0 {
		return fmt.Errorf("max_consecutive_failures must be > 0 (got %d)", e.MaxConsecutiveFailures)
	}
	if e.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be > 0 (got %d)", e.CacheSize)
	}
	return nil
}
