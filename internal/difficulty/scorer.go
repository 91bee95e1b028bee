package difficulty

import (
	"github.com/oneword-app/oneword-backend/internal/config"
	"github.com/oneword-app/oneword-backend/internal/domain"
)

// Features are the per-word inputs to the composite difficulty score.
type Features struct {
	Text          string
	PartOfSpeech  domain.PartOfSpeech
	Frequency     Signal
	SyllableCount int
	PolysemyCount int
	Synsets       []domain.Synset
}

// Result is a composite difficulty score with its tier.
type Result struct {
	Score     float64
	Level     domain.DifficultyLevel
	SubScores SubScores
}

// SubScores exposes the individual factor scores for observability.
type SubScores struct {
	Length    float64
	Syllables float64
	Frequency float64
	Polysemy  float64
	POS       float64
	Domain    float64
}

// Scorer computes difficulty scores from configured weights and
// thresholds. It is stateless: the same inputs always yield the same
// score and level, and it never touches persistent state.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer creates a Scorer. The configuration is assumed validated
// (config.Load rejects bad weights and thresholds at startup).
func NewScorer(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes the weighted composite in [0,1] and maps it to a tier.
// Weights that do not sum to exactly 1 are tolerated: the composite is
// clamped rather than rejected.
func (s *Scorer) Score(f Features) Result {
	sub := SubScores{
		Length:    lengthScore(f.Text),
		Syllables: syllableScore(f.SyllableCount),
		Frequency: DifficultyContribution(f.Frequency, s.normalizerConfig()),
		Polysemy:  polysemyScore(f.PolysemyCount),
		POS:       posComplexity(f.PartOfSpeech),
		Domain:    DomainSpecificity(f.Synsets),
	}

	w := s.cfg.Weights
	score := w.Length*sub.Length +
		w.Syllables*sub.Syllables +
		w.Frequency*sub.Frequency +
		w.Polysemy*sub.Polysemy +
		w.POS*sub.POS +
		w.Domain*sub.Domain

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return Result{
		Score:     score,
		Level:     s.level(score),
		SubScores: sub,
	}
}

func (s *Scorer) normalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		MaxExpectedFrequency: s.cfg.MaxExpectedFrequency,
		Exponent:             s.cfg.FrequencyExponent,
		Floor:                s.cfg.FrequencyFloor,
	}
}

// level maps a score to exactly one tier:
// score < beginnerMax -> beginner; < intermediateMax -> intermediate;
// else advanced.
func (s *Scorer) level(score float64) domain.DifficultyLevel {
	switch {
	case score < s.cfg.BeginnerMax:
		return domain.DifficultyBeginner
	case score < s.cfg.IntermediateMax:
		return domain.DifficultyIntermediate
	default:
		return domain.DifficultyAdvanced
	}
}

// lengthScore buckets character length into difficulty steps.
func lengthScore(text string) float64 {
	n := len([]rune(text))
	switch {
	case n <= 3:
		return 0
	case n <= 5:
		return 0.2
	case n <= 7:
		return 0.4
	case n <= 9:
		return 0.6
	case n <= 12:
		return 0.8
	default:
		return 1.0
	}
}

// syllableScore buckets syllable count into difficulty steps, capped at 0.9.
func syllableScore(count int) float64 {
	switch {
	case count <= 1:
		return 0
	case count == 2:
		return 0.3
	case count == 3:
		return 0.6
	case count == 4:
		return 0.8
	default:
		return 0.9
	}
}

// polysemyScore is inverted: words with many senses tend to be common
// core vocabulary, so fewer senses contribute more difficulty.
func polysemyScore(count int) float64 {
	switch {
	case count <= 1:
		return 0.8
	case count <= 2:
		return 0.6
	case count <= 4:
		return 0.4
	case count <= 7:
		return 0.2
	default:
		return 0.1
	}
}

// posComplexity ranks part-of-speech difficulty:
// noun < verb < adjective < adverb. Satellites score as adjectives.
func posComplexity(pos domain.PartOfSpeech) float64 {
	switch pos {
	case domain.PartOfSpeechNoun:
		return 0.2
	case domain.PartOfSpeechVerb:
		return 0.4
	case domain.PartOfSpeechAdjective, domain.PartOfSpeechAdjectiveSatellite:
		return 0.6
	case domain.PartOfSpeechAdverb:
		return 0.8
	default:
		return 0.5
	}
}
