package difficulty

import (
	"testing"

	"github.com/oneword-app/oneword-backend/internal/config"
	"github.com/oneword-app/oneword-backend/internal/domain"
)

func testScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		Weights: config.WeightConfig{
			Length: 0.15, Syllables: 0.15, Frequency: 0.35,
			Polysemy: 0.15, POS: 0.1, Domain: 0.1,
		},
		BeginnerMax:          0.35,
		IntermediateMax:      0.65,
		MaxExpectedFrequency: 75,
		FrequencyExponent:    0.85,
		FrequencyFloor:       0.1,
	}
}

func TestScore_Bounded(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(testScoringConfig())

	features := []Features{
		{Text: "a", PartOfSpeech: domain.PartOfSpeechNoun, Frequency: Signal{Value: 1, Measured: true}, SyllableCount: 1, PolysemyCount: 20},
		{Text: "antidisestablishmentarianism", PartOfSpeech: domain.PartOfSpeechAdverb, Frequency: Signal{Value: 0, Measured: true}, SyllableCount: 12, PolysemyCount: 1},
		{Text: "teach", PartOfSpeech: domain.PartOfSpeechVerb, Frequency: UnknownFrequency(), SyllableCount: 1, PolysemyCount: 3},
		{},
	}
	for _, f := range features {
		res := scorer.Score(f)
		if res.Score < 0 || res.Score > 1 {
			t.Errorf("score out of [0,1] for %q: %v", f.Text, res.Score)
		}
		if !res.Level.IsValid() {
			t.Errorf("invalid level for %q: %s", f.Text, res.Level)
		}
	}
}

func TestScore_Idempotent(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(testScoringConfig())
	f := Features{
		Text:          "ameliorate",
		PartOfSpeech:  domain.PartOfSpeechVerb,
		Frequency:     Signal{Value: 0.05, Measured: true},
		SyllableCount: 4,
		PolysemyCount: 2,
	}

	first := scorer.Score(f)
	second := scorer.Score(f)
	if first != second {
		t.Errorf("re-scoring identical inputs differed: %+v vs %+v", first, second)
	}
}

func TestScore_OverweightedConfigClamps(t *testing.T) {
	t.Parallel()

	cfg := testScoringConfig()
	// Weights summing to 3 must clamp, not error.
	cfg.Weights = config.WeightConfig{Length: 0.5, Syllables: 0.5, Frequency: 0.5, Polysemy: 0.5, POS: 0.5, Domain: 0.5}
	scorer := NewScorer(cfg)

	res := scorer.Score(Features{
		Text:          "extraordinarily",
		PartOfSpeech:  domain.PartOfSpeechAdverb,
		Frequency:     Signal{Value: 0, Measured: true},
		SyllableCount: 6,
		PolysemyCount: 1,
	})
	if res.Score != 1 {
		t.Errorf("score = %v, want clamped 1", res.Score)
	}
	if res.Level != domain.DifficultyAdvanced {
		t.Errorf("level = %s, want ADVANCED", res.Level)
	}
}

func TestLevel_TierThresholdConsistency(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(testScoringConfig())

	tests := []struct {
		score float64
		want  domain.DifficultyLevel
	}{
		{0, domain.DifficultyBeginner},
		{0.349, domain.DifficultyBeginner},
		{0.35, domain.DifficultyIntermediate}, // boundary: beginnerMax <= s < intermediateMax
		{0.5, domain.DifficultyIntermediate},
		{0.649, domain.DifficultyIntermediate},
		{0.65, domain.DifficultyAdvanced},
		{1, domain.DifficultyAdvanced},
	}
	for _, tt := range tests {
		if got := scorer.level(tt.score); got != tt.want {
			t.Errorf("level(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestScore_RarerIsHarder(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(testScoringConfig())

	common := Features{
		Text: "teach", PartOfSpeech: domain.PartOfSpeechVerb,
		Frequency: NormalizeFrequency(70, NormalizerConfig{MaxExpectedFrequency: 75}), SyllableCount: 1, PolysemyCount: 6,
	}
	rare := Features{
		Text: "ameliorate", PartOfSpeech: domain.PartOfSpeechVerb,
		Frequency: NormalizeFrequency(0.5, NormalizerConfig{MaxExpectedFrequency: 75}), SyllableCount: 4, PolysemyCount: 1,
	}

	if scorer.Score(common).Score >= scorer.Score(rare).Score {
		t.Error("a common short word should score lower than a rare long one")
	}
}

func TestLengthScore_Buckets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want float64
	}{
		{"cat", 0},
		{"teach", 0.2},
		{"concept", 0.4},
		{"knowledge", 0.6},
		{"nevertheless", 0.8},
		{"incomprehensible", 1.0},
	}
	for _, tt := range tests {
		if got := lengthScore(tt.text); got != tt.want {
			t.Errorf("lengthScore(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestSyllableScore_Caps(t *testing.T) {
	t.Parallel()

	if got := syllableScore(1); got != 0 {
		t.Errorf("syllableScore(1) = %v, want 0", got)
	}
	if got := syllableScore(2); got != 0.3 {
		t.Errorf("syllableScore(2) = %v, want 0.3", got)
	}
	if got := syllableScore(3); got != 0.6 {
		t.Errorf("syllableScore(3) = %v, want 0.6", got)
	}
	if got := syllableScore(10); got != 0.9 {
		t.Errorf("syllableScore(10) = %v, want capped 0.9", got)
	}
}

func TestPOSComplexity_Ordering(t *testing.T) {
	t.Parallel()

	noun := posComplexity(domain.PartOfSpeechNoun)
	verb := posComplexity(domain.PartOfSpeechVerb)
	adj := posComplexity(domain.PartOfSpeechAdjective)
	adv := posComplexity(domain.PartOfSpeechAdverb)

	if !(noun < verb && verb < adj && adj < adv) {
		t.Errorf("expected noun < verb < adjective < adverb, got %v %v %v %v", noun, verb, adj, adv)
	}
	if posComplexity(domain.PartOfSpeechAdjectiveSatellite) != adj {
		t.Error("satellites should score as adjectives")
	}
}

func TestDomainSpecificity(t *testing.T) {
	t.Parallel()

	medicine := "medicine"
	synsets := []domain.Synset{
		{Definition: "an instrument used in surgery"},
		{Definition: "a small animal"},
		{Definition: "of or relating to courts of law"},
		{Domain: &medicine, Definition: "a dose"},
	}

	if got := DomainSpecificity(synsets); got != 0.75 {
		t.Errorf("DomainSpecificity = %v, want 0.75", got)
	}
	if got := DomainSpecificity(nil); got != 0.5 {
		t.Errorf("DomainSpecificity(nil) = %v, want default 0.5", got)
	}
}

func TestDomainSpecificity_LexDomainTags(t *testing.T) {
	t.Parallel()

	substance := "noun.substance"
	animal := "noun.animal"
	synsets := []domain.Synset{
		// The lexicographer tag alone marks the synset technical.
		{Domain: &substance, Definition: "a colorless compound"},
		{Domain: &animal, Definition: "a small burrowing mammal"},
	}

	if got := DomainSpecificity(synsets); got != 0.5 {
		t.Errorf("DomainSpecificity = %v, want 0.5", got)
	}
}

func TestEstimateSyllables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"teach", 1},
		{"make", 1},
		{"table", 2},
		{"concept", 2},
		{"banana", 3},
		{"ameliorate", 4},
		{"the", 1},
		{"give up", 2},
		{"well-known", 2},
		{"", 0},
	}
	for _, tt := range tests {
		if got := EstimateSyllables(tt.word); got != tt.want {
			t.Errorf("EstimateSyllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}
