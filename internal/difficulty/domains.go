package difficulty

import (
	"strings"

	"github.com/oneword-app/oneword-backend/internal/domain"
)

// technicalKeywords is the closed list of terms that mark a synset as
// belonging to a specialized domain. Matched against the synset's domain
// tag and definition text, lowercase substring match.
var technicalKeywords = []string{
	"medicine", "medical", "anatomy", "disease", "surgery", "pharmacology",
	"law", "legal", "jurisprudence", "statute",
	"science", "scientific", "physics", "chemistry", "chemical", "biology",
	"mathematics", "geometry", "algebra",
	"computer", "computing", "software",
	"linguistics", "grammar", "phonetics",
	"economics", "finance", "monetary",
	"astronomy", "geology", "botany", "zoology",
	"architecture", "engineering", "military", "nautical",
	"ecclesiastical", "theology", "philosophy",
}

// technicalLexDomains marks lexicographer files whose vocabulary is
// predominantly specialist. Broad files (animal, food, artifact) stay out
// even though they contain some technical terms.
var technicalLexDomains = map[string]bool{
	"noun.body":       true,
	"noun.process":    true,
	"noun.phenomenon": true,
	"noun.substance":  true,
}

// DomainSpecificity returns the fraction of the word's synsets whose
// domain tag or definition matches the technical keyword list. With no
// synset data the signal is unknown and defaults to 0.5.
func DomainSpecificity(synsets []domain.Synset) float64 {
	if len(synsets) == 0 {
		return 0.5
	}

	technical := 0
	for _, s := range synsets {
		if isTechnical(s) {
			technical++
		}
	}
	return float64(technical) / float64(len(synsets))
}

func isTechnical(s domain.Synset) bool {
	if s.Domain != nil && technicalLexDomains[*s.Domain] {
		return true
	}

	var hay strings.Builder
	if s.Domain != nil {
		hay.WriteString(strings.ToLower(*s.Domain))
		hay.WriteByte(' ')
	}
	hay.WriteString(strings.ToLower(s.Definition))
	text := hay.String()

	for _, kw := range technicalKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
