package wordnet

import "github.com/oneword-app/oneword-backend/internal/domain"

// pointerSymbols maps WordNet pointer symbols to relationship types.
// Two-character symbols are matched before single-character ones; anything
// not in this table is noise and is silently ignored (the WordNet pointer
// table is closed).
var pointerSymbols = map[string]domain.RelationshipType{
	"!":  domain.RelationAntonym,
	"@":  domain.RelationHypernym,
	"@i": domain.RelationInstanceHypernym,
	"~":  domain.RelationHyponym,
	"~i": domain.RelationInstanceHyponym,
	"#m": domain.RelationMemberHolonym,
	"#s": domain.RelationSubstanceHolonym,
	"#p": domain.RelationPartHolonym,
	"%m": domain.RelationMemberMeronym,
	"%s": domain.RelationSubstanceMeronym,
	"%p": domain.RelationPartMeronym,
	"=":  domain.RelationAttribute,
	"+":  domain.RelationDerivationallyRel,
	";c": domain.RelationDomainTopic,
	"-c": domain.RelationMemberOfDomainTopic,
	";r": domain.RelationDomainRegion,
	"-r": domain.RelationMemberOfDomainReg,
	";u": domain.RelationDomainUsage,
	"-u": domain.RelationMemberOfDomainUsage,
	"*":  domain.RelationEntailment,
	">":  domain.RelationCause,
	"^":  domain.RelationAlsoSee,
	"$":  domain.RelationVerbGroup,
	"&":  domain.RelationSimilarTo,
	"<":  domain.RelationParticiple,
}

// LookupPointerSymbol resolves a pointer symbol to a relationship type.
// The full symbol is tried first (covers two-character symbols like ";c"),
// then the leading character. The backslash pointer is part-of-speech
// dependent: pertainym for adjectives, derived-from for adverbs.
func LookupPointerSymbol(symbol string, sourcePOS domain.PartOfSpeech) (domain.RelationshipType, bool) {
	if symbol == `\` {
		switch sourcePOS {
		case domain.PartOfSpeechAdverb:
			return domain.RelationDerivedFrom, true
		default:
			return domain.RelationPertainym, true
		}
	}

	if rel, ok := pointerSymbols[symbol]; ok {
		return rel, true
	}
	if len(symbol) > 1 {
		if rel, ok := pointerSymbols[symbol[:1]]; ok {
			return rel, true
		}
	}
	return "", false
}
