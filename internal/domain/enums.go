package domain

// PartOfSpeech represents the grammatical category of a word or synset.
// The values mirror the five WordNet database file categories.
type PartOfSpeech string

const (
	PartOfSpeechNoun               PartOfSpeech = "NOUN"
	PartOfSpeechVerb               PartOfSpeech = "VERB"
	PartOfSpeechAdjective          PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdjectiveSatellite PartOfSpeech = "ADJECTIVE_SATELLITE"
	PartOfSpeechAdverb             PartOfSpeech = "ADVERB"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective,
		PartOfSpeechAdjectiveSatellite, PartOfSpeechAdverb:
		return true
	}
	return false
}

// Code returns the single-letter WordNet code for the part of speech.
func (p PartOfSpeech) Code() string {
	switch p {
	case PartOfSpeechNoun:
		return "n"
	case PartOfSpeechVerb:
		return "v"
	case PartOfSpeechAdjective:
		return "a"
	case PartOfSpeechAdjectiveSatellite:
		return "s"
	case PartOfSpeechAdverb:
		return "r"
	}
	return ""
}

// ParsePOSCode maps a WordNet part-of-speech letter to a PartOfSpeech.
func ParsePOSCode(code string) (PartOfSpeech, bool) {
	switch code {
	case "n":
		return PartOfSpeechNoun, true
	case "v":
		return PartOfSpeechVerb, true
	case "a":
		return PartOfSpeechAdjective, true
	case "s":
		return PartOfSpeechAdjectiveSatellite, true
	case "r":
		return PartOfSpeechAdverb, true
	}
	return "", false
}

// DifficultyLevel is the tier derived from a continuous difficulty score.
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "BEGINNER"
	DifficultyIntermediate DifficultyLevel = "INTERMEDIATE"
	DifficultyAdvanced     DifficultyLevel = "ADVANCED"
)

func (d DifficultyLevel) String() string { return string(d) }

func (d DifficultyLevel) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// AllDifficultyLevels returns the tiers in ascending order of difficulty.
func AllDifficultyLevels() []DifficultyLevel {
	return []DifficultyLevel{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// EligibilityStatus classifies whether a lexical entry can be served to learners.
type EligibilityStatus string

const (
	EligibilityWord       EligibilityStatus = "ELIGIBLE_WORD"
	EligibilityPhrase     EligibilityStatus = "ELIGIBLE_PHRASE"
	EligibilityIneligible EligibilityStatus = "INELIGIBLE"
)

func (e EligibilityStatus) String() string { return string(e) }

func (e EligibilityStatus) IsValid() bool {
	switch e {
	case EligibilityWord, EligibilityPhrase, EligibilityIneligible:
		return true
	}
	return false
}

// RelationshipType is a named semantic relation between two synsets.
type RelationshipType string

const (
	RelationAntonym             RelationshipType = "antonym"
	RelationHypernym            RelationshipType = "hypernym"
	RelationInstanceHypernym    RelationshipType = "instance_hypernym"
	RelationHyponym             RelationshipType = "hyponym"
	RelationInstanceHyponym     RelationshipType = "instance_hyponym"
	RelationMemberHolonym       RelationshipType = "member_holonym"
	RelationSubstanceHolonym    RelationshipType = "substance_holonym"
	RelationPartHolonym         RelationshipType = "part_holonym"
	RelationMemberMeronym       RelationshipType = "member_meronym"
	RelationSubstanceMeronym    RelationshipType = "substance_meronym"
	RelationPartMeronym         RelationshipType = "part_meronym"
	RelationAttribute           RelationshipType = "attribute"
	RelationDerivationallyRel   RelationshipType = "derivationally_related"
	RelationDomainTopic         RelationshipType = "domain_topic"
	RelationMemberOfDomainTopic RelationshipType = "member_of_domain_topic"
	RelationDomainRegion        RelationshipType = "domain_region"
	RelationMemberOfDomainReg   RelationshipType = "member_of_domain_region"
	RelationDomainUsage         RelationshipType = "domain_usage"
	RelationMemberOfDomainUsage RelationshipType = "member_of_domain_usage"
	RelationEntailment          RelationshipType = "entailment"
	RelationCause               RelationshipType = "cause"
	RelationAlsoSee             RelationshipType = "also_see"
	RelationVerbGroup           RelationshipType = "verb_group"
	RelationSimilarTo           RelationshipType = "similar_to"
	RelationParticiple          RelationshipType = "participle"
	RelationPertainym           RelationshipType = "pertainym"
	RelationDerivedFrom         RelationshipType = "derived_from"
)

func (r RelationshipType) String() string { return string(r) }
