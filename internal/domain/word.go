package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Word is a lexical entry created at import time from WordNet index files.
// FrequencySignal and SyllableCount stay nil until an enrichment run fills
// them; DifficultyScore and DifficultyLevel stay nil until a scoring run.
type Word struct {
	ID                uuid.UUID
	Text              string // lowercase-normalized, unique
	PartOfSpeech      PartOfSpeech
	FrequencySignal   *float64 // raw per-million corpus frequency as reported by the provider; normalized to 0..1 at scoring time
	FrequencyMeasured bool     // false when the provider had no frequency for the word
	SyllableCount     *int
	PolysemyCount     int
	DifficultyScore   *float64
	DifficultyLevel   *DifficultyLevel
	Eligibility       EligibilityStatus
	EligibilityReason *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WordSynsetLink joins a word to one of its synsets. SenseNumber is the
// frequency rank of that meaning for the word, unique per word and
// increasing in order of relevance (1 = most common sense).
type WordSynsetLink struct {
	WordID      uuid.UUID
	SynsetID    string
	SenseNumber int
}

// ClassifyEligibility decides whether a lexical entry can be served to
// learners. Single alphabetic tokens are eligible words, space- or
// underscore-separated entries are eligible phrases, everything else is
// ineligible with a reason.
func ClassifyEligibility(text string) (EligibilityStatus, *string) {
	reason := func(msg string) *string { return &msg }

	if len([]rune(text)) < 2 {
		return EligibilityIneligible, reason("too short")
	}

	hasSeparator := false
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			return EligibilityIneligible, reason("contains digits")
		case r == ' ' || r == '_':
			hasSeparator = true
		case unicode.IsLetter(r) || r == '-' || r == '\'' || r == '.':
		default:
			return EligibilityIneligible, reason("contains punctuation")
		}
	}

	// Abbreviations like "a.m." are not useful learning material.
	if strings.Contains(text, ".") {
		return EligibilityIneligible, reason("abbreviation")
	}

	if hasSeparator {
		return EligibilityPhrase, nil
	}
	return EligibilityWord, nil
}
