package domain

import "fmt"

// Synset is a single sense/concept parsed from a WordNet data file.
// The ID is the part-of-speech letter followed by the 8-digit zero-padded
// byte offset, e.g. "n00001740". It is derived deterministically and unique.
type Synset struct {
	ID           string
	Offset       int
	PartOfSpeech PartOfSpeech
	Definition   string
	Examples     []string
	LexFileNum   int
	Domain       *string
}

// SynsetID builds the canonical synset identifier from its natural key.
func SynsetID(pos PartOfSpeech, offset int) string {
	return fmt.Sprintf("%s%08d", pos.Code(), offset)
}

// Relationship is a directed, typed edge between two synsets.
// Self-loops and edges to unknown synsets are never stored.
type Relationship struct {
	FromSynsetID string
	ToSynsetID   string
	Type         RelationshipType
}

// Validate checks structural invariants of the relationship.
func (r Relationship) Validate() error {
	if r.FromSynsetID == "" || r.ToSynsetID == "" {
		return NewValidationError("synset_id", "both endpoints are required")
	}
	if r.FromSynsetID == r.ToSynsetID {
		return NewValidationError("to_synset_id", "self-referential relationship")
	}
	return nil
}
