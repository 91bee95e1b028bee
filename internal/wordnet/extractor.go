package wordnet

import "github.com/oneword-app/oneword-backend/internal/domain"

// ExtractStats counts the filtering outcomes of relationship extraction.
type ExtractStats struct {
	Candidates      int
	Extracted       int
	UnknownSymbols  int
	SelfReferential int
	DanglingTargets int
	Duplicates      int
}

// relKey deduplicates exact (from, to, type) triples within a batch.
type relKey struct {
	from    string
	to      string
	relType domain.RelationshipType
}

// ExtractRelationships converts pointer candidates from one synset into
// relationships. Referential integrity is enforced here rather than by a
// foreign key alone: candidates whose target is not in validSynsetIDs are
// dropped, as are self-loops and unknown pointer symbols. Exact duplicate
// triples within the batch are deduplicated.
func ExtractRelationships(
	pointers []PointerCandidate,
	sourceSynsetID string,
	sourcePOS domain.PartOfSpeech,
	validSynsetIDs map[string]bool,
) ([]domain.Relationship, ExtractStats) {
	var (
		rels  []domain.Relationship
		stats ExtractStats
		seen  = make(map[relKey]bool, len(pointers))
	)

	stats.Candidates = len(pointers)

	for _, ptr := range pointers {
		relType, ok := LookupPointerSymbol(ptr.Symbol, sourcePOS)
		if !ok {
			stats.UnknownSymbols++
			continue
		}

		targetID := domain.SynsetID(ptr.TargetPOS, ptr.TargetOffset)
		if targetID == sourceSynsetID {
			stats.SelfReferential++
			continue
		}
		if !validSynsetIDs[targetID] {
			stats.DanglingTargets++
			continue
		}

		key := relKey{from: sourceSynsetID, to: targetID, relType: relType}
		if seen[key] {
			stats.Duplicates++
			continue
		}
		seen[key] = true

		rels = append(rels, domain.Relationship{
			FromSynsetID: sourceSynsetID,
			ToSynsetID:   targetID,
			Type:         relType,
		})
	}

	stats.Extracted = len(rels)
	return rels, stats
}
