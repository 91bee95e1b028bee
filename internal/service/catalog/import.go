package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oneword-app/oneword-backend/internal/domain"
	"github.com/oneword-app/oneword-backend/internal/wordnet"
)

// ImportInput names the WordNet database files to import.
type ImportInput struct {
	DataFiles  []string // data.<pos> paths
	IndexFiles []string // index.<pos> paths
	// DryRun parses and reports without touching the database.
	DryRun bool
}

// FileStats pairs a parsed file with its parser statistics.
type FileStats struct {
	Path  string
	Stats wordnet.Stats
}

// ImportSummary reports what one import run stored and skipped.
type ImportSummary struct {
	Synsets         int
	Relationships   int
	Words           int
	Links           int
	DroppedLinks    int
	EligibleWords   int
	EligiblePhrases int
	Ineligible      int
	DataFiles       []FileStats
	IndexFiles      []FileStats
	Extraction      wordnet.ExtractStats
}

// Import parses the given WordNet files and stores their content in a single
// transaction. Re-running the import over the same files is idempotent:
// synsets and words are upserted by their natural keys and duplicate
// relationships are skipped. Malformed lines are counted, never fatal.
func (s *Service) Import(ctx context.Context, input ImportInput) (*ImportSummary, error) {
	if len(input.DataFiles) == 0 && len(input.IndexFiles) == 0 {
		return nil, domain.NewValidationError("files", "at least one data or index file is required")
	}

	summary := &ImportSummary{}

	// Phase 1: parse data files. Pure CPU work, runs outside the transaction.
	var (
		synsets  []domain.Synset
		parsed   []wordnet.ParsedLine
		validIDs = make(map[string]bool)
	)
	for _, path := range input.DataFiles {
		result, err := wordnet.ParseDataFile(path)
		if err != nil {
			return nil, fmt.Errorf("parse data file %s: %w", path, err)
		}
		summary.DataFiles = append(summary.DataFiles, FileStats{Path: path, Stats: result.Stats})

		for _, line := range result.Lines {
			synsets = append(synsets, line.Synset)
			validIDs[line.Synset.ID] = true
		}
		parsed = append(parsed, result.Lines...)

		s.log.InfoContext(ctx, "data file parsed",
			slog.String("path", path),
			slog.Int("synsets", result.Stats.ParsedLines),
			slog.Int("skipped", result.Stats.SkippedLines),
			slog.Int("truncated", result.Stats.Truncated),
		)
	}

	// Previously imported synsets are valid relationship targets too, so a
	// partial re-import does not drop cross-file pointers.
	if !input.DryRun {
		stored, err := s.synsets.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list stored synsets: %w", err)
		}
		for id := range stored {
			validIDs[id] = true
		}
	}

	// Phase 2: relationship extraction with referential filtering.
	var relationships []domain.Relationship
	for _, line := range parsed {
		rels, stats := wordnet.ExtractRelationships(line.Pointers, line.Synset.ID, line.Synset.PartOfSpeech, validIDs)
		relationships = append(relationships, rels...)
		summary.Extraction.Candidates += stats.Candidates
		summary.Extraction.Extracted += stats.Extracted
		summary.Extraction.UnknownSymbols += stats.UnknownSymbols
		summary.Extraction.SelfReferential += stats.SelfReferential
		summary.Extraction.DanglingTargets += stats.DanglingTargets
		summary.Extraction.Duplicates += stats.Duplicates
	}

	// Phase 3: parse index files into word candidates.
	var entries []wordnet.IndexEntry
	for _, path := range input.IndexFiles {
		result, err := wordnet.ParseIndexFile(path)
		if err != nil {
			return nil, fmt.Errorf("parse index file %s: %w", path, err)
		}
		summary.IndexFiles = append(summary.IndexFiles, FileStats{Path: path, Stats: result.Stats})
		entries = append(entries, result.Entries...)

		s.log.InfoContext(ctx, "index file parsed",
			slog.String("path", path),
			slog.Int("lemmas", result.Stats.ParsedLines),
			slog.Int("skipped", result.Stats.SkippedLines),
		)
	}

	words := make([]domain.Word, 0, len(entries))
	for _, e := range entries {
		status, reason := domain.ClassifyEligibility(e.Lemma)
		words = append(words, domain.Word{
			Text:              e.Lemma,
			PartOfSpeech:      e.PartOfSpeech,
			PolysemyCount:     len(e.SynsetIDs),
			Eligibility:       status,
			EligibilityReason: reason,
		})
		switch status {
		case domain.EligibilityWord:
			summary.EligibleWords++
		case domain.EligibilityPhrase:
			summary.EligiblePhrases++
		default:
			summary.Ineligible++
		}
	}

	if input.DryRun {
		summary.Synsets = len(synsets)
		summary.Relationships = len(relationships)
		summary.Words = len(words)
		s.log.InfoContext(ctx, "dry run, skipping persistence",
			slog.Int("synsets", summary.Synsets),
			slog.Int("words", summary.Words),
			slog.Int("relationships", summary.Relationships),
		)
		return summary, nil
	}

	// Phase 4: persist everything atomically.
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, batch := range chunk(synsets, batchSize) {
			if err := s.synsets.UpsertBatch(ctx, batch); err != nil {
				return fmt.Errorf("upsert synsets: %w", err)
			}
			summary.Synsets += len(batch)
		}

		// Upserted words carry their database IDs, new or pre-existing.
		idByKey := make(map[wordKey]domain.Word, len(words))
		for _, batch := range chunk(words, batchSize) {
			persisted, err := s.words.UpsertBatch(ctx, batch)
			if err != nil {
				return fmt.Errorf("upsert words: %w", err)
			}
			for _, w := range persisted {
				idByKey[wordKey{w.Text, w.PartOfSpeech}] = w
			}
			summary.Words += len(persisted)
		}

		var links []domain.WordSynsetLink
		for _, e := range entries {
			w, ok := idByKey[wordKey{e.Lemma, e.PartOfSpeech}]
			if !ok {
				continue
			}
			for i, synsetID := range e.SynsetIDs {
				if !validIDs[synsetID] {
					summary.DroppedLinks++
					continue
				}
				links = append(links, domain.WordSynsetLink{
					WordID:      w.ID,
					SynsetID:    synsetID,
					SenseNumber: i + 1,
				})
			}
		}
		for _, batch := range chunk(links, batchSize) {
			if err := s.synsets.LinkWords(ctx, batch); err != nil {
				return fmt.Errorf("link words: %w", err)
			}
			summary.Links += len(batch)
		}

		for _, batch := range chunk(relationships, batchSize) {
			if err := s.synsets.InsertRelationships(ctx, batch); err != nil {
				return fmt.Errorf("insert relationships: %w", err)
			}
			summary.Relationships += len(batch)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "import finished",
		slog.Int("synsets", summary.Synsets),
		slog.Int("words", summary.Words),
		slog.Int("links", summary.Links),
		slog.Int("relationships", summary.Relationships),
		slog.Int("dropped_links", summary.DroppedLinks),
		slog.Int("dangling_pointers", summary.Extraction.DanglingTargets),
	)

	return summary, nil
}

// wordKey is the natural key of a word.
type wordKey struct {
	text string
	pos  domain.PartOfSpeech
}

// chunk splits a slice into batches of at most size elements.
func chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	var batches [][]T
	for size < len(items) {
		batches = append(batches, items[:size])
		items = items[size:]
	}
	return append(batches, items)
}
