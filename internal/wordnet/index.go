package wordnet

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oneword-app/oneword-backend/internal/domain"
)

// IndexEntry is one parsed index.<pos> line: a lemma with its synset
// offsets in sense order (most common sense first).
type IndexEntry struct {
	Lemma        string // normalized, underscores replaced with spaces
	PartOfSpeech domain.PartOfSpeech
	SynsetIDs    []string // ordered by sense number
}

// IndexFileResult holds all parsed entries of one index.<pos> file.
type IndexFileResult struct {
	Entries []IndexEntry
	Stats   Stats
}

// ParseIndexLine parses a single index.<pos> line. All count fields in
// index files are decimal (unlike data files). Returns nil for header
// lines and anything that does not match the format.
//
// Format: lemma pos synset_cnt p_cnt [ptr_symbol...] sense_cnt
// tagsense_cnt synset_offset [synset_offset...]
func ParseIndexLine(line string) *IndexEntry {
	if line == "" || strings.HasPrefix(line, "  ") {
		return nil
	}

	tokens := strings.Fields(line)
	if len(tokens) < 7 {
		return nil
	}

	pos, ok := domain.ParsePOSCode(tokens[1])
	if !ok {
		return nil
	}

	synsetCnt, err := strconv.Atoi(tokens[2])
	if err != nil || synsetCnt <= 0 {
		return nil
	}
	ptrCnt, err := strconv.Atoi(tokens[3])
	if err != nil || ptrCnt < 0 {
		return nil
	}

	// Skip the pointer symbol list, then sense_cnt and tagsense_cnt.
	offsetStart := 4 + ptrCnt + 2
	if offsetStart+synsetCnt > len(tokens) {
		return nil
	}

	entry := &IndexEntry{
		Lemma:        domain.NormalizeText(strings.ReplaceAll(tokens[0], "_", " ")),
		PartOfSpeech: pos,
	}
	for i := 0; i < synsetCnt; i++ {
		offset, ok := parseFixedDecimal(tokens[offsetStart+i], 8)
		if !ok {
			return nil
		}
		entry.SynsetIDs = append(entry.SynsetIDs, domain.SynsetID(pos, offset))
	}

	return entry
}

// ParseIndexFile reads an index.<pos> file line by line. Unparseable
// lines are counted and skipped; only I/O errors are fatal.
func ParseIndexFile(path string) (IndexFileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return IndexFileResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var result IndexFileResult

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		result.Stats.TotalLines++
		line := scanner.Text()

		if line == "" || strings.HasPrefix(line, "  ") {
			result.Stats.HeaderLines++
			continue
		}

		entry := ParseIndexLine(line)
		if entry == nil {
			result.Stats.SkippedLines++
			continue
		}
		result.Stats.ParsedLines++
		result.Entries = append(result.Entries, *entry)
	}

	if err := scanner.Err(); err != nil {
		return IndexFileResult{}, fmt.Errorf("scanner error: %w", err)
	}

	return result, nil
}
