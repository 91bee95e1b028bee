// Package wordnet parses WordNet database files (data.<pos>, index.<pos>)
// into domain structs. Pure functions: text in, structs out. No database
// dependencies.
//
// Format reference: wndb(5WN). Note the asymmetric encodings in data files:
// w_cnt (word count) is a two-digit hexadecimal field while p_cnt (pointer
// count) is a three-digit decimal field.
package wordnet

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oneword-app/oneword-backend/internal/domain"
)

// WordSense is one (word, lexical id) pair from a data line's word list.
type WordSense struct {
	Word  string // normalized, underscores kept (phrases)
	LexID int
}

// PointerCandidate is a raw pointer record before relationship extraction.
// The target synset may not exist in the imported set; extraction drops
// such candidates.
type PointerCandidate struct {
	Symbol       string
	TargetOffset int
	TargetPOS    domain.PartOfSpeech
	SourceTarget string // 4-digit hex source/target word flags, kept verbatim
}

// ParsedLine is the result of parsing one data.<pos> line.
// Truncated is set when the declared word or pointer count could not be
// fully consumed; the records parsed before the break are still valid.
type ParsedLine struct {
	Synset    domain.Synset
	Words     []WordSense
	Pointers  []PointerCandidate
	Truncated bool
}

// Stats holds parser statistics for logging. Skipped lines are counted,
// never fatal.
type Stats struct {
	TotalLines   int
	HeaderLines  int
	ParsedLines  int
	SkippedLines int
	Truncated    int // lines where the word or pointer section ended early
}

// ParseLine parses a single data.<pos> line. It returns nil for header
// lines (leading two spaces), blank lines, and lines whose fixed-width
// header does not match the expected format. Malformed word or pointer
// sections truncate parsing gracefully: the synset and any complete
// records parsed so far are still returned.
func ParseLine(line string) *ParsedLine {
	if line == "" || strings.HasPrefix(line, "  ") {
		return nil
	}

	// Gloss follows the final pipe. Everything before it is tokenized.
	head := line
	gloss := ""
	if idx := strings.LastIndex(line, "|"); idx >= 0 {
		head = line[:idx]
		gloss = line[idx+1:]
	}

	tokens := strings.Fields(head)
	if len(tokens) < 4 {
		return nil
	}

	offset, ok := parseFixedDecimal(tokens[0], 8)
	if !ok {
		return nil
	}
	lexFileNum, ok := parseFixedDecimal(tokens[1], 2)
	if !ok {
		return nil
	}
	pos, ok := domain.ParsePOSCode(tokens[2])
	if !ok {
		return nil
	}
	// Word count is two-digit hexadecimal.
	if len(tokens[3]) != 2 {
		return nil
	}
	wordCount, err := strconv.ParseInt(tokens[3], 16, 32)
	if err != nil || wordCount < 0 {
		return nil
	}

	definition, examples := ParseGloss(gloss)

	result := &ParsedLine{
		Synset: domain.Synset{
			ID:           domain.SynsetID(pos, offset),
			Offset:       offset,
			PartOfSpeech: pos,
			Definition:   definition,
			Examples:     examples,
			LexFileNum:   lexFileNum,
		},
	}
	if name, ok := LexFileName(lexFileNum); ok {
		result.Synset.Domain = &name
	}

	// Word section: exactly wordCount (word, lex id) pairs. A missing
	// token boundary truncates the line; whatever parsed so far stands.
	i := 4
	for w := 0; w < int(wordCount); w++ {
		if i+1 >= len(tokens) {
			result.Truncated = true
			return result
		}
		word := domain.NormalizeText(strings.ReplaceAll(tokens[i], "_", " "))
		lexID, err := strconv.ParseInt(tokens[i+1], 16, 32)
		if err != nil {
			result.Truncated = true
			return result
		}
		result.Words = append(result.Words, WordSense{Word: word, LexID: int(lexID)})
		i += 2
	}

	// Pointer count is three-digit decimal.
	if i >= len(tokens) {
		result.Truncated = true
		return result
	}
	pointerCount, err := strconv.ParseInt(tokens[i], 10, 32)
	if err != nil || pointerCount < 0 {
		result.Truncated = true
		return result
	}
	i++

	// Pointer section: pointerCount records of 4 tokens each. A record
	// with fewer than 4 remaining tokens ends pointer parsing early.
	for p := 0; p < int(pointerCount); p++ {
		if i+3 >= len(tokens) {
			result.Truncated = true
			return result
		}
		targetOffset, ok := parseFixedDecimal(tokens[i+1], 8)
		if !ok {
			result.Truncated = true
			return result
		}
		targetPOS, ok := domain.ParsePOSCode(tokens[i+2])
		if !ok {
			result.Truncated = true
			return result
		}
		result.Pointers = append(result.Pointers, PointerCandidate{
			Symbol:       tokens[i],
			TargetOffset: targetOffset,
			TargetPOS:    targetPOS,
			SourceTarget: tokens[i+3],
		})
		i += 4
	}

	return result
}

// ParseGloss splits a gloss into the primary definition (text before the
// first semicolon) and example strings. Examples are the quoted substrings
// of subsequent semicolon-delimited segments, or segments carrying an
// explicit example marker. Unquoted, unmarked segments are discarded.
func ParseGloss(gloss string) (string, []string) {
	gloss = strings.TrimSpace(gloss)
	if gloss == "" {
		return "", nil
	}

	segments := strings.Split(gloss, ";")
	definition := strings.TrimSpace(segments[0])

	var examples []string
	for _, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if quoted, ok := extractQuoted(seg); ok {
			examples = append(examples, quoted)
			continue
		}
		if rest, ok := strings.CutPrefix(seg, "e.g."); ok {
			if rest = strings.TrimSpace(rest); rest != "" {
				examples = append(examples, rest)
			}
		}
		// Anything else is discarded, not appended to the definition.
	}

	return definition, examples
}

// extractQuoted returns the text between the first pair of double quotes.
func extractQuoted(s string) (string, bool) {
	start := strings.Index(s, `"`)
	if start < 0 {
		return "", false
	}
	end := strings.Index(s[start+1:], `"`)
	if end < 0 {
		return "", false
	}
	return s[start+1 : start+1+end], true
}

// parseFixedDecimal parses a decimal field of exactly width digits.
func parseFixedDecimal(s string, width int) (int, bool) {
	if len(s) != width {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DataFileResult holds all parsed lines of one data.<pos> file.
type DataFileResult struct {
	Lines []ParsedLine
	Stats Stats
}

// ParseDataFile reads a data.<pos> file line by line. Unparseable lines
// are counted and skipped; only I/O errors are fatal.
func ParseDataFile(path string) (DataFileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return DataFileResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var result DataFileResult

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		result.Stats.TotalLines++
		line := scanner.Text()

		if line == "" || strings.HasPrefix(line, "  ") {
			result.Stats.HeaderLines++
			continue
		}

		parsed := ParseLine(line)
		if parsed == nil {
			result.Stats.SkippedLines++
			continue
		}
		result.Stats.ParsedLines++
		if parsed.Truncated {
			result.Stats.Truncated++
		}
		result.Lines = append(result.Lines, *parsed)
	}

	if err := scanner.Err(); err != nil {
		return DataFileResult{}, fmt.Errorf("scanner error: %w", err)
	}

	return result, nil
}
