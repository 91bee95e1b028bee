// Command importer parses WordNet database files and populates the word
// catalog: synsets, words, word-synset links, and synset relationships.
// It is intended to be run offline, not as part of the main server.
//
// Flags:
//
//	--dict-dir  directory containing data.<pos> and index.<pos> files (required)
//	--pos       comma-separated parts of speech to import (default: noun,verb,adj,adv)
//	--dry-run   parse files and report statistics without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oneword-app/oneword-backend/internal/adapter/postgres"
	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/synset"
	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/word"
	"github.com/oneword-app/oneword-backend/internal/app"
	"github.com/oneword-app/oneword-backend/internal/config"
	"github.com/oneword-app/oneword-backend/internal/service/catalog"
)

// validPOS maps the --pos flag values to WordNet file suffixes.
var validPOS = map[string]string{
	"noun": "noun",
	"verb": "verb",
	"adj":  "adj",
	"adv":  "adv",
}

func main() {
	dictDirFlag := flag.String("dict-dir", "", "directory with WordNet data.<pos> and index.<pos> files")
	posFlag := flag.String("pos", "noun,verb,adj,adv", "comma-separated parts of speech to import")
	dryRunFlag := flag.Bool("dry-run", false, "parse files without writing to DB")
	flag.Parse()

	if *dictDirFlag == "" {
		log.Fatal("--dict-dir is required")
	}

	input, err := buildInput(*dictDirFlag, *posFlag, *dryRunFlag)
	if err != nil {
		log.Fatalf("resolve input files: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var svc *catalog.Service
	if *dryRunFlag {
		// Dry runs never touch the repositories.
		svc = catalog.NewService(logger, nil, nil, nil)
	} else {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		svc = catalog.NewService(logger, word.New(pool), synset.New(pool), postgres.NewTxManager(pool))
	}

	summary, err := svc.Import(ctx, input)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete",
		slog.Int("synsets", summary.Synsets),
		slog.Int("words", summary.Words),
		slog.Int("links", summary.Links),
		slog.Int("relationships", summary.Relationships),
		slog.Int("eligible_words", summary.EligibleWords),
		slog.Int("eligible_phrases", summary.EligiblePhrases),
		slog.Int("ineligible", summary.Ineligible),
		slog.Int("dropped_links", summary.DroppedLinks),
		slog.Int("dangling_pointers", summary.Extraction.DanglingTargets),
		slog.Bool("dry_run", *dryRunFlag),
	)
}

// buildInput resolves the data and index file paths for the requested
// parts of speech. Files must exist up front so a typo fails fast.
func buildInput(dictDir, posList string, dryRun bool) (catalog.ImportInput, error) {
	input := catalog.ImportInput{DryRun: dryRun}

	for _, raw := range strings.Split(posList, ",") {
		pos := strings.TrimSpace(strings.ToLower(raw))
		suffix, ok := validPOS[pos]
		if !ok {
			return catalog.ImportInput{}, fmt.Errorf("unknown part of speech %q (use noun, verb, adj, adv)", raw)
		}

		dataPath := filepath.Join(dictDir, "data."+suffix)
		indexPath := filepath.Join(dictDir, "index."+suffix)
		for _, path := range []string{dataPath, indexPath} {
			if _, err := os.Stat(path); err != nil {
				return catalog.ImportInput{}, fmt.Errorf("missing WordNet file: %s", path)
			}
		}

		input.DataFiles = append(input.DataFiles, dataPath)
		input.IndexFiles = append(input.IndexFiles, indexPath)
	}

	return input, nil
}
