// Package datamuse fetches word frequency and syllable data from the
// Datamuse API. Requests are rate limited, retried with backoff and cached,
// since enrichment runs walk the whole word table.
package datamuse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/oneword-app/oneword-backend/internal/provider"
)

const defaultBaseURL = "https://api.datamuse.com"

// Config tunes the provider. Zero values fall back to sane defaults.
type Config struct {
	BaseURL           string
	RequestTimeout    time.Duration
	RateLimitInterval time.Duration
	MaxRetries        int
	CacheSize         int
}

// Provider fetches frequency data from the Datamuse API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *lru.Cache[string, provider.FrequencyResult]
	maxRetries uint64
	log        *slog.Logger
}

// NewProvider creates a Provider.
func NewProvider(cfg Config, logger *slog.Logger) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.RateLimitInterval <= 0 {
		cfg.RateLimitInterval = time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 4096
	}

	cache, err := lru.New[string, provider.FrequencyResult](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("datamuse: create cache: %w", err)
	}

	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Every(cfg.RateLimitInterval), 1),
		cache:      cache,
		maxRetries: uint64(cfg.MaxRetries),
		log:        logger.With("adapter", "datamuse"),
	}, nil
}

// FetchFrequency fetches frequency and syllable data for the given word.
// Returns nil, nil when Datamuse does not know the word at all.
func (p *Provider) FetchFrequency(ctx context.Context, word string) (*provider.FrequencyResult, error) {
	if cached, ok := p.cache.Get(word); ok {
		result := cached
		return &result, nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("datamuse: rate limit wait: %w", err)
	}

	reqURL := p.baseURL + "/words?sp=" + url.QueryEscape(word) + "&md=fs&max=1"

	p.log.DebugContext(ctx, "datamuse request", slog.String("word", word))

	var words []apiWord
	backoff := retry.WithMaxRetries(p.maxRetries, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := p.httpClient.Do(req)
		if err != nil {
			p.log.WarnContext(ctx, "datamuse retryable error", slog.String("word", word), slog.String("error", err.Error()))
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			p.log.WarnContext(ctx, "datamuse retryable status", slog.String("word", word), slog.Int("status", resp.StatusCode))
			return retry.RetryableError(fmt.Errorf("status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("read body: %w", err))
		}

		if err := json.Unmarshal(body, &words); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("datamuse: fetch %q: %w", word, err)
	}

	result := mapResponse(word, words)
	if result == nil {
		p.log.DebugContext(ctx, "datamuse unknown word", slog.String("word", word))
		return nil, nil
	}

	p.cache.Add(word, *result)

	p.log.DebugContext(ctx, "datamuse response",
		slog.String("word", word),
		slog.Bool("has_frequency", result.Frequency != nil),
		slog.Bool("has_syllables", result.Syllables != nil),
	)

	return result, nil
}

// mapResponse extracts frequency and syllables from the first exact match.
// Datamuse performs spelled-like matching, so a response for a different word
// means the requested one is unknown.
func mapResponse(requested string, words []apiWord) *provider.FrequencyResult {
	for _, w := range words {
		if !strings.EqualFold(w.Word, requested) {
			continue
		}

		result := &provider.FrequencyResult{Word: requested}
		if w.NumSyllables > 0 {
			n := w.NumSyllables
			result.Syllables = &n
		}
		for _, tag := range w.Tags {
			if f, ok := parseFrequencyTag(tag); ok {
				result.Frequency = &f
				break
			}
		}
		return result
	}
	return nil
}

// parseFrequencyTag parses a Datamuse frequency tag of the form "f:0.21".
func parseFrequencyTag(tag string) (float64, bool) {
	rest, ok := strings.CutPrefix(tag, "f:")
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(rest, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}
