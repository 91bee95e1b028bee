package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Selection  SelectionConfig  `yaml:"selection"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host               string        `yaml:"host"                  env:"SERVER_HOST"                  env-default:"0.0.0.0"`
	Port               int           `yaml:"port"                  env:"SERVER_PORT"                  env-default:"8080"`
	ReadTimeout        time.Duration `yaml:"read_timeout"          env:"SERVER_READ_TIMEOUT"          env-default:"10s"`
	WriteTimeout       time.Duration `yaml:"write_timeout"         env:"SERVER_WRITE_TIMEOUT"         env-default:"30s"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"          env:"SERVER_IDLE_TIMEOUT"          env-default:"60s"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"      env:"SERVER_SHUTDOWN_TIMEOUT"      env-default:"10s"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"120"`
	CORS               CORSConfig    `yaml:"cors"`
}

// CORSConfig holds Cross-Origin Resource Sharing settings for the read API.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ScoringConfig holds difficulty scoring parameters.
// Weights are expected to sum to roughly 1.0; the scorer clamps the
// composite to [0,1] so small drift is tolerated.
type ScoringConfig struct {
	Weights WeightConfig `yaml:"weights"`

	BeginnerMax     float64 `yaml:"beginner_max"     env:"SCORING_BEGINNER_MAX"     env-default:"0.35"`
	IntermediateMax float64 `yaml:"intermediate_max" env:"SCORING_INTERMEDIATE_MAX" env-default:"0.65"`

	// MaxExpectedFrequency is the calibrated ceiling for the raw frequency
	// signal from the external provider. Single source of truth.
	MaxExpectedFrequency float64 `yaml:"max_expected_frequency" env:"SCORING_MAX_EXPECTED_FREQUENCY" env-default:"75"`
	FrequencyExponent    float64 `yaml:"frequency_exponent"     env:"SCORING_FREQUENCY_EXPONENT"     env-default:"0.85"`
	FrequencyFloor       float64 `yaml:"frequency_floor"        env:"SCORING_FREQUENCY_FLOOR"        env-default:"0.1"`
}

// WeightConfig holds the per-factor weights of the composite difficulty score.
type WeightConfig struct {
	Length    float64 `yaml:"length"    env:"SCORING_WEIGHT_LENGTH"    env-default:"0.15"`
	Syllables float64 `yaml:"syllables" env:"SCORING_WEIGHT_SYLLABLES" env-default:"0.15"`
	Frequency float64 `yaml:"frequency" env:"SCORING_WEIGHT_FREQUENCY" env-default:"0.35"`
	Polysemy  float64 `yaml:"polysemy"  env:"SCORING_WEIGHT_POLYSEMY"  env-default:"0.15"`
	POS       float64 `yaml:"pos"       env:"SCORING_WEIGHT_POS"       env-default:"0.1"`
	Domain    float64 `yaml:"domain"    env:"SCORING_WEIGHT_DOMAIN"    env-default:"0.1"`
}

// SelectionConfig holds daily word selection parameters.
type SelectionConfig struct {
	LookbackDays int `yaml:"lookback_days" env:"SELECTION_LOOKBACK_DAYS" env-default:"90"`

	// PerLevelCounts is how many words to pick per difficulty tier per day.
	// Because values above 1 are allowed, daily_words is unique on
	// (date, level, word) rather than (date, level); one-word-per-tier is
	// enforced by the scheduler's exists check, not by the schema.
	PerLevelCounts int `yaml:"per_level_counts" env:"SELECTION_PER_LEVEL_COUNTS" env-default:"1"`

	// POSTargets is the desired part-of-speech distribution across a day's picks.
	POSTargets POSTargetConfig `yaml:"pos_targets"`
}

// POSTargetConfig holds the target share per part of speech.
type POSTargetConfig struct {
	Noun      float64 `yaml:"noun"      env:"SELECTION_POS_NOUN"      env-default:"0.4"`
	Verb      float64 `yaml:"verb"      env:"SELECTION_POS_VERB"      env-default:"0.3"`
	Adjective float64 `yaml:"adjective" env:"SELECTION_POS_ADJECTIVE" env-default:"0.2"`
	Adverb    float64 `yaml:"adverb"    env:"SELECTION_POS_ADVERB"    env-default:"0.1"`
}

// EnrichmentConfig holds frequency enrichment batch settings.
type EnrichmentConfig struct {
	BaseURL                string        `yaml:"base_url"                 env:"ENRICHMENT_BASE_URL"                 env-default:"https://api.datamuse.com"`
	BatchSize              int           `yaml:"batch_size"               env:"ENRICHMENT_BATCH_SIZE"               env-default:"100"`
	RateLimitInterval      time.Duration `yaml:"rate_limit_interval"      env:"ENRICHMENT_RATE_LIMIT_INTERVAL"      env-default:"1s"`
	RequestTimeout         time.Duration `yaml:"request_timeout"          env:"ENRICHMENT_REQUEST_TIMEOUT"          env-default:"10s"`
	MaxRetries             int           `yaml:"max_retries"              env:"ENRICHMENT_MAX_RETRIES"              env-default:"3"`
	MaxConsecutiveFailures int           `yaml:"max_consecutive_failures" env:"ENRICHMENT_MAX_CONSECUTIVE_FAILURES" env-default:"10"`
	CacheSize              int           `yaml:"cache_size"               env:"ENRICHMENT_CACHE_SIZE"               env-default:"4096"`
}
