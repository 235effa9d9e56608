package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the similarity service
type Config struct {
	Server     ServerConfig
	Dataset    DatasetConfig
	Matcher    MatcherConfig
	Enrichment EnrichmentConfig
}

// ServerConfig holds the HTTP listener configuration
type ServerConfig struct {
	Port string
}

// DatasetConfig holds dataset loading configuration
type DatasetConfig struct {
	CSVPath  string
	CacheDir string
}

// MatcherConfig holds the vector-space and ranking knobs
type MatcherConfig struct {
	MaxFeatures     int
	NGramMin        int
	NGramMax        int
	MinDocFreq      int
	MaxDocFreqRatio float64
	MinScore        float64
	DefaultTopK     int
}

// EnrichmentConfig holds the public-API lookup configuration
type EnrichmentConfig struct {
	Enabled           bool
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	MaxRequests       int
	CacheTTL          time.Duration
	UserAgent         string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: GetStringEnv("SERVER_PORT", ":8080"),
		},
		Dataset: DatasetConfig{
			CSVPath:  GetStringEnv("DATASET_CSV_PATH", "./data/projects.csv"),
			CacheDir: GetStringEnv("DATASET_CACHE_DIR", "./data/cache"),
		},
		Matcher: MatcherConfig{
			MaxFeatures:     GetIntEnv("MATCHER_MAX_FEATURES", 1000),
			NGramMin:        GetIntEnv("MATCHER_NGRAM_MIN", 1),
			NGramMax:        GetIntEnv("MATCHER_NGRAM_MAX", 2),
			MinDocFreq:      GetIntEnv("MATCHER_MIN_DOC_FREQ", 1),
			MaxDocFreqRatio: GetFloatEnv("MATCHER_MAX_DOC_FREQ_RATIO", 0.95),
			MinScore:        GetFloatEnv("MATCHER_MIN_SCORE", 0.01),
			DefaultTopK:     GetIntEnv("MATCHER_DEFAULT_TOP_K", 5),
		},
		Enrichment: EnrichmentConfig{
			Enabled:           GetBoolEnv("ENRICH_ENABLED", true),
			RequestTimeout:    GetDurationEnv("ENRICH_REQUEST_TIMEOUT", 10*time.Second),
			RequestsPerSecond: GetFloatEnv("ENRICH_REQUESTS_PER_SECOND", 0.5),
			MaxRequests:       GetIntEnv("ENRICH_MAX_REQUESTS", 100),
			CacheTTL:          GetDurationEnv("ENRICH_CACHE_TTL", 24*time.Hour),
			UserAgent:         GetStringEnv("ENRICH_USER_AGENT", "ProjectExplorer/1.0"),
		},
	}
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
