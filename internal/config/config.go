package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Batch directories
	InputDir  string
	OutputDir string

	// Reprocess files whose JSON already exists
	Force bool

	// Keep the intermediate .xml and .md artifacts next to the output
	KeepArtifacts bool

	// Batch worker pool
	WorkerCount int

	// Metadata extraction. FuzzyThreshold overrides the gazetteer's own
	// fuzzy_threshold when set (1-100); zero defers to the gazetteer.
	GazetteerPath  string
	FuzzyThreshold int

	// Validity guard on incoming DOCX files
	MaxDocxBytes int64
}

func Load() Config {
	cfg := Config{
		InputDir:  envOr("INPUT_DIR", "downloaded_files"),
		OutputDir: envOr("OUTPUT_DIR", "processed_output"),

		Force:         envBool("FORCE_REPROCESS", false),
		KeepArtifacts: envBool("KEEP_ARTIFACTS", false),

		WorkerCount: envInt("WORKER_COUNT", 4),

		GazetteerPath:  os.Getenv("GAZETTEER_PATH"),
		FuzzyThreshold: envInt("FUZZY_THRESHOLD", 0),

		MaxDocxBytes: envInt64("MAX_DOCX_BYTES", 52428800), // 50MB
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.FuzzyThreshold < 0 || cfg.FuzzyThreshold > 100 {
		cfg.FuzzyThreshold = 0
	}
	if cfg.MaxDocxBytes <= 0 {
		cfg.MaxDocxBytes = 52428800
	}

	return cfg
}

func (c Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("INPUT_DIR is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
