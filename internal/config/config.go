// Package config reads runtime settings from an optional .env file and
// POLYGLOT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/polyglot/internal/llm"
	"github.com/abhisek/polyglot/internal/spacedrep"
)

// Config holds everything the CLI and TUI need at startup.
type Config struct {
	// DBPath is the SQLite file. Empty means the default data directory.
	DBPath string

	// LogFile receives slog output. Empty means polyglot.log next to the
	// database.
	LogFile  string
	LogLevel string

	// RecentWindow is the flashcard anti-repeat window.
	RecentWindow int

	// SpeechCmd overrides the text-to-speech command; SpeechEnabled=false
	// turns pronunciation into a no-op.
	SpeechCmd     string
	SpeechEnabled bool

	// Seed fixes quiz randomness when HasSeed is set.
	Seed    uint64
	HasSeed bool

	LLM llm.Config
}

// Load reads files (default ".env") if present, then the environment.
// A missing .env file is not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Config{
		DBPath:        os.Getenv("POLYGLOT_DB"),
		LogFile:       os.Getenv("POLYGLOT_LOG_FILE"),
		LogLevel:      envOr("POLYGLOT_LOG_LEVEL", "info"),
		RecentWindow:  envIntOr("POLYGLOT_RECENT_WINDOW", spacedrep.DefaultWindow),
		SpeechCmd:     os.Getenv("POLYGLOT_SPEECH_CMD"),
		SpeechEnabled: !strings.EqualFold(os.Getenv("POLYGLOT_SPEECH"), "off"),
	}
	if v := os.Getenv("POLYGLOT_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("POLYGLOT_SEED: %w", err)
		}
		cfg.Seed, cfg.HasSeed = seed, true
	}
	cfg.LLM = llmFromEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and the LLM selection.
func (c Config) Validate() error {
	if c.RecentWindow < 0 {
		return fmt.Errorf("recent window must be >= 0, got %d", c.RecentWindow)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return c.LLM.Validate()
}

// LogPath returns the log file for a database at dbPath.
func (c Config) LogPath(dbPath string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(dbPath), "polyglot.log")
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// providerKeys lists, per provider, the polyglot-specific key variable
// followed by the vendor's own.
var providerKeys = []struct {
	provider string
	vars     []string
}{
	{llm.ProviderGemini, []string{"POLYGLOT_GEMINI_API_KEY", "GEMINI_API_KEY"}},
	{llm.ProviderOpenAI, []string{"POLYGLOT_OPENAI_API_KEY", "OPENAI_API_KEY"}},
	{llm.ProviderAnthropic, []string{"POLYGLOT_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"}},
	{llm.ProviderOpenRouter, []string{"POLYGLOT_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"}},
}

// llmFromEnv builds the LLM config. Without POLYGLOT_LLM_PROVIDER the first
// provider with a key wins, in providerKeys order.
func llmFromEnv() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = strings.ToLower(os.Getenv("POLYGLOT_LLM_PROVIDER"))
	cfg.Model = os.Getenv("POLYGLOT_LLM_MODEL")
	cfg.BaseURL = os.Getenv("POLYGLOT_LLM_BASE_URL")
	cfg.MaxTokens = envIntOr("POLYGLOT_LLM_MAX_TOKENS", cfg.MaxTokens)
	if d, err := time.ParseDuration(os.Getenv("POLYGLOT_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}

	for _, pk := range providerKeys {
		if cfg.Provider != "" && cfg.Provider != pk.provider {
			continue
		}
		for _, v := range pk.vars {
			if k := os.Getenv(v); k != "" {
				cfg.Provider, cfg.APIKey = pk.provider, k
				return cfg
			}
		}
	}
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		slog.Warn("invalid integer setting, using default", "key", key, "value", v, "default", def)
	}
	return def
}
