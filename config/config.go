package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	LLMProvider    string // anthropic, openai, ollama
	AnthropicKey   string // API key (X-Api-Key header)
	AnthropicToken string // OAuth token (Authorization: Bearer header)
	OpenAIKey      string
	LLMModel       string
	LLMMaxTokens   int
	OllamaBaseURL  string

	MaxHistoryMessages int
	HistoryRetainCount int
	ToolMaxRetries     int

	LogLevel          string
	DeadlineCheckCron string // empty disables the overdue sweep
	MetricsAddr       string // empty disables the metrics listener
}

func Load() *Config {
	_ = godotenv.Load() // ignore error if no .env

	return &Config{
		LLMProvider:    envOr("LLM_PROVIDER", "openai"),
		AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicToken: os.Getenv("ANTHROPIC_AUTH_TOKEN"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		LLMModel:       os.Getenv("LLM_MODEL"),
		LLMMaxTokens:   envInt("LLM_MAX_TOKENS", 1000),
		OllamaBaseURL:  envOr("OLLAMA_BASE_URL", "http://localhost:11434/v1"),

		MaxHistoryMessages: envInt("MAX_HISTORY_MESSAGES", 15),
		HistoryRetainCount: envInt("HISTORY_RETAIN_COUNT", 10),
		ToolMaxRetries:     envInt("TOOL_MAX_RETRIES", 5),

		LogLevel:          envOr("LOG_LEVEL", "info"),
		DeadlineCheckCron: lookupOr("DEADLINE_CHECK_CRON", "@every 5m"),
		MetricsAddr:       os.Getenv("METRICS_ADDR"),
	}
}

// APIKey returns the credential for the configured provider.
func (c *Config) APIKey() string {
	if c.LLMProvider == "openai" {
		return c.OpenAIKey
	}
	return c.AnthropicKey
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// lookupOr is envOr for settings where an explicitly empty value means off.
func lookupOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// envInt falls back when the variable is unset or not a positive integer.
func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
