// Package config assembles the tool's configuration from environment
// variables, an optional .modloc.yaml project file, and caller options.
// Precedence: options (CLI flags) > project file > environment > defaults.
//
// Environment variables:
//   - LLM_API_KEY (or OPENAI_API_KEY): completion API key (required)
//   - LLM_API_URL: API endpoint (default https://api.openai.com/v1)
//   - LLM_MODEL: model name (default gpt-3.5-turbo)
//   - LLM_MAX_TOKENS: response token budget (default 4000)
//   - LLM_TEMPERATURE: sampling temperature (default 0.3)
//   - LLM_TIMEOUT: request timeout in seconds (default 60)
//   - LLM_PROXY (or OPENAI_PROXY): HTTP proxy for API requests
//   - MODLOC_BATCH_LIMIT: serialized batch size budget (default 2500)
//   - MODLOC_CACHE: translation memory path ("" disables)
//   - MODLOC_GLOSSARY: glossary file path ("" means auto-discover)
//   - MODLOC_CRON: watch mode schedule (default "@every 6h")
package config

import (
	"os"
	"strconv"

	"github.com/pdxmods/modloc/internal/llm"
)

type Config struct {
	LLM LLMConfig `json:"llm"`
	Run RunConfig `json:"run"`
}

// LLMConfig mirrors llm.Config so the llm package stays free of env
// concerns.
type LLMConfig struct {
	APIKey      string  `json:"api_key"`
	APIURL      string  `json:"api_url"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Timeout     int     `json:"timeout"`
	Proxy       string  `json:"proxy"`
}

// RunConfig holds translation run settings.
type RunConfig struct {
	BatchLimit     int    `json:"batch_limit"`
	CachePath      string `json:"cache_path"`
	GlossaryPath   string `json:"glossary_path"`
	StrictLanguage bool   `json:"strict_language"`
	CronExpr       string `json:"cron_expr"`
}

// Option mutates the config after env and file values are applied.
type Option func(*Config)

// NewFromEnv builds the configuration from the environment plus options.
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		LLM: LLMConfig{
			APIKey:      getEnvString("LLM_API_KEY", getEnvString("OPENAI_API_KEY", "")),
			APIURL:      getEnvString("LLM_API_URL", "https://api.openai.com/v1"),
			Model:       getEnvString("LLM_MODEL", "gpt-3.5-turbo"),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 4000),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.3),
			Timeout:     getEnvInt("LLM_TIMEOUT", 60),
			Proxy:       getEnvString("LLM_PROXY", getEnvString("OPENAI_PROXY", "")),
		},
		Run: RunConfig{
			BatchLimit:   getEnvInt("MODLOC_BATCH_LIMIT", 2500),
			CachePath:    getEnvString("MODLOC_CACHE", ""),
			GlossaryPath: getEnvString("MODLOC_GLOSSARY", ""),
			CronExpr:     getEnvString("MODLOC_CRON", "@every 6h"),
		},
	}

	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ToLLMConfig converts to the llm package's config type.
func (c *Config) ToLLMConfig() *llm.Config {
	return &llm.Config{
		APIKey:      c.LLM.APIKey,
		APIURL:      c.LLM.APIURL,
		Model:       c.LLM.Model,
		MaxTokens:   c.LLM.MaxTokens,
		Temperature: c.LLM.Temperature,
		Timeout:     c.LLM.Timeout,
		Proxy:       c.LLM.Proxy,
	}
}

func (c *Config) validate() error {
	return c.ToLLMConfig().Validate()
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
