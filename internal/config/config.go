package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults for values not set in the environment
const (
	DefaultJudgeBackend = "openai"
	DefaultTemperature  = 0.7
	DefaultMaxTokens    = 1000
	DefaultLogFormat    = "json"
	DefaultLogLevel     = "info"
)

// Config holds all configuration values
type Config struct {
	OpenAIAPIKey string
	GeminiAPIKey string
	DiscordToken string
	PersonaFile  string
	OpenAIModel  string
	GeminiModel  string
	JudgeBackend string
	JudgeModel   string
	Temperature  float64
	MaxTokens    int
	Parallel     bool
	LogFormat    string
	LogLevel     string
}

// LoadConfig loads environment variables from .env file and returns a Config struct
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional - may not exist in production)
	_ = godotenv.Load(".env")

	config := &Config{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		PersonaFile:  os.Getenv("PERSONA_FILE"),
		OpenAIModel:  os.Getenv("OPENAI_MODEL"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		JudgeBackend: strings.ToLower(os.Getenv("JUDGE_BACKEND")),
		JudgeModel:   os.Getenv("JUDGE_MODEL"),
		Temperature:  DefaultTemperature,
		MaxTokens:    DefaultMaxTokens,
		LogFormat:    strings.ToLower(os.Getenv("LOG_FORMAT")),
		LogLevel:     strings.ToLower(os.Getenv("LOG_LEVEL")),
	}

	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, NewConfigError("LLM_TEMPERATURE", "must be a number")
		}
		config.Temperature = t
	}

	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, NewConfigError("LLM_MAX_TOKENS", "must be an integer")
		}
		config.MaxTokens = n
	}

	if v := os.Getenv("PARALLEL_FANOUT"); v != "" {
		p, err := strconv.ParseBool(v)
		if err != nil {
			return nil, NewConfigError("PARALLEL_FANOUT", "must be true or false")
		}
		config.Parallel = p
	}

	// Set default values if not provided
	if config.JudgeBackend == "" {
		config.JudgeBackend = DefaultJudgeBackend
	}
	if config.LogFormat == "" {
		config.LogFormat = DefaultLogFormat
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}

	return config, nil
}

// Validate checks that the configuration is valid. Missing API keys are not
// an error: the affected backend answers with an error message instead.
func (c *Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return NewConfigError("LLM_TEMPERATURE", "must be between 0 and 2")
	}

	if c.MaxTokens <= 0 {
		return NewConfigError("LLM_MAX_TOKENS", "must be positive")
	}

	switch c.JudgeBackend {
	case "openai", "gemini":
	default:
		return NewConfigError("JUDGE_BACKEND", "must be openai or gemini")
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		return NewConfigError("LOG_FORMAT", "must be json or text")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return NewConfigError("LOG_LEVEL", "must be debug, info, warn or error")
	}

	return nil
}

// ValidateDiscord checks the settings the Discord bot needs on top of Validate
func (c *Config) ValidateDiscord() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.DiscordToken == "" {
		return NewConfigError("DISCORD_TOKEN", "environment variable is required")
	}

	return nil
}
