// Package config loads settings from the environment, an optional .env file
// and an optional config.yaml, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/speaking-practice/backend/internal/llm"
)

// EnvPrefix is prepended to every environment key, e.g. PRACTICE_SERVER_PORT.
const EnvPrefix = "PRACTICE"

type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Audio    AudioConfig    `mapstructure:"audio" validate:"required"`
	Quiz     QuizConfig     `mapstructure:"quiz" validate:"required"`
}

type ServerConfig struct {
	Port        int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel    string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL    string `mapstructure:"url"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret" validate:"required,min=16"`
	TokenTTL  time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
}

type LLMConfig struct {
	Provider        string        `mapstructure:"provider" validate:"required,oneof=gemini anthropic openai mock"`
	Model           string        `mapstructure:"model"`
	GeminiAPIKey    string        `mapstructure:"gemini_api_key"`
	AnthropicAPIKey string        `mapstructure:"anthropic_api_key"`
	OpenAIAPIKey    string        `mapstructure:"openai_api_key"`
	OpenAIBaseURL   string        `mapstructure:"openai_base_url" validate:"omitempty,url"`
	Timeout         time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxAttempts     int           `mapstructure:"max_attempts" validate:"gte=1,lte=5"`
}

type AudioConfig struct {
	Dir      string        `mapstructure:"dir" validate:"required"`
	Language string        `mapstructure:"language" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type QuizConfig struct {
	Size int `mapstructure:"size" validate:"gt=0,lte=50"`
}

// Client returns the provider settings in the shape llm.New expects.
func (c LLMConfig) Client() llm.Config {
	return llm.Config{
		Provider:        c.Provider,
		Model:           c.Model,
		GeminiAPIKey:    c.GeminiAPIKey,
		AnthropicAPIKey: c.AnthropicAPIKey,
		OpenAIAPIKey:    c.OpenAIAPIKey,
		OpenAIBaseURL:   c.OpenAIBaseURL,
		MaxAttempts:     c.MaxAttempts,
		InitialWait:     time.Second,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 72*time.Hour)

	v.SetDefault("llm.provider", llm.ProviderGemini)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.anthropic_api_key", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.openai_base_url", "")
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.max_attempts", 2)

	v.SetDefault("audio.dir", "static/audio")
	v.SetDefault("audio.language", "en")
	v.SetDefault("audio.timeout", 10*time.Second)

	v.SetDefault("quiz.size", 5)
}

// Load reads and validates the configuration. A missing .env or config.yaml
// is not an error.
func Load() (*Config, error) {
	// Real environment variables win over .env entries.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}
