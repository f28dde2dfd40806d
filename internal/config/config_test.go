package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-secret-of-reasonable-length"

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PRACTICE_AUTH_JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 72*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5, cfg.Quiz.Size)
	assert.Equal(t, "en", cfg.Audio.Language)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PRACTICE_AUTH_JWT_SECRET", testSecret)
	t.Setenv("PRACTICE_SERVER_PORT", "9090")
	t.Setenv("PRACTICE_SERVER_LOG_LEVEL", "debug")
	t.Setenv("PRACTICE_DATABASE_DRIVER", "sqlite")
	t.Setenv("PRACTICE_DATABASE_URL", "file:test.db")
	t.Setenv("PRACTICE_LLM_PROVIDER", "mock")
	t.Setenv("PRACTICE_LLM_TIMEOUT", "5s")
	t.Setenv("PRACTICE_LLM_GEMINI_API_KEY", "key")
	t.Setenv("PRACTICE_QUIZ_SIZE", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:test.db", cfg.Database.URL)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 10, cfg.Quiz.Size)

	client := cfg.LLM.Client()
	assert.Equal(t, "mock", client.Provider)
	assert.Equal(t, "key", client.GeminiAPIKey)
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"short secret", map[string]string{"PRACTICE_AUTH_JWT_SECRET": "short"}},
		{"bad port", map[string]string{"PRACTICE_AUTH_JWT_SECRET": testSecret, "PRACTICE_SERVER_PORT": "999999"}},
		{"bad driver", map[string]string{"PRACTICE_AUTH_JWT_SECRET": testSecret, "PRACTICE_DATABASE_DRIVER": "oracle"}},
		{"bad provider", map[string]string{"PRACTICE_AUTH_JWT_SECRET": testSecret, "PRACTICE_LLM_PROVIDER": "eliza"}},
		{"bad log level", map[string]string{"PRACTICE_AUTH_JWT_SECRET": testSecret, "PRACTICE_SERVER_LOG_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("PRACTICE_AUTH_JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}
