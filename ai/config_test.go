package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.GeneratorHost)
	assert.NotEmpty(t, cfg.EmbeddingModel)
	assert.NotEmpty(t, cfg.GeneratorModel)
	require.NoError(t, cfg.Validate())
}

func TestNewConfigOptions(t *testing.T) {
	t.Run("with host sets both hosts", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://ai.internal:9100/v1"))
		assert.Equal(t, "http://ai.internal:9100/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://ai.internal:9100/v1", cfg.GeneratorHost)
	})

	t.Run("with split hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed.internal/v1"),
			WithGeneratorHost("http://gen.internal/v1"),
		)
		assert.Equal(t, "http://embed.internal/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://gen.internal/v1", cfg.GeneratorHost)
	})

	t.Run("with models and token", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingModel("text-embedding-3-small"),
			WithGeneratorModel("gpt-4o-mini"),
			WithAPIToken("sk-test"),
		)
		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o-mini", cfg.GeneratorModel)
		assert.Equal(t, "sk-test", cfg.APIToken)
	})
}

func TestConfigNormalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost: "http://localhost:11434",
			GeneratorHost: "http://localhost:11434/",
		}
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.GeneratorHost)
	})

	t.Run("leaves v1 suffix alone", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://localhost:11434/v1"}
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("defaults empty token", func(t *testing.T) {
		cfg := &Config{}
		cfg.Normalize()
		assert.Equal(t, "none", cfg.APIToken)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"missing generator host", func(c *Config) { c.GeneratorHost = "" }},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"missing generator model", func(c *Config) { c.GeneratorModel = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
