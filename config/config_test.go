package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeLogger(t *testing.T) {
	cfg := Load()
	require.NotNil(t, InitializeLogger(cfg))

	cfg.Server.Environment = "production"
	assert.Equal(t, "info", LogLevel(cfg))
	assert.True(t, IsProduction(cfg))
	assert.NotNil(t, InitializeLogger(cfg))

	cfg.Server.Environment = "development"
	assert.Equal(t, "debug", LogLevel(cfg))
	assert.NotNil(t, InitializeLogger(cfg))
}
