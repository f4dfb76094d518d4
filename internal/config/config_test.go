package config_test

import (
	"testing"

	"app/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_PortDefaultsTo8080(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoad_PortAcceptsLeadingColon(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", ":9090")

	cfg, err := config.Load()
	assert.NoError(t, err)
	// addrを組むときに":"を付け直すのでここではコロン無し
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_JWTSecretRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}
