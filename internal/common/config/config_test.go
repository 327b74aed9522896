package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requiredVars = []string{
	"CLIENT_ID", "CLIENT_SECRET", "REDIRECT_URI", "BOT_TOKEN", "VERIFICATION_CHANNEL_ID",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range append(requiredVars, "HTTP_ADDR", "ORIGIN", "DEBUG", "GEOIP_CACHE_TTL") {
		// t.Setenv registers restoration of the original value.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLIENT_ID", "client-id")
	t.Setenv("CLIENT_SECRET", "client-secret")
	t.Setenv("REDIRECT_URI", "http://localhost:5000/callback")
	t.Setenv("BOT_TOKEN", "bot-token")
	t.Setenv("VERIFICATION_CHANNEL_ID", "123456789012345678")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, "*", cfg.Server.Origin)
	assert.False(t, cfg.Debug)
	assert.Equal(t, int64(123456789012345678), cfg.Discord.VerificationChannelID)
	assert.Equal(t, 10*time.Minute, cfg.GeoIP.CacheTTL)
}

func TestLoadRejectsNonNumericChannelID(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLIENT_ID", "client-id")
	t.Setenv("CLIENT_SECRET", "client-secret")
	t.Setenv("REDIRECT_URI", "http://localhost:5000/callback")
	t.Setenv("BOT_TOKEN", "bot-token")
	t.Setenv("VERIFICATION_CHANNEL_ID", "not-a-channel")

	_, err := Load()
	require.Error(t, err)
}
