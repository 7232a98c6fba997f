package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var keys = []string{
	"SERVER_PORT", "API_BASE_URL", "API_TIMEOUT", "NAV_DELAY", "DATABASE_URL",
	"STATE_STORE", "REDIS_ADDR", "REDIS_PASSWORD", "STATE_TTL", "CSRF_KEY",
	"SECURE_COOKIES", "TIMEZONE", "LOG_LEVEL", "LOGIN_RATE_PER_MIN",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
		} else {
			t.Cleanup(func() { os.Unsetenv(k) })
		}
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 2*time.Second, cfg.NavDelay)
	assert.Equal(t, StoreMemory, cfg.StateStore)
	assert.Equal(t, 30*time.Minute, cfg.StateTTL)
	assert.Equal(t, 10, cfg.LoginRatePerMin)
	assert.Empty(t, cfg.DBUrl)
	assert.False(t, cfg.SecureCookies)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("NAV_DELAY", "500ms")
	os.Setenv("STATE_STORE", "redis")
	os.Setenv("SECURE_COOKIES", "true")

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 500*time.Millisecond, cfg.NavDelay)
	assert.Equal(t, StoreRedis, cfg.StateStore)
	assert.True(t, cfg.SecureCookies)
}

func TestLoadFile_DotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("API_BASE_URL=https://api.example.com\nSERVER_PORT=7000\n"), 0o644))

	os.Setenv("SERVER_PORT", "7777")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, "7777", cfg.ServerPort)
}

func TestLoadFile_MissingFileIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "nonexistent.env"))
	assert.NoError(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"STATE_STORE":        "memcached",
		"CSRF_KEY":           "short",
		"LOGIN_RATE_PER_MIN": "0",
		"API_TIMEOUT":        "soon",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			os.Setenv(k, v)

			_, err := LoadFile("")
			assert.Error(t, err)
		})
	}
}

func TestLocation_FallsBackToDefaultZone(t *testing.T) {
	cfg := &Config{Timezone: "Nowhere/Atlantis"}
	assert.Equal(t, "America/Bogota", cfg.Location().String())
}

func TestMask(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"secret", "s****t"},
		{"ab", "****"},
		{"a", "****"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mask(tt.in), "mask(%q)", tt.in)
	}
}

func TestLog_MasksSecrets(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	cfg := &Config{
		ServerPort: "8080",
		DBUrl:      "postgres://user:pass@db/app",
		CSRFKey:    "0123456789abcdef0123456789abcdef",
	}
	require.NoError(t, Log(zap.New(core), cfg))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()["Config"].(map[string]any)
	assert.Equal(t, "8080", fields["ServerPort"])
	assert.Equal(t, "p****p", fields["DBUrl"])
	assert.Equal(t, "0****f", fields["CSRFKey"])
}

func TestLog_RequiresPointer(t *testing.T) {
	assert.ErrorIs(t, Log(zap.NewNop(), Config{}), ErrConfigNotPointer)
}
