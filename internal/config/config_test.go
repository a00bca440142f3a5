package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setupConfigEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("HOME", tmp)
	return tmp
}

func TestLoadDefaults(t *testing.T) {
	setupConfigEnv(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	require.Equal(t, "http://localhost:5000/api/orders", Get("api_base_url", ""))
	require.Equal(t, []string{"shopify", "amazon", "flipkart"}, GetList("channels", nil))
	require.Equal(t, 120*time.Second, GetSeconds("poll_interval_seconds", 0))
	require.False(t, GetBool("discard_stale_responses", true))
	require.True(t, GetBool("history_enabled", false))
}

func TestEnvOverridesFile(t *testing.T) {
	tmp := setupConfigEnv(t)
	configFile := filepath.Join(tmp, "custom.toml")
	content := `
api_base_url = "http://orders.internal:8080/api/orders/"
channels = ["ebay", "etsy"]
poll_interval_seconds = 30
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))
	t.Setenv("ORDER_SYNC_CONFIG_PATH", configFile)
	t.Setenv("ORDER_SYNC_POLL_INTERVAL_SECONDS", "60")

	Load()

	require.Equal(t, "http://orders.internal:8080/api/orders", Get("api_base_url", ""))
	require.Equal(t, []string{"ebay", "etsy"}, GetList("channels", nil))
	require.Equal(t, 60, GetInt("poll_interval_seconds", 0))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	setupConfigEnv(t)
	t.Setenv("ORDER_SYNC_POLL_INTERVAL_SECONDS", "-5")
	t.Setenv("ORDER_SYNC_API_BASE_URL", "not a url")
	t.Setenv("ORDER_SYNC_LOGGING_LEVEL", "loud")
	t.Setenv("ORDER_SYNC_MOCK_FAILURE_RATE", "1.5")
	t.Setenv("ORDER_SYNC_CHANNELS", " , ,")

	Load()

	require.Equal(t, 120, GetInt("poll_interval_seconds", 0))
	require.Equal(t, "http://localhost:5000/api/orders", Get("api_base_url", ""))
	require.Equal(t, "info", Get("logging_level", ""))
	require.Equal(t, 0.0, GetFloat("mock_failure_rate", -1))
	require.Equal(t, "shopify,amazon,flipkart", Get("channels", ""))
}

func TestLoadWritesSampleConfig(t *testing.T) {
	tmp := setupConfigEnv(t)
	Load()

	data, err := os.ReadFile(filepath.Join(tmp, "config", "order-sync-tracker", "config.toml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "api_base_url")
	require.Contains(t, string(data), "flipkart")
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, SplitList(" a, b ,a,,"))
	require.Empty(t, SplitList(""))
}

func TestBoolValidator(t *testing.T) {
	v := BoolValidator()
	got, err := v("debug", "YES", "false")
	require.NoError(t, err)
	require.Equal(t, "true", got)

	got, err = v("debug", "maybe", "false")
	require.NoError(t, err)
	require.Equal(t, "false", got)
}
