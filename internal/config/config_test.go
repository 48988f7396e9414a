package config

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("KMRL_VAULT_SERVER_URL", "")
	t.Setenv("KMRL_VAULT_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
	assert.Equal(t, DefaultJurisdiction, cfg.Jurisdiction)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.TimeoutSeconds)
	assert.NotEmpty(t, cfg.ClientID)
	assert.False(t, cfg.HasSession())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("KMRL_VAULT_SERVER_URL", "https://vault.example.com")
	t.Setenv("KMRL_VAULT_TIMEOUT", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://vault.example.com", cfg.ServerURL)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("KMRL_VAULT_SERVER_URL", "")
	t.Setenv("KMRL_VAULT_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	cfg.SetSession("token-123", "session_xyz", 86400)
	cfg.Jurisdiction = "IN"
	require.NoError(t, cfg.Save())

	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "token-123", loaded.AccessToken)
	assert.Equal(t, "session_xyz", loaded.SessionID)
	assert.Equal(t, "IN", loaded.Jurisdiction)
	assert.Equal(t, cfg.ClientID, loaded.ClientID)
	assert.True(t, loaded.HasSession())
}

func TestSetAndClearSession(t *testing.T) {
	cfg := &Config{}
	cfg.SetSession("tok", "sess", 3600)

	assert.True(t, cfg.HasSession())
	expires, err := time.Parse(time.RFC3339, cfg.ExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	cfg.ClearSession()
	assert.False(t, cfg.HasSession())
	assert.Empty(t, cfg.SessionID)
	assert.Empty(t, cfg.ExpiresAt)
}

func TestSessionFieldsSafeUnderConcurrency(t *testing.T) {
	cfg := &Config{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				cfg.SetSession("tok", "sess", 3600)
				_ = cfg.Token()
				_ = cfg.HasSession()
				cfg.ClearSession()
			}
		}()
	}
	wg.Wait()

	assert.False(t, cfg.HasSession())
}

func TestClientInfoPrefix(t *testing.T) {
	cfg := &Config{ClientID: "abc-123"}
	assert.Equal(t, "cli_abc-123", cfg.ClientInfo())
}

func TestUploadedLedger(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	ledger, err := LoadUploadedLedger()
	require.NoError(t, err)
	assert.False(t, ledger.HasHash("deadbeef"))

	ledger.AddHash("deadbeef")
	require.NoError(t, ledger.Save())

	reloaded, err := LoadUploadedLedger()
	require.NoError(t, err)
	assert.True(t, reloaded.HasHash("deadbeef"))
	assert.False(t, reloaded.HasHash("cafebabe"))
	assert.Equal(t, 1, reloaded.Count())
}

func TestUploadedLedgerSafeUnderConcurrency(t *testing.T) {
	ledger := &UploadedLedger{Hashes: make(map[string]time.Time)}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				hash := fmt.Sprintf("hash-%d-%d", n, j)
				ledger.AddHash(hash)
				assert.True(t, ledger.HasHash(hash))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 800, ledger.Count())
}
