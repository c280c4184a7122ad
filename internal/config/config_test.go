// Wellness Escape | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Wellness Escape", cfg.App.Name)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "wellness_session", cfg.Session.CookieName)
	assert.False(t, cfg.StripeConfigured())
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
app:
  environment: "staging"
session:
  ttl: 2h
auth:
  admin_emails:
    - " Coach@Example.com "
stripe:
  secret_key: "sk_test_123"
  price_id: "price_123"
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.StripeConfigured())

	// Allow-list entries are normalized, so matching ignores case and
	// whitespace on both sides.
	assert.True(t, cfg.IsAdminEmail("coach@example.com"))
	assert.True(t, cfg.IsAdminEmail("COACH@EXAMPLE.COM"))
	assert.False(t, cfg.IsAdminEmail("stranger@example.com"))
}

func TestLoadRejectsInsecureProduction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
app:
  environment: "production"
session:
  secure: false
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
