package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"port": 9000,
		"keywords": "product owner",
		"location": "Singapore",
		"max_age_days": 14
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "product owner", cfg.Keywords)
	assert.Equal(t, 14, cfg.MaxAgeDays)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: 8080, MaxAgeDays: 30}
	assert.NoError(t, cfg.Validate())

	assert.Error(t, (&Config{Port: 70000}).Validate())
	assert.Error(t, (&Config{MaxAgeDays: -1}).Validate())
	assert.Error(t, (&Config{EmailWebhookURL: "https://mailer/send"}).Validate())
	assert.NoError(t, (&Config{EmailWebhookURL: "https://mailer/send", EmailTo: "me@example.com"}).Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Keywords: "data analyst"}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "data analyst", merged.Keywords, "explicit value wins")
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, "Singapore", merged.Location)
	assert.Equal(t, 30, merged.MaxAgeDays)
}
