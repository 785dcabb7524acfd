package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalAppDir(t *testing.T) {
	got := GlobalAppDir("/home/user/.config")
	want := "/home/user/.config/tasklist"
	if got != want {
		t.Errorf("GlobalAppDir() = %q, want %q", got, want)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	got := GlobalConfigPath("/home/user/.config")
	want := "/home/user/.config/tasklist/config.toml"
	if got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestDataPaths(t *testing.T) {
	dir := DataDir("/home/user/.local/share")
	assert.Equal(t, "/home/user/.local/share/tasklist", dir)
	assert.Equal(t, "/home/user/.local/share/tasklist/store.json", StorePath(dir))
	assert.Equal(t, "/home/user/.local/share/tasklist/badger", BadgerPath(dir))
	assert.Equal(t, "/var/log/tasklist.log", LogPath("/var/log"))
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, DefaultTasksKey, cfg.Store.Key)
	assert.Equal(t, DefaultNamespace, cfg.Store.Namespace)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.False(t, cfg.Tasks.ValidateText)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "s3" }, "store.backend"},
		{"key with slash", func(c *Config) { c.Store.Key = "a/b" }, "store.key"},
		{"namespace with dash", func(c *Config) { c.Store.Namespace = "my-list" }, "store.namespace"},
		{"short encryption key", func(c *Config) { c.Store.EncryptionKey = "abcd" }, "store.encryption_key"},
		{"non-hex encryption key", func(c *Config) { c.Store.EncryptionKey = strings.Repeat("zz", 32) }, "store.encryption_key"},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateAcceptsValidValues(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Store.Backend = BackendGit
	cfg.Store.EncryptionKey = strings.Repeat("0f", 32)
	cfg.Log.Level = "debug"

	assert.NoError(t, cfg.Validate())

	// Empty values fall back to defaults and are not errors.
	assert.NoError(t, (&Config{}).Validate())
}

func TestRenderConfigTemplate(t *testing.T) {
	content := RenderConfigTemplate(NewDefaultConfig())

	if !strings.Contains(content, `# backend = "file"`) {
		t.Errorf("template should show the default backend, got:\n%s", content)
	}
	if !strings.Contains(content, `# level = "info"`) {
		t.Error("template should show the default log level")
	}

	// The rendered template is valid TOML (everything is commented out).
	var raw map[string]any
	require.NoError(t, toml.Unmarshal([]byte(content), &raw))
	assert.Contains(t, raw, "store")
	assert.Contains(t, raw, "tasks")
	assert.Contains(t, raw, "log")
}
