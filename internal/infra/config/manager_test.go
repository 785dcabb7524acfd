package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasklist/internal/domain"
)

func TestManager_GetGlobalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		globalDir := t.TempDir()
		configContent := "[log]\nlevel = \"debug\""
		err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(configContent), 0o644)
		require.NoError(t, err)

		manager := NewManagerWithGlobalDir(globalDir)
		info := manager.GetGlobalConfigInfo()

		assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		globalDir := t.TempDir()

		manager := NewManagerWithGlobalDir(globalDir)
		info := manager.GetGlobalConfigInfo()

		assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})

	t.Run("returns empty info when global dir is empty", func(t *testing.T) {
		manager := NewManagerWithGlobalDir("")
		info := manager.GetGlobalConfigInfo()

		assert.Empty(t, info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})
}

func TestManager_InitGlobalConfig(t *testing.T) {
	t.Run("creates config file and directory", func(t *testing.T) {
		globalDir := filepath.Join(t.TempDir(), "nested", "tasklist")
		manager := NewManagerWithGlobalDir(globalDir)

		err := manager.InitGlobalConfig(domain.NewDefaultConfig())
		require.NoError(t, err)

		info := manager.GetGlobalConfigInfo()
		assert.True(t, info.Exists)
		assert.Contains(t, info.Content, "[store]")
		assert.Contains(t, info.Content, `# backend = "file"`)

		// The written file loads back to the defaults.
		cfg, err := NewLoaderWithGlobalDir("", globalDir).Load()
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultBackend, cfg.Store.Backend)
		assert.Empty(t, cfg.Warnings)
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		globalDir := t.TempDir()
		manager := NewManagerWithGlobalDir(globalDir)
		require.NoError(t, manager.InitGlobalConfig(domain.NewDefaultConfig()))

		err := manager.InitGlobalConfig(domain.NewDefaultConfig())

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})

	t.Run("fails without global dir", func(t *testing.T) {
		err := NewManagerWithGlobalDir("").InitGlobalConfig(domain.NewDefaultConfig())

		assert.Error(t, err)
	})
}
