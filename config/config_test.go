package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 640_000, cfg.MemorySize)
	assert.Equal(t, 1024, cfg.StackSize)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverridesOneField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pocol.toml")
	require.NoError(t, os.WriteFile(path, []byte("stack_size = 256\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640_000, cfg.MemorySize, "unset field keeps its default")
	assert.Equal(t, 256, cfg.StackSize)
}

func TestLoadRejectsNonPositiveSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pocol.toml")
	require.NoError(t, os.WriteFile(path, []byte("memory_size = 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
