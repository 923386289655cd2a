package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectConfig_Missing(t *testing.T) {
	cfg, err := loadProjectConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadProjectConfig_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: "1"
library:
  path: ./src
  remote: https://github.com/acme/ui
  branch: main
  subdir: packages/ui
  exclude:
    - "**/legacy/**"
serve:
  watch: true
  debounce_ms: 150
  tool_log: .uimeta/tools.jsonl
log:
  level: debug
  format: text
`), 0644))

	cfg, err := loadProjectConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "./src", cfg.Library.Path)
	assert.Equal(t, "https://github.com/acme/ui", cfg.Library.Remote)
	assert.Equal(t, "packages/ui", cfg.Library.Subdir)
	assert.Equal(t, []string{"**/legacy/**"}, cfg.Library.Exclude)
	assert.True(t, cfg.Serve.Watch)
	assert.Equal(t, 150, cfg.Serve.DebounceMs)
	assert.Equal(t, ".uimeta/tools.jsonl", cfg.Serve.ToolLog)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadProjectConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("library: [unclosed"), 0644))

	_, err := loadProjectConfig(path)
	assert.Error(t, err)
}

func TestResolveString(t *testing.T) {
	assert.Equal(t, "flag", resolveString("flag", "config", "default"))
	assert.Equal(t, "config", resolveString("", "config", "default"))
	assert.Equal(t, "default", resolveString("", "", "default"))
}

func TestResolveInt(t *testing.T) {
	assert.Equal(t, 7, resolveInt(7, 3, 1))
	assert.Equal(t, 3, resolveInt(0, 3, 1))
	assert.Equal(t, 1, resolveInt(0, 0, 1))
}

func TestSplitGlobs(t *testing.T) {
	assert.Nil(t, splitGlobs(""))
	assert.Equal(t, []string{"**/legacy/**"}, splitGlobs("**/legacy/**"))
	assert.Equal(t, []string{"a", "b"}, splitGlobs("a, b,"))
}
