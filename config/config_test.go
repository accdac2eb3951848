package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nvimgui.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
transport:
  kind: socket
  socketPath: /tmp/nvim.sock
animation:
  scrollLengthSeconds: 0.5
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "socket", cfg.Transport.Kind)
	assert.Equal(t, "/tmp/nvim.sock", cfg.Transport.SocketPath)
	assert.Equal(t, 0.5, cfg.Animation.ScrollLengthSeconds)
	// Fields absent from the file keep Default()'s zero-value-friendly struct:
	// Load seeds cfg with Default() before unmarshaling, but YAML unmarshal
	// only overwrites keys present in the document, so FarScrollLineBudget
	// survives from the seed below.
	assert.Equal(t, 1, cfg.Animation.FarScrollLineBudget)
}

func TestLoadTOMLDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nvimgui.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[attach]
timeoutSeconds = 30
width = 120
height = 40
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Attach.TimeoutSeconds)
	assert.Equal(t, 120, cfg.Attach.Width)
}

func TestLoadYAMLCapturesExtensionsAndUnmarshalExtensionDecodesThem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nvimgui.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
attach:
  width: 100
env:
  NVIM_RUNTIME: /opt/nvim-runtime
  NVIM_APPNAME: nvimgui
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Attach.Width)

	var env map[string]string
	require.NoError(t, cfg.UnmarshalExtension("env", &env))
	assert.Equal(t, "/opt/nvim-runtime", env["NVIM_RUNTIME"])
	assert.Equal(t, "nvimgui", env["NVIM_APPNAME"])
}

func TestUnmarshalExtensionIsNoopWhenKeyAbsent(t *testing.T) {
	cfg := Default()
	var env map[string]string
	require.NoError(t, cfg.UnmarshalExtension("env", &env))
	assert.Nil(t, env)
}

func TestLoadOrDefaultFallsBackWhenFileMissing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
