package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = append([]string{"cmd"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerAddr)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerAddr)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, `{"server_addr": "http://json:9000", "request_timeout": "30s"}`)
	withArgs(t, "-c", path, "-a", "http://flags:9001")

	cfg := LoadConfig()

	assert.Equal(t, "http://flags:9001", cfg.ServerAddr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
