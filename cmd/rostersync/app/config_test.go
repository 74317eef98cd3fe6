package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigReadsEnv(t *testing.T) {
	t.Setenv("ROSTERSYNC_CHANNEL", "C123")
	t.Setenv("ROSTERSYNC_STORE", "sqlite://roster.db")
	t.Setenv("SLACK_TOKEN", "xoxb-from-env")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "C123", config.Channel)
	assert.Equal(t, "sqlite://roster.db", config.Store)
	assert.Equal(t, "xoxb-from-env", config.Token)
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
}

func configFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	for _, name := range []string{"token", "channel", "store", "table", "log-level", "log-format"} {
		flags.String(name, "", "")
	}
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestApplyConfigFileKeepsFlagValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"token: file-token\nchannel: C999\nstore: memory://\n",
	), 0o644))

	config := &Config{ConfigFile: path, Token: "flag-token"}
	flags := configFlagSet(t, "--token=flag-token")

	require.NoError(t, config.ApplyConfigFile(flags))

	// The flag value survives; the file fills in the unset keys.
	assert.Equal(t, "flag-token", config.Token)
	assert.Equal(t, "C999", config.Channel)
	assert.Equal(t, "memory://", config.Store)
}

func TestApplyConfigFileMissingFile(t *testing.T) {
	config := &Config{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}
	assert.Error(t, config.ApplyConfigFile(configFlagSet(t)))
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("ROSTERSYNC_TEST_KEY", "value")
	assert.Equal(t, "value", getEnvOrDefault("ROSTERSYNC_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnvOrDefault("ROSTERSYNC_UNSET_KEY", "fallback"))
}
