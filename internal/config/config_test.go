package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()

	cfg, params, err := Load([]string{dir})
	require.NoError(t, err)

	assert.True(t, cfg.Recursive)
	assert.False(t, cfg.ForcePolling)
	assert.Equal(t, 300, cfg.PollDelayMs)
	assert.Equal(t, DefaultDebounceMs, params.DebounceMs)
	assert.Equal(t, DefaultStepMs, params.StepMs)
	assert.Equal(t, 0, params.TimeoutMs)
}

func TestLoadHonorsFlagOverrides(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()

	viper.Set("force-polling", true)
	viper.Set("debounce", 42)

	cfg, params, err := Load([]string{dir})
	require.NoError(t, err)

	assert.True(t, cfg.ForcePolling)
	assert.Equal(t, 42, params.DebounceMs)
}

func TestEnvTruthyThreeWay(t *testing.T) {
	const name = "WATCHFILES_TEST_TRUTHY"
	defer os.Unsetenv(name)

	os.Unsetenv(name)
	assert.False(t, envTruthy(name))

	os.Setenv(name, "disable")
	assert.False(t, envTruthy(name))

	os.Setenv(name, "1")
	assert.True(t, envTruthy(name))
}
