package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	require.Equal(t, &Config{
		LogLevel:               "warn",
		OutputSuffix:           "_parsed",
		OutputFormat:           "json",
		ValidateOutput:         true,
		AvailableDefinitionKey: "SD4",
	}, c)
}

func TestLoadConfigMissingDefault(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), DefaultConfigFile), false)
	require.NoError(t, err)
	require.Equal(t, Default(), c)
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
log_level: DEBUG
output_suffix: _seats
output_format: xlsx
indent: "  "
validate_output: false
available_definition_key: SD7
`)
	c, err := LoadConfig(path, true)
	require.NoError(t, err)
	require.Equal(t, &Config{
		LogLevel:               "debug",
		OutputSuffix:           "_seats",
		OutputFormat:           "xlsx",
		Indent:                 "  ",
		ValidateOutput:         false,
		AvailableDefinitionKey: "SD7",
	}, c)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	c, err := LoadConfig(writeConfig(t, "indent: \"\\t\"\n"), true)
	require.NoError(t, err)
	require.True(t, c.ValidateOutput)
	require.Equal(t, "_parsed", c.OutputSuffix)
	require.Equal(t, "\t", c.Indent)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvOutputSuffix, "_env")
	t.Setenv(EnvOutputFormat, "xlsx")
	t.Setenv(EnvAvailableKey, "SD1")
	t.Setenv(EnvValidateOutput, "false")

	c, err := LoadConfig(writeConfig(t, "log_level: debug\noutput_suffix: _file\n"), true)
	require.NoError(t, err)
	require.Equal(t, "error", c.LogLevel)
	require.Equal(t, "_env", c.OutputSuffix)
	require.Equal(t, "xlsx", c.OutputFormat)
	require.Equal(t, "SD1", c.AvailableDefinitionKey)
	require.False(t, c.ValidateOutput)
}

func TestLoadConfigInvalid(t *testing.T) {
	for name, content := range map[string]string{
		"level":  "log_level: loud\n",
		"format": "output_format: csv\n",
		"suffix": "output_suffix: a/b\n",
		"indent": "indent: xx\n",
		"yaml":   "log_level: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content), true)
			require.Error(t, err)
		})
	}

	t.Run("env bool", func(t *testing.T) {
		t.Setenv(EnvValidateOutput, "sometimes")
		_, err := LoadConfig("", false)
		require.ErrorContains(t, err, EnvValidateOutput)
	})
}

func TestNewLogger(t *testing.T) {
	c := Default()
	c.LogLevel = "info"
	c.LogFile = filepath.Join(t.TempDir(), "seatmap.log")

	log, closer, err := c.NewLogger()
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("converted", zap.String("flight", "AB123"))
	require.NoError(t, closer())

	data, err := os.ReadFile(c.LogFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "converted")
	require.Contains(t, string(data), "AB123")
	require.False(t, strings.Contains(string(data), "hidden"))
}

func TestNewLoggerNone(t *testing.T) {
	c := Default()
	c.LogLevel = "none"
	log, closer, err := c.NewLogger()
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(levels["error"]))
	require.NoError(t, closer())

	c.LogLevel = "chatty"
	_, _, err = c.NewLogger()
	require.Error(t, err)
}
