package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/emitter/util/config"
)

type Config struct {
	Key1     string        `yaml:"key1"`
	Interval time.Duration `yaml:"interval"`
}

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestReadConfigWithoutTemplate(t *testing.T) {
	path := writeConfig(t, "key1: value1\ninterval: 2s")

	parsedConfig, err := config.ReadConfig[Config](path, nil, "")
	require.NoError(t, err)

	assert.Equal(t, "value1", parsedConfig.Key1)
	assert.Equal(t, 2*time.Second, parsedConfig.Interval)
}

type ConfigParams struct {
	ConfigValue string
}

func TestReadConfigWithTemplate(t *testing.T) {
	path := writeConfig(t, "key1: {{.ConfigValue}}")

	parsedConfig, err := config.ReadConfig[Config](path, ConfigParams{
		ConfigValue: "value1",
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "value1", parsedConfig.Key1)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := config.ReadConfig[Config](
		filepath.Join(t.TempDir(), "nope.yaml"), nil, "")
	assert.Error(t, err)
}

func TestReadConfigRejectsUnknownKeys(t *testing.T) {
	_, err := config.ReadConfigFrom[Config](
		strings.NewReader("key1: a\nkey2: b"), nil, "")
	assert.Error(t, err)
}

func TestReadConfigEmptyDocument(t *testing.T) {
	parsedConfig, err := config.ReadConfigFrom[Config](strings.NewReader(""), nil, "")
	require.NoError(t, err)
	assert.Equal(t, "", parsedConfig.Key1)
}

func TestReadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("CONFIGTEST_KEY1", "from-env")

	parsedConfig, err := config.ReadConfigFrom[Config](
		strings.NewReader("key1: from-file"), nil, "configtest")
	require.NoError(t, err)
	assert.Equal(t, "from-env", parsedConfig.Key1)
}
