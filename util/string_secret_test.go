package util_test

import (
	"fmt"
	"testing"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/emitter/util"
	"gopkg.in/yaml.v2"
)

type yamlStruct struct {
	StringSecret util.StringSecret `yaml:"stringSecret"`
}

func TestUnmarshal(t *testing.T) {
	yamlFile := []byte("stringSecret: secret-value")
	data := yamlStruct{}
	err := yaml.Unmarshal(yamlFile, &data)
	assert.Nil(t, err)
	assert.Equal(t, "secret-value", data.StringSecret.Value)
}

func TestMarshalRedacts(t *testing.T) {
	out, err := yaml.Marshal(yamlStruct{util.StringSecret{Value: "secret-value"}})
	require.NoError(t, err)
	assert.Equal(t, "stringSecret: REDACTED\n", string(out))
}

func TestDecodeFromEnvironment(t *testing.T) {
	t.Setenv("SECRETTEST_DSN", "https://key@sentry.example.com/1")
	var data struct {
		Dsn util.StringSecret `envconfig:"dsn"`
	}
	require.NoError(t, envconfig.Process("secrettest", &data))
	assert.Equal(t, "https://key@sentry.example.com/1", data.Dsn.Value)
}

func TestPrint(t *testing.T) {
	stringSecret := util.StringSecret{Value: "secret-value"}
	printedStringSecret := fmt.Sprintf("%v", stringSecret)
	assert.Equal(t, util.Redacted, printedStringSecret)
}

func TestPrintEmptyValue(t *testing.T) {
	stringSecret := util.StringSecret{Value: ""}
	printedStringSecret := fmt.Sprintf("%v", stringSecret)
	assert.Equal(t, "", printedStringSecret)
}

func TestPrintRedactingDisabled(t *testing.T) {
	*util.PrintSecrets = true
	defer func() { *util.PrintSecrets = false }()
	stringSecret := util.StringSecret{Value: "secret-value"}
	printedStringSecret := fmt.Sprintf("%v", stringSecret)
	assert.Equal(t, "secret-value", printedStringSecret)
}
