// Package config loads YAML configuration files. Files are rendered as
// text/template documents first, decoded strictly, then overridden from
// the environment.
package config

import (
	"io"
	"os"
	"text/template"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ReadConfig reads the file at path into a new Config. See ReadConfigFrom.
func ReadConfig[Config interface{}](
	path string, templateData interface{}, envBase string,
) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config file")
	}
	defer file.Close()

	return ReadConfigFrom[Config](file, templateData, envBase)
}

// ReadConfigFrom renders r as a template with templateData, decodes the
// result into a new Config rejecting unknown keys, and finally applies
// environment variables prefixed with envBase.
func ReadConfigFrom[Config interface{}](
	r io.Reader, templateData interface{}, envBase string,
) (*Config, error) {
	fileData, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	configTemplate, err := template.New("config").Parse(string(fileData))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config template")
	}

	configReader, configWriter := io.Pipe()
	templateErr := make(chan error, 1)
	go func() {
		err := configTemplate.Execute(configWriter, templateData)
		configWriter.CloseWithError(err)
		templateErr <- err
	}()

	decoder := yaml.NewDecoder(configReader)
	decoder.SetStrict(true)

	config := new(Config)
	err = decoder.Decode(config)
	// An empty document is a valid config made up of defaults.
	if err != nil && err != io.EOF {
		configReader.Close()
		<-templateErr
		return nil, errors.Wrap(err, "failed to unmarshal config file")
	}
	// Let the template finish writing whatever the decoder did not need.
	io.Copy(io.Discard, configReader)

	if err := <-templateErr; err != nil {
		return nil, errors.Wrap(err, "failed to render config template")
	}

	err = envconfig.Process(envBase, config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to process environment variables")
	}

	return config, nil
}
