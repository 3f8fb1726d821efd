// Package util holds small types shared by configuration and the binaries.
package util

import "flag"

var PrintSecrets = flag.Bool(
	"print-secrets", false, "Disables redacting config secrets")

const Redacted = "REDACTED"

// StringSecret is a config value, such as a Sentry DSN, that is redacted
// whenever it is printed or logged.
type StringSecret struct {
	Value string
}

func (s StringSecret) String() string {
	if *PrintSecrets {
		return s.Value
	}
	if s.Value == "" {
		return ""
	}
	return Redacted
}

// UnmarshalYAML reads the secret from a plain YAML string.
func (s *StringSecret) UnmarshalYAML(unmarshal func(interface{}) error) error {
	return unmarshal(&s.Value)
}

// MarshalYAML writes the redacted form, so dumping a config never leaks.
func (s StringSecret) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// Decode lets envconfig set the secret from an environment variable.
func (s *StringSecret) Decode(value string) error {
	s.Value = value
	return nil
}
