package emitter

import (
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/stripe/emitter/util"
	"github.com/stripe/emitter/util/config"
)

// EnvPrefix prefixes the environment variables that override config
// file values, e.g. STATSD_EMIT_ADDRESS.
const EnvPrefix = "statsd_emit"

const (
	defaultAddress     = "127.0.0.1:8125"
	defaultDialTimeout = time.Second
)

// Config describes where and how measurements are emitted.
type Config struct {
	// Address is the host:port of the statsd daemon.
	Address     string        `yaml:"address" envconfig:"address"`
	DialTimeout time.Duration `yaml:"dial_timeout" envconfig:"dial_timeout"`
	// Prefix is prepended, followed by a dot, to every metric name.
	Prefix string `yaml:"prefix" envconfig:"prefix"`
	// SampleRate is the default rate for measurements that do not
	// specify one. Zero means 1.
	SampleRate float64 `yaml:"sample_rate" envconfig:"sample_rate"`
	// Buffered batches measurements until an explicit flush.
	Buffered  bool              `yaml:"buffered" envconfig:"buffered"`
	Debug     bool              `yaml:"debug" envconfig:"debug"`
	SentryDsn util.StringSecret `yaml:"sentry_dsn" envconfig:"sentry_dsn"`
}

// ReadConfig loads a Config from the YAML file at path, applies
// environment overrides and defaults, and validates the result.
func ReadConfig(path string) (Config, error) {
	c, err := config.ReadConfig[Config](path, nil, EnvPrefix)
	if err != nil {
		return Config{}, err
	}
	c.applyDefaults()
	return *c, c.Validate()
}

func (c *Config) applyDefaults() {
	if c.Address == "" {
		c.Address = defaultAddress
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = defaultDialTimeout
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Address); err != nil {
		return errors.Wrapf(err, "invalid address %q", c.Address)
	}
	if c.DialTimeout < 0 {
		return errors.Errorf("dial_timeout must not be negative, got %s", c.DialTimeout)
	}
	if err := ValidateRate(c.SampleRate); err != nil {
		return errors.WithMessagef(err, "invalid sample_rate %v", c.SampleRate)
	}
	return nil
}
