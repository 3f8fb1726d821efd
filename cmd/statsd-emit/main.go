package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stripe/emitter"
	"github.com/stripe/emitter/scopedstatsd"
	"github.com/stripe/emitter/transport"
	"github.com/stripe/emitter/util/build"
)

const sentryFlushTimeout = 5 * time.Second

var (
	configFile = flag.String("f", "", "The emitter config file to read for settings.")
	hostport   = flag.String("hostport", "", "Hostname and port of destination. Must be used if config file is not present.")
	name       = flag.String("name", "", "Name of metric to report. Ex: daemontools.service.starts")
	prefix     = flag.String("prefix", "", "Prefix prepended to the metric name, overriding the config file.")
	gauge      = flag.Float64("gauge", 0, "Report a 'gauge' metric. Value must be float64.")
	timing     = flag.Duration("timing", 0, "Report a 'timing' metric. Value must be parseable by time.ParseDuration.")
	timeinms   = flag.Float64("timeinms", 0, "Report a 'timing' metric, in milliseconds. Value must be float64.")
	count      = flag.Int64("count", 0, "Report a 'count' metric. Value must be an integer.")
	rate       = flag.Float64("rate", 1, "Sample rate in (0,1] applied to every reported metric.")
	batch      = flag.Bool("batch", false, "Send all reported metrics in a single datagram.")
	debug      = flag.Bool("debug", false, "Turns on debug messages.")
	version    = flag.Bool("version", false, "Print the version and exit.")
)

// MinimalClient represents the functions that we call on Clients in statsd-emit.
type MinimalClient interface {
	Gauge(name string, value float64, rate float64)
	Count(name string, value int64, rate float64)
	Timing(name string, value time.Duration, rate float64)
	TimeInMilliseconds(name string, value float64, rate float64)
	Flush()
}

func main() {
	passedFlags := flags()

	if *version {
		fmt.Println(build.String())
		return
	}
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var config *emitter.Config
	if passedFlags["f"] {
		conf, err := emitter.ReadConfig(*configFile)
		if err != nil {
			logrus.WithError(err).Fatal("Error reading configuration file.")
		}
		config = &conf
		if conf.Debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
		logrus.WithFields(logrus.Fields{
			"address":    conf.Address,
			"prefix":     conf.Prefix,
			"buffered":   conf.Buffered,
			"sentry_dsn": conf.SentryDsn,
		}).Debug("Read configuration.")
	}
	sentryDsn := ""
	if config != nil {
		sentryDsn = config.SentryDsn.Value
	}

	addr, err := addr(passedFlags, config, hostport)
	if err != nil {
		fatal(sentryDsn, err, "Error!")
	}
	logrus.Debugf("destination: %s", addr)

	sampleRate, err := sampleRate(passedFlags, config, *rate)
	if err != nil {
		fatal(sentryDsn, err, "Invalid sample rate.")
	}

	timeout := time.Second
	if config != nil {
		timeout = config.DialTimeout
	}
	udp, err := transport.Dial(addr, timeout)
	if err != nil {
		fatal(sentryDsn, err, "Error!")
	}
	defer udp.Close()

	e := emitter.New(transport.Logged(udp, logrus.WithField("destination", addr)))
	client := newClient(e, passedFlags, config)

	sent, err := sendMetrics(client, passedFlags, *name, sampleRate)
	if err != nil {
		fatal(sentryDsn, err, "Error!")
	}
	client.Flush()

	stats := e.Stats()
	logrus.WithFields(logrus.Fields{
		"reported":    sent,
		"transmitted": stats.Transmitted,
		"sampled_out": stats.SampledOut,
	}).Debug("Done.")
	if stats.Failed > 0 {
		fatal(sentryDsn, errors.Errorf("%d payloads failed", stats.Failed), "Could not deliver metrics.")
	}
}

func flags() map[string]bool {
	flag.Parse()
	// hacky way to detect which flags were *actually* set
	passedFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		passedFlags[f.Name] = true
	})
	return passedFlags
}

func addr(passedFlags map[string]bool, conf *emitter.Config, hostport *string) (string, error) {
	addr := ""
	var err error
	if passedFlags["hostport"] && !(hostport == nil || *hostport == "" || !strings.Contains(*hostport, ":")) {
		addr = *hostport
	} else if passedFlags["f"] && (conf != nil) {
		addr = conf.Address
	} else {
		err = errors.New("you must either specify a config file or a valid hostport")
	}
	return addr, err
}

// sampleRate prefers an explicit -rate flag over the config file.
func sampleRate(passedFlags map[string]bool, conf *emitter.Config, flagRate float64) (float64, error) {
	r := flagRate
	if !passedFlags["rate"] && conf != nil {
		r = conf.SampleRate
	}
	return r, emitter.ValidateRate(r)
}

func newClient(e *emitter.Emitter, passedFlags map[string]bool, conf *emitter.Config) *scopedstatsd.ScopedClient {
	pfx := *prefix
	buffered := *batch
	if conf != nil {
		if !passedFlags["prefix"] {
			pfx = conf.Prefix
		}
		if !passedFlags["batch"] {
			buffered = conf.Buffered
		}
	}
	client := scopedstatsd.NewClient(e, pfx, scopedstatsd.Rates{})
	if buffered {
		return client.Buffered()
	}
	return client
}

func sendMetrics(client MinimalClient, passedFlags map[string]bool, name string, rate float64) (int, error) {
	reported := 0
	wanted := passedFlags["gauge"] || passedFlags["timing"] || passedFlags["timeinms"] || passedFlags["count"]
	if !wanted {
		logrus.Info("No metrics reported.")
		return 0, nil
	}
	if name == "" {
		return 0, errors.New("a metric -name is required")
	}
	if passedFlags["gauge"] {
		logrus.Debugf("Sending gauge '%s' -> %f", name, *gauge)
		client.Gauge(name, *gauge, rate)
		reported++
	}
	if passedFlags["timing"] {
		logrus.Debugf("Sending timing '%s' -> %s", name, *timing)
		client.Timing(name, *timing, rate)
		reported++
	}
	if passedFlags["timeinms"] {
		logrus.Debugf("Sending timeinms '%s' -> %f", name, *timeinms)
		client.TimeInMilliseconds(name, *timeinms, rate)
		reported++
	}
	if passedFlags["count"] {
		logrus.Debugf("Sending count '%s' -> %d", name, *count)
		client.Count(name, *count, rate)
		reported++
	}
	return reported, nil
}

// fatal reports err to Sentry when a DSN is configured, then exits.
func fatal(dsn string, err error, msg string) {
	if dsn != "" {
		if serr := sentry.Init(sentry.ClientOptions{Dsn: dsn}); serr != nil {
			logrus.WithError(serr).Error("Error initializing Sentry client")
		} else {
			event := sentry.NewEvent()
			event.Message = errors.WithMessage(err, msg).Error()
			hostname, _ := os.Hostname()
			if hostname != "" {
				event.ServerName = hostname
			}
			sentry.CaptureEvent(event)
			sentry.Flush(sentryFlushTimeout)
		}
	}
	logrus.WithError(err).Fatal(msg)
}
