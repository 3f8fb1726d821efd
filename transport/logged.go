package transport

import (
	"github.com/sirupsen/logrus"
)

// Transmitter is the interface shared by emitter.Transport and every
// transport in this package.
type Transmitter interface {
	Transmit(payload string) error
}

// LoggedTransport logs transmissions of the transport it wraps and passes
// every result through unchanged.
type LoggedTransport struct {
	next Transmitter
	log  *logrus.Entry
}

// Logged wraps next so failed transmissions are logged at warn level and
// successful ones at debug level.
func Logged(next Transmitter, log *logrus.Entry) *LoggedTransport {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &LoggedTransport{next: next, log: log}
}

func (l *LoggedTransport) Transmit(payload string) error {
	err := l.next.Transmit(payload)
	if err != nil {
		l.log.WithError(err).WithField("bytes", len(payload)).
			Warn("Failed to transmit statsd payload")
		return err
	}
	l.log.WithField("payload", payload).Debug("Transmitted statsd payload")
	return nil
}
