// Package transport contains emitter.Transport implementations: a UDP
// client for a statsd daemon, an io.Writer sink for debugging and tests,
// and a decorator that logs failed transmissions.
package transport
