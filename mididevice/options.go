package mididevice

import "github.com/sirupsen/logrus"

type Option func(*Launchpad)

// WithLogger sets the logger of the session, logrus.StandardLogger by default
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Launchpad) {
		if log != nil {
			l.log = log
		}
	}
}

// WithErrorHandler is called for every inbound message that could not be decoded.
// It runs on the listening goroutine of the driver.
func WithErrorHandler(fn func(error)) Option {
	return func(l *Launchpad) {
		l.onError = fn
	}
}
