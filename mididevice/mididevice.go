// Package mididevice connects to a Launchpad S over MIDI ports provided by gomidi drivers.
//
// A driver must be registered by the program, e.g.
//
//	import _ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
package mididevice

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/PixPMusic/gopher-launchpad/internal/midi"
	"github.com/PixPMusic/gopher-launchpad/launchpad"
)

// Configuration holds the ports of a device. Either port may be nil.
type Configuration struct {
	In  drivers.In
	Out drivers.Out
}

// Launchpad is a device session over MIDI ports.
// It owns the configured ports and closes them on Close.
type Launchpad struct {
	cfg     Configuration
	log     logrus.FieldLogger
	onError func(error)

	client     *midi.Client
	dispatcher *midi.Dispatcher
	stop       func()

	mx     sync.RWMutex
	closed bool
}

var _ launchpad.Device = (*Launchpad)(nil)

// Open starts a session on the ports of cfg: the output port is opened for sending,
// the input port is opened and listened to.
func Open(cfg Configuration, options ...Option) (*Launchpad, error) {
	l := &Launchpad{
		cfg: cfg,
		log: logrus.StandardLogger(),
	}
	for _, opt := range options {
		opt(l)
	}
	l.log = l.log.WithField("module", "mididevice")

	if cfg.Out != nil {
		if err := openPort(cfg.Out); err != nil {
			l.closePorts()
			return nil, &launchpad.Error{Op: "open output " + cfg.Out.String(), Err: err}
		}
		send, err := gomidi.SendTo(cfg.Out)
		if err != nil {
			l.closePorts()
			return nil, &launchpad.Error{Op: "open output " + cfg.Out.String(), Err: err}
		}
		l.client = midi.NewClient(send)
	}

	if cfg.In != nil {
		if err := openPort(cfg.In); err != nil {
			l.closePorts()
			return nil, &launchpad.Error{Op: "open input " + cfg.In.String(), Err: err}
		}
		l.dispatcher = midi.NewDispatcher(nil)
		recv := midi.NewReceiver(l.dispatcher)
		base := time.Now().UnixMilli()

		stop, err := gomidi.ListenTo(cfg.In, func(msg gomidi.Message, timestampms int32) {
			if err := recv.Receive(msg, base+int64(timestampms)); err != nil {
				l.handleError(err)
			}
		}, gomidi.UseSysEx())
		if err != nil {
			l.closePorts()
			return nil, &launchpad.Error{Op: "listen " + cfg.In.String(), Err: err}
		}
		l.stop = stop
	}

	l.log.WithFields(logrus.Fields{
		"in":  portName(cfg.In),
		"out": portName(cfg.Out),
	}).Debug("session opened")
	return l, nil
}

func openPort(p drivers.Port) error {
	if p.IsOpen() {
		return nil
	}
	return p.Open()
}

func portName(p drivers.Port) string {
	if p == nil {
		return ""
	}
	return p.String()
}

func (l *Launchpad) handleError(err error) {
	l.log.WithError(err).Warn("inbound message dropped")
	if l.onError != nil {
		l.onError(err)
	}
}

// IsClosed reports whether Close was called
func (l *Launchpad) IsClosed() bool {
	l.mx.RLock()
	defer l.mx.RUnlock()
	return l.closed
}

// Client returns the client of the output port
func (l *Launchpad) Client() (launchpad.Client, error) {
	if l.IsClosed() {
		return nil, &launchpad.Error{Op: "client", Err: launchpad.ErrClosed}
	}
	if l.client == nil {
		return nil, &launchpad.Error{Op: "client", Err: launchpad.ErrNoOutput}
	}
	return l.client, nil
}

// SetListener replaces the listener of the input port, nil discards events
func (l *Launchpad) SetListener(listener launchpad.Listener) error {
	if l.IsClosed() {
		return &launchpad.Error{Op: "set listener", Err: launchpad.ErrClosed}
	}
	if l.dispatcher == nil {
		return &launchpad.Error{Op: "set listener", Err: launchpad.ErrNoInput}
	}
	l.dispatcher.SetListener(listener)
	return nil
}

// Close stops listening and closes the ports. Further calls do nothing.
func (l *Launchpad) Close() error {
	l.mx.Lock()
	if l.closed {
		l.mx.Unlock()
		return nil
	}
	l.closed = true
	l.mx.Unlock()

	if l.stop != nil {
		l.stop()
	}
	if err := l.closePorts(); err != nil {
		return &launchpad.Error{Op: "close", Err: err}
	}
	l.log.Debug("session closed")
	return nil
}

func (l *Launchpad) closePorts() error {
	var errs []error
	for _, p := range []drivers.Port{l.cfg.In, l.cfg.Out} {
		if p == nil || !p.IsOpen() {
			continue
		}
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
