// Package emulator is a web based Launchpad S. It serves a page drawing the
// device and exchanges events with the browsers over a WebSocket.
//
// The emulator implements launchpad.Device, so programs written against the
// launchpad package run unchanged with or without the hardware.
package emulator

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/PixPMusic/gopher-launchpad/internal/events"
	"github.com/PixPMusic/gopher-launchpad/launchpad"
)

const (
	// WebPrefix is the path under which the web resources are served
	WebPrefix = "/web"
	// EventBusPath is the WebSocket endpoint of the browsers
	EventBusPath = "/eventbus"

	sendBuffer   = 64
	writeTimeout = 5 * time.Second
)

// Emulator is a launchpad.Device displayed in web browsers
type Emulator struct {
	addr     string
	log      logrus.FieldLogger
	now      func() time.Time
	upgrader websocket.Upgrader
	client   *events.Client

	srv *http.Server
	ln  net.Listener

	mx       sync.RWMutex
	sessions map[uuid.UUID]*session
	listener launchpad.Listener
	closed   bool
}

var _ launchpad.Device = (*Emulator)(nil)

type Option func(*Emulator)

// WithLogger sets the logger, logrus.StandardLogger by default
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Emulator) {
		if log != nil {
			e.log = log
		}
	}
}

// New returns an emulator that will listen on addr, e.g. ":9000"
func New(addr string, options ...Option) *Emulator {
	e := &Emulator{
		addr:     addr,
		log:      logrus.StandardLogger(),
		now:      time.Now,
		sessions: make(map[uuid.UUID]*session),
	}
	for _, opt := range options {
		opt(e)
	}
	e.log = e.log.WithField("module", "emulator")
	e.client = events.NewClient(events.PublisherFunc(e.broadcast))
	e.srv = &http.Server{Handler: e}
	return e
}

// Start listens on the address of the emulator and serves in the background
func (e *Emulator) Start() error {
	if e.IsClosed() {
		return launchpad.ErrClosed
	}
	ln, err := net.Listen("tcp", e.addr)
	if err != nil {
		return err
	}
	e.mx.Lock()
	e.ln = ln
	e.mx.Unlock()

	e.log.WithField("url", "http://"+ln.Addr().String()+"/").Info("launchpad emulator ready")
	go func() {
		if err := e.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.log.WithError(err).Error("http server stopped")
		}
	}()
	return nil
}

// Addr returns the listening address once started, the configured one before
func (e *Emulator) Addr() string {
	e.mx.RLock()
	defer e.mx.RUnlock()
	if e.ln != nil {
		return e.ln.Addr().String()
	}
	return e.addr
}

// IsClosed reports whether Close was called
func (e *Emulator) IsClosed() bool {
	e.mx.RLock()
	defer e.mx.RUnlock()
	return e.closed
}

// Client returns the client drawing on the connected browsers
func (e *Emulator) Client() (launchpad.Client, error) {
	if e.IsClosed() {
		return nil, &launchpad.Error{Op: "client", Err: launchpad.ErrClosed}
	}
	return e.client, nil
}

// SetListener replaces the listener of the browser events, nil discards them
func (e *Emulator) SetListener(l launchpad.Listener) error {
	e.mx.Lock()
	defer e.mx.Unlock()
	if e.closed {
		return &launchpad.Error{Op: "set listener", Err: launchpad.ErrClosed}
	}
	e.listener = l
	return nil
}

// Close stops the server and disconnects the browsers. Further calls do nothing.
func (e *Emulator) Close() error {
	e.mx.Lock()
	if e.closed {
		e.mx.Unlock()
		return nil
	}
	e.closed = true
	sessions := e.sessions
	e.sessions = make(map[uuid.UUID]*session)
	e.mx.Unlock()

	for _, s := range sessions {
		s.close()
	}
	if err := e.srv.Close(); err != nil {
		return &launchpad.Error{Op: "close", Err: err}
	}
	return nil
}

func (e *Emulator) currentListener() launchpad.Listener {
	e.mx.RLock()
	defer e.mx.RUnlock()
	return e.listener
}

// broadcast sends v to every browser. Browsers too slow to keep up are disconnected.
func (e *Emulator) broadcast(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	e.mx.RLock()
	var slow []*session
	for _, s := range e.sessions {
		select {
		case s.send <- data:
		default:
			slow = append(slow, s)
		}
	}
	e.mx.RUnlock()

	for _, s := range slow {
		s.log.Warn("browser too slow, disconnecting")
		e.remove(s)
	}
	return nil
}

func (e *Emulator) add(s *session) bool {
	e.mx.Lock()
	defer e.mx.Unlock()
	if e.closed {
		return false
	}
	e.sessions[s.id] = s
	return true
}

func (e *Emulator) remove(s *session) {
	e.mx.Lock()
	_, ok := e.sessions[s.id]
	delete(e.sessions, s.id)
	e.mx.Unlock()
	if ok {
		s.close()
	}
}

// receive dispatches an input from a browser to the listener
func (e *Emulator) receive(s *session, data []byte) {
	in, err := events.DecodeInput(data)
	if err != nil {
		s.log.WithError(err).Warn("malformed event dropped")
		return
	}
	l := e.currentListener()
	if l == nil {
		return
	}
	if err := in.Dispatch(l, e.now().UnixMilli()); err != nil {
		s.log.WithError(err).WithField("evt", in.Evt).Warn("invalid event dropped")
	}
}
