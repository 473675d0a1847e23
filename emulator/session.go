package emulator

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// session is the WebSocket connection of one browser
type session struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
	log  logrus.FieldLogger

	once sync.Once
	done chan struct{}
}

func (s *session) close() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

func (s *session) writeLoop() {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.log.WithError(err).Debug("write failed")
				s.close()
				return
			}
		}
	}
}

func (e *Emulator) serveEventBus(w http.ResponseWriter, r *http.Request) {
	conn, err := e.upgrader.Upgrade(w, r, nil)
	if err != nil {
		e.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	id := uuid.New()
	s := &session{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		log:  e.log.WithField("session", id.String()),
		done: make(chan struct{}),
	}
	if !e.add(s) {
		s.close()
		return
	}
	s.log.WithField("remote", r.RemoteAddr).Info("browser connected")

	go s.writeLoop()
	defer func() {
		e.remove(s)
		s.log.Info("browser disconnected")
	}()

	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if typ != websocket.TextMessage {
			continue
		}
		e.receive(s, data)
	}
}
