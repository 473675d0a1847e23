package midi

import (
	"fmt"
	"sync"

	"github.com/PixPMusic/gopher-launchpad/launchpad"
)

const (
	topButtonBase = 104
	rightColumn   = 8
	noteRowStride = 16
)

// Dispatcher turns low-level events into pad and button events for a launchpad.Listener.
// The listener can be swapped at any time; with no listener valid events are dropped.
type Dispatcher struct {
	mu       sync.RWMutex
	listener launchpad.Listener
}

var _ ProtocolListener = (*Dispatcher)(nil)

func NewDispatcher(l launchpad.Listener) *Dispatcher {
	return &Dispatcher{listener: l}
}

// SetListener replaces the current listener, nil disables dispatching
func (d *Dispatcher) SetListener(l launchpad.Listener) {
	d.mu.Lock()
	d.listener = l
	d.mu.Unlock()
}

func (d *Dispatcher) current() launchpad.Listener {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.listener
}

func (d *Dispatcher) OnNoteOn(note uint8, timestamp int64) error {
	return d.note(note, timestamp, true)
}

func (d *Dispatcher) OnNoteOff(note uint8, timestamp int64) error {
	return d.note(note, timestamp, false)
}

func (d *Dispatcher) OnButtonOn(note uint8, timestamp int64) error {
	return d.topButton(note, timestamp, true)
}

func (d *Dispatcher) OnButtonOff(note uint8, timestamp int64) error {
	return d.topButton(note, timestamp, false)
}

func (d *Dispatcher) OnTextScrolled(timestamp int64) error {
	if l := d.current(); l != nil {
		l.OnTextScrolled(timestamp)
	}
	return nil
}

func (d *Dispatcher) note(note uint8, timestamp int64, pressed bool) error {
	x, y := int(note)%noteRowStride, int(note)/noteRowStride
	if x >= rightColumn {
		b, err := launchpad.ButtonAtRight(y)
		if err != nil {
			return &launchpad.ProtocolError{Reason: fmt.Sprintf("note %d is outside the right button column", note)}
		}
		d.button(b, timestamp, pressed)
		return nil
	}

	p, err := launchpad.PadAt(x, y)
	if err != nil {
		return &launchpad.ProtocolError{Reason: fmt.Sprintf("note %d is outside the pad grid", note)}
	}
	l := d.current()
	switch {
	case l == nil:
	case pressed:
		l.OnPadPressed(p, timestamp)
	default:
		l.OnPadReleased(p, timestamp)
	}
	return nil
}

func (d *Dispatcher) topButton(note uint8, timestamp int64, pressed bool) error {
	b, err := launchpad.ButtonAtTop(int(note) - topButtonBase)
	if err != nil {
		return &launchpad.ProtocolError{Reason: fmt.Sprintf("controller %d is not a top button", note)}
	}
	d.button(b, timestamp, pressed)
	return nil
}

func (d *Dispatcher) button(b launchpad.Button, timestamp int64, pressed bool) {
	l := d.current()
	switch {
	case l == nil:
	case pressed:
		l.OnButtonPressed(b, timestamp)
	default:
		l.OnButtonReleased(b, timestamp)
	}
}
