package midi

import (
	"errors"

	"github.com/PixPMusic/gopher-launchpad/launchpad"
)

const (
	statusNoteOn        = 0x90
	statusControlChange = 0xB0

	textScrolledValue = 3
)

// ProtocolListener receives the low-level events decoded by a Receiver.
// Notes address pads and right buttons, controllers address top buttons.
type ProtocolListener interface {
	OnNoteOn(note uint8, timestamp int64) error
	OnNoteOff(note uint8, timestamp int64) error
	OnButtonOn(note uint8, timestamp int64) error
	OnButtonOff(note uint8, timestamp int64) error
	OnTextScrolled(timestamp int64) error
}

// Receiver decodes the MIDI messages sent by the device
type Receiver struct {
	listener ProtocolListener
}

func NewReceiver(l ProtocolListener) *Receiver {
	return &Receiver{listener: l}
}

// Receive classifies one message and forwards it to the listener.
// Anything but a three byte note on or control change message is a protocol error.
// Errors are returned as *launchpad.Error.
func (r *Receiver) Receive(msg []byte, timestamp int64) error {
	if len(msg) != 3 {
		return r.fail(msg, &launchpad.ProtocolError{Reason: "not a short message"})
	}

	status, note, velocity := msg[0]&0xF0, msg[1], msg[2]

	var err error
	switch status {
	case statusNoteOn:
		if velocity == 0 {
			err = r.listener.OnNoteOff(note, timestamp)
		} else {
			err = r.listener.OnNoteOn(note, timestamp)
		}
	case statusControlChange:
		switch {
		case note == 0 && velocity == textScrolledValue:
			err = r.listener.OnTextScrolled(timestamp)
		case velocity == 0:
			err = r.listener.OnButtonOff(note, timestamp)
		default:
			err = r.listener.OnButtonOn(note, timestamp)
		}
	default:
		err = &launchpad.ProtocolError{Reason: "unexpected status"}
	}

	if err != nil {
		return r.fail(msg, err)
	}
	return nil
}

func (r *Receiver) fail(msg []byte, err error) error {
	var pe *launchpad.ProtocolError
	if errors.As(err, &pe) && pe.Message == nil {
		pe.Message = append([]byte(nil), msg...)
	}
	return &launchpad.Error{Op: "receive", Err: err}
}
