package events

import (
	"encoding/json"
	"fmt"

	"github.com/PixPMusic/gopher-launchpad/launchpad"
)

// Listener implements launchpad.Listener by publishing inputs.
// Publishing errors are passed to the error handler, if any.
type Listener struct {
	pub     Publisher
	onError func(error)
}

var _ launchpad.Listener = (*Listener)(nil)

func NewListener(pub Publisher, onError func(error)) *Listener {
	return &Listener{pub: pub, onError: onError}
}

func (l *Listener) publish(in Input) {
	if err := l.pub.Publish(in); err != nil && l.onError != nil {
		l.onError(err)
	}
}

func (l *Listener) OnPadPressed(pad launchpad.Pad, timestamp int64) {
	l.publish(PadInput(EvtPadPressed, pad, timestamp))
}

func (l *Listener) OnPadReleased(pad launchpad.Pad, timestamp int64) {
	l.publish(PadInput(EvtPadReleased, pad, timestamp))
}

func (l *Listener) OnButtonPressed(button launchpad.Button, timestamp int64) {
	l.publish(ButtonInput(EvtButtonPressed, button, timestamp))
}

func (l *Listener) OnButtonReleased(button launchpad.Button, timestamp int64) {
	l.publish(ButtonInput(EvtButtonReleased, button, timestamp))
}

func (l *Listener) OnTextScrolled(timestamp int64) {
	l.publish(Input{Header: Header{EvtTextScrolled}, Timestamp: timestamp})
}

// PadInput returns a PP or PR input
func PadInput(evt string, pad launchpad.Pad, timestamp int64) Input {
	return Input{Header: Header{evt}, X: intp(pad.X()), Y: intp(pad.Y()), Timestamp: timestamp}
}

// ButtonInput returns a BP or BR input
func ButtonInput(evt string, button launchpad.Button, timestamp int64) Input {
	in := Input{Header: Header{evt}, Timestamp: timestamp}
	if button.IsTop() {
		in.X, in.Y = intp(button.Coordinate()), intp(-1)
	} else {
		in.X, in.Y = intp(-1), intp(button.Coordinate())
	}
	return in
}

// DecodeInput parses an input message
func DecodeInput(data []byte) (Input, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("decoding input: %w", err)
	}
	return in, nil
}

// Dispatch calls the matching callback of l. The timestamp of the input is
// used when set, timestamp otherwise.
func (in Input) Dispatch(l launchpad.Listener, timestamp int64) error {
	if in.Timestamp != 0 {
		timestamp = in.Timestamp
	}

	switch in.Evt {
	case EvtPadPressed, EvtPadReleased:
		pad, err := in.pad()
		if err != nil {
			return err
		}
		if in.Evt == EvtPadPressed {
			l.OnPadPressed(pad, timestamp)
		} else {
			l.OnPadReleased(pad, timestamp)
		}
	case EvtButtonPressed, EvtButtonReleased:
		button, err := in.button()
		if err != nil {
			return err
		}
		if in.Evt == EvtButtonPressed {
			l.OnButtonPressed(button, timestamp)
		} else {
			l.OnButtonReleased(button, timestamp)
		}
	case EvtTextScrolled:
		l.OnTextScrolled(timestamp)
	default:
		return fmt.Errorf("unknown input type %q", in.Evt)
	}
	return nil
}

func (in Input) coordinates() (x, y int, err error) {
	if in.X == nil || in.Y == nil {
		return 0, 0, fmt.Errorf("%s input: missing coordinates", in.Evt)
	}
	return *in.X, *in.Y, nil
}

func (in Input) pad() (launchpad.Pad, error) {
	x, y, err := in.coordinates()
	if err != nil {
		return launchpad.Pad{}, err
	}
	return launchpad.PadAt(x, y)
}

func (in Input) button() (launchpad.Button, error) {
	x, y, err := in.coordinates()
	if err != nil {
		return launchpad.Button{}, err
	}
	switch {
	case x == -1:
		return launchpad.ButtonAtRight(y)
	case y == -1:
		return launchpad.ButtonAtTop(x)
	}
	return launchpad.Button{}, &launchpad.ArgumentError{
		Arg:    "button",
		Value:  fmt.Sprintf("(%d,%d)", x, y),
		Reason: "either x or y must be -1",
	}
}
