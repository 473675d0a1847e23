package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

const (
	// channel of the rapid LED update frames
	rapidUpdateChannel = 3

	ctrlReset         = 0
	ctrlBrightnessLow = 30
	ctrlBrightnessHi  = 31

	textLoopFlag = 64
)

// novation manufacturer id followed by the text command
var textHeader = []byte{0x00, 0x20, 0x29, 0x09}

// ProtocolClient encodes the low-level commands of the device into MIDI messages.
// Every call emits its frames synchronously through send, in call order.
type ProtocolClient struct {
	send func(midi.Message) error
}

// NewProtocolClient returns a ProtocolClient writing to send, usually obtained from midi.SendTo
func NewProtocolClient(send func(midi.Message) error) *ProtocolClient {
	return &ProtocolClient{send: send}
}

// Reset switches off all the lights and restores the default settings
func (p *ProtocolClient) Reset() error {
	return p.send(midi.ControlChange(0, ctrlReset, 0))
}

// LightsOn lights everything at the given raw intensity (125, 126 or 127)
func (p *ProtocolClient) LightsOn(intensity uint8) error {
	if err := check7bit("intensity", intensity); err != nil {
		return err
	}
	return p.send(midi.ControlChange(0, ctrlReset, intensity))
}

// NoteOn lights the pad or right button at note with a raw color
func (p *ProtocolClient) NoteOn(note, color uint8) error {
	if err := check7bit("note", note, color); err != nil {
		return err
	}
	return p.send(midi.NoteOn(0, note, color))
}

// NoteOff switches off the pad or right button at note
func (p *ProtocolClient) NoteOff(note uint8) error {
	if err := check7bit("note", note); err != nil {
		return err
	}
	return p.send(midi.NoteOff(0, note))
}

// NotesOn sends raw colors two by two using the rapid update channel.
// The device fills the grid, then the top buttons, then the right buttons.
func (p *ProtocolClient) NotesOn(colors ...uint8) error {
	if len(colors)%2 != 0 {
		return fmt.Errorf("notes on: odd number of colors (%d)", len(colors))
	}
	if err := check7bit("color", colors...); err != nil {
		return err
	}
	for i := 0; i+1 < len(colors); i += 2 {
		if err := p.send(midi.NoteOn(rapidUpdateChannel, colors[i], colors[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// ButtonOn lights the control change addressed button with a raw color
func (p *ProtocolClient) ButtonOn(button, color uint8) error {
	if err := check7bit("button", button, color); err != nil {
		return err
	}
	return p.send(midi.ControlChange(0, button, color))
}

// Brightness sets the duty cycle of the LEDs to numerator/denominator.
// Numerators 1-8 and 9-16 use different controllers; denominators start at 3.
func (p *ProtocolClient) Brightness(numerator, denominator int) error {
	ctrl, base := ctrlBrightnessLow, 1
	if numerator >= 9 {
		ctrl, base = ctrlBrightnessHi, 9
	}
	data := 16*(numerator-base) + (denominator - 3)
	if data < 0 || data > 127 {
		return fmt.Errorf("brightness %d/%d: out of range", numerator, denominator)
	}
	return p.send(midi.ControlChange(0, uint8(ctrl), uint8(data)))
}

// DoubleBufferMode selects the displayed and the written buffer
func (p *ProtocolClient) DoubleBufferMode(visible, write uint8, copyVisible, autoSwap bool) error {
	if visible > 1 || write > 1 {
		return fmt.Errorf("double buffer mode: invalid buffers %d/%d", visible, write)
	}
	mode := 32 + 4*write + visible
	if copyVisible {
		mode |= 16
	}
	if autoSwap {
		mode |= 8
	}
	return p.send(midi.ControlChange(0, ctrlReset, mode))
}

// Text scrolls text with a raw color at speed 1-7.
// Runes outside of ASCII are sent as '?'.
func (p *ProtocolClient) Text(text string, color, speed uint8, loop bool) error {
	if loop {
		color |= textLoopFlag
	}
	if err := check7bit("text", color, speed); err != nil {
		return err
	}
	data := make([]byte, 0, len(textHeader)+2+len(text))
	data = append(data, textHeader...)
	data = append(data, color, speed)
	data = appendASCII(data, text)
	return p.send(midi.SysEx(data))
}

func appendASCII(dst []byte, s string) []byte {
	for _, r := range s {
		if r > 0x7F {
			r = '?'
		}
		dst = append(dst, byte(r))
	}
	return dst
}

func check7bit(what string, values ...uint8) error {
	for _, v := range values {
		if v > 0x7F {
			return fmt.Errorf("%s: data byte 0x%02X exceeds 7 bits", what, v)
		}
	}
	return nil
}
