// Package launchpad is the grid-oriented API of a Launchpad S class controller:
// 64 bi-colour pads, 8 top buttons and 8 right buttons, two frame buffers and
// scrolling text. Back-ends (the MIDI device, the web emulator) implement the
// Device, Client and Listener capabilities declared here.
package launchpad

// Client sends commands to a device.
// Arguments are validated first; an *ArgumentError means nothing was sent.
// Any other failure is returned as an *Error.
type Client interface {
	// Reset switches all lights off and restores the defaults
	Reset() error

	// TestLights lights every pad and button at the given intensity
	TestLights(intensity LightIntensity) error

	// SetLights updates lights in bulk. The number of colors must be even.
	// Colors are laid out row-major from the top-left pad, then the top buttons
	// from left to right, then the right buttons from top to bottom.
	SetLights(colors []Color, op BackBufferOperation) error

	// SetPadLight lights a single pad
	SetPadLight(pad Pad, color Color, op BackBufferOperation) error

	// SetButtonLight lights a single button
	SetButtonLight(button Button, color Color, op BackBufferOperation) error

	// SetBrightness sets the global brightness
	SetBrightness(brightness Brightness) error

	// SetBuffers chooses the displayed and the written buffer.
	// copyVisibleToWrite copies the visible buffer onto the write buffer after the swap,
	// autoSwap alternates the visible buffer continuously until switched off again.
	SetBuffers(visible, write Buffer, copyVisibleToWrite, autoSwap bool) error

	// ScrollText scrolls text across the grid. In loop mode the device repeats the text
	// and reports the end of every cycle to the listener; scrolling an empty text with
	// loop set to false stops a running loop.
	ScrollText(text string, color Color, speed ScrollSpeed, loop bool, op BackBufferOperation) error
}

// Listener receives the input events of a device.
// Timestamps are milliseconds since the Unix epoch.
// Callbacks run on a goroutine owned by the back-end and must return quickly.
type Listener interface {
	OnPadPressed(pad Pad, timestamp int64)
	OnPadReleased(pad Pad, timestamp int64)
	OnButtonPressed(button Button, timestamp int64)
	OnButtonReleased(button Button, timestamp int64)
	OnTextScrolled(timestamp int64)
}

// Device is a connected controller
type Device interface {
	// Client returns a client sending commands to the device
	Client() (Client, error)

	// SetListener replaces the listener receiving input events.
	// A nil listener discards events.
	SetListener(l Listener) error

	// Close releases the device. Closing twice is a no-op.
	Close() error
}

// ListenerFuncs is a Listener built from optional callbacks; nil callbacks ignore the event.
type ListenerFuncs struct {
	PadPressed     func(pad Pad, timestamp int64)
	PadReleased    func(pad Pad, timestamp int64)
	ButtonPressed  func(button Button, timestamp int64)
	ButtonReleased func(button Button, timestamp int64)
	TextScrolled   func(timestamp int64)
}

var _ Listener = ListenerFuncs{}

func (l ListenerFuncs) OnPadPressed(pad Pad, timestamp int64) {
	if l.PadPressed != nil {
		l.PadPressed(pad, timestamp)
	}
}

func (l ListenerFuncs) OnPadReleased(pad Pad, timestamp int64) {
	if l.PadReleased != nil {
		l.PadReleased(pad, timestamp)
	}
}

func (l ListenerFuncs) OnButtonPressed(button Button, timestamp int64) {
	if l.ButtonPressed != nil {
		l.ButtonPressed(button, timestamp)
	}
}

func (l ListenerFuncs) OnButtonReleased(button Button, timestamp int64) {
	if l.ButtonReleased != nil {
		l.ButtonReleased(button, timestamp)
	}
}

func (l ListenerFuncs) OnTextScrolled(timestamp int64) {
	if l.TextScrolled != nil {
		l.TextScrolled(timestamp)
	}
}
