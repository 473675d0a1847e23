package midi

import (
	"gitlab.com/gomidi/midi/v2"

	"github.com/PixPMusic/gopher-launchpad/launchpad"
)

// raw color flags per back buffer operation
var operationFlags = [...]uint8{
	launchpad.None:  0,
	launchpad.Clear: 8,
	launchpad.Copy:  12,
}

var intensityValues = [...]uint8{
	launchpad.Low:    125,
	launchpad.Medium: 126,
	launchpad.High:   127,
}

// Client implements launchpad.Client on top of a ProtocolClient
type Client struct {
	proto *ProtocolClient
}

var _ launchpad.Client = (*Client)(nil)

// NewClient returns a client writing its messages to send
func NewClient(send func(midi.Message) error) *Client {
	return &Client{proto: NewProtocolClient(send)}
}

func (c *Client) Reset() error {
	return wrap("reset", c.proto.Reset())
}

func (c *Client) TestLights(intensity launchpad.LightIntensity) error {
	if !intensity.Valid() {
		return &launchpad.ArgumentError{Arg: "intensity", Value: intensity, Reason: "unknown light intensity"}
	}
	return wrap("test lights", c.proto.LightsOn(intensityValues[intensity]))
}

func (c *Client) SetLights(colors []launchpad.Color, op launchpad.BackBufferOperation) error {
	if len(colors)%2 != 0 {
		return &launchpad.ArgumentError{Arg: "colors", Value: len(colors), Reason: "the number of colors must be even"}
	}
	if err := checkOperation(op); err != nil {
		return err
	}
	raw := make([]uint8, len(colors))
	for i, color := range colors {
		raw[i] = rawColor(color, op)
	}
	return wrap("set lights", c.proto.NotesOn(raw...))
}

func (c *Client) SetPadLight(pad launchpad.Pad, color launchpad.Color, op launchpad.BackBufferOperation) error {
	if err := checkOperation(op); err != nil {
		return err
	}
	return wrap("set pad light", c.proto.NoteOn(rawNote(pad.X(), pad.Y()), rawColor(color, op)))
}

// SetButtonLight addresses top buttons by controller and right buttons
// by note, as the column next to the grid.
func (c *Client) SetButtonLight(button launchpad.Button, color launchpad.Color, op launchpad.BackBufferOperation) error {
	if err := checkOperation(op); err != nil {
		return err
	}
	raw := rawColor(color, op)
	if button.IsTop() {
		return wrap("set button light", c.proto.ButtonOn(uint8(topButtonBase+button.Coordinate()), raw))
	}
	return wrap("set button light", c.proto.NoteOn(rawNote(rightColumn, button.Coordinate()), raw))
}

func (c *Client) SetBrightness(brightness launchpad.Brightness) error {
	return wrap("set brightness", c.proto.Brightness(1, 18-brightness.Level()))
}

func (c *Client) SetBuffers(visible, write launchpad.Buffer, copyVisibleToWrite, autoSwap bool) error {
	if !visible.Valid() {
		return &launchpad.ArgumentError{Arg: "visible buffer", Value: visible, Reason: "unknown buffer"}
	}
	if !write.Valid() {
		return &launchpad.ArgumentError{Arg: "write buffer", Value: write, Reason: "unknown buffer"}
	}
	return wrap("set buffers", c.proto.DoubleBufferMode(uint8(visible), uint8(write), copyVisibleToWrite, autoSwap))
}

func (c *Client) ScrollText(text string, color launchpad.Color, speed launchpad.ScrollSpeed, loop bool, op launchpad.BackBufferOperation) error {
	if !speed.Valid() {
		return &launchpad.ArgumentError{Arg: "speed", Reason: "scroll speed must be set"}
	}
	if err := checkOperation(op); err != nil {
		return err
	}
	return wrap("scroll text", c.proto.Text(text, rawColor(color, op), uint8(speed.Speed()), loop))
}

func checkOperation(op launchpad.BackBufferOperation) error {
	if !op.Valid() {
		return &launchpad.ArgumentError{Arg: "operation", Value: op, Reason: "unknown back buffer operation"}
	}
	return nil
}

func rawColor(c launchpad.Color, op launchpad.BackBufferOperation) uint8 {
	return operationFlags[op] + uint8(c.Red()) + 16*uint8(c.Green())
}

func rawNote(x, y int) uint8 {
	return uint8(x + noteRowStride*y)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &launchpad.Error{Op: op, Err: err}
}
