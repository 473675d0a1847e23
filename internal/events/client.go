package events

import (
	"github.com/PixPMusic/gopher-launchpad/launchpad"
)

// Publisher sends an event to the other side, typically after JSON encoding it
type Publisher interface {
	Publish(v interface{}) error
}

// PublisherFunc adapts a function to Publisher
type PublisherFunc func(v interface{}) error

func (f PublisherFunc) Publish(v interface{}) error {
	return f(v)
}

// Client implements launchpad.Client by publishing commands.
// SetLights and ScrollText only validate their arguments: the emulator has no
// bulk update nor text rendering.
type Client struct {
	pub Publisher
}

var _ launchpad.Client = (*Client)(nil)

func NewClient(pub Publisher) *Client {
	return &Client{pub: pub}
}

func (c *Client) publish(op string, v interface{}) error {
	if err := c.pub.Publish(v); err != nil {
		return &launchpad.Error{Op: op, Err: err}
	}
	return nil
}

func (c *Client) Reset() error {
	return c.publish("reset", Reset{Header{EvtReset}})
}

func (c *Client) TestLights(intensity launchpad.LightIntensity) error {
	i, ok := testIntensities[intensity]
	if !ok {
		return &launchpad.ArgumentError{Arg: "intensity", Value: intensity, Reason: "unknown light intensity"}
	}
	return c.publish("test lights", TestLights{Header{EvtTestLights}, i})
}

func (c *Client) SetLights(colors []launchpad.Color, op launchpad.BackBufferOperation) error {
	if len(colors)%2 != 0 {
		return &launchpad.ArgumentError{Arg: "colors", Value: len(colors), Reason: "the number of colors must be even"}
	}
	return checkOperation(op)
}

func (c *Client) SetPadLight(pad launchpad.Pad, color launchpad.Color, op launchpad.BackBufferOperation) error {
	if err := checkOperation(op); err != nil {
		return err
	}
	return c.publish("set pad light", PadLight{
		Header:    Header{EvtPadLight},
		X:         pad.X(),
		Y:         pad.Y(),
		Color:     colorOf(color),
		Operation: op.String(),
	})
}

func (c *Client) SetButtonLight(button launchpad.Button, color launchpad.Color, op launchpad.BackBufferOperation) error {
	if err := checkOperation(op); err != nil {
		return err
	}
	return c.publish("set button light", ButtonLight{
		Header:    Header{EvtButtonLight},
		Top:       button.IsTop(),
		Index:     button.Coordinate(),
		Color:     colorOf(color),
		Operation: op.String(),
	})
}

func (c *Client) SetBrightness(brightness launchpad.Brightness) error {
	return c.publish("set brightness", Brightness{Header{EvtBrightness}, brightness.Level()})
}

func (c *Client) SetBuffers(visible, write launchpad.Buffer, copyVisibleToWrite, autoSwap bool) error {
	if !visible.Valid() {
		return &launchpad.ArgumentError{Arg: "visible buffer", Value: visible, Reason: "unknown buffer"}
	}
	if !write.Valid() {
		return &launchpad.ArgumentError{Arg: "write buffer", Value: write, Reason: "unknown buffer"}
	}
	return c.publish("set buffers", Buffers{
		Header:   Header{EvtBuffers},
		Visible:  visible.String(),
		Write:    write.String(),
		Copy:     copyVisibleToWrite,
		AutoSwap: autoSwap,
	})
}

func (c *Client) ScrollText(text string, color launchpad.Color, speed launchpad.ScrollSpeed, loop bool, op launchpad.BackBufferOperation) error {
	if !speed.Valid() {
		return &launchpad.ArgumentError{Arg: "speed", Reason: "scroll speed must be set"}
	}
	return checkOperation(op)
}

func checkOperation(op launchpad.BackBufferOperation) error {
	if !op.Valid() {
		return &launchpad.ArgumentError{Arg: "operation", Value: op, Reason: "unknown back buffer operation"}
	}
	return nil
}
