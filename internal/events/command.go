package events

import (
	"encoding/json"
	"fmt"

	"github.com/PixPMusic/gopher-launchpad/launchpad"
)

// Command is a decoded command that can be replayed on a client
type Command interface {
	Apply(c launchpad.Client) error
}

// DecodeCommand parses a command message
func DecodeCommand(data []byte) (Command, error) {
	evt, err := Kind(data)
	if err != nil {
		return nil, err
	}

	var cmd Command
	switch evt {
	case EvtReset:
		cmd = &Reset{}
	case EvtPadLight:
		cmd = &PadLight{}
	case EvtButtonLight:
		cmd = &ButtonLight{}
	case EvtTestLights:
		cmd = &TestLights{}
	case EvtBrightness:
		cmd = &Brightness{}
	case EvtBuffers:
		cmd = &Buffers{}
	case EvtLights:
		cmd = &Lights{}
	case EvtText:
		cmd = &Text{}
	default:
		return nil, fmt.Errorf("decoding command: unknown type %q", evt)
	}

	if err := json.Unmarshal(data, cmd); err != nil {
		return nil, fmt.Errorf("decoding %s command: %w", evt, err)
	}
	return cmd, nil
}

func (*Reset) Apply(c launchpad.Client) error {
	return c.Reset()
}

func (p *PadLight) Apply(c launchpad.Client) error {
	pad, err := launchpad.PadAt(p.X, p.Y)
	if err != nil {
		return err
	}
	color, err := p.Color.color()
	if err != nil {
		return err
	}
	op, err := launchpad.ParseBackBufferOperation(p.Operation)
	if err != nil {
		return err
	}
	return c.SetPadLight(pad, color, op)
}

func (b *ButtonLight) Apply(c launchpad.Client) error {
	var button launchpad.Button
	var err error
	if b.Top {
		button, err = launchpad.ButtonAtTop(b.Index)
	} else {
		button, err = launchpad.ButtonAtRight(b.Index)
	}
	if err != nil {
		return err
	}
	color, err := b.Color.color()
	if err != nil {
		return err
	}
	op, err := launchpad.ParseBackBufferOperation(b.Operation)
	if err != nil {
		return err
	}
	return c.SetButtonLight(button, color, op)
}

func (t *TestLights) Apply(c launchpad.Client) error {
	for intensity, v := range testIntensities {
		if v == t.Intensity {
			return c.TestLights(intensity)
		}
	}
	return &launchpad.ArgumentError{Arg: "intensity", Value: t.Intensity, Reason: "must be 5, 10 or 15"}
}

func (b *Brightness) Apply(c launchpad.Client) error {
	brightness, err := launchpad.BrightnessOf(b.Level)
	if err != nil {
		return err
	}
	return c.SetBrightness(brightness)
}

func (b *Buffers) Apply(c launchpad.Client) error {
	visible, err := launchpad.ParseBuffer(b.Visible)
	if err != nil {
		return err
	}
	write, err := launchpad.ParseBuffer(b.Write)
	if err != nil {
		return err
	}
	return c.SetBuffers(visible, write, b.Copy, b.AutoSwap)
}

func (l *Lights) Apply(c launchpad.Client) error {
	colors := make([]launchpad.Color, len(l.Colors))
	for i, wc := range l.Colors {
		color, err := wc.color()
		if err != nil {
			return err
		}
		colors[i] = color
	}
	op, err := launchpad.ParseBackBufferOperation(l.Operation)
	if err != nil {
		return err
	}
	return c.SetLights(colors, op)
}

func (t *Text) Apply(c launchpad.Client) error {
	color, err := t.Color.color()
	if err != nil {
		return err
	}
	speed, err := launchpad.ScrollSpeedOf(t.Speed)
	if err != nil {
		return err
	}
	op, err := launchpad.ParseBackBufferOperation(t.Operation)
	if err != nil {
		return err
	}
	return c.ScrollText(t.Text, color, speed, t.Loop, op)
}
