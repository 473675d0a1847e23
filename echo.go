package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/PixPMusic/gopher-launchpad/launchpad"
)

const greeting = "Hello Launchpad"

// echo lights the pads and buttons while they are pressed.
// UP and DOWN change the brightness, MIXER scrolls a greeting.
type echo struct {
	client launchpad.Client
	log    logrus.FieldLogger

	mx         sync.Mutex
	brightness launchpad.Brightness
}

func newEcho(client launchpad.Client, log logrus.FieldLogger) *echo {
	return &echo{client: client, log: log, brightness: launchpad.BrightnessMax}
}

func (e *echo) check(err error) {
	if err != nil {
		e.log.WithError(err).Warn("command failed")
	}
}

func (e *echo) OnPadPressed(pad launchpad.Pad, timestamp int64) {
	e.log.WithField("ts", timestamp).Infof("%s pressed", pad)
	e.check(e.client.SetPadLight(pad, launchpad.Amber, launchpad.None))
}

func (e *echo) OnPadReleased(pad launchpad.Pad, timestamp int64) {
	e.log.WithField("ts", timestamp).Infof("%s released", pad)
	e.check(e.client.SetPadLight(pad, launchpad.Black, launchpad.None))
}

func (e *echo) OnButtonPressed(button launchpad.Button, timestamp int64) {
	e.log.WithField("ts", timestamp).Infof("%s pressed", button)
	e.check(e.client.SetButtonLight(button, launchpad.Green, launchpad.None))

	switch button {
	case launchpad.Up, launchpad.Down:
		e.mx.Lock()
		if button == launchpad.Up {
			e.brightness = e.brightness.More()
		} else {
			e.brightness = e.brightness.Less()
		}
		b := e.brightness
		e.mx.Unlock()
		e.check(e.client.SetBrightness(b))
	case launchpad.Mixer:
		e.check(e.client.ScrollText(greeting, launchpad.Orange, launchpad.SpeedMin, false, launchpad.None))
	}
}

func (e *echo) OnButtonReleased(button launchpad.Button, timestamp int64) {
	e.log.WithField("ts", timestamp).Infof("%s released", button)
	e.check(e.client.SetButtonLight(button, launchpad.Black, launchpad.None))
}

func (e *echo) OnTextScrolled(timestamp int64) {
	e.log.WithField("ts", timestamp).Info("text scrolled")
}
