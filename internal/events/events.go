// Package events is the JSON vocabulary spoken with the web emulator and over MQTT.
//
// Commands flow towards a device and mirror the launchpad.Client operations,
// inputs flow from a device and mirror the launchpad.Listener callbacks.
// Every message carries its type in the "evt" field.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/PixPMusic/gopher-launchpad/launchpad"
)

// command types
const (
	EvtReset       = "RST"
	EvtPadLight    = "PADLGT"
	EvtButtonLight = "BTNLGT"
	EvtTestLights  = "TST"
	EvtBrightness  = "BRGHT"
	EvtBuffers     = "BUF"
	EvtLights      = "LGTS"
	EvtText        = "TXT"
)

// input types
const (
	EvtPadPressed     = "PP"
	EvtPadReleased    = "PR"
	EvtButtonPressed  = "BP"
	EvtButtonReleased = "BR"
	EvtTextScrolled   = "TS"
)

// Header is the part common to all messages
type Header struct {
	Evt string `json:"evt"`
}

// Color is a launchpad.Color on the wire
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
}

func colorOf(c launchpad.Color) Color {
	return Color{R: c.Red(), G: c.Green()}
}

func (c Color) color() (launchpad.Color, error) {
	return launchpad.ColorOf(c.R, c.G)
}

type Reset struct {
	Header
}

type PadLight struct {
	Header
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Color     Color  `json:"c"`
	Operation string `json:"o"`
}

// ButtonLight addresses a top button when Top is set, a right button otherwise
type ButtonLight struct {
	Header
	Top       bool   `json:"t"`
	Index     int    `json:"i"`
	Color     Color  `json:"c"`
	Operation string `json:"o"`
}

// TestLights carries the brightness of the test, 5, 10 or 15
type TestLights struct {
	Header
	Intensity int `json:"i"`
}

type Brightness struct {
	Header
	Level int `json:"b"`
}

type Buffers struct {
	Header
	Visible  string `json:"v"`
	Write    string `json:"w"`
	Copy     bool   `json:"c"`
	AutoSwap bool   `json:"a"`
}

// Lights is a bulk update, see launchpad.Client.SetLights
type Lights struct {
	Header
	Colors    []Color `json:"c"`
	Operation string  `json:"o"`
}

type Text struct {
	Header
	Text      string `json:"t"`
	Color     Color  `json:"c"`
	Speed     int    `json:"s"`
	Loop      bool   `json:"l"`
	Operation string `json:"o"`
}

// Input is a pad or button event. Buttons use x=-1 for the right column
// and y=-1 for the top row. Text scrolled events carry no coordinates.
type Input struct {
	Header
	X         *int  `json:"x,omitempty"`
	Y         *int  `json:"y,omitempty"`
	Timestamp int64 `json:"ts,omitempty"`
}

var testIntensities = map[launchpad.LightIntensity]int{
	launchpad.Low:    5,
	launchpad.Medium: 10,
	launchpad.High:   15,
}

// Kind returns the "evt" field of a message
func Kind(data []byte) (string, error) {
	var h Header
	if err := json.Unmarshal(data, &h); err != nil {
		return "", fmt.Errorf("decoding event: %w", err)
	}
	if h.Evt == "" {
		return "", fmt.Errorf("decoding event: missing evt field")
	}
	return h.Evt, nil
}

func intp(i int) *int {
	return &i
}
