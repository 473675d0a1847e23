package mididevice

import (
	"errors"

	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/PixPMusic/gopher-launchpad/internal/midi"
)

// DeviceSignature is part of the port names of a Launchpad S
const DeviceSignature = "Launchpad S"

// ErrNotFound is returned when no Launchpad S ports are available
var ErrNotFound = errors.New("no Launchpad S found")

// PortLister enumerates MIDI ports
type PortLister interface {
	InPorts() []drivers.In
	OutPorts() []drivers.Out
}

// Autodetect looks for the ports of a Launchpad S with the registered driver
func Autodetect() (Configuration, error) {
	return AutodetectWith(midi.DriverPorts{})
}

// AutodetectWith looks for the input and output ports whose names contain DeviceSignature.
// Both must be found.
func AutodetectWith(ports PortLister) (Configuration, error) {
	return Lookup(ports, DeviceSignature, "", "")
}

// Lookup returns the ports named inName and outName. An empty name selects
// the first port whose name contains signature.
func Lookup(ports PortLister, signature, inName, outName string) (Configuration, error) {
	m := midi.NewManager(ports)

	var cfg Configuration
	if inName != "" {
		cfg.In = m.InPort(inName)
	} else {
		cfg.In = m.FindInPort(midi.Contains(signature))
	}
	if outName != "" {
		cfg.Out = m.OutPort(outName)
	} else {
		cfg.Out = m.FindOutPort(midi.Contains(signature))
	}
	if cfg.In == nil || cfg.Out == nil {
		return Configuration{}, ErrNotFound
	}
	return cfg, nil
}

// OpenAutodetected opens the session on the first Launchpad S found
func OpenAutodetected(options ...Option) (*Launchpad, error) {
	cfg, err := Autodetect()
	if err != nil {
		return nil, err
	}
	return Open(cfg, options...)
}
