package midi

import (
	"strings"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Ports enumerates the MIDI ports of a driver
type Ports interface {
	InPorts() []drivers.In
	OutPorts() []drivers.Out
}

// DriverPorts lists the ports of the registered gomidi driver
type DriverPorts struct{}

func (DriverPorts) InPorts() []drivers.In {
	return midi.GetInPorts()
}

func (DriverPorts) OutPorts() []drivers.Out {
	return midi.GetOutPorts()
}

// Manager handles MIDI port discovery
type Manager struct {
	mu    sync.RWMutex
	ports Ports
}

// NewManager creates a manager over ports, or over the registered driver when ports is nil
func NewManager(ports Ports) *Manager {
	if ports == nil {
		ports = DriverPorts{}
	}
	return &Manager{ports: ports}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	midi.CloseDriver()
}

// ListInPorts returns the names of available MIDI input ports
func (m *Manager) ListInPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ins := m.ports.InPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	outs := m.ports.OutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

// InPort returns the input port with the exact name, or nil
func (m *Manager) InPort(name string) drivers.In {
	return m.FindInPort(func(s string) bool { return s == name })
}

// OutPort returns the output port with the exact name, or nil
func (m *Manager) OutPort(name string) drivers.Out {
	return m.FindOutPort(func(s string) bool { return s == name })
}

// FindInPort returns the first input port whose name matches, or nil
func (m *Manager) FindInPort(match func(name string) bool) drivers.In {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, in := range m.ports.InPorts() {
		if match(in.String()) {
			return in
		}
	}
	return nil
}

// FindOutPort returns the first output port whose name matches, or nil
func (m *Manager) FindOutPort(match func(name string) bool) drivers.Out {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, out := range m.ports.OutPorts() {
		if match(out.String()) {
			return out
		}
	}
	return nil
}

// Contains matches port names containing signature
func Contains(signature string) func(string) bool {
	return func(name string) bool {
		return strings.Contains(name, signature)
	}
}
