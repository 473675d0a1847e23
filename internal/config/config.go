package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

const (
	DefaultDeviceName   = "Launchpad S"
	DefaultEmulatorAddr = "localhost:9000"
	DefaultBroker       = "tcp://localhost:1883"
	DefaultPrefix       = "launchpad"
)

// LoggerConfig configures the logger
type LoggerConfig struct {
	Level string `toml:"level"` // panic, fatal, error, warn, info, debug or trace
}

// DeviceConfig holds the ports of a controller. Empty port names select the
// ports whose names contain the signature.
type DeviceConfig struct {
	ID        string `toml:"id"`
	Name      string `toml:"name"`
	Signature string `toml:"signature"`
	InPort    string `toml:"in_port,omitempty"`
	OutPort   string `toml:"out_port,omitempty"`
}

// NewDeviceConfig creates a new device config with a generated ID
func NewDeviceConfig(name string) DeviceConfig {
	return DeviceConfig{
		ID:        uuid.New().String(),
		Name:      name,
		Signature: DefaultDeviceName,
	}
}

// EmulatorConfig configures the web emulator
type EmulatorConfig struct {
	Addr string `toml:"addr"`
}

// MQTTConfig configures the MQTT bridge
type MQTTConfig struct {
	Broker   string `toml:"broker"`
	ClientID string `toml:"client_id,omitempty"`
	User     string `toml:"user,omitempty"`
	Password string `toml:"password,omitempty"`
	Prefix   string `toml:"prefix"`
	QoS      byte   `toml:"qos"`
}

// Config holds application configuration
type Config struct {
	Logger   LoggerConfig   `toml:"logger"`
	Emulator EmulatorConfig `toml:"emulator"`
	MQTT     MQTTConfig     `toml:"mqtt"`
	Devices  []DeviceConfig `toml:"devices"`

	path string
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Logger:   LoggerConfig{Level: "info"},
		Emulator: EmulatorConfig{Addr: DefaultEmulatorAddr},
		MQTT:     MQTTConfig{Broker: DefaultBroker, Prefix: DefaultPrefix},
		Devices:  []DeviceConfig{NewDeviceConfig(DefaultDeviceName)},
	}
}

// DefaultPath returns the platform-appropriate config file path
func DefaultPath() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "gopher-launchpad", "config.toml"), nil
}

// Load reads the config at path, DefaultPath when empty.
// Defaults are returned if the file does not exist.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// decoded sections replace the defaults, missing ones keep them
	cfg.Devices = nil
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}
	if len(cfg.Devices) == 0 {
		cfg.Devices = []DeviceConfig{NewDeviceConfig(DefaultDeviceName)}
	}
	for i := range cfg.Devices {
		if cfg.Devices[i].ID == "" {
			cfg.Devices[i].ID = uuid.New().String()
		}
		if cfg.Devices[i].Signature == "" {
			cfg.Devices[i].Signature = DefaultDeviceName
		}
	}
	return cfg, nil
}

// Path returns the file the config is loaded from and saved to
func (c *Config) Path() string {
	return c.path
}

// Save writes the config to disk
func (c *Config) Save() error {
	if c.path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = p
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return os.WriteFile(c.path, buf.Bytes(), 0644)
}

// Device returns the device with the given name or ID, the first device
// when key is empty
func (c *Config) Device(key string) (DeviceConfig, bool) {
	if key == "" && len(c.Devices) > 0 {
		return c.Devices[0], true
	}
	for _, d := range c.Devices {
		if d.ID == key || d.Name == key {
			return d, true
		}
	}
	return DeviceConfig{}, false
}

// PutDevice adds a device or replaces the one with the same ID
func (c *Config) PutDevice(device DeviceConfig) {
	for i, d := range c.Devices {
		if d.ID == device.ID {
			c.Devices[i] = device
			return
		}
	}
	c.Devices = append(c.Devices, device)
}
