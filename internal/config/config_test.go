package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, DefaultEmulatorAddr, cfg.Emulator.Addr)
	assert.Equal(t, DefaultBroker, cfg.MQTT.Broker)
	assert.Equal(t, DefaultPrefix, cfg.MQTT.Prefix)

	require.Len(t, cfg.Devices, 1)
	assert.Equal(t, DefaultDeviceName, cfg.Devices[0].Signature)
	_, err = uuid.Parse(cfg.Devices[0].ID)
	assert.NoError(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[logger]
level = "debug"

[mqtt]
broker = "tcp://broker:1883"
qos = 1

[[devices]]
name = "left"
in_port = "Launchpad S 1"
out_port = "Launchpad S 1"

[[devices]]
id = "b0a3c8d4-05b6-4a4f-9a51-8a84d4b8f5a1"
name = "right"
signature = "Launchpad S 2"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, DefaultEmulatorAddr, cfg.Emulator.Addr)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTT.Broker)
	assert.Equal(t, DefaultPrefix, cfg.MQTT.Prefix)
	assert.Equal(t, byte(1), cfg.MQTT.QoS)

	require.Len(t, cfg.Devices, 2)
	assert.NotEmpty(t, cfg.Devices[0].ID)
	assert.Equal(t, DefaultDeviceName, cfg.Devices[0].Signature)
	assert.Equal(t, "Launchpad S 1", cfg.Devices[0].InPort)

	d, ok := cfg.Device("right")
	require.True(t, ok)
	assert.Equal(t, "Launchpad S 2", d.Signature)

	d, ok = cfg.Device("b0a3c8d4-05b6-4a4f-9a51-8a84d4b8f5a1")
	require.True(t, ok)
	assert.Equal(t, "right", d.Name)

	d, ok = cfg.Device("")
	require.True(t, ok)
	assert.Equal(t, "left", d.Name)

	_, ok = cfg.Device("missing")
	assert.False(t, ok)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logger\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := Load(path)
	require.NoError(t, err)

	d := cfg.Devices[0]
	d.InPort = "Launchpad S:in"
	d.OutPort = "Launchpad S:out"
	cfg.PutDevice(d)
	cfg.PutDevice(NewDeviceConfig("spare"))
	cfg.MQTT.User = "grid"
	require.NoError(t, cfg.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Devices, reloaded.Devices)
	assert.Equal(t, cfg.MQTT, reloaded.MQTT)
	assert.Equal(t, cfg.Emulator, reloaded.Emulator)
}
