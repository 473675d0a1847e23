package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/metakeule/config"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/PixPMusic/gopher-launchpad/emulator"
	appconfig "github.com/PixPMusic/gopher-launchpad/internal/config"
	"github.com/PixPMusic/gopher-launchpad/internal/logger"
	"github.com/PixPMusic/gopher-launchpad/internal/midi"
	"github.com/PixPMusic/gopher-launchpad/internal/mqttbridge"
	"github.com/PixPMusic/gopher-launchpad/launchpad"
	"github.com/PixPMusic/gopher-launchpad/mididevice"
)

var (
	cli = config.MustNew("launchpad", "0.1.0", "drive a Launchpad S grid controller")

	argFile   = cli.NewString("file", "path of the configuration file")
	argDevice = cli.NewString("device", "name or id of the configured device, the first one by default")
	argLevel  = cli.NewString("level", "log level, overrides the configuration")

	portsCommand = cli.MustCommand("ports", "list the MIDI ports")
	argSave      = portsCommand.NewBool("save", "store the ports of the detected device in the configuration")

	monitorCommand = cli.MustCommand("monitor", "log the events of the device and light the pressed pads")

	emulatorCommand = cli.MustCommand("emulator", "run the web emulator")
	argAddr         = emulatorCommand.NewString("addr", "listening address, overrides the configuration")

	bridgeCommand = cli.MustCommand("bridge", "connect the device to an MQTT broker")
	argBroker     = bridgeCommand.NewString("broker", "broker URL, overrides the configuration")
	argEmulated   = bridgeCommand.NewBool("emulated", "bridge the web emulator instead of the device")
)

func run() error {
	if err := cli.Run(); err != nil {
		return err
	}

	cfg, err := appconfig.Load(argFile.Get())
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if argLevel.IsSet() {
		cfg.Logger.Level = argLevel.Get()
	}
	log, err := logger.New(cfg.Logger, os.Stderr)
	if err != nil {
		return err
	}

	ports := midi.NewManager(nil)
	defer ports.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cli.ActiveCommand() {
	case monitorCommand:
		dev, err := openDevice(cfg, log)
		if err != nil {
			return err
		}
		return serve(ctx, dev, log)

	case emulatorCommand:
		dev, err := startEmulator(cfg, log)
		if err != nil {
			return err
		}
		return serve(ctx, dev, log)

	case bridgeCommand:
		var dev launchpad.Device
		if argEmulated.Get() {
			dev, err = startEmulator(cfg, log)
		} else {
			dev, err = openDevice(cfg, log)
		}
		if err != nil {
			return err
		}
		defer dev.Close()
		return runBridge(ctx, cfg, dev, log)

	default:
		return listPorts(cfg, ports, log)
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func listPorts(cfg *appconfig.Config, ports *midi.Manager, log *logger.Log) error {
	fmt.Println("inputs:")
	for _, name := range ports.ListInPorts() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("outputs:")
	for _, name := range ports.ListOutPorts() {
		fmt.Printf("  %s\n", name)
	}
	if !argSave.Get() {
		return nil
	}

	d, ok := cfg.Device(argDevice.Get())
	if !ok {
		return fmt.Errorf("device %q is not configured", argDevice.Get())
	}
	pc, err := mididevice.Lookup(midi.DriverPorts{}, d.Signature, "", "")
	if err != nil {
		return err
	}
	d.InPort, d.OutPort = pc.In.String(), pc.Out.String()
	cfg.PutDevice(d)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	log.Module("config").With(logger.Fields{"device": d.Name, "path": cfg.Path()}).Info("ports saved")
	return nil
}

func openDevice(cfg *appconfig.Config, log *logger.Log) (*mididevice.Launchpad, error) {
	d, ok := cfg.Device(argDevice.Get())
	if !ok {
		return nil, fmt.Errorf("device %q is not configured", argDevice.Get())
	}
	pc, err := mididevice.Lookup(midi.DriverPorts{}, d.Signature, d.InPort, d.OutPort)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}
	lp, err := mididevice.Open(pc, mididevice.WithLogger(log.Entry))
	if err != nil {
		return nil, err
	}
	log.With(logger.Fields{"device": d.Name, "in": pc.In.String(), "out": pc.Out.String()}).Info("device opened")
	return lp, nil
}

func startEmulator(cfg *appconfig.Config, log *logger.Log) (*emulator.Emulator, error) {
	addr := cfg.Emulator.Addr
	if argAddr.IsSet() {
		addr = argAddr.Get()
	}
	e := emulator.New(addr, emulator.WithLogger(log.Entry))
	if err := e.Start(); err != nil {
		return nil, err
	}
	return e, nil
}

// serve echoes the events of dev on its lights until ctx is done
func serve(ctx context.Context, dev launchpad.Device, log *logger.Log) error {
	defer dev.Close()

	client, err := dev.Client()
	if err != nil {
		return err
	}
	if err := client.Reset(); err != nil {
		return err
	}
	if err := dev.SetListener(newEcho(client, log.Module("echo"))); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("interrupted, cleaning up")
	if err := client.Reset(); err != nil && !errors.Is(err, launchpad.ErrClosed) {
		log.WithError(err).Warn("reset failed")
	}
	return nil
}

func runBridge(ctx context.Context, cfg *appconfig.Config, dev launchpad.Device, log *logger.Log) error {
	mc := cfg.MQTT
	if argBroker.IsSet() {
		mc.Broker = argBroker.Get()
	}
	b := mqttbridge.New(dev, mqttbridge.Config{
		Broker:   mc.Broker,
		ClientID: mc.ClientID,
		User:     mc.User,
		Password: mc.Password,
		Prefix:   mc.Prefix,
		QoS:      mc.QoS,
	}, mqttbridge.WithLogger(log.Entry))

	if err := b.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return b.Stop()
}
