// Package mqttbridge connects a launchpad device to an MQTT broker.
//
// Input events of the device are published as JSON on <prefix>/events and
// JSON commands received on <prefix>/commands are applied to the device.
// Both use the vocabulary of the web emulator.
package mqttbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/PixPMusic/gopher-launchpad/internal/events"
	"github.com/PixPMusic/gopher-launchpad/launchpad"
)

const (
	EventsTopic   = "events"
	CommandsTopic = "commands"

	disconnectQuiesce = 250 // ms
	retryInterval     = 5 * time.Second
	keepAlive         = 30 * time.Second
)

var ErrNotStarted = errors.New("bridge not started")

// Config of the broker connection
type Config struct {
	Broker   string // e.g. tcp://localhost:1883
	ClientID string // generated when empty
	User     string
	Password string
	Prefix   string
	QoS      byte
}

type Bridge struct {
	cfg       Config
	dev       launchpad.Device
	log       logrus.FieldLogger
	newClient func(*mqtt.ClientOptions) mqtt.Client

	mx     sync.Mutex
	ctx    context.Context
	client mqtt.Client
}

type Option func(*Bridge)

func WithLogger(log logrus.FieldLogger) Option {
	return func(b *Bridge) {
		if log != nil {
			b.log = log
		}
	}
}

func New(dev launchpad.Device, cfg Config, options ...Option) *Bridge {
	if cfg.ClientID == "" {
		cfg.ClientID = "gopher-launchpad-" + uuid.NewString()
	}
	b := &Bridge{
		cfg:       cfg,
		dev:       dev,
		log:       logrus.StandardLogger(),
		newClient: mqtt.NewClient,
	}
	for _, opt := range options {
		opt(b)
	}
	b.log = b.log.WithField("module", "mqtt")
	return b
}

func (b *Bridge) topic(name string) string {
	if b.cfg.Prefix == "" {
		return name
	}
	return b.cfg.Prefix + "/" + name
}

// Start connects to the broker and starts forwarding events both ways.
// It returns when connected or when ctx is done.
func (b *Bridge) Start(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(b.cfg.Broker).
		SetClientID(b.cfg.ClientID).
		SetUsername(b.cfg.User).
		SetPassword(b.cfg.Password).
		SetOnConnectHandler(b.connectHandler).
		SetConnectionLostHandler(b.connectLostHandler).
		SetOrderMatters(true).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(retryInterval).
		SetMaxReconnectInterval(retryInterval).
		SetKeepAlive(keepAlive)

	client := b.newClient(opts)
	b.mx.Lock()
	b.ctx = ctx
	b.client = client
	b.mx.Unlock()

	token := client.Connect()
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("connecting to %s: %w", b.cfg.Broker, err)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	l := events.NewListener(events.PublisherFunc(b.publish), func(err error) {
		b.log.WithError(err).Warn("event not published")
	})
	if err := b.dev.SetListener(l); err != nil {
		client.Disconnect(disconnectQuiesce)
		return err
	}
	b.log.WithField("broker", b.cfg.Broker).Info("bridge started")
	return nil
}

// Stop detaches from the device and disconnects from the broker
func (b *Bridge) Stop() error {
	b.mx.Lock()
	client := b.client
	b.client = nil
	b.mx.Unlock()
	if client == nil {
		return nil
	}

	err := b.dev.SetListener(nil)
	if errors.Is(err, launchpad.ErrClosed) {
		err = nil
	}
	if client.IsConnected() {
		client.Disconnect(disconnectQuiesce)
	}
	b.log.Info("bridge stopped")
	return err
}

func (b *Bridge) current() (context.Context, mqtt.Client) {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.ctx, b.client
}

func (b *Bridge) connectHandler(client mqtt.Client) {
	b.log.Info("connected to broker")
	topic := b.topic(CommandsTopic)
	token := client.Subscribe(topic, b.cfg.QoS, b.commandHandler)
	go b.await(token, logrus.Fields{"topic": topic}, "subscription failed")
}

func (b *Bridge) connectLostHandler(_ mqtt.Client, err error) {
	b.log.WithError(err).Error("broker connection lost")
}

func (b *Bridge) commandHandler(_ mqtt.Client, msg mqtt.Message) {
	b.log.WithField("topic", msg.Topic()).Debugf("received %s", msg.Payload())
	if err := b.apply(msg.Payload()); err != nil {
		b.log.WithError(err).Warn("command dropped")
	}
}

// apply decodes a command and replays it on the device
func (b *Bridge) apply(payload []byte) error {
	cmd, err := events.DecodeCommand(payload)
	if err != nil {
		return err
	}
	c, err := b.dev.Client()
	if err != nil {
		return err
	}
	return cmd.Apply(c)
}

// publish sends an input event without waiting for the broker
func (b *Bridge) publish(v interface{}) error {
	_, client := b.current()
	if client == nil {
		return ErrNotStarted
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	topic := b.topic(EventsTopic)
	token := client.Publish(topic, b.cfg.QoS, false, data)
	go b.await(token, logrus.Fields{"topic": topic}, "publish failed")
	return nil
}

func (b *Bridge) await(token mqtt.Token, fields logrus.Fields, msg string) {
	ctx, _ := b.current()
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
	case <-token.Done():
		if err := token.Error(); err != nil {
			b.log.WithFields(fields).WithError(err).Error(msg)
		}
	}
}
