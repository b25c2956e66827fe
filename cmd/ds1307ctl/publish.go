package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/ajanata/tinygo-drivers/ds1307"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

type publisher interface {
	Publish(topic, payload string) error
	Close()
}

type mqttPublisher struct {
	client  mqtt.Client
	timeout time.Duration
}

func dialMQTT(c *Config) (publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(c.Broker).
		SetClientID(c.ClientID).
		SetConnectTimeout(c.Timeout)
	client := mqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(c.Timeout) {
		return nil, errors.Errorf("connecting to %s timed out", c.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, errors.Wrapf(err, "connecting to %s failed", c.Broker)
	}
	return &mqttPublisher{client: client, timeout: c.Timeout}, nil
}

func (p *mqttPublisher) Publish(topic, payload string) error {
	token := p.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(p.timeout) {
		return errors.Errorf("publishing to %s timed out", topic)
	}
	return token.Error()
}

func (p *mqttPublisher) Close() {
	p.client.Disconnect(250)
}

func cmdPublish(a *App, dev *ds1307.Device, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return a.publish(ctx, dev)
}

// publish sends the device time as RFC 3339 text every Interval,
// Count times or until ctx is done.
func (a *App) publish(ctx context.Context, dev *ds1307.Device) error {
	pub, err := a.dial(a.config)
	if err != nil {
		return err
	}
	defer pub.Close()
	a.log.Info("connected", "broker", a.config.Broker, "topic", a.config.Topic)

	ticker := time.NewTicker(a.config.Interval)
	defer ticker.Stop()

	for n := 0; a.config.Count == 0 || n < a.config.Count; n++ {
		if n > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}

		t, err := dev.Now()
		if err != nil {
			return errors.Wrapf(err, "reading time")
		}
		payload := t.Format(time.RFC3339)
		if err := pub.Publish(a.config.Topic, payload); err != nil {
			return errors.Wrapf(err, "publishing")
		}
		a.log.Debug("published", "topic", a.config.Topic, "payload", payload)
	}
	return nil
}
