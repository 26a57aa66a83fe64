// Package notify publishes export events to an MQTT broker.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/export"
)

const publishTimeout = 5 * time.Second

// client is the part of mqtt.Client the publisher needs.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTT connection lost handler
var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// MQTT connection handler
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

type Publisher struct {
	client client
	topic  string
}

// Connect opens a client against brokerURL that reconnects on its own.
func Connect(brokerURL, clientID, topic string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(publishTimeout)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	c := mqtt.NewClient(opts)
	if err := waitConnected(c.Connect(), publishTimeout); err != nil {
		c.Disconnect(0)
		return nil, err
	}
	return &Publisher{client: c, topic: topic}, nil
}

// waitConnected treats a connect that has not completed within timeout as
// failed.
func waitConnected(token mqtt.Token, timeout time.Duration) error {
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("failed to connect to MQTT broker: timed out after %s", timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	return nil
}

// Publish sends e as JSON with QoS 1. The event is addressed to
// {topic}/{state}/{city}.
func (p *Publisher) Publish(ctx context.Context, e export.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("%s/%s/%s", p.topic, e.State, e.City)
	token := p.client.Publish(topic, 1, false, payload)

	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	log.Debug().Str("topic", topic).Str("file", e.FileName).Msg("export event published")
	return nil
}

func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(ctx context.Context, e export.Event) error { return nil }
