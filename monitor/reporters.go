package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/labfab/lasercam"
	"github.com/labfab/lasercam/registry"
)

const publishTimeout = 5 * time.Second

// MQTTReporter publishes reports as JSON
type MQTTReporter struct {
	client mqtt.Client
	topic  string
}

// NewMQTTReporter connects to broker and publishes to topic
func NewMQTTReporter(broker, clientID, topic string) (*MQTTReporter, error) {
	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	opts.SetKeepAlive(2 * time.Second)
	opts.SetPingTimeout(1 * time.Second)
	opts.SetAutoReconnect(true)

	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("error connecting to MQTT broker %q: %w", broker, token.Error())
	}

	return newMQTTReporter(c, topic), nil
}

func newMQTTReporter(c mqtt.Client, topic string) *MQTTReporter {
	return &MQTTReporter{client: c, topic: topic}
}

func (r *MQTTReporter) Report(_ context.Context, report Report) error {
	msg, err := json.Marshal(report)
	if err != nil {
		return err
	}

	token := r.client.Publish(r.topic, 1, false, msg)
	if !token.WaitTimeout(publishTimeout) {
		return errors.New("timed out publishing to " + r.topic)
	}
	return token.Error()
}

// Close disconnects from the broker
func (r *MQTTReporter) Close() {
	r.client.Disconnect(250)
}

// RegistryReporter announces a board's stream when its camera reports ready
type RegistryReporter struct {
	client *registry.Client
}

func NewRegistryReporter(client *registry.Client) *RegistryReporter {
	return &RegistryReporter{client: client}
}

func (r *RegistryReporter) Report(ctx context.Context, report Report) error {
	if report.Event.Kind != lasercam.EventCameraReady {
		return nil
	}

	_, err := r.client.Announce(ctx, report.Board, report.Event.StreamURL(), report.Session)
	if err != nil {
		return fmt.Errorf("error announcing board: %w", err)
	}
	return nil
}
