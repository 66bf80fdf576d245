package publish

import (
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const mqttTimeout = 5 * time.Second

var errMQTTTimeout = errors.New("mqtt: timed out")

// MQTT publishes retained QoS 1 messages to a broker.
type MQTT struct {
	client mqtt.Client
}

// DialMQTT connects to broker (for example "tcp://localhost:1883").
func DialMQTT(broker, clientID string) (*MQTT, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(mqttTimeout)

	client := mqtt.NewClient(opts)
	if err := wait(client.Connect()); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, err)
	}
	return &MQTT{client: client}, nil
}

func (m *MQTT) Publish(topic string, payload []byte) error {
	return wait(m.client.Publish(topic, 1, true, payload))
}

// Close disconnects, giving in-flight messages a short grace period.
func (m *MQTT) Close() {
	m.client.Disconnect(250)
}

func wait(t mqtt.Token) error {
	if !t.WaitTimeout(mqttTimeout) {
		return errMQTTTimeout
	}
	return t.Error()
}
