// v0
// internal/telemetry/mqtt.go
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTPublisher pushes readings to a broker at QoS 0. Reconnects after a
// drop are handled by the client; only the initial connect can fail.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
	log    *slog.Logger
}

var _ Publisher = (*MQTTPublisher)(nil)

func NewMQTT(broker, clientID, topic string, log *slog.Logger) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)
	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	log.Info("mqtt connected", "broker", broker, "topic", topic)
	return &MQTTPublisher{client: c, topic: topic, log: log.With(slog.String("component", "mqtt_publisher"))}, nil
}

func (p *MQTTPublisher) Publish(ctx context.Context, r Reading) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}
	token := p.client.Publish(p.topic, 0, false, payload)
	token.Wait()
	return token.Error()
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
