// Package sink publishes tracked poses to an MQTT broker so that
// other processes on the network can consume them.
package sink

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/teslashibe/go-headtrack/internal/log"
	"github.com/teslashibe/go-headtrack/pkg/pose"
)

const (
	// TopicRaw carries poses straight off the wire
	TopicRaw = "headtrack/pose/raw"
	// TopicProcessed carries poses after the processing chain
	TopicProcessed = "headtrack/pose/processed"

	disconnectQuiesceMs = 250
)

// poseMessage is the JSON payload published on both topics
type poseMessage struct {
	Yaw       float64 `json:"yaw"`
	Pitch     float64 `json:"pitch"`
	Roll      float64 `json:"roll"`
	Timestamp int64   `json:"t"`
}

// Publisher publishes pose frames to an MQTT broker
type Publisher struct {
	client mqtt.Client
}

// NewPublisher connects to the broker. The client ID gets a random
// suffix so multiple trackers can share one broker.
func NewPublisher(broker string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("headtrack-" + uuid.NewString()[:8]).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}

	log.Info("mqtt sink connected", "broker", broker)
	return &Publisher{client: client}, nil
}

// PublishRaw publishes a pose on the raw topic
func (p *Publisher) PublishRaw(ps pose.Pose) error {
	return p.publish(TopicRaw, ps)
}

// PublishProcessed publishes a pose on the processed topic
func (p *Publisher) PublishProcessed(ps pose.Pose) error {
	return p.publish(TopicProcessed, ps)
}

func (p *Publisher) publish(topic string, ps pose.Pose) error {
	data, err := json.Marshal(poseMessage{
		Yaw:       ps.Yaw,
		Pitch:     ps.Pitch,
		Roll:      ps.Roll,
		Timestamp: ps.Timestamp,
	})
	if err != nil {
		return err
	}

	// QoS 0, no retain. Stale poses are worthless, so losing one in
	// transit costs nothing.
	token := p.client.Publish(topic, 0, false, data)
	if token.Error() != nil {
		return token.Error()
	}
	return nil
}

// Close disconnects from the broker
func (p *Publisher) Close() {
	p.client.Disconnect(disconnectQuiesceMs)
}
