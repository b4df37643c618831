package messaging

import (
	"context"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Publisher sends snapshot payloads to an MQTT topic. Messages are retained so
// late subscribers receive the latest snapshot immediately.
type Publisher struct {
	client publisher
	topic  string
	close  func()
}

func Connect(broker, clientID, topic string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &Publisher{
		client: client,
		topic:  topic,
		close:  func() { client.Disconnect(250) },
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, payload []byte) error {
	token := p.client.Publish(p.topic, 1, true, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish %s: %w", p.topic, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.close != nil {
		p.close()
	}
}
