package mqtt

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sweeney/tinyml-panel/internal/logic"
)

const (
	publishTimeout = 5 * time.Second
	bufferCapacity = 256
)

var errPublishTimeout = errors.New("publish timeout")

// client is the subset of paho.Client the publisher needs.
type client interface {
	IsConnectionOpen() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// RealPublisher publishes to an actual MQTT broker. Messages published
// while the connection is down are buffered and replayed on reconnect.
type RealPublisher struct {
	mu     sync.Mutex
	client client
	buf    *ringBuffer
}

// NewRealPublisher starts connecting to broker in the background and
// returns immediately; the client retries until the broker is reachable.
func NewRealPublisher(broker, clientID string) *RealPublisher {
	p := &RealPublisher{buf: newRingBuffer(bufferCapacity)}

	will, _ := FormatSystemPayload(SystemEvent{Timestamp: time.Now(), Event: "OFFLINE"})
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetWill(TopicSystem, string(will), 1, true).
		SetOnConnectHandler(func(paho.Client) {
			log.Printf("mqtt: connected to %s", broker)
			p.flush()
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	c := paho.NewClient(opts)
	p.client = c
	c.Connect()
	log.Printf("mqtt: connecting to %s as %s", broker, clientID)
	return p
}

// Publish sends a classification (QoS 0, not retained).
func (p *RealPublisher) Publish(c logic.Classification) error {
	payload, err := FormatPayload(c)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	return p.publish(bufferedMsg{topic: Topic, payload: payload})
}

// PublishSystem sends a system lifecycle event (QoS 1).
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.publish(bufferedMsg{topic: TopicSystem, payload: payload, qos: 1, retained: event.Retained})
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Pending returns the number of buffered messages.
func (p *RealPublisher) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.len()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second quiesce
	return nil
}

func (p *RealPublisher) publish(msg bufferedMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.client.IsConnectionOpen() {
		p.buf.push(msg)
		return nil
	}
	if err := p.send(msg); err != nil {
		p.buf.push(msg)
		return err
	}
	return nil
}

// flush replays buffered messages oldest first. On the first failure the
// unsent remainder goes back into the buffer.
func (p *RealPublisher) flush() {
	p.mu.Lock()
	defer p.mu.Unlock()

	msgs := p.buf.drainAll()
	if len(msgs) == 0 {
		return
	}
	log.Printf("mqtt: replaying %d buffered messages", len(msgs))
	for i, msg := range msgs {
		if err := p.send(msg); err != nil {
			log.Printf("mqtt: replay failed: %v", err)
			for _, rest := range msgs[i:] {
				p.buf.push(rest)
			}
			return
		}
	}
}

func (p *RealPublisher) send(msg bufferedMsg) error {
	token := p.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
	if !token.WaitTimeout(publishTimeout) {
		return errPublishTimeout
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", msg.topic, err)
	}
	return nil
}
