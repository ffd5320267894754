package push

import (
	"context"
	"errors"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/autovolt/pkg/device"
)

var (
	// ErrConnectionFailed indicates the broker could not be reached
	ErrConnectionFailed = errors.New("failed to connect to MQTT broker")

	// ErrPublishTimeout indicates the broker did not acknowledge in time
	ErrPublishTimeout = errors.New("MQTT publish timed out")
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 250 // milliseconds
	configQoS         = 1
)

// Publisher sends configuration frames to controllers.
type Publisher interface {
	Publish(ctx context.Context, rec device.Record) error
	IsConnected() bool
	Close()
}

// MQTTPublisher publishes frames to a broker.
type MQTTPublisher struct {
	client pahomqtt.Client
}

// Connect dials broker (e.g. tcp://172.16.3.171:1883) with auto-reconnect.
func Connect(broker, clientID, username, password string) (*MQTTPublisher, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetKeepAlive(60 * time.Second)
	if username != "" {
		opts.SetUsername(username)
		opts.SetPassword(password)
	}

	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		log.Info().Str("broker", broker).Msg("MQTT connected")
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		log.Warn().Err(err).Str("broker", broker).Msg("MQTT connection lost")
	})

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return &MQTTPublisher{client: client}, nil
}

// Publish sends the record's frame to ConfigTopic and waits for the
// broker acknowledgement.
func (p *MQTTPublisher) Publish(ctx context.Context, rec device.Record) error {
	payload, err := BuildFrame(rec, false).Encode()
	if err != nil {
		return fmt.Errorf("failed to encode config frame: %w", err)
	}

	token := p.client.Publish(ConfigTopic, configQoS, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return ErrPublishTimeout
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", ConfigTopic, err)
	}

	log.Debug().Str("mac", rec.MACAddress).Int("bytes", len(payload)).Msg("Published config frame")
	return nil
}

// IsConnected reports whether the broker connection is up.
func (p *MQTTPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(disconnectQuiesce)
}

// NullPublisher drops frames. It is used when no broker is configured.
type NullPublisher struct{}

// NewNullPublisher creates a publisher that does nothing.
func NewNullPublisher() *NullPublisher {
	return &NullPublisher{}
}

func (NullPublisher) Publish(_ context.Context, rec device.Record) error {
	log.Debug().Str("mac", rec.MACAddress).Msg("No MQTT broker configured, skipping config push")
	return nil
}

func (NullPublisher) IsConnected() bool { return false }

func (NullPublisher) Close() {}
