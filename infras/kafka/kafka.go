// Package kafka publishes folio events (contact messages, review submissions) and tails them
// for the admin CLI. Without brokers configured every client call is a no-op.
package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"folio/config"
	"folio/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	headerContentType = "content-type"
	writeTimeout      = 10 * time.Second
)

var ErrDisabled = errors.New("kafka brokers are not configured")

// Message is one event; Value is published as JSON under Key.
type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	payload, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("encoding %T for kafka: %w", m.Value, err)
	}

	return kafkaGo.Message{
		Key:     []byte(m.Key),
		Value:   payload,
		Headers: []kafkaGo.Header{{Key: headerContentType, Value: []byte(constant.ContentTypeJSON)}},
	}, nil
}

func DecodeKafkaMessage[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("decoding kafka message %q: %w", msg.Key, err)
	}

	return value, nil
}

// Client publishes domain events and tails topics.
type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Consume(ctx context.Context, consumerGroup, topic string, handler func(message kafkaGo.Message)) error
	Enabled() bool
}

type kafkaClientImpl struct {
	brokers       []string
	consumerGroup string
	dialer        *kafkaGo.Dialer
	writer        *kafkaGo.Writer
}

// New shares one writer across topics; the cleanup flushes and closes it.
func New(cfg *config.Config) (Client, func()) {
	settings := cfg.External.Kafka
	if len(settings.Brokers) == 0 {
		log.Info().Msg("Kafka brokers not configured, events will be dropped")

		return noopClient{}, func() {}
	}

	dialer := &kafkaGo.Dialer{Timeout: writeTimeout, DualStack: true}
	transport := &kafkaGo.Transport{DialTimeout: writeTimeout}

	if settings.SASL.Username != "" {
		mechanism := plain.Mechanism{Username: settings.SASL.Username, Password: settings.SASL.Password}
		dialer.SASLMechanism = mechanism
		transport.SASL = mechanism
	}

	client := &kafkaClientImpl{
		brokers:       settings.Brokers,
		consumerGroup: settings.ConsumerGroup,
		dialer:        dialer,
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(settings.Brokers...),
			Balancer:               &kafkaGo.Hash{},
			RequiredAcks:           kafkaGo.RequireOne,
			WriteTimeout:           writeTimeout,
			Transport:              transport,
			AllowAutoTopicCreation: true,
		},
	}

	log.Info().Strs("brokers", settings.Brokers).Msg("Kafka client initialized")

	cleanup := func() {
		if err := client.writer.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close kafka writer")
		}
	}

	return client, cleanup
}

func (k *kafkaClientImpl) Enabled() bool {
	return true
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) error {
	if topic == "" {
		return errors.New("kafka topic is required")
	}

	batch := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			return err
		}

		msg.Topic = topic
		batch = append(batch, msg)
	}

	if err := k.writer.WriteMessages(ctx, batch...); err != nil {
		log.Error().Err(err).Str("topic", topic).Int("count", len(batch)).Msg("failed to publish to kafka")

		return fmt.Errorf("publishing to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Int("count", len(batch)).Msg("published to kafka")

	return nil
}

// Consume blocks until ctx is done, handing every message to handler in order. Offsets are
// committed after the handler returns, so a crash replays the message.
func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler func(message kafkaGo.Message)) error {
	if topic == "" {
		return errors.New("kafka topic is required")
	}

	if consumerGroup == "" {
		consumerGroup = k.consumerGroup
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.brokers,
		Topic:       topic,
		GroupID:     consumerGroup,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("failed to close kafka reader")
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("reading %s: %w", topic, err)
		}

		handler(msg)

		if err = reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			return fmt.Errorf("committing %s offset %d: %w", topic, msg.Offset, err)
		}
	}
}

type noopClient struct{}

// Disabled returns the client used when no brokers are configured.
func Disabled() Client {
	return noopClient{}
}

func (noopClient) Enabled() bool {
	return false
}

func (noopClient) SendMessages(_ context.Context, topic string, messages ...Message) error {
	log.Debug().Str("topic", topic).Int("count", len(messages)).Msg("kafka disabled, dropping events")

	return nil
}

func (noopClient) Consume(context.Context, string, string, func(message kafkaGo.Message)) error {
	return ErrDisabled
}
