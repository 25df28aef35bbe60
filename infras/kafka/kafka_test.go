package kafka_test

import (
	"context"
	"testing"

	"folio/config"
	"folio/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactMessage struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{Key: "c-1", Value: contactMessage{Name: "Ana", Email: "ana@example.com"}}

	raw, err := message.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("c-1"), raw.Key)
	require.Len(t, raw.Headers, 1)
	assert.Equal(t, "application/json", string(raw.Headers[0].Value))

	decoded, err := kafka.DecodeKafkaMessage[contactMessage](raw)
	require.NoError(t, err)
	assert.Equal(t, "Ana", decoded.Name)
	assert.Equal(t, "ana@example.com", decoded.Email)
}

func TestMessageEncodeFailure(t *testing.T) {
	message := kafka.Message{Key: "bad", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDecodeKafkaMessage_Invalid(t *testing.T) {
	_, err := kafka.DecodeKafkaMessage[contactMessage](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestNew_WithoutBrokers(t *testing.T) {
	client, cleanup := kafka.New(&config.Config{})
	defer cleanup()

	assert.False(t, client.Enabled())
	assert.NoError(t, client.SendMessages(context.Background(), "folio.contact", kafka.Message{Key: "k", Value: "v"}))
	assert.ErrorIs(t, client.Consume(context.Background(), "", "folio.contact", func(kafkaGo.Message) {}), kafka.ErrDisabled)
}
