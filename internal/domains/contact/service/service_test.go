package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"folio/infras/kafka"
	kafkaMocks "folio/infras/kafka/mocks"
	"folio/infras/otel/mocks"
	"folio/internal/domains/contact/model/dto"
	"folio/internal/domains/contact/service"
	"folio/internal/testsupport"
	"folio/shared/validator"

	kafkaGo "github.com/segmentio/kafka-go"
)

func validRequest() dto.ContactRequest {
	return dto.ContactRequest{
		Name:      "Jo",
		Email:     "jo@example.com",
		Subject:   "Wedding",
		EventDate: "2027-06-12",
		Message:   "Are you free in June?",
	}
}

func TestContactRequest_Validation(t *testing.T) {
	req := validRequest()
	require.NoError(t, validator.ValidateStruct(&req))

	req.EventDate = "12/06/2027"
	assert.Error(t, validator.ValidateStruct(&req))

	req = validRequest()
	req.Email = "not-an-email"
	assert.Error(t, validator.ValidateStruct(&req))
}

func TestContactSubmit(t *testing.T) {
	ctrl := gomock.NewController(t)
	bus := kafkaMocks.NewMockClient(ctrl)
	cfg := testsupport.Config()
	cfg.External.Kafka.Topics.Contact = "folio.contact"

	svc := service.New(bus, cfg, mocks.NewOtel())

	var sent []kafka.Message

	bus.EXPECT().Enabled().Return(true)
	bus.EXPECT().SendMessages(gomock.Any(), "folio.contact", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			sent = append(sent, messages...)

			return nil
		})

	res, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, res.ID, sent[0].Key)

	msg, ok := sent[0].Value.(dto.ContactMessage)
	require.True(t, ok)
	assert.Equal(t, "Are you free in June?", msg.Message)

	bus.EXPECT().Enabled().Return(true)
	bus.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker unavailable"))

	_, err = svc.Submit(context.Background(), validRequest())
	assert.ErrorContains(t, err, "broker unavailable")
}

func TestContactSubmitWithoutBus(t *testing.T) {
	cfg := testsupport.Config()
	svc := service.New(kafka.Disabled(), cfg, mocks.NewOtel())

	res, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)

	err = svc.Tail(context.Background(), func(dto.ContactMessage) {})
	assert.Error(t, err)
}

func TestContactTail(t *testing.T) {
	ctrl := gomock.NewController(t)
	bus := kafkaMocks.NewMockClient(ctrl)
	cfg := testsupport.Config()
	cfg.External.Kafka.ConsumerGroup = "folio"
	cfg.External.Kafka.Topics.Contact = "folio.contact"

	svc := service.New(bus, cfg, mocks.NewOtel())

	payload, err := json.Marshal(dto.ContactMessage{ID: "msg-1", Name: "Jo", Message: "hello"})
	require.NoError(t, err)

	bus.EXPECT().Enabled().Return(true)
	bus.EXPECT().Consume(gomock.Any(), "folio", "folio.contact", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, handler func(kafkaGo.Message)) error {
			handler(kafkaGo.Message{Key: []byte("bad"), Value: []byte("{")})
			handler(kafkaGo.Message{Key: []byte("msg-1"), Value: payload})

			return nil
		})

	var got []dto.ContactMessage

	require.NoError(t, svc.Tail(context.Background(), func(msg dto.ContactMessage) {
		got = append(got, msg)
	}))

	require.Len(t, got, 1)
	assert.Equal(t, "msg-1", got[0].ID)
}
