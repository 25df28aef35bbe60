package service

import (
	"context"
	"fmt"

	"folio/config"
	"folio/infras/kafka"
	"folio/infras/otel"
	"folio/internal/domains/contact/model/dto"
	"folio/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type Contact interface {
	Submit(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error)
	// Tail delivers published contact messages to handle until ctx is done.
	Tail(ctx context.Context, handle func(dto.ContactMessage)) error
}

type serviceImpl struct {
	bus  kafka.Client
	cfg  *config.Config
	otel otel.Otel
}

func New(bus kafka.Client, cfg *config.Config, otel otel.Otel) Contact {
	return &serviceImpl{
		bus:  bus,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Submit(ctx context.Context, req dto.ContactRequest) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Submit")
	defer scope.End()
	defer scope.TraceIfError(&err)

	msg := req.ToMessage()

	if !s.bus.Enabled() {
		log.Info().
			Str("contact_id", msg.ID).
			Str("email", msg.Email).
			Str("subject", msg.Subject).
			Msg("contact message received without a message bus")

		res.FromMessage(msg)

		return res, nil
	}

	if err = s.bus.SendMessages(ctx, s.cfg.External.Kafka.Topics.Contact, kafka.Message{Key: msg.ID, Value: msg}); err != nil {
		log.Error().Err(err).Str("contact_id", msg.ID).Msg("failed to publish contact message")

		return res, fmt.Errorf("failed to deliver contact message: %w", err)
	}

	res.FromMessage(msg)

	return res, nil
}

func (s *serviceImpl) Tail(ctx context.Context, handle func(dto.ContactMessage)) error {
	if !s.bus.Enabled() {
		return fmt.Errorf("kafka brokers are not configured")
	}

	return s.bus.Consume(ctx, s.cfg.External.Kafka.ConsumerGroup, s.cfg.External.Kafka.Topics.Contact, func(message kafkaGo.Message) {
		msg, err := kafka.DecodeKafkaMessage[dto.ContactMessage](message)
		if err != nil {
			log.Warn().Err(err).Str("key", string(message.Key)).Msg("skipping undecodable contact message")

			return
		}

		handle(msg)
	})
}
