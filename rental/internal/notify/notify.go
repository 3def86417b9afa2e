// Package notify publishes rental lifecycle notifications to kafka.
package notify

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/Astemirdum/rental-service/rental/internal/model"
)

const idempotencyKeyHeader = "Idempotency-Key"

type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
}

func NewPublisher(producer sarama.SyncProducer, log *zap.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    kafka.NotificationTopic,
		log:      log.Named("notify"),
	}
}

// Publish sends e keyed by rental id, so one rental's notifications stay
// ordered within a partition.
func (p *Publisher) Publish(_ context.Context, e model.OutboxEvent) error {
	r, err := e.Rental()
	if err != nil {
		return errors.Wrap(err, "decode rental payload")
	}
	data, err := json.Marshal(kafka.RentalEvent{
		EventID:    e.ID.String(),
		EventType:  string(e.Type),
		RentalID:   r.ID,
		UserID:     r.UserID,
		VehicleID:  r.VehicleID,
		Status:     string(r.Status),
		OccurredAt: e.CreatedAt,
		Payload:    e.Payload,
	})
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(r.ID, 10)),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte(idempotencyKeyHeader), Value: []byte(e.IdempotencyKey())},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return errors.Wrap(err, "SendMessage")
	}
	p.log.Debug("notification sent",
		zap.String("type", string(e.Type)),
		zap.Int64("rentalId", r.ID),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
	return nil
}
