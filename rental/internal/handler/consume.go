package handler

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/Astemirdum/rental-service/rental/internal/errs"
	"github.com/Astemirdum/rental-service/rental/internal/model"
)

type activate func(ctx context.Context, rentalID int64) (model.Rental, error)

// Consumer applies rental-activation messages.
type Consumer struct {
	activate activate
	log      *zap.Logger
}

func NewConsumer(activate activate, log *zap.Logger) *Consumer {
	return &Consumer{
		activate: activate,
		log:      log.Named("consumer"),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var msg kafka.ActivationMsg
			if err := json.Unmarshal(message.Value, &msg); err != nil || msg.RentalID <= 0 {
				consumer.log.Error("bad activation message", zap.ByteString("value", message.Value), zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			rental, err := consumer.activate(session.Context(), msg.RentalID)
			switch {
			case err == nil:
				consumer.log.Info("rental activated", zap.Int64("rentalId", rental.ID))
			case errs.IsClient(err):
				consumer.log.Warn("activation skipped", zap.Int64("rentalId", msg.RentalID), zap.Error(err))
			default:
				// ending the session redelivers from the last marked offset
				consumer.log.Error("activate", zap.Int64("rentalId", msg.RentalID), zap.Error(err))
				return errors.Wrapf(err, "activate rental %d", msg.RentalID)
			}
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
