package client

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Astemirdum/rental-service/rental/config"
	"github.com/Astemirdum/rental-service/rental/internal/model"
)

type Reservation struct {
	base
}

func NewReservation(log *zap.Logger, srv config.Collaborator, cfg config.HTTPClient) *Reservation {
	return &Reservation{base: newBase(log.Named("reservation"), srv, cfg)}
}

func (c *Reservation) GetReservation(ctx context.Context, id int64) (model.Reservation, error) {
	var res model.Reservation
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d", id), "", nil, &res); err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}

func (c *Reservation) ConfirmReservation(ctx context.Context, id int64, idempotencyKey string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/reservations/%d/confirm", id), idempotencyKey, nil, nil)
}

func (c *Reservation) CompleteReservation(ctx context.Context, id int64, idempotencyKey string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/reservations/%d/complete", id), idempotencyKey, nil, nil)
}
