package client

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Astemirdum/rental-service/rental/config"
	"github.com/Astemirdum/rental-service/rental/internal/model"
)

type Vehicle struct {
	base
}

func NewVehicle(log *zap.Logger, srv config.Collaborator, cfg config.HTTPClient) *Vehicle {
	return &Vehicle{base: newBase(log.Named("vehicle"), srv, cfg)}
}

func (c *Vehicle) GetVehicle(ctx context.Context, id int64) (model.Vehicle, error) {
	var v model.Vehicle
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/vehicles/%d", id), "", nil, &v); err != nil {
		return model.Vehicle{}, err
	}
	return v, nil
}

func (c *Vehicle) MarkRented(ctx context.Context, id int64, idempotencyKey string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/vehicles/%d/rented", id), idempotencyKey, nil, nil)
}

func (c *Vehicle) MarkAvailable(ctx context.Context, id int64, idempotencyKey string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/vehicles/%d/available", id), idempotencyKey, nil, nil)
}
