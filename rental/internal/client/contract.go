package client

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/rental-service/rental/config"
	"github.com/Astemirdum/rental-service/rental/internal/model"
)

type Contract struct {
	base
}

func NewContract(log *zap.Logger, srv config.Collaborator, cfg config.HTTPClient) *Contract {
	return &Contract{base: newBase(log.Named("contract"), srv, cfg)}
}

type contractRequest struct {
	RentalID      int64  `json:"rentalId"`
	ReservationID int64  `json:"reservationId"`
	UserID        int64  `json:"userId"`
	VehicleID     int64  `json:"vehicleId"`
	EmployeeID    int64  `json:"employeeId"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	BasePrice     string `json:"basePrice"`
	Deposit       string `json:"deposit"`
}

// RequestContract asks the contract service to issue the rental agreement.
func (c *Contract) RequestContract(ctx context.Context, r model.Rental, idempotencyKey string) error {
	req := contractRequest{
		RentalID:      r.ID,
		ReservationID: r.ReservationID,
		UserID:        r.UserID,
		VehicleID:     r.VehicleID,
		EmployeeID:    r.EmployeeID,
		StartDate:     r.StartDate.Format(time.RFC3339),
		EndDate:       r.EndDate.Format(time.RFC3339),
		BasePrice:     r.BasePrice.StringFixed(2),
		Deposit:       r.Deposit.StringFixed(2),
	}
	return c.do(ctx, http.MethodPost, "/api/v1/contracts", idempotencyKey, req, nil)
}
