package handler

import (
	"context"

	"github.com/Astemirdum/rental-service/rental/internal/model"
	"github.com/Astemirdum/rental-service/rental/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type RentalService interface {
	CheckOut(ctx context.Context, req model.CheckOutRequest) (model.Rental, error)
	CheckIn(ctx context.Context, req model.CheckInRequest) (model.CheckInResult, error)
	Activate(ctx context.Context, rentalID int64) (model.Rental, error)
	GetRental(ctx context.Context, id int64) (model.Rental, error)
	GetAdditionalCharges(ctx context.Context, id int64, preview model.ChargesPreview) (model.Charges, error)
	GetInspections(ctx context.Context, rentalID int64) ([]model.Inspection, error)
	CompareInspections(ctx context.Context, rentalID int64) (model.Comparison, error)
}

var _ RentalService = (*service.Service)(nil)
