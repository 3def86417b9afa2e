package model

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Astemirdum/rental-service/rental/internal/errs"
)

type CheckOutRequest struct {
	ReservationID   int64           `json:"reservationId" validate:"required,gt=0"`
	EmployeeID      int64           `json:"employeeId" validate:"required,gt=0"`
	StartKilometers int             `json:"startKilometers" validate:"gte=0"`
	StartFuelLevel  FuelLevel       `json:"startFuelLevel" validate:"required,oneof=FULL THREE_QUARTERS HALF QUARTER EMPTY"`
	Deposit         decimal.Decimal `json:"deposit"`
	Notes           string          `json:"notes" validate:"max=2000"`
	Inspection      *ChecklistInput `json:"inspection" validate:"omitempty"`
}

func (r CheckOutRequest) Check() error {
	switch {
	case r.ReservationID <= 0:
		return errors.Wrap(errs.ErrValidation, "reservationId is required")
	case r.EmployeeID <= 0:
		return errors.Wrap(errs.ErrValidation, "employeeId is required")
	case r.StartKilometers < 0:
		return errors.Wrap(errs.ErrValidation, "startKilometers must be >= 0")
	case !r.StartFuelLevel.Valid():
		return errors.Wrapf(errs.ErrValidation, "unknown fuel level %q", r.StartFuelLevel)
	case r.Deposit.IsNegative():
		return errors.Wrap(errs.ErrValidation, "deposit must be >= 0")
	}
	return nil
}

type CheckInRequest struct {
	RentalID      int64           `json:"-" param:"rentalId" validate:"required,gt=0"`
	EmployeeID    int64           `json:"employeeId" validate:"required,gt=0"`
	EndKilometers int             `json:"endKilometers" validate:"gte=0"`
	EndFuelLevel  FuelLevel       `json:"endFuelLevel" validate:"required,oneof=FULL THREE_QUARTERS HALF QUARTER EMPTY"`
	Notes         string          `json:"notes" validate:"max=2000"`
	Inspection    *ChecklistInput `json:"inspection" validate:"omitempty"`
}

func (r CheckInRequest) Check() error {
	switch {
	case r.RentalID <= 0:
		return errors.Wrap(errs.ErrValidation, "rentalId is required")
	case r.EmployeeID <= 0:
		return errors.Wrap(errs.ErrValidation, "employeeId is required")
	case r.EndKilometers < 0:
		return errors.Wrap(errs.ErrValidation, "endKilometers must be >= 0")
	case !r.EndFuelLevel.Valid():
		return errors.Wrapf(errs.ErrValidation, "unknown fuel level %q", r.EndFuelLevel)
	}
	return nil
}

type CheckInResult struct {
	Rental  Rental  `json:"rental"`
	Charges Charges `json:"additionalCharges"`
}

// ChargesPreview supplies hypothetical return readings for an open rental.
type ChargesPreview struct {
	EndKilometers *int
	EndFuelLevel  *FuelLevel
}

// Reservation as served by the reservation service.
type Reservation struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"userId"`
	VehicleID      int64           `json:"vehicleId"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	PickupLocation string          `json:"pickupLocation"`
	ReturnLocation string          `json:"returnLocation"`
	BasePrice      decimal.Decimal `json:"totalPrice"`
	Status         string          `json:"status"`
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Vehicle struct {
	ID     int64  `json:"id"`
	Plate  string `json:"licensePlate"`
	Status string `json:"status"`
}
