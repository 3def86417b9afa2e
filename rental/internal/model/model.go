package model

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Astemirdum/rental-service/rental/internal/errs"
)

type Status string

const (
	StatusNone       Status = ""
	StatusCheckedOut Status = "CHECKED_OUT"
	StatusActive     Status = "ACTIVE"
	StatusCheckedIn  Status = "CHECKED_IN"
)

type FuelLevel string

const (
	FuelFull          FuelLevel = "FULL"
	FuelThreeQuarters FuelLevel = "THREE_QUARTERS"
	FuelHalf          FuelLevel = "HALF"
	FuelQuarter       FuelLevel = "QUARTER"
	FuelEmpty         FuelLevel = "EMPTY"
)

var fuelOrdinals = map[FuelLevel]int{
	FuelFull:          0,
	FuelThreeQuarters: 1,
	FuelHalf:          2,
	FuelQuarter:       3,
	FuelEmpty:         4,
}

// Ordinal ranks the gauge reading, Full = 0 ... Empty = 4.
func (f FuelLevel) Ordinal() int {
	return fuelOrdinals[f]
}

func (f FuelLevel) Valid() bool {
	_, ok := fuelOrdinals[f]
	return ok
}

type Rental struct {
	ID                int64               `json:"id" db:"id"`
	ReservationID     int64               `json:"reservationId" db:"reservation_id"`
	UserID            int64               `json:"userId" db:"user_id"`
	VehicleID         int64               `json:"vehicleId" db:"vehicle_id"`
	EmployeeID        int64               `json:"employeeId" db:"employee_id"`
	CheckInEmployeeID *int64              `json:"checkInEmployeeId,omitempty" db:"check_in_employee_id"`
	StartDate         time.Time           `json:"startDate" db:"start_date"`
	EndDate           time.Time           `json:"endDate" db:"end_date"`
	ActualStartDate   time.Time           `json:"actualStartDate" db:"actual_start_date"`
	ActualEndDate     *time.Time          `json:"actualEndDate" db:"actual_end_date"`
	PickupLocation    string              `json:"pickupLocation" db:"pickup_location"`
	ReturnLocation    string              `json:"returnLocation" db:"return_location"`
	BasePrice         decimal.Decimal     `json:"basePrice" db:"base_price"`
	AdditionalCharges decimal.NullDecimal `json:"additionalCharges" db:"additional_charges"`
	TotalPrice        decimal.NullDecimal `json:"totalPrice" db:"total_price"`
	Deposit           decimal.Decimal     `json:"deposit" db:"deposit"`
	StartKilometers   int                 `json:"startKilometers" db:"start_kilometers"`
	StartFuelLevel    FuelLevel           `json:"startFuelLevel" db:"start_fuel_level"`
	EndKilometers     *int                `json:"endKilometers" db:"end_kilometers"`
	EndFuelLevel      *FuelLevel          `json:"endFuelLevel" db:"end_fuel_level"`
	Status            Status              `json:"status" db:"status"`
	CheckOutNotes     string              `json:"checkOutNotes" db:"check_out_notes"`
	CheckInNotes      string              `json:"checkInNotes" db:"check_in_notes"`
	Version           int                 `json:"version" db:"version"`
	CreatedAt         time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time           `json:"updatedAt" db:"updated_at"`
}

// Closed reports whether every check-in field is set.
func (r *Rental) Closed() bool {
	return r.ActualEndDate != nil && r.EndKilometers != nil && r.EndFuelLevel != nil
}

// ChargeInput extracts the readings of a closed rental.
func (r *Rental) ChargeInput() (ChargeInput, error) {
	if !r.Closed() {
		return ChargeInput{}, errors.Wrapf(errs.ErrInvalidState, "rental %d is not checked in", r.ID)
	}
	return ChargeInput{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		ActualEndDate:   *r.ActualEndDate,
		BasePrice:       r.BasePrice,
		StartKilometers: r.StartKilometers,
		EndKilometers:   *r.EndKilometers,
		StartFuelLevel:  r.StartFuelLevel,
		EndFuelLevel:    *r.EndFuelLevel,
	}, nil
}

type ChargeInput struct {
	StartDate       time.Time
	EndDate         time.Time
	ActualEndDate   time.Time
	BasePrice       decimal.Decimal
	StartKilometers int
	EndKilometers   int
	StartFuelLevel  FuelLevel
	EndFuelLevel    FuelLevel
}

type ChargeType string

const (
	ChargeLateReturn ChargeType = "LATE_RETURN"
	ChargeFuel       ChargeType = "FUEL"
	ChargeMileage    ChargeType = "MILEAGE"
)

type ChargeLine struct {
	Type        ChargeType      `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
}

type Charges struct {
	Lines []ChargeLine    `json:"lines"`
	Total decimal.Decimal `json:"total"`
}
