package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/rental-service/rental/internal/charge"
	"github.com/Astemirdum/rental-service/rental/internal/errs"
	"github.com/Astemirdum/rental-service/rental/internal/inspection"
	"github.com/Astemirdum/rental-service/rental/internal/lifecycle"
	"github.com/Astemirdum/rental-service/rental/internal/model"
	"github.com/Astemirdum/rental-service/rental/internal/repository"
)

type ReservationGateway interface {
	GetReservation(ctx context.Context, id int64) (model.Reservation, error)
}

type UserGateway interface {
	GetUser(ctx context.Context, id int64) (model.User, error)
}

type VehicleGateway interface {
	GetVehicle(ctx context.Context, id int64) (model.Vehicle, error)
}

type Gateways struct {
	Reservation ReservationGateway
	User        UserGateway
	Vehicle     VehicleGateway
}

var (
	checkOutEvents = []model.EventType{
		model.EventContractRequested,
		model.EventVehicleRented,
		model.EventReservationConfirmed,
		model.EventRentalCheckedOut,
	}
	checkInEvents = []model.EventType{
		model.EventVehicleReturned,
		model.EventReservationCompleted,
		model.EventRentalCheckedIn,
	}
)

type Service struct {
	log         *zap.Logger
	repo        repository.Repository
	gw          Gateways
	calc        *charge.Calculator
	inspections *inspection.Recorder
	now         func() time.Time
}

func NewService(repo repository.Repository, gw Gateways, calc *charge.Calculator, log *zap.Logger) *Service {
	return &Service{
		log:         log.Named("service"),
		repo:        repo,
		gw:          gw,
		calc:        calc,
		inspections: inspection.NewRecorder(repo, log),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CheckOut hands the reserved vehicle over and opens the rental.
func (s *Service) CheckOut(ctx context.Context, req model.CheckOutRequest) (model.Rental, error) {
	if err := req.Check(); err != nil {
		return model.Rental{}, err
	}

	res, err := s.gw.Reservation.GetReservation(ctx, req.ReservationID)
	if err != nil {
		return model.Rental{}, errors.Wrapf(err, "reservation %d", req.ReservationID)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := s.gw.User.GetUser(gCtx, res.UserID); err != nil {
			return errors.Wrapf(err, "user %d", res.UserID)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := s.gw.Vehicle.GetVehicle(gCtx, res.VehicleID); err != nil {
			return errors.Wrapf(err, "vehicle %d", res.VehicleID)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.Rental{}, err
	}

	now := s.now()
	rental := model.Rental{
		ReservationID:   res.ID,
		UserID:          res.UserID,
		VehicleID:       res.VehicleID,
		EmployeeID:      req.EmployeeID,
		StartDate:       res.StartDate,
		EndDate:         res.EndDate,
		ActualStartDate: now,
		PickupLocation:  res.PickupLocation,
		ReturnLocation:  res.ReturnLocation,
		BasePrice:       res.BasePrice,
		Deposit:         req.Deposit,
		StartKilometers: req.StartKilometers,
		StartFuelLevel:  req.StartFuelLevel,
		CheckOutNotes:   req.Notes,
	}
	if err := lifecycle.Apply(&rental, lifecycle.EventCheckOut); err != nil {
		return model.Rental{}, err
	}

	err = s.repo.InTx(ctx, func(tx repository.TxRepository) error {
		existing, err := tx.GetRentalByReservation(ctx, req.ReservationID)
		switch {
		case err == nil:
			return errors.Wrapf(errs.ErrAlreadyCheckedOut, "reservation %d has rental %d", req.ReservationID, existing.ID)
		case !errors.Is(err, errs.ErrNotFound):
			return err
		}
		if err := tx.CreateRental(ctx, &rental); err != nil {
			return err
		}
		if req.Inspection != nil {
			if _, err := s.inspections.Record(ctx, tx, rental.ID, model.CheckpointCheckOut, *req.Inspection, req.EmployeeID); err != nil {
				return err
			}
		}
		return s.addEvents(ctx, tx, rental, now, checkOutEvents)
	})
	if err != nil {
		return model.Rental{}, err
	}

	s.log.Info("rental checked out",
		zap.Int64("rentalId", rental.ID),
		zap.Int64("reservationId", rental.ReservationID),
		zap.Int64("vehicleId", rental.VehicleID))
	return rental, nil
}

// CheckIn closes the rental and fixes its additional charges.
func (s *Service) CheckIn(ctx context.Context, req model.CheckInRequest) (model.CheckInResult, error) {
	if err := req.Check(); err != nil {
		return model.CheckInResult{}, err
	}

	var res model.CheckInResult
	err := s.repo.InTx(ctx, func(tx repository.TxRepository) error {
		rental, err := tx.LockRental(ctx, req.RentalID)
		if err != nil {
			return err
		}
		if err := lifecycle.Apply(&rental, lifecycle.EventCheckIn); err != nil {
			return err
		}
		if req.EndKilometers < rental.StartKilometers {
			return errors.Wrapf(errs.ErrValidation, "endKilometers %d is below startKilometers %d",
				req.EndKilometers, rental.StartKilometers)
		}

		now := s.now()
		endKm, endFuel, employeeID := req.EndKilometers, req.EndFuelLevel, req.EmployeeID
		rental.ActualEndDate = &now
		rental.EndKilometers = &endKm
		rental.EndFuelLevel = &endFuel
		rental.CheckInEmployeeID = &employeeID
		rental.CheckInNotes = req.Notes

		if req.Inspection != nil {
			if _, err := s.inspections.Record(ctx, tx, rental.ID, model.CheckpointCheckIn, *req.Inspection, req.EmployeeID); err != nil {
				return err
			}
		}

		in, err := rental.ChargeInput()
		if err != nil {
			return err
		}
		charges := s.calc.Calculate(in)
		rental.AdditionalCharges = decimal.NewNullDecimal(charges.Total)
		rental.TotalPrice = decimal.NewNullDecimal(rental.BasePrice.Add(charges.Total))

		if err := tx.UpdateRental(ctx, &rental); err != nil {
			return err
		}
		if err := s.addEvents(ctx, tx, rental, now, checkInEvents); err != nil {
			return err
		}
		res = model.CheckInResult{Rental: rental, Charges: charges}
		return nil
	})
	if err != nil {
		return model.CheckInResult{}, err
	}

	s.log.Info("rental checked in",
		zap.Int64("rentalId", res.Rental.ID),
		zap.String("additionalCharges", res.Charges.Total.StringFixed(2)))
	return res, nil
}

// Activate marks a checked-out vehicle as in use. Repeated activation is a no-op.
func (s *Service) Activate(ctx context.Context, rentalID int64) (model.Rental, error) {
	var rental model.Rental
	err := s.repo.InTx(ctx, func(tx repository.TxRepository) error {
		var err error
		rental, err = tx.LockRental(ctx, rentalID)
		if err != nil {
			return err
		}
		if rental.Status == model.StatusActive {
			return nil
		}
		if err := lifecycle.Apply(&rental, lifecycle.EventActivate); err != nil {
			return err
		}
		if err := tx.UpdateRental(ctx, &rental); err != nil {
			return err
		}
		return s.addEvents(ctx, tx, rental, s.now(), []model.EventType{model.EventRentalActivated})
	})
	if err != nil {
		return model.Rental{}, err
	}
	return rental, nil
}

func (s *Service) GetRental(ctx context.Context, id int64) (model.Rental, error) {
	return s.repo.GetRental(ctx, id)
}

// GetAdditionalCharges recomputes the charges of a closed rental from its
// stored readings. For an open rental it previews them as if returned now.
func (s *Service) GetAdditionalCharges(ctx context.Context, id int64, preview model.ChargesPreview) (model.Charges, error) {
	rental, err := s.repo.GetRental(ctx, id)
	if err != nil {
		return model.Charges{}, err
	}
	if !rental.Closed() {
		now := s.now()
		endKm, endFuel := rental.StartKilometers, rental.StartFuelLevel
		if preview.EndKilometers != nil {
			endKm = *preview.EndKilometers
		}
		if preview.EndFuelLevel != nil {
			endFuel = *preview.EndFuelLevel
		}
		if endKm < rental.StartKilometers {
			return model.Charges{}, errors.Wrapf(errs.ErrValidation, "endKilometers %d is below startKilometers %d",
				endKm, rental.StartKilometers)
		}
		if !endFuel.Valid() {
			return model.Charges{}, errors.Wrapf(errs.ErrValidation, "unknown fuel level %q", endFuel)
		}
		rental.ActualEndDate, rental.EndKilometers, rental.EndFuelLevel = &now, &endKm, &endFuel
	}
	in, err := rental.ChargeInput()
	if err != nil {
		return model.Charges{}, err
	}
	return s.calc.Calculate(in), nil
}

func (s *Service) GetInspections(ctx context.Context, rentalID int64) ([]model.Inspection, error) {
	if _, err := s.repo.GetRental(ctx, rentalID); err != nil {
		return nil, err
	}
	return s.inspections.List(ctx, rentalID)
}

func (s *Service) CompareInspections(ctx context.Context, rentalID int64) (model.Comparison, error) {
	if _, err := s.repo.GetRental(ctx, rentalID); err != nil {
		return model.Comparison{}, err
	}
	discrepancies, err := s.inspections.Compare(ctx, rentalID)
	if err != nil {
		return model.Comparison{}, err
	}
	return model.Comparison{RentalID: rentalID, Discrepancies: discrepancies}, nil
}

func (s *Service) addEvents(ctx context.Context, tx repository.TxRepository, r model.Rental, now time.Time, types []model.EventType) error {
	events := make([]model.OutboxEvent, 0, len(types))
	for _, t := range types {
		e, err := model.NewRentalEvent(t, r, now)
		if err != nil {
			return err
		}
		events = append(events, e)
	}
	return tx.AddEvents(ctx, events...)
}
