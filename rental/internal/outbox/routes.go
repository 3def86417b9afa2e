package outbox

import (
	"context"

	"github.com/Astemirdum/rental-service/rental/internal/model"
)

type ContractIssuer interface {
	RequestContract(ctx context.Context, r model.Rental, idempotencyKey string) error
}

type VehicleUpdater interface {
	MarkRented(ctx context.Context, vehicleID int64, idempotencyKey string) error
	MarkAvailable(ctx context.Context, vehicleID int64, idempotencyKey string) error
}

type ReservationUpdater interface {
	ConfirmReservation(ctx context.Context, reservationID int64, idempotencyKey string) error
	CompleteReservation(ctx context.Context, reservationID int64, idempotencyKey string) error
}

type Notifier interface {
	Publish(ctx context.Context, e model.OutboxEvent) error
}

// Routes maps every lifecycle event to the collaborator call it stands for.
func Routes(contracts ContractIssuer, vehicles VehicleUpdater, reservations ReservationUpdater, n Notifier) Handlers {
	notify := func(ctx context.Context, e model.OutboxEvent, _ model.Rental) error {
		return n.Publish(ctx, e)
	}
	return Handlers{
		model.EventContractRequested: func(ctx context.Context, e model.OutboxEvent, r model.Rental) error {
			return contracts.RequestContract(ctx, r, e.IdempotencyKey())
		},
		model.EventVehicleRented: func(ctx context.Context, e model.OutboxEvent, r model.Rental) error {
			return vehicles.MarkRented(ctx, r.VehicleID, e.IdempotencyKey())
		},
		model.EventReservationConfirmed: func(ctx context.Context, e model.OutboxEvent, r model.Rental) error {
			return reservations.ConfirmReservation(ctx, r.ReservationID, e.IdempotencyKey())
		},
		model.EventVehicleReturned: func(ctx context.Context, e model.OutboxEvent, r model.Rental) error {
			return vehicles.MarkAvailable(ctx, r.VehicleID, e.IdempotencyKey())
		},
		model.EventReservationCompleted: func(ctx context.Context, e model.OutboxEvent, r model.Rental) error {
			return reservations.CompleteReservation(ctx, r.ReservationID, e.IdempotencyKey())
		},
		model.EventRentalCheckedOut: notify,
		model.EventRentalActivated:  notify,
		model.EventRentalCheckedIn:  notify,
	}
}
