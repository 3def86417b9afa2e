package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventContractRequested    EventType = "CONTRACT_REQUESTED"
	EventVehicleRented        EventType = "VEHICLE_RENTED"
	EventReservationConfirmed EventType = "RESERVATION_CONFIRMED"
	EventRentalCheckedOut     EventType = "RENTAL_CHECKED_OUT"
	EventRentalActivated      EventType = "RENTAL_ACTIVATED"
	EventVehicleReturned      EventType = "VEHICLE_RETURNED"
	EventReservationCompleted EventType = "RESERVATION_COMPLETED"
	EventRentalCheckedIn      EventType = "RENTAL_CHECKED_IN"
)

type EventStatus string

const (
	EventPending   EventStatus = "PENDING"
	EventDelivered EventStatus = "DELIVERED"
	EventFailed    EventStatus = "FAILED"
)

// OutboxEvent is a collaborator side effect written in the same transaction
// as the rental change it belongs to.
type OutboxEvent struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Seq         int64           `json:"seq" db:"seq"`
	RentalID    int64           `json:"rentalId" db:"rental_id"`
	Type        EventType       `json:"type" db:"event_type"`
	Payload     json.RawMessage `json:"payload" db:"payload"`
	Status      EventStatus     `json:"status" db:"status"`
	Attempts    int             `json:"attempts" db:"attempts"`
	LastError   string          `json:"lastError" db:"last_error"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	DeliveredAt *time.Time      `json:"deliveredAt" db:"delivered_at"`
}

// IdempotencyKey is stable across redeliveries of the same event.
func (e OutboxEvent) IdempotencyKey() string {
	return fmt.Sprintf("%d:%s", e.RentalID, e.Type)
}

func NewRentalEvent(t EventType, r Rental, now time.Time) (OutboxEvent, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return OutboxEvent{}, err
	}
	return OutboxEvent{
		ID:        uuid.New(),
		RentalID:  r.ID,
		Type:      t,
		Payload:   payload,
		Status:    EventPending,
		CreatedAt: now,
	}, nil
}

func (e OutboxEvent) Rental() (Rental, error) {
	var r Rental
	err := json.Unmarshal(e.Payload, &r)
	return r, err
}
