// Package lifecycle holds the rental state machine.
package lifecycle

import (
	"github.com/pkg/errors"

	"github.com/Astemirdum/rental-service/rental/internal/errs"
	"github.com/Astemirdum/rental-service/rental/internal/model"
)

type Event string

const (
	EventCheckOut Event = "check-out"
	// EventActivate is driven by the vehicle-departure message on the activation topic.
	EventActivate Event = "activate"
	EventCheckIn  Event = "check-in"
)

var transitions = map[model.Status]map[Event]model.Status{
	model.StatusNone: {
		EventCheckOut: model.StatusCheckedOut,
	},
	model.StatusCheckedOut: {
		EventActivate: model.StatusActive,
		EventCheckIn:  model.StatusCheckedIn,
	},
	model.StatusActive: {
		EventCheckIn: model.StatusCheckedIn,
	},
	model.StatusCheckedIn: {},
}

// Next returns the state reached from `from` on ev, or ErrInvalidState.
func Next(from model.Status, ev Event) (model.Status, error) {
	to, ok := transitions[from][ev]
	if !ok {
		return from, errors.Wrapf(errs.ErrInvalidState, "cannot %s a rental in status %q", ev, from)
	}
	return to, nil
}

func Can(from model.Status, ev Event) bool {
	_, err := Next(from, ev)
	return err == nil
}

// Apply validates the transition and sets the new status on r.
func Apply(r *model.Rental, ev Event) error {
	to, err := Next(r.Status, ev)
	if err != nil {
		return err
	}
	r.Status = to
	return nil
}
