// Package outbox delivers the collaborator side effects recorded by the
// lifecycle operations, at least once and in the order they were written.
package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Astemirdum/rental-service/rental/config"
	"github.com/Astemirdum/rental-service/rental/internal/errs"
	"github.com/Astemirdum/rental-service/rental/internal/model"
	"github.com/Astemirdum/rental-service/rental/internal/repository"
)

type Handler func(ctx context.Context, e model.OutboxEvent, r model.Rental) error

type Handlers map[model.EventType]Handler

type Store interface {
	ClaimPendingEvents(ctx context.Context, limit int, lease time.Duration) ([]model.OutboxEvent, error)
	MarkEventDelivered(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkEventFailed(ctx context.Context, id uuid.UUID, attempts int, lastErr string, final bool) error
	ReleaseEvents(ctx context.Context, ids ...uuid.UUID) error
}

var _ Store = (repository.OutboxRepository)(nil)

// outcomeTimeout bounds a single outcome write.
const outcomeTimeout = 5 * time.Second

type Dispatcher struct {
	store    Store
	handlers Handlers
	cfg      config.Outbox
	log      *zap.Logger
	cron     *cron.Cron
}

func NewDispatcher(store Store, handlers Handlers, cfg config.Outbox, log *zap.Logger) *Dispatcher {
	log = log.Named("outbox")
	cronLog := cron.PrintfLogger(zap.NewStdLog(log))
	return &Dispatcher{
		store:    store,
		handlers: handlers,
		cfg:      cfg,
		log:      log,
		cron:     cron.New(cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog))),
	}
}

// Start schedules Dispatch on cfg.Schedule.
func (d *Dispatcher) Start() error {
	_, err := d.cron.AddFunc(d.cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Lease)
		defer cancel()
		if n, err := d.Dispatch(ctx); err != nil {
			d.log.Error("dispatch", zap.Error(err))
		} else if n > 0 {
			d.log.Debug("dispatched", zap.Int("events", n))
		}
	})
	if err != nil {
		return errors.Wrapf(err, "schedule %q", d.cfg.Schedule)
	}
	d.cron.Start()
	return nil
}

// Stop waits for a running batch to finish or ctx to expire.
func (d *Dispatcher) Stop(ctx context.Context) {
	select {
	case <-d.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Dispatch delivers one batch of pending events and returns how many were
// delivered. Every outcome is committed as soon as it is known and is
// written even when ctx has already expired. After a transient failure the
// remaining events of the same rental wait for the next batch; once ctx is
// done no further event is attempted.
func (d *Dispatcher) Dispatch(ctx context.Context) (int, error) {
	events, err := d.store.ClaimPendingEvents(ctx, d.cfg.BatchSize, d.cfg.Lease)
	if err != nil {
		return 0, errors.Wrap(err, "claim events")
	}

	outcomeCtx := context.WithoutCancel(ctx)
	delivered := 0
	held := make(map[int64]struct{})
	var unattempted []uuid.UUID
	for _, e := range events {
		if _, ok := held[e.RentalID]; ok || ctx.Err() != nil {
			unattempted = append(unattempted, e.ID)
			continue
		}

		herr := d.deliver(ctx, e)
		if herr == nil {
			if err := d.outcome(outcomeCtx, func(ctx context.Context) error {
				return d.store.MarkEventDelivered(ctx, e.ID, time.Now().UTC())
			}); err != nil {
				return delivered, errors.Wrapf(err, "mark %s delivered", e.ID)
			}
			delivered++
			continue
		}

		attempts := e.Attempts + 1
		final := attempts >= d.cfg.MaxAttempts || errs.IsClient(herr)
		if err := d.outcome(outcomeCtx, func(ctx context.Context) error {
			return d.store.MarkEventFailed(ctx, e.ID, attempts, herr.Error(), final)
		}); err != nil {
			return delivered, errors.Wrapf(err, "mark %s failed", e.ID)
		}
		if final {
			d.log.Error("event delivery failed permanently",
				zap.String("id", e.ID.String()),
				zap.String("type", string(e.Type)),
				zap.Int64("rentalId", e.RentalID),
				zap.Int("attempts", attempts),
				zap.Error(herr))
			continue
		}
		held[e.RentalID] = struct{}{}
		d.log.Warn("event delivery failed",
			zap.String("type", string(e.Type)),
			zap.Int64("rentalId", e.RentalID),
			zap.Int("attempts", attempts),
			zap.Error(herr))
	}

	if len(unattempted) > 0 {
		if err := d.outcome(outcomeCtx, func(ctx context.Context) error {
			return d.store.ReleaseEvents(ctx, unattempted...)
		}); err != nil {
			return delivered, errors.Wrap(err, "release events")
		}
		if ctx.Err() != nil {
			d.log.Warn("batch cut short", zap.Int("released", len(unattempted)), zap.Error(ctx.Err()))
		}
	}
	return delivered, nil
}

func (d *Dispatcher) outcome(ctx context.Context, write func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, outcomeTimeout)
	defer cancel()
	return write(ctx)
}

func (d *Dispatcher) deliver(ctx context.Context, e model.OutboxEvent) error {
	h, ok := d.handlers[e.Type]
	if !ok {
		return errors.Wrapf(errs.ErrValidation, "no handler for %s", e.Type)
	}
	r, err := e.Rental()
	if err != nil {
		return errors.Wrapf(errs.ErrValidation, "payload: %v", err)
	}
	return h(ctx, e, r)
}
