package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/rental-service/rental/internal/errs"
	"github.com/Astemirdum/rental-service/rental/internal/model"
)

type Repository interface {
	// InTx runs fn in one transaction; fn's error rolls everything back.
	InTx(ctx context.Context, fn func(tx TxRepository) error) error
	GetRental(ctx context.Context, id int64) (model.Rental, error)
	ListInspections(ctx context.Context, rentalID int64) ([]model.Inspection, error)
}

type TxRepository interface {
	GetRentalByReservation(ctx context.Context, reservationID int64) (model.Rental, error)
	// LockRental reads the rental with a row lock held until the transaction ends.
	LockRental(ctx context.Context, id int64) (model.Rental, error)
	CreateRental(ctx context.Context, r *model.Rental) error
	UpdateRental(ctx context.Context, r *model.Rental) error
	CreateInspection(ctx context.Context, in *model.Inspection) error
	ListInspections(ctx context.Context, rentalID int64) ([]model.Inspection, error)

	AddEvents(ctx context.Context, events ...model.OutboxEvent) error
}

// OutboxRepository is used outside of any transaction: every call commits on its own.
type OutboxRepository interface {
	// ClaimPendingEvents leases up to limit deliverable events for lease.
	ClaimPendingEvents(ctx context.Context, limit int, lease time.Duration) ([]model.OutboxEvent, error)
	MarkEventDelivered(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkEventFailed(ctx context.Context, id uuid.UUID, attempts int, lastErr string, final bool) error
	ReleaseEvents(ctx context.Context, ids ...uuid.UUID) error
}

type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type repository struct {
	*store
	db *sqlx.DB
}

type store struct {
	q   queryer
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	log = log.Named("repo")
	return &repository{
		store: &store{q: db, log: log},
		db:    db,
	}, nil
}

const (
	rentalTableName     = `rentals`
	inspectionTableName = `inspections`
	outboxTableName     = `outbox_events`

	rentalReservationUniqueKey    = `rentals_reservation_id_key`
	inspectionCheckpointUniqueKey = `inspections_rental_id_checkpoint_key`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var rentalColumns = []string{
	"id", "reservation_id", "user_id", "vehicle_id", "employee_id", "check_in_employee_id",
	"start_date", "end_date", "actual_start_date", "actual_end_date",
	"pickup_location", "return_location",
	"base_price", "additional_charges", "total_price", "deposit",
	"start_kilometers", "start_fuel_level", "end_kilometers", "end_fuel_level",
	"status", "check_out_notes", "check_in_notes", "version", "created_at", "updated_at",
}

var inspectionColumns = []string{
	"id", "rental_id", "checkpoint",
	"exterior_clean", "interior_clean", "tires_ok", "lights_ok", "wipers_ok",
	"spare_wheel_present", "documents_present", "first_aid_kit_present", "warning_triangle_present",
	"damage_description", "photos", "notes", "employee_id", "inspected_at",
}

var outboxColumns = []string{
	"id", "seq", "rental_id", "event_type", "payload", "status", "attempts", "last_error", "created_at", "delivered_at",
}

func (r *repository) InTx(ctx context.Context, fn func(tx TxRepository) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Error("tx rollback", zap.Error(rbErr))
			}
		}
	}()

	if err = fn(&store{q: tx, log: r.log}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit tx")
	}
	return nil
}

func (s *store) GetRental(ctx context.Context, id int64) (model.Rental, error) {
	return s.getRental(ctx, sq.Eq{"id": id}, false)
}

func (s *store) LockRental(ctx context.Context, id int64) (model.Rental, error) {
	return s.getRental(ctx, sq.Eq{"id": id}, true)
}

func (s *store) GetRentalByReservation(ctx context.Context, reservationID int64) (model.Rental, error) {
	return s.getRental(ctx, sq.Eq{"reservation_id": reservationID}, false)
}

func (s *store) getRental(ctx context.Context, where sq.Eq, forUpdate bool) (model.Rental, error) {
	b := qb.Select(rentalColumns...).
		From(rentalTableName).
		Where(where).
		Limit(1)
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	q, args, err := b.ToSql()
	if err != nil {
		return model.Rental{}, err
	}
	var rental model.Rental
	if err := s.q.GetContext(ctx, &rental, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Rental{}, errors.Wrapf(errs.ErrNotFound, "rental %v", where)
		}
		return model.Rental{}, err
	}
	return rental, nil
}

func (s *store) CreateRental(ctx context.Context, r *model.Rental) error {
	q, args, err := qb.Insert(rentalTableName).
		Columns("reservation_id", "user_id", "vehicle_id", "employee_id",
			"start_date", "end_date", "actual_start_date",
			"pickup_location", "return_location", "base_price", "deposit",
			"start_kilometers", "start_fuel_level", "status", "check_out_notes").
		Values(r.ReservationID, r.UserID, r.VehicleID, r.EmployeeID,
			r.StartDate, r.EndDate, r.ActualStartDate,
			r.PickupLocation, r.ReturnLocation, r.BasePrice, r.Deposit,
			r.StartKilometers, r.StartFuelLevel, r.Status, r.CheckOutNotes).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	var row struct {
		ID        int64     `db:"id"`
		Version   int       `db:"version"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := s.q.GetContext(ctx, &row, q, args...); err != nil {
		s.log.Error("CreateRental", zap.String("q", q), zap.Error(err))
		return mapConstraintErr(err)
	}
	r.ID, r.Version, r.CreatedAt, r.UpdatedAt = row.ID, row.Version, row.CreatedAt, row.UpdatedAt
	return nil
}

// UpdateRental writes every mutable column at once, guarded by the version
// the caller read.
func (s *store) UpdateRental(ctx context.Context, r *model.Rental) error {
	q, args, err := qb.Update(rentalTableName).
		SetMap(map[string]interface{}{
			"check_in_employee_id": r.CheckInEmployeeID,
			"actual_end_date":      r.ActualEndDate,
			"additional_charges":   r.AdditionalCharges,
			"total_price":          r.TotalPrice,
			"end_kilometers":       r.EndKilometers,
			"end_fuel_level":       r.EndFuelLevel,
			"status":               r.Status,
			"check_in_notes":       r.CheckInNotes,
			"version":              sq.Expr("version + 1"),
			"updated_at":           sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": r.ID, "version": r.Version}).
		Suffix("RETURNING version, updated_at").
		ToSql()
	if err != nil {
		return err
	}
	var row struct {
		Version   int       `db:"version"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := s.q.GetContext(ctx, &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errors.Wrapf(errs.ErrConcurrentUpdate, "rental %d version %d", r.ID, r.Version)
		}
		return err
	}
	r.Version, r.UpdatedAt = row.Version, row.UpdatedAt
	return nil
}

func (s *store) CreateInspection(ctx context.Context, in *model.Inspection) error {
	q, args, err := qb.Insert(inspectionTableName).
		Columns(inspectionColumns[1:]...).
		Values(in.RentalID, in.Checkpoint,
			in.ExteriorClean, in.InteriorClean, in.TiresOK, in.LightsOK, in.WipersOK,
			in.SpareWheelPresent, in.DocumentsPresent, in.FirstAidKitPresent, in.WarningTrianglePresent,
			in.DamageDescription, in.Photos, in.Notes, in.EmployeeID, in.InspectedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	if err := s.q.GetContext(ctx, &in.ID, q, args...); err != nil {
		return mapConstraintErr(err)
	}
	return nil
}

func (s *store) ListInspections(ctx context.Context, rentalID int64) ([]model.Inspection, error) {
	q, args, err := qb.Select(inspectionColumns...).
		From(inspectionTableName).
		Where(sq.Eq{"rental_id": rentalID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Inspection, 0, 2)
	if err := s.q.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *store) AddEvents(ctx context.Context, events ...model.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}
	b := qb.Insert(outboxTableName).
		Columns("id", "rental_id", "event_type", "payload", "status", "created_at")
	for _, e := range events {
		b = b.Values(e.ID, e.RentalID, e.Type, []byte(e.Payload), e.Status, e.CreatedAt)
	}
	q, args, err := b.ToSql()
	if err != nil {
		return err
	}
	if _, err := s.q.ExecContext(ctx, q, args...); err != nil {
		return mapConstraintErr(err)
	}
	return nil
}

// ClaimPendingEvents leases a batch of pending events in insertion order in
// one statement. An event is skipped while an earlier event of the same
// rental is leased elsewhere, so a rental's events are never delivered out
// of order by concurrent dispatchers.
func (s *store) ClaimPendingEvents(ctx context.Context, limit int, lease time.Duration) ([]model.OutboxEvent, error) {
	claimable := sq.Select("o.id").
		From(outboxTableName + " o").
		Where(sq.Eq{"o.status": model.EventPending}).
		Where("(o.locked_until IS NULL OR o.locked_until < now())").
		Where(sq.Expr(`NOT EXISTS (SELECT 1 FROM outbox_events p
			WHERE p.rental_id = o.rental_id AND p.seq < o.seq
			AND p.status = ? AND p.locked_until >= now())`, model.EventPending)).
		OrderBy("o.seq").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED")

	q, args, err := qb.Update(outboxTableName).
		Set("locked_until", sq.Expr("now() + make_interval(secs => ?)", lease.Seconds())).
		Where(sq.Expr("id IN (?)", claimable)).
		Suffix("RETURNING " + strings.Join(outboxColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}
	var events []model.OutboxEvent
	if err := s.q.SelectContext(ctx, &events, q, args...); err != nil {
		return nil, err
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Seq < events[j].Seq })
	return events, nil
}

func (s *store) MarkEventDelivered(ctx context.Context, id uuid.UUID, at time.Time) error {
	q, args, err := qb.Update(outboxTableName).
		Set("status", model.EventDelivered).
		Set("attempts", sq.Expr("attempts + 1")).
		Set("delivered_at", at).
		Set("last_error", "").
		Set("locked_until", nil).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.q.ExecContext(ctx, q, args...)
	return err
}

func (s *store) MarkEventFailed(ctx context.Context, id uuid.UUID, attempts int, lastErr string, final bool) error {
	status := model.EventPending
	if final {
		status = model.EventFailed
	}
	q, args, err := qb.Update(outboxTableName).
		Set("status", status).
		Set("attempts", attempts).
		Set("last_error", lastErr).
		Set("locked_until", nil).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.q.ExecContext(ctx, q, args...)
	return err
}

// ReleaseEvents drops the lease of events that were claimed but not attempted.
func (s *store) ReleaseEvents(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := qb.Update(outboxTableName).
		Set("locked_until", nil).
		Where(sq.Eq{"id": ids, "status": model.EventPending}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.q.ExecContext(ctx, q, args...)
	return err
}

func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		switch pgErr.ConstraintName {
		case rentalReservationUniqueKey:
			return errors.Wrap(errs.ErrAlreadyCheckedOut, pgErr.Detail)
		case inspectionCheckpointUniqueKey:
			return errors.Wrap(errs.ErrInspectionExists, pgErr.Detail)
		}
	case pgerrcode.ForeignKeyViolation:
		return errors.Wrap(errs.ErrNotFound, pgErr.Detail)
	case pgerrcode.CheckViolation:
		return errors.Wrap(errs.ErrValidation, pgErr.Message)
	}
	return err
}
