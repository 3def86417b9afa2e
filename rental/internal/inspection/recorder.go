// Package inspection records vehicle condition snapshots and compares them.
package inspection

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/rental-service/rental/internal/errs"
	"github.com/Astemirdum/rental-service/rental/internal/model"
)

// Store persists a snapshot; it is the transaction of the calling lifecycle operation.
type Store interface {
	CreateInspection(ctx context.Context, in *model.Inspection) error
}

type Reader interface {
	ListInspections(ctx context.Context, rentalID int64) ([]model.Inspection, error)
}

type Recorder struct {
	reader Reader
	now    func() time.Time
	log    *zap.Logger
}

func NewRecorder(reader Reader, log *zap.Logger) *Recorder {
	return &Recorder{
		reader: reader,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log.Named("inspection"),
	}
}

func (r *Recorder) Record(ctx context.Context, store Store, rentalID int64, cp model.Checkpoint,
	in model.ChecklistInput, employeeID int64) (model.Inspection, error) {
	if cp != model.CheckpointCheckOut && cp != model.CheckpointCheckIn {
		return model.Inspection{}, errors.Wrapf(errs.ErrValidation, "unknown checkpoint %q", cp)
	}
	photos := model.Photos(in.Photos)
	if photos == nil {
		photos = model.Photos{}
	}
	insp := model.Inspection{
		RentalID:          rentalID,
		Checkpoint:        cp,
		Checklist:         in.Checklist(),
		DamageDescription: in.DamageDescription,
		Photos:            photos,
		Notes:             in.Notes,
		EmployeeID:        employeeID,
		InspectedAt:       r.now(),
	}
	if err := store.CreateInspection(ctx, &insp); err != nil {
		return model.Inspection{}, err
	}
	r.log.Debug("inspection recorded",
		zap.Int64("rental_id", rentalID),
		zap.String("checkpoint", string(cp)),
		zap.Int64("inspection_id", insp.ID))
	return insp, nil
}

func (r *Recorder) List(ctx context.Context, rentalID int64) ([]model.Inspection, error) {
	return r.reader.ListInspections(ctx, rentalID)
}

// Compare diffs the CHECK_OUT and CHECK_IN snapshots of a rental. A missing
// snapshot yields an empty list.
func (r *Recorder) Compare(ctx context.Context, rentalID int64) ([]string, error) {
	items, err := r.reader.ListInspections(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	var out, in *model.Inspection
	for i := range items {
		switch items[i].Checkpoint {
		case model.CheckpointCheckOut:
			out = &items[i]
		case model.CheckpointCheckIn:
			in = &items[i]
		}
	}
	if out == nil || in == nil {
		return []string{}, nil
	}
	return Diff(*out, *in), nil
}
