package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/rental-service/rental/internal/charge"
	"github.com/Astemirdum/rental-service/rental/internal/errs"
	"github.com/Astemirdum/rental-service/rental/internal/model"
	"github.com/Astemirdum/rental-service/rental/internal/repository"
)

type memRepo struct {
	mu          sync.Mutex
	rentals     map[int64]model.Rental
	inspections []model.Inspection
	events      []model.OutboxEvent
	nextID      int64
}

func newMemRepo() *memRepo {
	return &memRepo{rentals: make(map[int64]model.Rental)}
}

func (m *memRepo) InTx(ctx context.Context, fn func(tx repository.TxRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rentals := make(map[int64]model.Rental, len(m.rentals))
	for k, v := range m.rentals {
		rentals[k] = v
	}
	inspections := append([]model.Inspection(nil), m.inspections...)
	events := append([]model.OutboxEvent(nil), m.events...)
	nextID := m.nextID

	if err := fn(&memTx{m: m}); err != nil {
		m.rentals, m.inspections, m.events, m.nextID = rentals, inspections, events, nextID
		return err
	}
	return nil
}

func (m *memRepo) GetRental(_ context.Context, id int64) (model.Rental, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rentals[id]
	if !ok {
		return model.Rental{}, errs.ErrNotFound
	}
	return r, nil
}

func (m *memRepo) ListInspections(_ context.Context, rentalID int64) ([]model.Inspection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listInspections(rentalID), nil
}

func (m *memRepo) listInspections(rentalID int64) []model.Inspection {
	out := make([]model.Inspection, 0, 2)
	for _, in := range m.inspections {
		if in.RentalID == rentalID {
			out = append(out, in)
		}
	}
	return out
}

func (m *memRepo) eventTypes(rentalID int64) []model.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.EventType
	for _, e := range m.events {
		if e.RentalID == rentalID {
			out = append(out, e.Type)
		}
	}
	return out
}

// memTx runs with memRepo.mu held by InTx.
type memTx struct {
	m *memRepo
}

func (t *memTx) GetRentalByReservation(_ context.Context, reservationID int64) (model.Rental, error) {
	for _, r := range t.m.rentals {
		if r.ReservationID == reservationID {
			return r, nil
		}
	}
	return model.Rental{}, errs.ErrNotFound
}

func (t *memTx) LockRental(_ context.Context, id int64) (model.Rental, error) {
	r, ok := t.m.rentals[id]
	if !ok {
		return model.Rental{}, errors.Wrapf(errs.ErrNotFound, "rental %d", id)
	}
	return r, nil
}

func (t *memTx) CreateRental(_ context.Context, r *model.Rental) error {
	t.m.nextID++
	r.ID, r.Version = t.m.nextID, 1
	t.m.rentals[r.ID] = *r
	return nil
}

func (t *memTx) UpdateRental(_ context.Context, r *model.Rental) error {
	cur, ok := t.m.rentals[r.ID]
	if !ok || cur.Version != r.Version {
		return errs.ErrConcurrentUpdate
	}
	r.Version++
	t.m.rentals[r.ID] = *r
	return nil
}

func (t *memTx) CreateInspection(_ context.Context, in *model.Inspection) error {
	for _, ex := range t.m.inspections {
		if ex.RentalID == in.RentalID && ex.Checkpoint == in.Checkpoint {
			return errs.ErrInspectionExists
		}
	}
	in.ID = int64(len(t.m.inspections) + 1)
	t.m.inspections = append(t.m.inspections, *in)
	return nil
}

func (t *memTx) ListInspections(_ context.Context, rentalID int64) ([]model.Inspection, error) {
	return t.m.listInspections(rentalID), nil
}

func (t *memTx) AddEvents(_ context.Context, events ...model.OutboxEvent) error {
	t.m.events = append(t.m.events, events...)
	return nil
}

type fakeGateways struct {
	mu           sync.Mutex
	reservations map[int64]model.Reservation
	users        map[int64]model.User
	vehicles     map[int64]model.Vehicle
	calls        int
}

func (f *fakeGateways) hit() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeGateways) GetReservation(_ context.Context, id int64) (model.Reservation, error) {
	f.hit()
	r, ok := f.reservations[id]
	if !ok {
		return model.Reservation{}, errs.ErrNotFound
	}
	return r, nil
}

func (f *fakeGateways) GetUser(_ context.Context, id int64) (model.User, error) {
	f.hit()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, errs.ErrNotFound
	}
	return u, nil
}

func (f *fakeGateways) GetVehicle(_ context.Context, id int64) (model.Vehicle, error) {
	f.hit()
	v, ok := f.vehicles[id]
	if !ok {
		return model.Vehicle{}, errs.ErrNotFound
	}
	return v, nil
}

var (
	rentalStart = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rentalEnd   = rentalStart.Add(72 * time.Hour)
)

func newTestService(t *testing.T) (*Service, *memRepo, *fakeGateways) {
	t.Helper()
	gw := &fakeGateways{
		reservations: map[int64]model.Reservation{
			10: {
				ID: 10, UserID: 3, VehicleID: 5,
				StartDate: rentalStart, EndDate: rentalEnd,
				PickupLocation: "Airport", ReturnLocation: "Downtown",
				BasePrice: decimal.RequireFromString("300.00"),
			},
			20: {ID: 20, UserID: 404, VehicleID: 5, StartDate: rentalStart, EndDate: rentalEnd},
			30: {ID: 30, UserID: 3, VehicleID: 404, StartDate: rentalStart, EndDate: rentalEnd},
			40: {
				ID: 40, UserID: 3, VehicleID: 5,
				StartDate: rentalStart, EndDate: rentalEnd,
				BasePrice: decimal.RequireFromString("100.00"),
			},
		},
		users:    map[int64]model.User{3: {ID: 3, Name: "Ann"}},
		vehicles: map[int64]model.Vehicle{5: {ID: 5, Plate: "A123BC"}},
	}
	repo := newMemRepo()
	svc := NewService(repo, Gateways{Reservation: gw, User: gw, Vehicle: gw},
		charge.NewCalculator(charge.DefaultConfig()), zap.NewNop())
	svc.now = func() time.Time { return rentalStart }
	return svc, repo, gw
}

func ptr[T any](v T) *T { return &v }

func checkOutReq() model.CheckOutRequest {
	return model.CheckOutRequest{
		ReservationID:   10,
		EmployeeID:      7,
		StartKilometers: 1000,
		StartFuelLevel:  model.FuelFull,
		Deposit:         decimal.RequireFromString("100"),
		Notes:           "scratch on rear bumper",
	}
}

func TestService_CheckOut(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)

	req := checkOutReq()
	req.Inspection = &model.ChecklistInput{ExteriorClean: ptr(true), TiresOK: ptr(true)}

	r, err := svc.CheckOut(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, model.StatusCheckedOut, r.Status)
	require.Equal(t, int64(3), r.UserID)
	require.Equal(t, int64(5), r.VehicleID)
	require.Equal(t, rentalStart, r.ActualStartDate)
	require.Equal(t, rentalEnd, r.EndDate)
	require.Equal(t, "Downtown", r.ReturnLocation)
	require.True(t, decimal.RequireFromString("300").Equal(r.BasePrice))
	require.False(t, r.AdditionalCharges.Valid)
	require.False(t, r.TotalPrice.Valid)
	require.Nil(t, r.ActualEndDate)

	require.Equal(t, []model.EventType{
		model.EventContractRequested,
		model.EventVehicleRented,
		model.EventReservationConfirmed,
		model.EventRentalCheckedOut,
	}, repo.eventTypes(r.ID))

	ins, err := svc.GetInspections(context.Background(), r.ID)
	require.NoError(t, err)
	require.Len(t, ins, 1)
	require.Equal(t, model.CheckpointCheckOut, ins[0].Checkpoint)
	require.Equal(t, model.ConditionOK, ins[0].ExteriorClean)
	require.Equal(t, model.ConditionUnknown, ins[0].LightsOK)
}

func TestService_CheckOut_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       func() model.CheckOutRequest
		wantErr   error
		noGateway bool
	}{
		{
			name:      "negative km",
			req:       func() model.CheckOutRequest { r := checkOutReq(); r.StartKilometers = -1; return r },
			wantErr:   errs.ErrValidation,
			noGateway: true,
		},
		{
			name:      "unknown fuel level",
			req:       func() model.CheckOutRequest { r := checkOutReq(); r.StartFuelLevel = "HALF_FULL"; return r },
			wantErr:   errs.ErrValidation,
			noGateway: true,
		},
		{
			name:      "negative deposit",
			req:       func() model.CheckOutRequest { r := checkOutReq(); r.Deposit = decimal.NewFromInt(-1); return r },
			wantErr:   errs.ErrValidation,
			noGateway: true,
		},
		{
			name:    "unknown reservation",
			req:     func() model.CheckOutRequest { r := checkOutReq(); r.ReservationID = 99; return r },
			wantErr: errs.ErrNotFound,
		},
		{
			name:    "unknown user",
			req:     func() model.CheckOutRequest { r := checkOutReq(); r.ReservationID = 20; return r },
			wantErr: errs.ErrNotFound,
		},
		{
			name:    "unknown vehicle",
			req:     func() model.CheckOutRequest { r := checkOutReq(); r.ReservationID = 30; return r },
			wantErr: errs.ErrNotFound,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, gw := newTestService(t)

			_, err := svc.CheckOut(context.Background(), test.req())
			require.ErrorIs(t, err, test.wantErr)
			require.Empty(t, repo.rentals)
			require.Empty(t, repo.events)
			if test.noGateway {
				require.Zero(t, gw.calls)
			}
		})
	}
}

func TestService_CheckOut_Twice(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)

	_, err := svc.CheckOut(context.Background(), checkOutReq())
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), checkOutReq())
	require.ErrorIs(t, err, errs.ErrAlreadyCheckedOut)
	require.Len(t, repo.rentals, 1)
	require.Len(t, repo.events, 4)
}

func TestService_CheckIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		returnAt  time.Time
		endKm     int
		endFuel   model.FuelLevel
		wantTypes []model.ChargeType
		wantTotal string
	}{
		{
			name:      "on time same fuel within allowance",
			returnAt:  rentalEnd.Add(-time.Hour),
			endKm:     1500,
			endFuel:   model.FuelFull,
			wantTypes: []model.ChargeType{},
			wantTotal: "0",
		},
		{
			name:      "late with fuel shortfall and mileage overage",
			returnAt:  rentalEnd.Add(26 * time.Hour),
			endKm:     1800,
			endFuel:   model.FuelHalf,
			wantTypes: []model.ChargeType{model.ChargeLateReturn, model.ChargeFuel, model.ChargeMileage},
			wantTotal: "250.00",
		},
		{
			name:      "returned exactly at scheduled end",
			returnAt:  rentalEnd,
			endKm:     1000,
			endFuel:   model.FuelFull,
			wantTypes: []model.ChargeType{},
			wantTotal: "0",
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, _ := newTestService(t)

			out, err := svc.CheckOut(context.Background(), checkOutReq())
			require.NoError(t, err)

			svc.now = func() time.Time { return test.returnAt }
			res, err := svc.CheckIn(context.Background(), model.CheckInRequest{
				RentalID:      out.ID,
				EmployeeID:    8,
				EndKilometers: test.endKm,
				EndFuelLevel:  test.endFuel,
			})
			require.NoError(t, err)

			types := make([]model.ChargeType, 0, len(res.Charges.Lines))
			for _, l := range res.Charges.Lines {
				require.False(t, l.Amount.IsNegative())
				types = append(types, l.Type)
			}
			require.Equal(t, test.wantTypes, types)
			require.True(t, decimal.RequireFromString(test.wantTotal).Equal(res.Charges.Total), res.Charges.Total.String())

			r := res.Rental
			require.Equal(t, model.StatusCheckedIn, r.Status)
			require.True(t, r.Closed())
			require.Equal(t, test.returnAt, *r.ActualEndDate)
			require.Equal(t, int64(8), *r.CheckInEmployeeID)
			require.True(t, r.AdditionalCharges.Decimal.Equal(res.Charges.Total))
			require.True(t, r.TotalPrice.Decimal.Equal(r.BasePrice.Add(r.AdditionalCharges.Decimal)))

			stored, err := svc.GetRental(context.Background(), out.ID)
			require.NoError(t, err)
			require.Equal(t, r, stored)

			recomputed, err := svc.GetAdditionalCharges(context.Background(), out.ID, model.ChargesPreview{})
			require.NoError(t, err)
			require.True(t, recomputed.Total.Equal(res.Charges.Total))

			require.Equal(t, []model.EventType{
				model.EventVehicleReturned,
				model.EventReservationCompleted,
				model.EventRentalCheckedIn,
			}, repo.eventTypes(out.ID)[4:])
		})
	}
}

func TestService_CheckIn_SubCentCharges(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	req := checkOutReq()
	req.ReservationID = 40
	out, err := svc.CheckOut(context.Background(), req)
	require.NoError(t, err)

	svc.now = func() time.Time { return rentalEnd.Add(2 * time.Hour) }
	res, err := svc.CheckIn(context.Background(), model.CheckInRequest{
		RentalID:      out.ID,
		EmployeeID:    8,
		EndKilometers: 1000,
		EndFuelLevel:  model.FuelFull,
	})
	require.NoError(t, err)
	// 100 / 3 days = 33.33 per day, one late day at 1.5
	require.Equal(t, "49.995", res.Rental.AdditionalCharges.Decimal.String())
	require.Equal(t, "149.995", res.Rental.TotalPrice.Decimal.String())

	stored, err := svc.GetRental(context.Background(), out.ID)
	require.NoError(t, err)
	require.True(t, stored.AdditionalCharges.Decimal.Equal(res.Rental.AdditionalCharges.Decimal))
	require.True(t, stored.TotalPrice.Decimal.Equal(res.Rental.TotalPrice.Decimal))

	recomputed, err := svc.GetAdditionalCharges(context.Background(), out.ID, model.ChargesPreview{})
	require.NoError(t, err)
	require.True(t, recomputed.Total.Equal(stored.AdditionalCharges.Decimal))
}

func TestService_CheckIn_Twice(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)

	out, err := svc.CheckOut(context.Background(), checkOutReq())
	require.NoError(t, err)

	svc.now = func() time.Time { return rentalEnd }
	req := model.CheckInRequest{RentalID: out.ID, EmployeeID: 8, EndKilometers: 1200, EndFuelLevel: model.FuelFull}
	first, err := svc.CheckIn(context.Background(), req)
	require.NoError(t, err)

	svc.now = func() time.Time { return rentalEnd.Add(48 * time.Hour) }
	req.EndKilometers = 5000
	req.EndFuelLevel = model.FuelEmpty
	_, err = svc.CheckIn(context.Background(), req)
	require.ErrorIs(t, err, errs.ErrInvalidState)

	stored, err := svc.GetRental(context.Background(), out.ID)
	require.NoError(t, err)
	require.Equal(t, first.Rental, stored)
	require.Len(t, repo.eventTypes(out.ID), 7)
}

func TestService_CheckIn_Errors(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)

	out, err := svc.CheckOut(context.Background(), checkOutReq())
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), model.CheckInRequest{
		RentalID: 999, EmployeeID: 8, EndKilometers: 1200, EndFuelLevel: model.FuelFull,
	})
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.CheckIn(context.Background(), model.CheckInRequest{
		RentalID: out.ID, EmployeeID: 8, EndKilometers: 999, EndFuelLevel: model.FuelFull,
	})
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.CheckIn(context.Background(), model.CheckInRequest{
		RentalID: out.ID, EmployeeID: 8, EndKilometers: 1200, EndFuelLevel: "NEARLY_EMPTY",
	})
	require.ErrorIs(t, err, errs.ErrValidation)

	stored, err := svc.GetRental(context.Background(), out.ID)
	require.NoError(t, err)
	require.Equal(t, out, stored)
	require.Len(t, repo.eventTypes(out.ID), 4)
}

func TestService_Activate(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)

	out, err := svc.CheckOut(context.Background(), checkOutReq())
	require.NoError(t, err)

	r, err := svc.Activate(context.Background(), out.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusActive, r.Status)

	again, err := svc.Activate(context.Background(), out.ID)
	require.NoError(t, err)
	require.Equal(t, r, again)
	require.Len(t, repo.eventTypes(out.ID), 5)

	svc.now = func() time.Time { return rentalEnd }
	_, err = svc.CheckIn(context.Background(), model.CheckInRequest{
		RentalID: out.ID, EmployeeID: 8, EndKilometers: 1200, EndFuelLevel: model.FuelFull,
	})
	require.NoError(t, err)

	_, err = svc.Activate(context.Background(), out.ID)
	require.ErrorIs(t, err, errs.ErrInvalidState)

	_, err = svc.Activate(context.Background(), 999)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_GetAdditionalCharges_Preview(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	out, err := svc.CheckOut(context.Background(), checkOutReq())
	require.NoError(t, err)

	svc.now = func() time.Time { return rentalEnd }
	got, err := svc.GetAdditionalCharges(context.Background(), out.ID, model.ChargesPreview{})
	require.NoError(t, err)
	require.True(t, got.Total.IsZero())
	require.Empty(t, got.Lines)

	got, err = svc.GetAdditionalCharges(context.Background(), out.ID, model.ChargesPreview{
		EndFuelLevel: ptr(model.FuelQuarter),
	})
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	require.Equal(t, model.ChargeFuel, got.Lines[0].Type)
	require.True(t, decimal.RequireFromString("60").Equal(got.Total))

	_, err = svc.GetAdditionalCharges(context.Background(), out.ID, model.ChargesPreview{EndKilometers: ptr(10)})
	require.ErrorIs(t, err, errs.ErrValidation)

	stored, err := svc.GetRental(context.Background(), out.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusCheckedOut, stored.Status)
	require.False(t, stored.Closed())

	_, err = svc.GetAdditionalCharges(context.Background(), 999, model.ChargesPreview{})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_CompareInspections(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	req := checkOutReq()
	req.Inspection = &model.ChecklistInput{
		ExteriorClean:     ptr(true),
		SpareWheelPresent: ptr(true),
		LightsOK:          ptr(true),
	}
	out, err := svc.CheckOut(context.Background(), req)
	require.NoError(t, err)

	cmp, err := svc.CompareInspections(context.Background(), out.ID)
	require.NoError(t, err)
	require.Equal(t, []string{}, cmp.Discrepancies)

	svc.now = func() time.Time { return rentalEnd }
	_, err = svc.CheckIn(context.Background(), model.CheckInRequest{
		RentalID: out.ID, EmployeeID: 8, EndKilometers: 1200, EndFuelLevel: model.FuelFull,
		Inspection: &model.ChecklistInput{
			ExteriorClean:     ptr(false),
			SpareWheelPresent: ptr(false),
			DamageDescription: "dent on left door",
		},
	})
	require.NoError(t, err)

	cmp, err = svc.CompareInspections(context.Background(), out.ID)
	require.NoError(t, err)
	require.Equal(t, out.ID, cmp.RentalID)
	require.Equal(t, []string{
		"exterior soiled",
		"spare wheel missing",
		"new damage: dent on left door",
	}, cmp.Discrepancies)

	again, err := svc.CompareInspections(context.Background(), out.ID)
	require.NoError(t, err)
	require.Equal(t, cmp, again)

	ins, err := svc.GetInspections(context.Background(), out.ID)
	require.NoError(t, err)
	sort.Slice(ins, func(i, j int) bool { return ins[i].ID < ins[j].ID })
	require.Equal(t, model.CheckpointCheckIn, ins[1].Checkpoint)

	_, err = svc.CompareInspections(context.Background(), 999)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
