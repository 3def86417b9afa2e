package charge_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/rental-service/rental/internal/charge"
	"github.com/Astemirdum/rental-service/rental/internal/model"
)

var start = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func baseInput() model.ChargeInput {
	return model.ChargeInput{
		StartDate:       start,
		EndDate:         start.Add(4 * 24 * time.Hour),
		ActualEndDate:   start.Add(4 * 24 * time.Hour),
		BasePrice:       dec("100000"),
		StartKilometers: 10000,
		EndKilometers:   10000,
		StartFuelLevel:  model.FuelFull,
		EndFuelLevel:    model.FuelFull,
	}
}

func amountOf(t *testing.T, c model.Charges, typ model.ChargeType) (decimal.Decimal, bool) {
	t.Helper()
	for _, l := range c.Lines {
		if l.Type == typ {
			return l.Amount, true
		}
	}
	return decimal.Zero, false
}

func TestCalculator_Calculate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		modify    func(in *model.ChargeInput)
		wantLines map[model.ChargeType]string
		wantTotal string
	}{
		{
			name:      "on time, same fuel, within allowance",
			modify:    func(in *model.ChargeInput) {},
			wantLines: map[model.ChargeType]string{},
			wantTotal: "0",
		},
		{
			name: "one day late",
			modify: func(in *model.ChargeInput) {
				in.ActualEndDate = in.EndDate.Add(24 * time.Hour)
			},
			wantLines: map[model.ChargeType]string{model.ChargeLateReturn: "37500"},
			wantTotal: "37500",
		},
		{
			name: "sub-day overage bills a full day",
			modify: func(in *model.ChargeInput) {
				in.ActualEndDate = in.EndDate.Add(time.Minute)
			},
			wantLines: map[model.ChargeType]string{model.ChargeLateReturn: "37500"},
			wantTotal: "37500",
		},
		{
			name: "partial extra day is not billed",
			modify: func(in *model.ChargeInput) {
				in.ActualEndDate = in.EndDate.Add(47 * time.Hour)
			},
			wantLines: map[model.ChargeType]string{model.ChargeLateReturn: "37500"},
			wantTotal: "37500",
		},
		{
			name: "early return has no late fee",
			modify: func(in *model.ChargeInput) {
				in.ActualEndDate = in.EndDate.Add(-48 * time.Hour)
			},
			wantLines: map[model.ChargeType]string{},
			wantTotal: "0",
		},
		{
			name: "daily rate rounded half up",
			modify: func(in *model.ChargeInput) {
				in.BasePrice = dec("100")
				in.EndDate = start.Add(3 * 24 * time.Hour)
				in.ActualEndDate = in.EndDate.Add(24 * time.Hour)
			},
			// 100 / 3 = 33.333.. -> 33.33; 33.33 * 1 * 1.5 = 49.995 (not rounded again)
			wantLines: map[model.ChargeType]string{model.ChargeLateReturn: "49.995"},
			wantTotal: "49.995",
		},
		{
			name: "sub-day rental counts as one day",
			modify: func(in *model.ChargeInput) {
				in.BasePrice = dec("60")
				in.EndDate = start.Add(5 * time.Hour)
				in.ActualEndDate = in.EndDate.Add(2 * 24 * time.Hour)
				in.EndKilometers = in.StartKilometers + 250
			},
			wantLines: map[model.ChargeType]string{
				model.ChargeLateReturn: "180",
				model.ChargeMileage:    "15",
			},
			wantTotal: "195",
		},
		{
			name: "fuel shortfall full to half",
			modify: func(in *model.ChargeInput) {
				in.EndFuelLevel = model.FuelHalf
			},
			wantLines: map[model.ChargeType]string{model.ChargeFuel: "40"},
			wantTotal: "40",
		},
		{
			name: "more fuel than at pickup is not refunded",
			modify: func(in *model.ChargeInput) {
				in.StartFuelLevel = model.FuelQuarter
				in.EndFuelLevel = model.FuelFull
			},
			wantLines: map[model.ChargeType]string{},
			wantTotal: "0",
		},
		{
			name: "mileage overage",
			modify: func(in *model.ChargeInput) {
				in.EndKilometers = 10950
			},
			wantLines: map[model.ChargeType]string{model.ChargeMileage: "45.00"},
			wantTotal: "45",
		},
		{
			name: "mileage exactly at allowance",
			modify: func(in *model.ChargeInput) {
				in.EndKilometers = 10800
			},
			wantLines: map[model.ChargeType]string{},
			wantTotal: "0",
		},
		{
			name: "all charges combined",
			modify: func(in *model.ChargeInput) {
				in.ActualEndDate = in.EndDate.Add(24 * time.Hour)
				in.EndFuelLevel = model.FuelHalf
				in.EndKilometers = 10950
			},
			wantLines: map[model.ChargeType]string{
				model.ChargeLateReturn: "37500",
				model.ChargeFuel:       "40",
				model.ChargeMileage:    "45",
			},
			wantTotal: "37585",
		},
	}

	calc := charge.NewCalculator(charge.DefaultConfig())
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := baseInput()
			tt.modify(&in)

			got := calc.Calculate(in)

			require.Len(t, got.Lines, len(tt.wantLines))
			sum := decimal.Zero
			for _, l := range got.Lines {
				require.False(t, l.Amount.IsNegative(), l.Type)
				require.NotEmpty(t, l.Reason)
				sum = sum.Add(l.Amount)
			}
			for typ, want := range tt.wantLines {
				amount, ok := amountOf(t, got, typ)
				require.True(t, ok, "missing %s line", typ)
				require.True(t, dec(want).Equal(amount), "%s: want %s, got %s", typ, want, amount)
			}
			require.True(t, dec(tt.wantTotal).Equal(got.Total), "total: want %s, got %s", tt.wantTotal, got.Total)
			require.True(t, sum.Equal(got.Total))
		})
	}
}

func TestCalculator_LineOrder(t *testing.T) {
	t.Parallel()
	in := baseInput()
	in.ActualEndDate = in.EndDate.Add(72 * time.Hour)
	in.EndFuelLevel = model.FuelEmpty
	in.EndKilometers = 20000

	got := charge.NewCalculator(charge.DefaultConfig()).Calculate(in)
	require.Len(t, got.Lines, 3)
	require.Equal(t, model.ChargeLateReturn, got.Lines[0].Type)
	require.Equal(t, model.ChargeFuel, got.Lines[1].Type)
	require.Equal(t, model.ChargeMileage, got.Lines[2].Type)

	// 25000 * 3 * 1.5 + 4 * 20 + (10000 - 800) * 0.30
	require.True(t, dec("112500").Add(dec("80")).Add(dec("2760")).Equal(got.Total), got.Total.String())
}

func TestCalculator_TotalPriceProperty(t *testing.T) {
	t.Parallel()
	calc := charge.NewCalculator(charge.DefaultConfig())
	levels := []model.FuelLevel{model.FuelFull, model.FuelThreeQuarters, model.FuelHalf, model.FuelQuarter, model.FuelEmpty}
	for lateHours := 0; lateHours < 24*5; lateHours += 7 {
		for _, startLvl := range levels {
			for _, endLvl := range levels {
				in := baseInput()
				in.BasePrice = dec("333.33")
				in.ActualEndDate = in.EndDate.Add(time.Duration(lateHours) * time.Hour)
				in.StartFuelLevel, in.EndFuelLevel = startLvl, endLvl
				in.EndKilometers = in.StartKilometers + lateHours*13

				got := calc.Calculate(in)
				require.False(t, got.Total.IsNegative())
				total := in.BasePrice.Add(got.Total)
				require.True(t, total.Sub(in.BasePrice).Equal(got.Total))
				if endLvl.Ordinal() <= startLvl.Ordinal() {
					_, ok := amountOf(t, got, model.ChargeFuel)
					require.False(t, ok)
				}
				if lateHours == 0 {
					_, ok := amountOf(t, got, model.ChargeLateReturn)
					require.False(t, ok)
				}
			}
		}
	}
}
