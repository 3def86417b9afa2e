// Package charge computes the additional charges owed when a rental closes.
package charge

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Astemirdum/rental-service/rental/internal/model"
)

const day = 24 * time.Hour

type Config struct {
	// LateMultiplier is applied on top of the daily rate for every late day.
	LateMultiplier decimal.Decimal `envconfig:"CHARGE_LATE_MULTIPLIER" default:"1.5"`
	FuelPerLevel   decimal.Decimal `envconfig:"CHARGE_FUEL_PER_LEVEL" default:"20"`
	PerKm          decimal.Decimal `envconfig:"CHARGE_PER_KM" default:"0.30"`
	KmPerDay       int             `envconfig:"CHARGE_KM_PER_DAY" default:"200"`
}

func DefaultConfig() Config {
	return Config{
		LateMultiplier: decimal.RequireFromString("1.5"),
		FuelPerLevel:   decimal.NewFromInt(20),
		PerKm:          decimal.RequireFromString("0.30"),
		KmPerDay:       200,
	}
}

// Calculator is stateless; Calculate may be called concurrently.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

func (c *Calculator) Calculate(in model.ChargeInput) model.Charges {
	durationDays := wholeDays(in.StartDate, in.EndDate)
	if durationDays < 1 {
		durationDays = 1
	}

	lines := make([]model.ChargeLine, 0, 3)
	if line, ok := c.lateFee(in, durationDays); ok {
		lines = append(lines, line)
	}
	if line, ok := c.fuelShortfall(in); ok {
		lines = append(lines, line)
	}
	if line, ok := c.mileageOverage(in, durationDays); ok {
		lines = append(lines, line)
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return model.Charges{Lines: lines, Total: total}
}

func (c *Calculator) lateFee(in model.ChargeInput, durationDays int64) (model.ChargeLine, bool) {
	if !in.ActualEndDate.After(in.EndDate) {
		return model.ChargeLine{}, false
	}
	daysLate := wholeDays(in.EndDate, in.ActualEndDate)
	if daysLate < 1 {
		daysLate = 1
	}
	// the only rounding step: half-up to cents
	dailyRate := in.BasePrice.DivRound(decimal.NewFromInt(durationDays), 2)
	fee := dailyRate.Mul(decimal.NewFromInt(daysLate)).Mul(c.cfg.LateMultiplier)
	return model.ChargeLine{
		Type:        model.ChargeLateReturn,
		Description: "Late return fee",
		Amount:      fee,
		Reason: fmt.Sprintf("returned %d day(s) after scheduled end; daily rate %s x %d x %s",
			daysLate, dailyRate.StringFixed(2), daysLate, c.cfg.LateMultiplier.String()),
	}, true
}

func (c *Calculator) fuelShortfall(in model.ChargeInput) (model.ChargeLine, bool) {
	levels := in.EndFuelLevel.Ordinal() - in.StartFuelLevel.Ordinal()
	if levels <= 0 {
		return model.ChargeLine{}, false
	}
	return model.ChargeLine{
		Type:        model.ChargeFuel,
		Description: "Fuel refill",
		Amount:      c.cfg.FuelPerLevel.Mul(decimal.NewFromInt(int64(levels))),
		Reason:      fmt.Sprintf("fuel returned at %s, picked up at %s (%d level(s) short)", in.EndFuelLevel, in.StartFuelLevel, levels),
	}, true
}

func (c *Calculator) mileageOverage(in model.ChargeInput, durationDays int64) (model.ChargeLine, bool) {
	driven := int64(in.EndKilometers - in.StartKilometers)
	allowed := durationDays * int64(c.cfg.KmPerDay)
	if driven <= allowed {
		return model.ChargeLine{}, false
	}
	excess := driven - allowed
	return model.ChargeLine{
		Type:        model.ChargeMileage,
		Description: "Mileage overage",
		Amount:      c.cfg.PerKm.Mul(decimal.NewFromInt(excess)),
		Reason:      fmt.Sprintf("%d km driven, %d km allowed (%d km excess)", driven, allowed, excess),
	}, true
}

// wholeDays counts complete 24h periods from `from` to `to`.
func wholeDays(from, to time.Time) int64 {
	return int64(to.Sub(from) / day)
}
