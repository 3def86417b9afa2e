package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

type Checkpoint string

const (
	CheckpointCheckOut Checkpoint = "CHECK_OUT"
	CheckpointCheckIn  Checkpoint = "CHECK_IN"
)

// Condition is a tri-state checklist item; UNKNOWN is never compared.
type Condition string

const (
	ConditionUnknown Condition = "UNKNOWN"
	ConditionOK      Condition = "OK"
	ConditionNotOK   Condition = "NOT_OK"
)

func ConditionOf(v *bool) Condition {
	switch {
	case v == nil:
		return ConditionUnknown
	case *v:
		return ConditionOK
	default:
		return ConditionNotOK
	}
}

func (c Condition) Known() bool {
	return c == ConditionOK || c == ConditionNotOK
}

type Checklist struct {
	ExteriorClean          Condition `json:"exteriorClean" db:"exterior_clean"`
	InteriorClean          Condition `json:"interiorClean" db:"interior_clean"`
	TiresOK                Condition `json:"tiresOk" db:"tires_ok"`
	LightsOK               Condition `json:"lightsOk" db:"lights_ok"`
	WipersOK               Condition `json:"wipersOk" db:"wipers_ok"`
	SpareWheelPresent      Condition `json:"spareWheelPresent" db:"spare_wheel_present"`
	DocumentsPresent       Condition `json:"documentsPresent" db:"documents_present"`
	FirstAidKitPresent     Condition `json:"firstAidKitPresent" db:"first_aid_kit_present"`
	WarningTrianglePresent Condition `json:"warningTrianglePresent" db:"warning_triangle_present"`
}

type Photos []string

func (p Photos) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(p))
}

func (p *Photos) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*p = Photos{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("photos: unsupported type %T", src)
	}
	return json.Unmarshal(data, (*[]string)(p))
}

type Inspection struct {
	ID                int64      `json:"id" db:"id"`
	RentalID          int64      `json:"rentalId" db:"rental_id"`
	Checkpoint        Checkpoint `json:"checkpoint" db:"checkpoint"`
	Checklist         `json:"checklist"`
	DamageDescription string    `json:"damageDescription" db:"damage_description"`
	Photos            Photos    `json:"photos" db:"photos"`
	Notes             string    `json:"notes" db:"notes"`
	EmployeeID        int64     `json:"employeeId" db:"employee_id"`
	InspectedAt       time.Time `json:"inspectedAt" db:"inspected_at"`
}

// ChecklistInput is the operator-supplied snapshot; omitted items stay unknown.
type ChecklistInput struct {
	ExteriorClean          *bool    `json:"exteriorClean"`
	InteriorClean          *bool    `json:"interiorClean"`
	TiresOK                *bool    `json:"tiresOk"`
	LightsOK               *bool    `json:"lightsOk"`
	WipersOK               *bool    `json:"wipersOk"`
	SpareWheelPresent      *bool    `json:"spareWheelPresent"`
	DocumentsPresent       *bool    `json:"documentsPresent"`
	FirstAidKitPresent     *bool    `json:"firstAidKitPresent"`
	WarningTrianglePresent *bool    `json:"warningTrianglePresent"`
	DamageDescription      string   `json:"damageDescription" validate:"max=4000"`
	Photos                 []string `json:"photos" validate:"max=50,dive,required,max=1024"`
	Notes                  string   `json:"notes" validate:"max=2000"`
}

func (in ChecklistInput) Checklist() Checklist {
	return Checklist{
		ExteriorClean:          ConditionOf(in.ExteriorClean),
		InteriorClean:          ConditionOf(in.InteriorClean),
		TiresOK:                ConditionOf(in.TiresOK),
		LightsOK:               ConditionOf(in.LightsOK),
		WipersOK:               ConditionOf(in.WipersOK),
		SpareWheelPresent:      ConditionOf(in.SpareWheelPresent),
		DocumentsPresent:       ConditionOf(in.DocumentsPresent),
		FirstAidKitPresent:     ConditionOf(in.FirstAidKitPresent),
		WarningTrianglePresent: ConditionOf(in.WarningTrianglePresent),
	}
}

type Comparison struct {
	RentalID      int64    `json:"rentalId"`
	Discrepancies []string `json:"discrepancies"`
}
