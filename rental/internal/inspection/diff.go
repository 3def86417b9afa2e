package inspection

import (
	"strings"

	"github.com/Astemirdum/rental-service/rental/internal/model"
)

const newDamagePrefix = "new damage: "

type checklistField struct {
	get     func(model.Checklist) model.Condition
	message string
}

// checklistFields fixes the order of diff entries.
var checklistFields = []checklistField{
	{func(c model.Checklist) model.Condition { return c.ExteriorClean }, "exterior soiled"},
	{func(c model.Checklist) model.Condition { return c.InteriorClean }, "interior soiled"},
	{func(c model.Checklist) model.Condition { return c.TiresOK }, "tires damaged or worn"},
	{func(c model.Checklist) model.Condition { return c.LightsOK }, "lights not working"},
	{func(c model.Checklist) model.Condition { return c.WipersOK }, "wipers not working"},
	{func(c model.Checklist) model.Condition { return c.SpareWheelPresent }, "spare wheel missing"},
	{func(c model.Checklist) model.Condition { return c.DocumentsPresent }, "vehicle documents missing"},
	{func(c model.Checklist) model.Condition { return c.FirstAidKitPresent }, "first-aid kit missing"},
	{func(c model.Checklist) model.Condition { return c.WarningTrianglePresent }, "warning triangle missing"},
}

// Diff lists items that were OK at check-out and NOT_OK at check-in, followed
// by the check-in damage description. Unknown items are skipped.
func Diff(checkOut, checkIn model.Inspection) []string {
	res := make([]string, 0, len(checklistFields)+1)
	for _, f := range checklistFields {
		if f.get(checkOut.Checklist) == model.ConditionOK && f.get(checkIn.Checklist) == model.ConditionNotOK {
			res = append(res, f.message)
		}
	}
	if strings.TrimSpace(checkIn.DamageDescription) != "" {
		res = append(res, newDamagePrefix+checkIn.DamageDescription)
	}
	return res
}
