package nutrition

import "github.com/macrolens/nutrilog/internal/domain"

// dvRecord holds one nutrient's daily value per profile; nil means the
// value is not established for that profile.
type dvRecord struct {
	Unit              string
	Adult             *float64
	Infant            *float64
	Child1To3         *float64
	PregnantLactating *float64
}

func (r dvRecord) forProfile(p domain.Profile) *float64 {
	switch p {
	case domain.ProfileAdult:
		return r.Adult
	case domain.ProfileInfant:
		return r.Infant
	case domain.ProfileChild1To3:
		return r.Child1To3
	case domain.ProfilePregnantLactating:
		return r.PregnantLactating
	}
	return nil
}

func v(f float64) *float64 { return &f }

// drvFoodComponents are the FDA daily reference values (21 CFR 101.9(c)(9)).
var drvFoodComponents = map[string]dvRecord{
	"total_fat":          {"g", v(78), v(30), v(39), v(78)},
	"total_carbohydrate": {"g", v(275), v(95), v(150), v(275)},
	"dietary_fiber":      {"g", v(28), nil, v(14), v(28)},
	"protein":            {"g", v(50), v(11), v(13), v(71)},
	"sodium":             {"mg", v(2300), nil, v(1500), v(2300)},
}

// rdiNutrients are the FDA reference daily intakes (21 CFR 101.9(c)(8)(iv)).
var rdiNutrients = map[string]dvRecord{
	"vitamin_a":   {"mcg", v(900), v(500), v(300), v(1300)},
	"vitamin_c":   {"mg", v(90), v(50), v(15), v(120)},
	"vitamin_d":   {"mcg", v(20), v(10), v(15), v(15)},
	"vitamin_e":   {"mg", v(15), v(5), v(6), v(19)},
	"vitamin_k":   {"mcg", v(120), v(2.5), v(30), v(90)},
	"thiamin":     {"mg", v(1.2), v(0.3), v(0.5), v(1.4)},
	"riboflavin":  {"mg", v(1.3), v(0.4), v(0.5), v(1.6)},
	"niacin":      {"mg", v(16), v(4), v(6), v(18)},
	"vitamin_b6":  {"mg", v(1.7), v(0.3), v(0.5), v(2.0)},
	"folate":      {"mcg", v(400), v(80), v(150), v(600)},
	"vitamin_b12": {"mcg", v(2.4), v(0.5), v(0.9), v(2.8)},
	"calcium":     {"mg", v(1300), v(260), v(700), v(1300)},
	"iron":        {"mg", v(18), v(11), v(7), v(27)},
	"potassium":   {"mg", v(4700), v(700), v(3000), v(5100)},
	"magnesium":   {"mg", v(420), v(75), v(80), v(400)},
	"zinc":        {"mg", v(11), v(3), v(3), v(13)},
}

// ResolveDailyValue returns the daily value of meta for profile. The second
// result is false when no value is defined: no dvKey, unknown key, or no
// column for the profile. Goal nutrients are never resolved here; their
// target is the user's calorie goal.
func ResolveDailyValue(meta domain.NutrientMeta, profile domain.Profile) (float64, bool) {
	if meta.IsGoal || meta.DVKey == "" || meta.DVSource == "" {
		return 0, false
	}

	var table map[string]dvRecord
	switch meta.DVSource {
	case domain.DVSourceDRV:
		table = drvFoodComponents
	case domain.DVSourceRDI:
		table = rdiNutrients
	default:
		return 0, false
	}

	record, ok := table[meta.DVKey]
	if !ok {
		return 0, false
	}
	value := record.forProfile(profile)
	if value == nil {
		return 0, false
	}
	return *value, true
}
