package usecase

import (
	"strconv"

	"github.com/macrolens/nutrilog/internal/domain"
	"github.com/macrolens/nutrilog/internal/nutrition"
)

// MatchAmount returns the per-100g amount nutrients carry for code.
//
// An entry matches when its nutrient number equals the code's decimal form or
// its numeric id equals the code. When nothing matches and the registry
// defines a fallback code, the same check is repeated for the fallback. The
// first match wins.
func MatchAmount(nutrients []domain.FoodNutrient, code domain.NutrientCode) (float64, bool) {
	if amount, ok := findByCode(nutrients, code); ok {
		return amount, true
	}

	meta, ok := nutrition.Lookup(code)
	if !ok || meta.Fallback == 0 {
		return 0, false
	}
	return findByCode(nutrients, meta.Fallback)
}

func findByCode(nutrients []domain.FoodNutrient, code domain.NutrientCode) (float64, bool) {
	number := strconv.Itoa(int(code))
	for _, n := range nutrients {
		if n.Number == number || n.NutrientID == int(code) {
			return n.Amount, true
		}
	}
	return 0, false
}
