package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/macrolens/nutrilog/internal/domain"
	"github.com/macrolens/nutrilog/internal/nutrition"
)

// TotalsService folds log entries into per-nutrient totals.
type TotalsService struct {
	cache domain.FoodCache
}

// NewTotalsService creates a totals service reading meal ingredients from cache.
func NewTotalsService(cache domain.FoodCache) *TotalsService {
	return &TotalsService{cache: cache}
}

// portion is one source of nutrients scaled by grams/100.
type portion struct {
	nutrients []domain.FoodNutrient
	grams     float64
}

// EmptyTotals returns every tracked code at zero and missing.
func EmptyTotals() domain.Totals {
	totals := make(domain.Totals)
	for _, code := range nutrition.TrackedCodes() {
		totals[code] = domain.NutrientTotal{Total: 0, Status: domain.StatusMissing}
	}
	return totals
}

// Aggregate sums every entry's contribution. Food entries contribute their
// logged snapshot; meal entries are resolved against the cache now.
func (s *TotalsService) Aggregate(ctx context.Context, entries []domain.LogEntry) domain.Totals {
	totals := EmptyTotals()
	for _, entry := range entries {
		accumulate(totals, s.portions(ctx, entry))
	}
	return totals
}

// MealTotals computes the totals of a meal from cached ingredients only.
func (s *TotalsService) MealTotals(ctx context.Context, ingredients []domain.MealIngredient) domain.Totals {
	totals := EmptyTotals()
	accumulate(totals, s.livePortions(ctx, ingredients))
	return totals
}

// MealCalories previews a meal's calories from the cache. The second result
// is false when no cached ingredient reports energy.
func (s *TotalsService) MealCalories(ctx context.Context, ingredients []domain.MealIngredient) (float64, bool) {
	calories := s.MealTotals(ctx, ingredients)[nutrition.CodeCalories]
	if calories.Status != domain.StatusPresent {
		return 0, false
	}
	return calories.Total, true
}

func (s *TotalsService) portions(ctx context.Context, entry domain.LogEntry) []portion {
	switch entry.Kind {
	case domain.EntryKindFood:
		if entry.Food == nil {
			return nil
		}
		return []portion{{nutrients: entry.Food.Nutrients, grams: entry.Food.Grams}}
	case domain.EntryKindMeal:
		if entry.Meal == nil {
			return nil
		}
		return s.livePortions(ctx, entry.Meal.Ingredients)
	default:
		log.Printf("[Totals] Skipping entry %s with unknown kind %q", entry.ID, entry.Kind)
		return nil
	}
}

// livePortions reads each ingredient's record from the cache. Uncached
// ingredients contribute nothing.
func (s *TotalsService) livePortions(ctx context.Context, ingredients []domain.MealIngredient) []portion {
	portions := make([]portion, 0, len(ingredients))
	for _, ingredient := range ingredients {
		food, err := s.cache.Get(ctx, ingredient.FdcID)
		if err != nil {
			if !errors.Is(err, domain.ErrCacheMiss) {
				log.Printf("[Totals] Cache read for %d failed: %v", ingredient.FdcID, err)
			}
			continue
		}
		portions = append(portions, portion{nutrients: food.Nutrients, grams: ingredient.Grams})
	}
	return portions
}

func accumulate(totals domain.Totals, portions []portion) {
	for _, p := range portions {
		for _, code := range nutrition.TrackedCodes() {
			amount, ok := MatchAmount(p.nutrients, code)
			if !ok {
				continue
			}
			t := totals[code]
			t.Total += amount * p.grams / 100
			t.Status = domain.StatusPresent
			totals[code] = t
		}
	}
}

// BuildReport renders totals against the daily values of profile. The
// calorie row uses calorieGoal as its daily value.
func BuildReport(totals domain.Totals, profile domain.Profile, calorieGoal float64) []domain.NutrientReportRow {
	codes := nutrition.TrackedCodes()
	rows := make([]domain.NutrientReportRow, 0, len(codes))

	for _, code := range codes {
		meta, _ := nutrition.Lookup(code)
		total, ok := totals[code]
		if !ok {
			total = domain.NutrientTotal{Status: domain.StatusMissing}
		}

		row := domain.NutrientReportRow{
			Code:     code,
			Name:     meta.Name,
			Unit:     meta.Unit,
			Category: meta.Category,
			Status:   total.Status,
		}

		if meta.IsGoal {
			if calorieGoal > 0 {
				row.DailyValue = floatPtr(calorieGoal)
			}
		} else if dv, ok := nutrition.ResolveDailyValue(meta, profile); ok {
			row.DailyValue = floatPtr(dv)
		}

		if total.Status == domain.StatusPresent {
			row.Amount = floatPtr(total.Total)
			if row.DailyValue != nil && *row.DailyValue > 0 {
				row.PercentDV = floatPtr(total.Total / *row.DailyValue * 100)
			}
		}

		rows = append(rows, row)
	}

	return rows
}

func floatPtr(f float64) *float64 {
	return &f
}
