package usda

import (
	"github.com/macrolens/nutrilog/internal/domain"
)

// foodDetails is the /v1/food/{id} payload.
type foodDetails struct {
	FdcID         int            `json:"fdcId"`
	Description   string         `json:"description"`
	DataType      string         `json:"dataType"`
	FoodNutrients []foodNutrient `json:"foodNutrients"`
}

// foodNutrient covers both wire shapes FDC uses: the full format nests the
// identifier under "nutrient" and reports "amount"; the abridged and search
// formats flatten it into "nutrientId"/"nutrientNumber" and report "value".
type foodNutrient struct {
	NutrientID     int      `json:"nutrientId,omitempty"`
	NutrientNumber string   `json:"nutrientNumber,omitempty"`
	Value          *float64 `json:"value,omitempty"`
	Amount         *float64 `json:"amount,omitempty"`
	Nutrient       *struct {
		ID     int    `json:"id"`
		Number string `json:"number"`
	} `json:"nutrient,omitempty"`
}

// searchResponse is the /v1/foods/search payload.
type searchResponse struct {
	Foods []struct {
		FdcID       int    `json:"fdcId"`
		Description string `json:"description"`
		DataType    string `json:"dataType"`
	} `json:"foods"`
	TotalHits   int `json:"totalHits"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// MapToFoodRecord converts an FDC food payload to a domain record.
func MapToFoodRecord(food *foodDetails) *domain.FoodRecord {
	return &domain.FoodRecord{
		FdcID:       food.FdcID,
		Description: food.Description,
		DataType:    food.DataType,
		Nutrients:   extractNutrients(food.FoodNutrients),
	}
}

// extractNutrients keeps every measured nutrient, whichever wire shape it
// arrived in. Entries without an amount are dropped so they read as absent.
func extractNutrients(raw []foodNutrient) []domain.FoodNutrient {
	nutrients := make([]domain.FoodNutrient, 0, len(raw))

	for _, n := range raw {
		amount := n.Amount
		if amount == nil {
			amount = n.Value
		}
		if amount == nil {
			continue
		}

		out := domain.FoodNutrient{
			NutrientID: n.NutrientID,
			Number:     n.NutrientNumber,
			Amount:     *amount,
		}
		if n.Nutrient != nil {
			if out.NutrientID == 0 {
				out.NutrientID = n.Nutrient.ID
			}
			if out.Number == "" {
				out.Number = n.Nutrient.Number
			}
		}
		nutrients = append(nutrients, out)
	}

	return nutrients
}

func mapSearchResults(resp *searchResponse) []domain.FoodSearchResult {
	results := make([]domain.FoodSearchResult, 0, len(resp.Foods))
	for _, f := range resp.Foods {
		results = append(results, domain.FoodSearchResult{
			FdcID:       f.FdcID,
			Description: f.Description,
			DataType:    f.DataType,
		})
	}
	return results
}
