package domain

// DataTypeCached marks search results served from the local food cache.
const DataTypeCached = "Cached"

// FoodNutrient is one measurement on a food record, per 100 g of the food.
// Sources expose the identifier as a numeric id, a string nutrient number,
// or both.
type FoodNutrient struct {
	NutrientID int     `json:"nutrientId,omitempty"`
	Number     string  `json:"number,omitempty"`
	Amount     float64 `json:"amount"`
}

// FoodRecord is the nutrient composition of one FoodData Central food.
type FoodRecord struct {
	FdcID       int            `json:"fdcId"`
	Description string         `json:"description"`
	DataType    string         `json:"dataType,omitempty"`
	Nutrients   []FoodNutrient `json:"foodNutrients"`
}

// FoodSearchResult is the lightweight form returned by searches.
type FoodSearchResult struct {
	FdcID       int    `json:"fdcId"`
	Description string `json:"description"`
	DataType    string `json:"dataType"`
}

// SavedFood is a food the user starred for quick access.
type SavedFood struct {
	FdcID       int    `json:"fdcId"`
	Description string `json:"description"`
}
