package domain

// NutrientCode identifies a tracked nutrient by its legacy USDA nutrient number
// (208 = energy, 203 = protein, ...).
type NutrientCode int

// Category groups nutrients for display.
type Category string

const (
	CategoryMacros   Category = "Macros"
	CategoryVitamins Category = "Vitamins"
	CategoryMinerals Category = "Minerals"
)

// Categories lists categories in display order.
var Categories = []Category{CategoryMacros, CategoryVitamins, CategoryMinerals}

// DVSource names the daily value table a nutrient is looked up in.
type DVSource string

const (
	DVSourceDRV DVSource = "drv" // daily reference values (food components)
	DVSourceRDI DVSource = "rdi" // reference daily intakes (vitamins, minerals)
)

// NutrientMeta is the static display metadata of a tracked nutrient.
type NutrientMeta struct {
	Name     string   `json:"name"`
	Unit     string   `json:"unit"`
	Category Category `json:"category"`
	DVKey    string   `json:"dvKey,omitempty"`
	DVSource DVSource `json:"dvSource,omitempty"`
	// IsGoal marks the calorie entry, whose daily value is the user's goal.
	IsGoal bool `json:"isGoal,omitempty"`
	// Fallback is an alternate code some sources report the nutrient under.
	Fallback NutrientCode `json:"fallback,omitempty"`
}

// NutrientStatus tells whether any logged entry supplied a value.
type NutrientStatus string

const (
	StatusPresent NutrientStatus = "present"
	StatusMissing NutrientStatus = "missing"
)

// NutrientTotal is the running total of one nutrient.
type NutrientTotal struct {
	Total  float64        `json:"total"`
	Status NutrientStatus `json:"status"`
}

// Totals maps every tracked code to its running total.
type Totals map[NutrientCode]NutrientTotal

// NutrientReportRow is one rendered line of the nutrition panel.
// Amount and PercentDV are nil when the value is rendered as a dash.
type NutrientReportRow struct {
	Code       NutrientCode   `json:"code"`
	Name       string         `json:"name"`
	Unit       string         `json:"unit"`
	Category   Category       `json:"category"`
	Status     NutrientStatus `json:"status"`
	Amount     *float64       `json:"amount"`
	DailyValue *float64       `json:"dailyValue"`
	PercentDV  *float64       `json:"percentDv"`
}

// Snapshot is the totals view returned to clients.
type Snapshot struct {
	Profile     Profile             `json:"profile"`
	CalorieGoal float64             `json:"calorieGoal"`
	Totals      Totals              `json:"totals"`
	Rows        []NutrientReportRow `json:"rows"`
	Hydrated    []int               `json:"hydrated,omitempty"`
}
