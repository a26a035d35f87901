package domain

// MealIngredient is a food and the grams of it used in a meal.
type MealIngredient struct {
	FdcID       int     `json:"fdcId"`
	Description string  `json:"description"`
	Grams       float64 `json:"grams"`
}

// MealTemplate is a reusable bundle of ingredients.
type MealTemplate struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Ingredients []MealIngredient `json:"ingredients"`
}

// MealInput carries the user editable fields of a meal template.
type MealInput struct {
	Name        string           `json:"name"`
	Ingredients []MealIngredient `json:"ingredients"`
}
