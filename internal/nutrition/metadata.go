// Package nutrition holds the tracked nutrient registry and the daily value
// tables used to express totals as %DV.
package nutrition

import "github.com/macrolens/nutrilog/internal/domain"

// Tracked nutrient codes used outside the registry.
const (
	CodeCalories domain.NutrientCode = 208
	CodeProtein  domain.NutrientCode = 203
	CodeFat      domain.NutrientCode = 204
	CodeCarbs    domain.NutrientCode = 205
	CodeFiber    domain.NutrientCode = 291
	CodeNiacin   domain.NutrientCode = 406
	CodeFolate   domain.NutrientCode = 435
)

type registryEntry struct {
	code domain.NutrientCode
	meta domain.NutrientMeta
}

// registry is kept as a slice so display order is stable.
var registry = []registryEntry{
	{208, domain.NutrientMeta{Name: "Calories", Unit: "kcal", Category: domain.CategoryMacros, IsGoal: true}},
	{203, domain.NutrientMeta{Name: "Protein", Unit: "g", Category: domain.CategoryMacros, DVKey: "protein", DVSource: domain.DVSourceDRV}},
	{204, domain.NutrientMeta{Name: "Total Fat", Unit: "g", Category: domain.CategoryMacros, DVKey: "total_fat", DVSource: domain.DVSourceDRV}},
	{205, domain.NutrientMeta{Name: "Total Carbohydrate", Unit: "g", Category: domain.CategoryMacros, DVKey: "total_carbohydrate", DVSource: domain.DVSourceDRV}},
	{291, domain.NutrientMeta{Name: "Dietary Fiber", Unit: "g", Category: domain.CategoryMacros, DVKey: "dietary_fiber", DVSource: domain.DVSourceDRV}},
	{320, domain.NutrientMeta{Name: "Vitamin A (RAE)", Unit: "mcg", Category: domain.CategoryVitamins, DVKey: "vitamin_a", DVSource: domain.DVSourceRDI}},
	{401, domain.NutrientMeta{Name: "Vitamin C", Unit: "mg", Category: domain.CategoryVitamins, DVKey: "vitamin_c", DVSource: domain.DVSourceRDI}},
	{328, domain.NutrientMeta{Name: "Vitamin D", Unit: "mcg", Category: domain.CategoryVitamins, DVKey: "vitamin_d", DVSource: domain.DVSourceRDI}},
	{323, domain.NutrientMeta{Name: "Vitamin E", Unit: "mg", Category: domain.CategoryVitamins, DVKey: "vitamin_e", DVSource: domain.DVSourceRDI}},
	{430, domain.NutrientMeta{Name: "Vitamin K", Unit: "mcg", Category: domain.CategoryVitamins, DVKey: "vitamin_k", DVSource: domain.DVSourceRDI}},
	{404, domain.NutrientMeta{Name: "Thiamin (B1)", Unit: "mg", Category: domain.CategoryVitamins, DVKey: "thiamin", DVSource: domain.DVSourceRDI}},
	{405, domain.NutrientMeta{Name: "Riboflavin (B2)", Unit: "mg", Category: domain.CategoryVitamins, DVKey: "riboflavin", DVSource: domain.DVSourceRDI}},
	// Niacin is often only reported as niacin equivalents (409).
	{406, domain.NutrientMeta{Name: "Niacin (B3)", Unit: "mg", Category: domain.CategoryVitamins, DVKey: "niacin", DVSource: domain.DVSourceRDI, Fallback: 409}},
	{415, domain.NutrientMeta{Name: "Vitamin B6", Unit: "mg", Category: domain.CategoryVitamins, DVKey: "vitamin_b6", DVSource: domain.DVSourceRDI}},
	// Folate DFE falls back to total folate (417).
	{435, domain.NutrientMeta{Name: "Folate (DFE)", Unit: "mcg", Category: domain.CategoryVitamins, DVKey: "folate", DVSource: domain.DVSourceRDI, Fallback: 417}},
	{418, domain.NutrientMeta{Name: "Vitamin B12", Unit: "mcg", Category: domain.CategoryVitamins, DVKey: "vitamin_b12", DVSource: domain.DVSourceRDI}},
	{301, domain.NutrientMeta{Name: "Calcium", Unit: "mg", Category: domain.CategoryMinerals, DVKey: "calcium", DVSource: domain.DVSourceRDI}},
	{303, domain.NutrientMeta{Name: "Iron", Unit: "mg", Category: domain.CategoryMinerals, DVKey: "iron", DVSource: domain.DVSourceRDI}},
	{306, domain.NutrientMeta{Name: "Potassium", Unit: "mg", Category: domain.CategoryMinerals, DVKey: "potassium", DVSource: domain.DVSourceRDI}},
	{304, domain.NutrientMeta{Name: "Magnesium", Unit: "mg", Category: domain.CategoryMinerals, DVKey: "magnesium", DVSource: domain.DVSourceRDI}},
	{309, domain.NutrientMeta{Name: "Zinc", Unit: "mg", Category: domain.CategoryMinerals, DVKey: "zinc", DVSource: domain.DVSourceRDI}},
	{307, domain.NutrientMeta{Name: "Sodium", Unit: "mg", Category: domain.CategoryMinerals, DVKey: "sodium", DVSource: domain.DVSourceDRV}},
}

var byCode = func() map[domain.NutrientCode]domain.NutrientMeta {
	m := make(map[domain.NutrientCode]domain.NutrientMeta, len(registry))
	for _, e := range registry {
		m[e.code] = e.meta
	}
	return m
}()

// TrackedCodes returns every tracked code in display order.
func TrackedCodes() []domain.NutrientCode {
	codes := make([]domain.NutrientCode, len(registry))
	for i, e := range registry {
		codes[i] = e.code
	}
	return codes
}

// Lookup returns the metadata for code.
func Lookup(code domain.NutrientCode) (domain.NutrientMeta, bool) {
	meta, ok := byCode[code]
	return meta, ok
}
