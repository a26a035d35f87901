package usda

import (
	"encoding/json"
	"testing"

	"github.com/macrolens/nutrilog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNutrients(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []domain.FoodNutrient
	}{
		{
			name: "full format",
			raw:  `[{"nutrient": {"id": 1003, "number": "203"}, "amount": 7.7}]`,
			want: []domain.FoodNutrient{{NutrientID: 1003, Number: "203", Amount: 7.7}},
		},
		{
			name: "abridged format",
			raw:  `[{"nutrientId": 1008, "nutrientNumber": "208", "value": 149}]`,
			want: []domain.FoodNutrient{{NutrientID: 1008, Number: "208", Amount: 149}},
		},
		{
			name: "flat id with nested number",
			raw:  `[{"nutrientId": 409, "nutrient": {"number": "409"}, "amount": 2.5}]`,
			want: []domain.FoodNutrient{{NutrientID: 409, Number: "409", Amount: 2.5}},
		},
		{
			name: "number only",
			raw:  `[{"nutrient": {"number": "435"}, "amount": 12}]`,
			want: []domain.FoodNutrient{{Number: "435", Amount: 12}},
		},
		{
			name: "zero amount is kept",
			raw:  `[{"nutrient": {"id": 1079, "number": "291"}, "amount": 0}]`,
			want: []domain.FoodNutrient{{NutrientID: 1079, Number: "291", Amount: 0}},
		},
		{
			name: "entry without amount is dropped",
			raw:  `[{"nutrient": {"id": 1079, "number": "291"}}]`,
			want: []domain.FoodNutrient{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw []foodNutrient
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &raw))

			assert.Equal(t, tt.want, extractNutrients(raw))
		})
	}
}

func TestMapToFoodRecord(t *testing.T) {
	var details foodDetails
	require.NoError(t, json.Unmarshal([]byte(detailBody), &details))

	got := MapToFoodRecord(&details)

	assert.Equal(t, 171688, got.FdcID)
	assert.Equal(t, "Apples, fuji, with skin, raw", got.Description)
	assert.Equal(t, "SR Legacy", got.DataType)
	assert.Len(t, got.Nutrients, 2)
}
