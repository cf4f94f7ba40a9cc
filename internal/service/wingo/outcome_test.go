package wingo

import (
	"testing"

	"wingo_backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeTags(t *testing.T) {
	cases := []struct {
		number int
		size   model.Size
		colors []model.Color
	}{
		{0, model.SizeSmall, []model.Color{model.ColorRed, model.ColorViolet}},
		{1, model.SizeSmall, []model.Color{model.ColorGreen}},
		{2, model.SizeSmall, []model.Color{model.ColorRed}},
		{3, model.SizeSmall, []model.Color{model.ColorGreen}},
		{4, model.SizeSmall, []model.Color{model.ColorRed}},
		{5, model.SizeBig, []model.Color{model.ColorGreen, model.ColorViolet}},
		{6, model.SizeBig, []model.Color{model.ColorRed}},
		{7, model.SizeBig, []model.Color{model.ColorGreen}},
		{8, model.SizeBig, []model.Color{model.ColorRed}},
		{9, model.SizeBig, []model.Color{model.ColorGreen}},
	}

	for _, tc := range cases {
		size, colors := outcomeTags(tc.number)
		assert.Equal(t, tc.size, size, "number %d", tc.number)
		assert.Equal(t, tc.colors, colors, "number %d", tc.number)
	}
}

func TestSelectionWinsBoundaryValues(t *testing.T) {
	// 0 платит и по красному, и по фиолетовому, и по маленькому
	assert.True(t, selectionWins(model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorRed}, 0))
	assert.True(t, selectionWins(model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorViolet}, 0))
	assert.True(t, selectionWins(model.BetSelection{Category: model.BetCategorySize, Size: model.SizeSmall}, 0))
	assert.False(t, selectionWins(model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorGreen}, 0))

	// 5 платит и по зеленому, и по фиолетовому, и по большому
	assert.True(t, selectionWins(model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorGreen}, 5))
	assert.True(t, selectionWins(model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorViolet}, 5))
	assert.True(t, selectionWins(model.BetSelection{Category: model.BetCategorySize, Size: model.SizeBig}, 5))
	assert.False(t, selectionWins(model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorRed}, 5))

	// Фиолетовый не платит по обычным значениям
	assert.False(t, selectionWins(model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorViolet}, 3))
	assert.False(t, selectionWins(model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorViolet}, 8))

	// Точное значение платит только по совпадению
	assert.True(t, selectionWins(model.BetSelection{Category: model.BetCategoryNumber, Number: 7}, 7))
	assert.False(t, selectionWins(model.BetSelection{Category: model.BetCategoryNumber, Number: 7}, 8))
}

func TestPayoutMultiplier(t *testing.T) {
	assert.True(t, decimal.NewFromInt(9).Equal(
		payoutMultiplier(model.BetSelection{Category: model.BetCategoryNumber, Number: 3})))
	assert.True(t, decimal.NewFromInt(2).Equal(
		payoutMultiplier(model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorRed})))
	assert.True(t, decimal.NewFromInt(2).Equal(
		payoutMultiplier(model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorGreen})))
	assert.True(t, decimal.RequireFromString("4.5").Equal(
		payoutMultiplier(model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorViolet})))
	assert.True(t, decimal.NewFromInt(2).Equal(
		payoutMultiplier(model.BetSelection{Category: model.BetCategorySize, Size: model.SizeBig})))
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "0 red violet small", outcomeLabel(0))
	assert.Equal(t, "5 green violet big", outcomeLabel(5))
	assert.Equal(t, "7 green big", outcomeLabel(7))
}

func TestSelectionValid(t *testing.T) {
	assert.True(t, model.BetSelection{Category: model.BetCategoryNumber, Number: 9}.Valid())
	assert.False(t, model.BetSelection{Category: model.BetCategoryNumber, Number: 10}.Valid())
	assert.False(t, model.BetSelection{Category: model.BetCategoryColor, Color: "blue"}.Valid())
	assert.False(t, model.BetSelection{Category: "parity"}.Valid())
}
