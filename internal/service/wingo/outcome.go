package wingo

import (
	"fmt"
	"strings"

	"wingo_backend/internal/model"

	"github.com/shopspring/decimal"
)

const (
	// Диапазон выигрышных значений
	numberMin = 0
	numberMax = 9
	// Значения 0-4 маленькие, 5-9 большие
	sizeSplit = 5
)

// Таблица множителей выплат. Фиксированные константы,
// множитель фиксируется на ставке в момент размещения
var (
	multiplierNumber = decimal.NewFromInt(9)
	multiplierColor  = decimal.NewFromInt(2)
	multiplierViolet = decimal.RequireFromString("4.5")
	multiplierSize   = decimal.NewFromInt(2)
)

// outcomeTags - единственное место, где значение отображается в теги.
// Четные красные, нечетные зеленые. Граничные значения 0 и 5 дополнительно
// фиолетовые и при этом сохраняют свой цвет по четности - двойное членство
// намеренное, по нему платит ставка на фиолетовый
func outcomeTags(number int) (model.Size, []model.Color) {
	size := model.SizeSmall
	if number >= sizeSplit {
		size = model.SizeBig
	}

	parity := model.ColorRed
	if number%2 == 1 {
		parity = model.ColorGreen
	}

	colors := []model.Color{parity}
	if number == numberMin || number == sizeSplit {
		colors = append(colors, model.ColorViolet)
	}

	return size, colors
}

// selectionWins - выиграл бы выбор при выпадении number.
// Используется и расчетом, и аналитикой риска, чтобы их результаты совпадали
func selectionWins(sel model.BetSelection, number int) bool {
	size, colors := outcomeTags(number)

	switch sel.Category {
	case model.BetCategoryNumber:
		return sel.Number == number
	case model.BetCategoryColor:
		for _, c := range colors {
			if c == sel.Color {
				return true
			}
		}
		return false
	case model.BetCategorySize:
		return sel.Size == size
	}

	return false
}

// payoutMultiplier - множитель выплаты для выбора
func payoutMultiplier(sel model.BetSelection) decimal.Decimal {
	switch sel.Category {
	case model.BetCategoryNumber:
		return multiplierNumber
	case model.BetCategoryColor:
		if sel.Color == model.ColorViolet {
			return multiplierViolet
		}
		return multiplierColor
	case model.BetCategorySize:
		return multiplierSize
	}

	return decimal.Zero
}

// outcomeLabel - человекочитаемая метка исхода для реестра операций
func outcomeLabel(number int) string {
	size, colors := outcomeTags(number)
	parts := make([]string, 0, len(colors)+1)
	for _, c := range colors {
		parts = append(parts, string(c))
	}
	parts = append(parts, string(size))
	return fmt.Sprintf("%d %s", number, strings.Join(parts, " "))
}
