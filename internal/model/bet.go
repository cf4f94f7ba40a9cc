package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// BetCategory - закрытое множество категорий ставок
type BetCategory string

const (
	BetCategoryNumber BetCategory = "number" // Точное значение 0-9
	BetCategoryColor  BetCategory = "color"  // Красный, зеленый или фиолетовый
	BetCategorySize   BetCategory = "size"   // Маленькое (0-4) или большое (5-9)
)

// Color - цветовой тег значения
type Color string

const (
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorViolet Color = "violet"
)

// Size - размерный тег значения
type Size string

const (
	SizeSmall Size = "small"
	SizeBig   Size = "big"
)

// BetSelection - типизированный выбор игрока: категория + цель внутри категории.
// Заполнено только поле соответствующей категории
type BetSelection struct {
	Category BetCategory
	Number   int
	Color    Color
	Size     Size
}

// Valid - проверка, что выбор попадает в закрытое множество
func (s BetSelection) Valid() bool {
	switch s.Category {
	case BetCategoryNumber:
		return s.Number >= 0 && s.Number <= 9
	case BetCategoryColor:
		return s.Color == ColorRed || s.Color == ColorGreen || s.Color == ColorViolet
	case BetCategorySize:
		return s.Size == SizeSmall || s.Size == SizeBig
	}
	return false
}

// Label - человекочитаемая цель выбора
func (s BetSelection) Label() string {
	switch s.Category {
	case BetCategoryNumber:
		return strconv.Itoa(s.Number)
	case BetCategoryColor:
		return string(s.Color)
	case BetCategorySize:
		return string(s.Size)
	}
	return ""
}

// Bet - одна ставка. Привязана к раунду навсегда.
// PotentialPayout фиксируется при создании и не пересчитывается при расчете.
// Won и Paid пишутся ровно один раз движком расчета
type Bet struct {
	ID              int64
	RoundID         int64
	UserID          int
	Selection       BetSelection
	Amount          decimal.Decimal
	PotentialPayout decimal.Decimal
	Won             *bool
	Paid            *decimal.Decimal
	CreatedAt       time.Time
}

// PlaceBet - запрос на размещение ставки
type PlaceBet struct {
	RoundID   int64
	UserID    int
	Selection BetSelection
	Amount    decimal.Decimal
}
