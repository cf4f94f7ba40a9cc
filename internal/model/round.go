package model

import "time"

// RoundStatus - статус раунда. Переходы только open -> closed -> settled
type RoundStatus string

const (
	RoundStatusOpen    RoundStatus = "open"
	RoundStatusClosed  RoundStatus = "closed"
	RoundStatusSettled RoundStatus = "settled"
)

// Track - конфигурация одной дорожки (независимого цикла раундов)
type Track struct {
	Name     string
	Suffix   string // Суффикс для периода, например "W1"
	Duration time.Duration
}

// Round - один раунд ставок на дорожке.
// Выигрышные поля (WinningNumber, Colors, Size) заполняются один раз при расчете
type Round struct {
	ID            int64
	Track         string
	Period        string // Человекочитаемый номер периода, уникален в рамках дорожки
	Status        RoundStatus
	OpenedAt      time.Time
	ClosesAt      time.Time
	WinningNumber *int
	WinningColors []Color
	WinningSize   *Size
	OperatorPick  bool // true если значение выбрано оператором через переопределение
}

// Expired - истек ли дедлайн раунда
func (r *Round) Expired(now time.Time) bool {
	return !now.Before(r.ClosesAt)
}
