package model

import "time"

// OperatorOverride - переопределение исхода оператором.
// На дорожку активно не более одного. Деактивируется в момент использования,
// поэтому влияет ровно на один раунд
type OperatorOverride struct {
	ID            int64
	Track         string
	WinningNumber int
	OperatorID    int
	Active        bool
	CreatedAt     time.Time
}
