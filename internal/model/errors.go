package model

import "errors"

// Ошибки валидации возвращаются вызывающему как типизированный результат,
// ErrDuplicateOpenRound - фатальное нарушение целостности (см. Sweep)
var (
	ErrRoundNotOpen        = errors.New("round is not open")
	ErrBettingWindowClosed = errors.New("betting window is closed")
	ErrInvalidAmount       = errors.New("invalid bet amount")
	ErrInvalidSelection    = errors.New("invalid bet selection")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrRoundNotFound       = errors.New("round not found")
	ErrTrackNotFound       = errors.New("track not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrSettlementRetryable = errors.New("settlement failed, will retry")
	ErrDuplicateOpenRound  = errors.New("duplicate open round for track")
)
