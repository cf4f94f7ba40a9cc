package repository

import (
	"context"
	"time"

	"wingo_backend/internal/model"

	"github.com/shopspring/decimal"
)

type RoundRepository interface {
	CreateRound(ctx context.Context, round *model.Round) (int64, error)
	GetRoundByID(ctx context.Context, id int64) (*model.Round, error)
	// GetOpenRound - текущий открытый раунд дорожки (model.ErrRoundNotFound если нет)
	GetOpenRound(ctx context.Context, track string) (*model.Round, error)
	// CloseRound - CAS перевод open -> closed. false если статус уже не open
	CloseRound(ctx context.Context, id int64) (bool, error)
	// SetOutcome - записывает выигрышное значение и теги ровно один раз.
	// false если значение уже было записано
	SetOutcome(ctx context.Context, id int64, number int, colors []model.Color, size model.Size, operatorPick bool) (bool, error)
	// MarkSettled - CAS перевод closed -> settled. false если статус уже не closed
	MarkSettled(ctx context.Context, id int64) (bool, error)
	// ListClosed - раунды, застрявшие в closed (расчет не завершен), для повтора
	ListClosed(ctx context.Context) ([]model.Round, error)
	GetHistory(ctx context.Context, track string, limit int) ([]model.Round, error)
}

type BetRepository interface {
	CreateBet(ctx context.Context, bet *model.Bet) (int64, error)
	ListByRound(ctx context.Context, roundID int64) ([]model.Bet, error)
	ListUnresolvedByRound(ctx context.Context, roundID int64) ([]model.Bet, error)
	// MarkResolved - записывает исход ставки ровно один раз.
	// false если ставка уже рассчитана (защита от повторного прогона)
	MarkResolved(ctx context.Context, betID int64, won bool, paid decimal.Decimal) (bool, error)
}

type OverrideRepository interface {
	// DeactivateActive - снимает активное переопределение дорожки, если оно есть
	DeactivateActive(ctx context.Context, track string) error
	CreateOverride(ctx context.Context, override *model.OperatorOverride) (int64, error)
	// GetActive - активное переопределение дорожки (nil если нет)
	GetActive(ctx context.Context, track string) (*model.OperatorOverride, error)
	ListActive(ctx context.Context) ([]model.OperatorOverride, error)
	// Consume - деактивирует переопределение в момент использования.
	// false если оно уже было использовано
	Consume(ctx context.Context, id int64) (bool, error)
}

// RiskCacheRepository - короткоживущий кэш срезов риска для операторской консоли
type RiskCacheRepository interface {
	Get(ctx context.Context, roundID int64) (*model.RiskSnapshot, error)
	Set(ctx context.Context, snapshot *model.RiskSnapshot, ttl time.Duration) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}

// UserRepository - кошелек и учетные записи. Debit и Credit выполняются
// одним атомарным UPDATE, чтобы ставка и выплата не теряли обновления
// при гонке между собой или с внешними операциями с балансом
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	GetBalance(ctx context.Context, id int) (decimal.Decimal, error)
	// Debit - списывает amount, model.ErrInsufficientFunds если средств не хватает
	Debit(ctx context.Context, id int, amount decimal.Decimal) error
	Credit(ctx context.Context, id int, amount decimal.Decimal) error
}
