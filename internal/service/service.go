package service

import (
	"context"
	"time"

	"wingo_backend/internal/model"
)

type WingoService interface {
	// GetOpenRound - текущий открытый раунд дорожки, создает при необходимости
	GetOpenRound(ctx context.Context, track string) (*model.Round, error)
	GetHistory(ctx context.Context, track string, limit int) ([]model.Round, error)
	PlaceBet(ctx context.Context, req model.PlaceBet) (*model.Bet, error)
	// Sweep - закрывает просроченные раунды, дорасчитывает застрявшие,
	// следит чтобы у каждой дорожки был открытый раунд
	Sweep(ctx context.Context, now time.Time) error

	// Операторская часть
	RiskSnapshot(ctx context.Context, track string) (*model.RiskSnapshot, error)
	SetOverride(ctx context.Context, track string, number int, operatorID int) (*model.OperatorOverride, error)
	ActiveOverrides(ctx context.Context) ([]model.OperatorOverride, error)
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, user *model.User) (*model.AuthData, error)
	Refresh(ctx context.Context, data *model.AuthData) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}
