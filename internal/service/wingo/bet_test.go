package wingo

import (
	"context"
	"testing"
	"time"

	"wingo_backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRound(t *testing.T, s *serv) *model.Round {
	t.Helper()
	round, err := s.GetOpenRound(context.Background(), "wingo_1m")
	require.NoError(t, err)
	require.Equal(t, model.RoundStatusOpen, round.Status)
	return round
}

func TestPlaceBetFixesPotentialPayout(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s, deps := newTestServ(now)
	deps.userRepo.balances[1] = decimal.NewFromInt(1000)

	round := openTestRound(t, s)

	bet, err := s.PlaceBet(context.Background(), model.PlaceBet{
		RoundID:   round.ID,
		UserID:    1,
		Selection: model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorViolet},
		Amount:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("450").Equal(bet.PotentialPayout))
	assert.True(t, decimal.NewFromInt(900).Equal(deps.userRepo.balances[1]), "списание при размещении")
}

func TestPlaceBetRejectsInvalidInput(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s, deps := newTestServ(now)
	deps.userRepo.balances[1] = decimal.NewFromInt(1000)

	round := openTestRound(t, s)

	_, err := s.PlaceBet(context.Background(), model.PlaceBet{
		RoundID:   round.ID,
		UserID:    1,
		Selection: model.BetSelection{Category: model.BetCategoryNumber, Number: 3},
		Amount:    decimal.Zero,
	})
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	_, err = s.PlaceBet(context.Background(), model.PlaceBet{
		RoundID:   round.ID,
		UserID:    1,
		Selection: model.BetSelection{Category: model.BetCategoryNumber, Number: 11},
		Amount:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, model.ErrInvalidSelection)

	assert.True(t, decimal.NewFromInt(1000).Equal(deps.userRepo.balances[1]), "баланс не тронут")
}

func TestPlaceBetRejectsLateBet(t *testing.T) {
	start := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s, deps := newTestServ(start)
	deps.userRepo.balances[1] = decimal.NewFromInt(1000)

	round := openTestRound(t, s)

	// За 5 секунд до дедлайна окно уже закрыто (отсечка 10 секунд)
	s.now = func() time.Time { return round.ClosesAt.Add(-5 * time.Second) }

	_, err := s.PlaceBet(context.Background(), model.PlaceBet{
		RoundID:   round.ID,
		UserID:    1,
		Selection: model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorRed},
		Amount:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, model.ErrBettingWindowClosed)

	// Ровно на границе отсечки тоже поздно
	s.now = func() time.Time { return round.ClosesAt.Add(-10 * time.Second) }

	_, err = s.PlaceBet(context.Background(), model.PlaceBet{
		RoundID:   round.ID,
		UserID:    1,
		Selection: model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorRed},
		Amount:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, model.ErrBettingWindowClosed)

	// Чуть раньше границы ставка проходит
	s.now = func() time.Time { return round.ClosesAt.Add(-11 * time.Second) }

	_, err = s.PlaceBet(context.Background(), model.PlaceBet{
		RoundID:   round.ID,
		UserID:    1,
		Selection: model.BetSelection{Category: model.BetCategoryColor, Color: model.ColorRed},
		Amount:    decimal.NewFromInt(10),
	})
	assert.NoError(t, err)
}

func TestPlaceBetInsufficientFunds(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s, deps := newTestServ(now)
	deps.userRepo.balances[1] = decimal.NewFromInt(50)

	round := openTestRound(t, s)

	_, err := s.PlaceBet(context.Background(), model.PlaceBet{
		RoundID:   round.ID,
		UserID:    1,
		Selection: model.BetSelection{Category: model.BetCategoryNumber, Number: 3},
		Amount:    decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, model.ErrInsufficientFunds)

	// Ставка не записана, баланс не изменился
	bets, _ := deps.betRepo.ListByRound(context.Background(), round.ID)
	assert.Empty(t, bets)
	assert.True(t, decimal.NewFromInt(50).Equal(deps.userRepo.balances[1]))
}

func TestPlaceBetRejectsClosedRound(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s, deps := newTestServ(now)
	deps.userRepo.balances[1] = decimal.NewFromInt(1000)

	round := openTestRound(t, s)

	closed, err := deps.roundRepo.CloseRound(context.Background(), round.ID)
	require.NoError(t, err)
	require.True(t, closed)

	_, err = s.PlaceBet(context.Background(), model.PlaceBet{
		RoundID:   round.ID,
		UserID:    1,
		Selection: model.BetSelection{Category: model.BetCategoryNumber, Number: 3},
		Amount:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, model.ErrRoundNotOpen)

	_, err = s.PlaceBet(context.Background(), model.PlaceBet{
		RoundID:   999,
		UserID:    1,
		Selection: model.BetSelection{Category: model.BetCategoryNumber, Number: 3},
		Amount:    decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, model.ErrRoundNotFound)
}
