package wingo

import (
	"context"

	"wingo_backend/internal/metrics"
	"wingo_backend/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PlaceBet - валидирует и атомарно записывает ставку против открытого раунда.
// Списание и запись ставки идут одной транзакцией: ставка либо полностью
// записана с зарезервированными средствами, либо не существует вовсе
func (s *serv) PlaceBet(ctx context.Context, req model.PlaceBet) (*model.Bet, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, model.ErrInvalidAmount
	}
	if !req.Selection.Valid() {
		return nil, model.ErrInvalidSelection
	}

	round, err := s.roundRepo.GetRoundByID(ctx, req.RoundID)
	if err != nil {
		return nil, err
	}
	if round.Status != model.RoundStatusOpen {
		return nil, model.ErrRoundNotOpen
	}

	now := s.now()
	// Окно ставок закрывается за cutoff до дедлайна, чтобы расчет
	// получил чистую границу видимости ставок
	if !now.Before(round.ClosesAt.Add(-s.cutoff)) {
		return nil, model.ErrBettingWindowClosed
	}

	bet := &model.Bet{
		RoundID:   round.ID,
		UserID:    req.UserID,
		Selection: req.Selection,
		Amount:    req.Amount,
		// Потенциальная выплата фиксируется сейчас: смена таблицы
		// множителей не меняет обещание по уже размещенной ставке
		PotentialPayout: req.Amount.Mul(payoutMultiplier(req.Selection)),
		CreatedAt:       now,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// Сначала списание, затем запись ставки
		if err := s.userRepo.Debit(ctx, req.UserID, req.Amount); err != nil {
			return err
		}

		id, err := s.betRepo.CreateBet(ctx, bet)
		if err != nil {
			return err
		}
		bet.ID = id

		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BetsPlaced.Inc()
	s.logger.Info("bet placed",
		zap.Int64("bet_id", bet.ID),
		zap.Int64("round_id", round.ID),
		zap.Int("user_id", req.UserID),
		zap.String("category", string(req.Selection.Category)),
		zap.String("amount", req.Amount.String()))

	return bet, nil
}
