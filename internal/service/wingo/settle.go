package wingo

import (
	"context"
	"errors"
	"fmt"

	"wingo_backend/internal/audit"
	"wingo_backend/internal/metrics"
	"wingo_backend/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Локальный маркер: исход записал параллельный процесс
var errOutcomeTaken = errors.New("outcome already set")

// resolveOutcome - единственное место выбора выигрышного значения.
// Активное переопределение оператора имеет приоритет над случайным выбором
// и расходуется в той же транзакции, в которой записывается исход
func (s *serv) resolveOutcome(ctx context.Context, round *model.Round) error {
	if round.WinningNumber != nil {
		// Исход уже выбран - повторный прогон после сбоя расчета
		return nil
	}

	var (
		number       int
		operatorPick bool
		size         model.Size
		colors       []model.Color
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		override, err := s.overrideRepo.GetActive(ctx, round.Track)
		if err != nil {
			return err
		}

		number = numberMin + s.randInt(numberMax-numberMin+1)
		if override != nil {
			number = override.WinningNumber
			operatorPick = true
		}

		size, colors = outcomeTags(number)

		set, err := s.roundRepo.SetOutcome(ctx, round.ID, number, colors, size, operatorPick)
		if err != nil {
			return err
		}
		if !set {
			// Конкурирующий расчет успел первым - откатываем транзакцию,
			// чтобы переопределение не сгорело впустую
			return errOutcomeTaken
		}

		if operatorPick {
			// Однократность: переопределение гаснет в момент использования
			if _, err := s.overrideRepo.Consume(ctx, override.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if errors.Is(err, errOutcomeTaken) {
		fresh, err := s.roundRepo.GetRoundByID(ctx, round.ID)
		if err != nil {
			return err
		}
		*round = *fresh
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve outcome for round %d: %w", round.ID, err)
	}

	round.WinningNumber = &number
	round.WinningColors = colors
	round.WinningSize = &size
	round.OperatorPick = operatorPick

	s.logger.Info("round outcome resolved",
		zap.Int64("round_id", round.ID),
		zap.String("track", round.Track),
		zap.String("period", round.Period),
		zap.Int("number", number),
		zap.Bool("operator_pick", operatorPick))

	return nil
}

// settle - оценивает каждую ставку раунда против выигрышного значения
// и выплачивает победителям зафиксированную при размещении сумму.
// Сбой на любой ставке оставляет раунд в closed, следующий Sweep
// продолжит с нерассчитанных ставок
func (s *serv) settle(ctx context.Context, round *model.Round) error {
	if round.WinningNumber == nil {
		return fmt.Errorf("round %d has no outcome: %w", round.ID, model.ErrSettlementRetryable)
	}
	number := *round.WinningNumber

	bets, err := s.betRepo.ListUnresolvedByRound(ctx, round.ID)
	if err != nil {
		return fmt.Errorf("list bets for round %d: %w", round.ID, model.ErrSettlementRetryable)
	}

	for i := range bets {
		if err := s.settleBet(ctx, round, &bets[i], number); err != nil {
			metrics.SettlementRetries.Inc()
			s.logger.Error("bet settlement failed",
				zap.Int64("round_id", round.ID),
				zap.Int64("bet_id", bets[i].ID),
				zap.Error(err))
			return fmt.Errorf("settle bet %d: %w", bets[i].ID, model.ErrSettlementRetryable)
		}
	}

	settled, err := s.roundRepo.MarkSettled(ctx, round.ID)
	if err != nil {
		return fmt.Errorf("mark round %d settled: %w", round.ID, model.ErrSettlementRetryable)
	}
	if settled {
		round.Status = model.RoundStatusSettled
		metrics.RoundsSettled.Inc()
		s.logger.Info("round settled",
			zap.Int64("round_id", round.ID),
			zap.String("track", round.Track),
			zap.String("period", round.Period),
			zap.Int("number", number),
			zap.Int("bets", len(bets)))
	}

	return nil
}

// settleBet - атомарная пара "записать исход + начислить выигрыш".
// Условная запись исхода делает повторный вызов на уже
// рассчитанной ставке no-op: двойной выплаты не будет
func (s *serv) settleBet(ctx context.Context, round *model.Round, bet *model.Bet, number int) error {
	won := selectionWins(bet.Selection, number)
	paid := decimal.Zero
	if won {
		// Выплата строго равна зафиксированной при размещении,
		// без пересчета по текущей таблице множителей
		paid = bet.PotentialPayout
	}

	var credited bool
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		marked, err := s.betRepo.MarkResolved(ctx, bet.ID, won, paid)
		if err != nil {
			return err
		}
		if !marked {
			return nil
		}

		if won {
			if err := s.userRepo.Credit(ctx, bet.UserID, paid); err != nil {
				return err
			}
			credited = true
		}

		return nil
	})
	if err != nil {
		return err
	}

	if credited {
		payout, _ := paid.Float64()
		metrics.PayoutTotal.Add(payout)

		// Запись во внешний реестр операций: только на запись, сбой
		// не валит расчет, но обязательно попадает в лог
		rec := audit.BetSettled{
			UserID:  bet.UserID,
			Game:    "wingo",
			Track:   round.Track,
			Period:  round.Period,
			Staked:  bet.Amount,
			Won:     paid,
			Outcome: outcomeLabel(number),
		}
		if err := s.auditPub.PublishBetSettled(ctx, rec); err != nil {
			s.logger.Error("audit publish failed",
				zap.Int64("bet_id", bet.ID),
				zap.Error(err))
		}
	}

	return nil
}
