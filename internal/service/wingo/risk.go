package wingo

import (
	"context"

	"wingo_backend/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RiskSnapshot - срез риска по открытому раунду дорожки.
// Чисто читающая операция, безопасна параллельно с приемом ставок.
// Только для поддержки решения: ничто здесь не выбирает исход автоматически
func (s *serv) RiskSnapshot(ctx context.Context, track string) (*model.RiskSnapshot, error) {
	tc, ok := s.tracks[track]
	if !ok {
		return nil, model.ErrTrackNotFound
	}

	round, err := s.ensureOpenRound(ctx, tc, s.now())
	if err != nil {
		return nil, err
	}

	if cached, err := s.riskCache.Get(ctx, round.ID); err != nil {
		s.logger.Warn("risk cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	bets, err := s.betRepo.ListByRound(ctx, round.ID)
	if err != nil {
		return nil, err
	}

	snapshot := buildRiskSnapshot(round, bets)

	if err := s.riskCache.Set(ctx, snapshot, s.riskTTL); err != nil {
		s.logger.Warn("risk cache write failed", zap.Error(err))
	}

	return snapshot, nil
}

// buildRiskSnapshot - для каждого кандидата 0-9 суммирует выплату, которую
// дом был бы должен при его выпадении. Использует ту же функцию оценки,
// что и расчет, поэтому итог расчета совпадает с прогнозом по выпавшему
// значению
func buildRiskSnapshot(round *model.Round, bets []model.Bet) *model.RiskSnapshot {
	snapshot := &model.RiskSnapshot{
		RoundID:  round.ID,
		Period:   round.Period,
		ByNumber: make(map[int]model.StakeAggregate),
		ByColor:  make(map[model.Color]model.StakeAggregate),
		BySize:   make(map[model.Size]model.StakeAggregate),
	}

	for candidate := numberMin; candidate <= numberMax; candidate++ {
		total := decimal.Zero
		for _, bet := range bets {
			if selectionWins(bet.Selection, candidate) {
				total = total.Add(bet.PotentialPayout)
			}
		}
		snapshot.PerCandidate = append(snapshot.PerCandidate, model.CandidateRisk{
			Number: candidate,
			Payout: total,
		})
	}

	// Сырые суммы и счетчики ставок по целям - для отображения
	for _, bet := range bets {
		switch bet.Selection.Category {
		case model.BetCategoryNumber:
			snapshot.ByNumber[bet.Selection.Number] = addStake(snapshot.ByNumber[bet.Selection.Number], bet.Amount)
		case model.BetCategoryColor:
			snapshot.ByColor[bet.Selection.Color] = addStake(snapshot.ByColor[bet.Selection.Color], bet.Amount)
		case model.BetCategorySize:
			snapshot.BySize[bet.Selection.Size] = addStake(snapshot.BySize[bet.Selection.Size], bet.Amount)
		}
	}

	best := snapshot.PerCandidate[0]
	worst := snapshot.PerCandidate[0]
	for _, c := range snapshot.PerCandidate[1:] {
		if c.Payout.LessThan(best.Payout) {
			best = c
		}
		if c.Payout.GreaterThan(worst.Payout) {
			worst = c
		}
	}
	snapshot.BestForHouse = best
	snapshot.WorstForHouse = worst

	return snapshot
}

func addStake(agg model.StakeAggregate, amount decimal.Decimal) model.StakeAggregate {
	agg.Stake = agg.Stake.Add(amount)
	agg.Count++
	return agg
}
