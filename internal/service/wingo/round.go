package wingo

import (
	"context"
	"errors"
	"time"

	"wingo_backend/internal/config"
	"wingo_backend/internal/model"

	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Период раунда: метка времени создания с минутной гранулярностью.
// Вместе с суффиксом дорожки дает уникальный сортируемый номер цикла
const periodLayout = "200601021504"

// GetOpenRound - открытый раунд дорожки, создает при необходимости
func (s *serv) GetOpenRound(ctx context.Context, track string) (*model.Round, error) {
	tc, ok := s.tracks[track]
	if !ok {
		return nil, model.ErrTrackNotFound
	}

	return s.ensureOpenRound(ctx, tc, s.now())
}

// GetHistory - рассчитанные раунды дорожки, новые первыми
func (s *serv) GetHistory(ctx context.Context, track string, limit int) ([]model.Round, error) {
	if _, ok := s.tracks[track]; !ok {
		return nil, model.ErrTrackNotFound
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	return s.roundRepo.GetHistory(ctx, track, limit)
}

// Sweep - один проход по всем дорожкам: закрыть и рассчитать просроченные
// раунды, дорасчитать застрявшие, убедиться что открытый раунд существует.
// Идемпотентен, может вызываться таймером и вручную параллельно
func (s *serv) Sweep(ctx context.Context, now time.Time) error {
	var errs []error

	for _, tc := range s.tracks {
		if s.trackHalted(tc.Name) {
			continue
		}
		if _, err := s.ensureOpenRound(ctx, tc, now); err != nil {
			errs = append(errs, err)
		}
	}

	// Повтор расчета для раундов, у которых прошлый прогон оборвался
	stuck, err := s.roundRepo.ListClosed(ctx)
	if err != nil {
		errs = append(errs, err)
		return errors.Join(errs...)
	}
	for i := range stuck {
		round := &stuck[i]
		if s.trackHalted(round.Track) {
			continue
		}
		if err := s.closeAndSettle(ctx, round); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// ensureOpenRound - возвращает действующий открытый раунд, предварительно
// проведя просроченный через закрытие и расчет. Гонку создания разрешает
// частичный уникальный индекс: проигравший перечитывает раунд победителя
func (s *serv) ensureOpenRound(ctx context.Context, tc config.TrackConfig, now time.Time) (*model.Round, error) {
	if s.trackHalted(tc.Name) {
		return nil, model.ErrDuplicateOpenRound
	}

	for attempt := 0; attempt < 3; attempt++ {
		round, err := s.roundRepo.GetOpenRound(ctx, tc.Name)
		switch {
		case err == nil && !round.Expired(now):
			return round, nil
		case err == nil:
			// Дедлайн прошел: раунд уходит в закрытие и расчет,
			// ниже создается новый. Сбой расчета не блокирует новый
			// раунд - застрявший дорасчитает следующий Sweep
			if err := s.closeAndSettle(ctx, round); err != nil {
				s.logger.Error("round settlement failed, will retry on next sweep",
					zap.Int64("round_id", round.ID),
					zap.String("track", round.Track),
					zap.Error(err))
			}
		case errors.Is(err, model.ErrDuplicateOpenRound):
			// Пробита уникальность открытого раунда. Автоматическая
			// обработка дорожки останавливается до ручного разбора
			s.haltTrack(tc.Name)
			s.logger.Error("duplicate open round, track halted for manual review",
				zap.String("track", tc.Name))
			return nil, err
		case !errors.Is(err, model.ErrRoundNotFound):
			return nil, err
		}

		created, err := s.createRound(ctx, tc, now)
		if err != nil {
			if errors.Is(err, model.ErrDuplicateOpenRound) {
				// Проигрыш гонки создания - перечитываем
				continue
			}
			return nil, err
		}
		return created, nil
	}

	return s.roundRepo.GetOpenRound(ctx, tc.Name)
}

func (s *serv) createRound(ctx context.Context, tc config.TrackConfig, now time.Time) (*model.Round, error) {
	round := &model.Round{
		Track:    tc.Name,
		Period:   now.UTC().Format(periodLayout) + tc.Suffix,
		Status:   model.RoundStatusOpen,
		OpenedAt: now,
		ClosesAt: now.Add(tc.Duration),
	}

	id, err := s.roundRepo.CreateRound(ctx, round)
	if err != nil {
		return nil, err
	}
	round.ID = id

	s.logger.Info("round opened",
		zap.Int64("round_id", id),
		zap.String("track", tc.Name),
		zap.String("period", round.Period),
		zap.Time("closes_at", round.ClosesAt))

	return round, nil
}

// closeAndSettle - проводит раунд через closed -> settled.
// Каждый шаг идемпотентен, повторный вызов безопасен
func (s *serv) closeAndSettle(ctx context.Context, round *model.Round) error {
	closed, err := s.roundRepo.CloseRound(ctx, round.ID)
	if err != nil {
		return err
	}
	if closed {
		round.Status = model.RoundStatusClosed
		s.logger.Info("round closed",
			zap.Int64("round_id", round.ID),
			zap.String("track", round.Track),
			zap.String("period", round.Period))
	}

	if err := s.resolveOutcome(ctx, round); err != nil {
		return err
	}

	return s.settle(ctx, round)
}
