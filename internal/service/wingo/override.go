package wingo

import (
	"context"

	"wingo_backend/internal/model"

	"go.uber.org/zap"
)

// SetOverride - назначает исход следующего расчета дорожки.
// Прежнее активное переопределение деактивируется (не удаляется),
// так что активным остается не более одного на дорожку
func (s *serv) SetOverride(ctx context.Context, track string, number int, operatorID int) (*model.OperatorOverride, error) {
	if _, ok := s.tracks[track]; !ok {
		return nil, model.ErrTrackNotFound
	}
	if number < numberMin || number > numberMax {
		return nil, model.ErrInvalidSelection
	}

	override := &model.OperatorOverride{
		Track:         track,
		WinningNumber: number,
		OperatorID:    operatorID,
		Active:        true,
		CreatedAt:     s.now(),
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.overrideRepo.DeactivateActive(ctx, track); err != nil {
			return err
		}

		id, err := s.overrideRepo.CreateOverride(ctx, override)
		if err != nil {
			return err
		}
		override.ID = id

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Вмешательство в исход - всегда громкая запись в лог
	s.logger.Warn("operator override set",
		zap.String("track", track),
		zap.Int("number", number),
		zap.Int("operator_id", operatorID))

	return override, nil
}

// ActiveOverrides - все активные переопределения для консоли оператора
func (s *serv) ActiveOverrides(ctx context.Context) ([]model.OperatorOverride, error) {
	return s.overrideRepo.ListActive(ctx)
}
