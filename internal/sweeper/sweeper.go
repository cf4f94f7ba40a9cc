package sweeper

import (
	"context"
	"time"

	"wingo_backend/internal/service"

	"go.uber.org/zap"
)

// Sweeper - периодический прогон Sweep, чтобы раунды двигались
// даже без единого запроса от игроков
type Sweeper struct {
	serv     service.WingoService
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

func New(serv service.WingoService, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		serv:     serv,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start - блокирующий цикл, запускается в отдельной горутине
func (s *Sweeper) Start() {
	s.logger.Info("sweeper started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.serv.Sweep(context.Background(), time.Now()); err != nil {
				s.logger.Error("sweep failed", zap.Error(err))
			}
		case <-s.stopChan:
			s.logger.Info("sweeper stopped")
			return
		}
	}
}

func (s *Sweeper) Stop() {
	close(s.stopChan)
}
