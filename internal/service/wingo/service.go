package wingo

import (
	"math/rand"
	"sync"
	"time"

	"wingo_backend/internal/audit"
	"wingo_backend/internal/config"
	"wingo_backend/internal/repository"
	"wingo_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

type serv struct {
	tracks       map[string]config.TrackConfig
	cutoff       time.Duration
	riskTTL      time.Duration
	roundRepo    repository.RoundRepository
	betRepo      repository.BetRepository
	overrideRepo repository.OverrideRepository
	userRepo     repository.UserRepository
	riskCache    repository.RiskCacheRepository
	txManager    trm.Manager
	auditPub     audit.Publisher
	logger       *zap.Logger

	// Подменяются в тестах
	now     func() time.Time
	randInt func(n int) int

	// Дорожки, остановленные из-за нарушения целостности.
	// Снимаются только вручную после разбора оператором
	mu     sync.Mutex
	halted map[string]struct{}
}

// NewWingoService - игра с общим раундом: много игроков ставят против
// одного таймера, исход выбирается случайно или оператором
func NewWingoService(
	cfg config.WingoConfig,
	riskTTL time.Duration,
	roundRepo repository.RoundRepository,
	betRepo repository.BetRepository,
	overrideRepo repository.OverrideRepository,
	userRepo repository.UserRepository,
	riskCache repository.RiskCacheRepository,
	txManager trm.Manager,
	auditPub audit.Publisher,
	logger *zap.Logger,
) service.WingoService {
	tracks := make(map[string]config.TrackConfig, len(cfg.Tracks()))
	for _, t := range cfg.Tracks() {
		tracks[t.Name] = t
	}

	return &serv{
		tracks:       tracks,
		cutoff:       cfg.PreCloseCutoff(),
		riskTTL:      riskTTL,
		roundRepo:    roundRepo,
		betRepo:      betRepo,
		overrideRepo: overrideRepo,
		userRepo:     userRepo,
		riskCache:    riskCache,
		txManager:    txManager,
		auditPub:     auditPub,
		logger:       logger,
		now:          time.Now,
		randInt:      rand.Intn,
		halted:       make(map[string]struct{}),
	}
}

func (s *serv) haltTrack(track string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.halted[track] = struct{}{}
}

func (s *serv) trackHalted(track string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.halted[track]
	return ok
}
