package wingo

import (
	"context"
	"sort"
	"time"

	"wingo_backend/internal/audit"
	"wingo_backend/internal/config"
	"wingo_backend/internal/model"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Фейковый менеджер транзакций: выполняет функцию напрямую
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRoundRepo struct {
	rounds map[int64]*model.Round
	nextID int64
}

func newFakeRoundRepo() *fakeRoundRepo {
	return &fakeRoundRepo{rounds: make(map[int64]*model.Round)}
}

func (r *fakeRoundRepo) CreateRound(_ context.Context, round *model.Round) (int64, error) {
	for _, existing := range r.rounds {
		if existing.Track == round.Track && existing.Status == model.RoundStatusOpen {
			return 0, model.ErrDuplicateOpenRound
		}
	}
	r.nextID++
	stored := *round
	stored.ID = r.nextID
	r.rounds[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeRoundRepo) GetRoundByID(_ context.Context, id int64) (*model.Round, error) {
	round, ok := r.rounds[id]
	if !ok {
		return nil, model.ErrRoundNotFound
	}
	copied := *round
	return &copied, nil
}

func (r *fakeRoundRepo) GetOpenRound(_ context.Context, track string) (*model.Round, error) {
	var open []*model.Round
	for _, round := range r.rounds {
		if round.Track == track && round.Status == model.RoundStatusOpen {
			open = append(open, round)
		}
	}
	switch len(open) {
	case 0:
		return nil, model.ErrRoundNotFound
	case 1:
		copied := *open[0]
		return &copied, nil
	default:
		return nil, model.ErrDuplicateOpenRound
	}
}

func (r *fakeRoundRepo) CloseRound(_ context.Context, id int64) (bool, error) {
	round, ok := r.rounds[id]
	if !ok || round.Status != model.RoundStatusOpen {
		return false, nil
	}
	round.Status = model.RoundStatusClosed
	return true, nil
}

func (r *fakeRoundRepo) SetOutcome(_ context.Context, id int64, number int, colors []model.Color, size model.Size, operatorPick bool) (bool, error) {
	round, ok := r.rounds[id]
	if !ok || round.WinningNumber != nil {
		return false, nil
	}
	round.WinningNumber = &number
	round.WinningColors = colors
	round.WinningSize = &size
	round.OperatorPick = operatorPick
	return true, nil
}

func (r *fakeRoundRepo) MarkSettled(_ context.Context, id int64) (bool, error) {
	round, ok := r.rounds[id]
	if !ok || round.Status != model.RoundStatusClosed {
		return false, nil
	}
	round.Status = model.RoundStatusSettled
	return true, nil
}

func (r *fakeRoundRepo) ListClosed(_ context.Context) ([]model.Round, error) {
	var out []model.Round
	for _, round := range r.rounds {
		if round.Status == model.RoundStatusClosed {
			out = append(out, *round)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRoundRepo) GetHistory(_ context.Context, track string, limit int) ([]model.Round, error) {
	var out []model.Round
	for _, round := range r.rounds {
		if round.Track == track && round.Status == model.RoundStatusSettled {
			out = append(out, *round)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeBetRepo struct {
	bets            map[int64]*model.Bet
	nextID          int64
	markResolvedErr error
}

func newFakeBetRepo() *fakeBetRepo {
	return &fakeBetRepo{bets: make(map[int64]*model.Bet)}
}

func (r *fakeBetRepo) CreateBet(_ context.Context, bet *model.Bet) (int64, error) {
	r.nextID++
	stored := *bet
	stored.ID = r.nextID
	r.bets[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeBetRepo) ListByRound(_ context.Context, roundID int64) ([]model.Bet, error) {
	var out []model.Bet
	for _, bet := range r.bets {
		if bet.RoundID == roundID {
			out = append(out, *bet)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBetRepo) ListUnresolvedByRound(_ context.Context, roundID int64) ([]model.Bet, error) {
	var out []model.Bet
	for _, bet := range r.bets {
		if bet.RoundID == roundID && bet.Won == nil {
			out = append(out, *bet)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBetRepo) MarkResolved(_ context.Context, betID int64, won bool, paid decimal.Decimal) (bool, error) {
	if r.markResolvedErr != nil {
		return false, r.markResolvedErr
	}
	bet, ok := r.bets[betID]
	if !ok || bet.Won != nil {
		return false, nil
	}
	bet.Won = &won
	bet.Paid = &paid
	return true, nil
}

type fakeOverrideRepo struct {
	overrides map[int64]*model.OperatorOverride
	nextID    int64
}

func newFakeOverrideRepo() *fakeOverrideRepo {
	return &fakeOverrideRepo{overrides: make(map[int64]*model.OperatorOverride)}
}

func (r *fakeOverrideRepo) DeactivateActive(_ context.Context, track string) error {
	for _, o := range r.overrides {
		if o.Track == track && o.Active {
			o.Active = false
		}
	}
	return nil
}

func (r *fakeOverrideRepo) CreateOverride(_ context.Context, override *model.OperatorOverride) (int64, error) {
	r.nextID++
	stored := *override
	stored.ID = r.nextID
	r.overrides[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeOverrideRepo) GetActive(_ context.Context, track string) (*model.OperatorOverride, error) {
	for _, o := range r.overrides {
		if o.Track == track && o.Active {
			copied := *o
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeOverrideRepo) ListActive(_ context.Context) ([]model.OperatorOverride, error) {
	var out []model.OperatorOverride
	for _, o := range r.overrides {
		if o.Active {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOverrideRepo) Consume(_ context.Context, id int64) (bool, error) {
	o, ok := r.overrides[id]
	if !ok || !o.Active {
		return false, nil
	}
	o.Active = false
	return true, nil
}

type fakeUserRepo struct {
	balances map[int]decimal.Decimal
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{balances: make(map[int]decimal.Decimal)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (int, error) {
	id := len(r.balances) + 1
	r.balances[id] = user.Balance
	return id, nil
}

func (r *fakeUserRepo) GetUserByLogin(_ context.Context, _ string) (*model.User, error) {
	return nil, model.ErrUnauthorized
}

func (r *fakeUserRepo) GetBalance(_ context.Context, id int) (decimal.Decimal, error) {
	return r.balances[id], nil
}

func (r *fakeUserRepo) Debit(_ context.Context, id int, amount decimal.Decimal) error {
	balance := r.balances[id]
	if balance.LessThan(amount) {
		return model.ErrInsufficientFunds
	}
	r.balances[id] = balance.Sub(amount)
	return nil
}

func (r *fakeUserRepo) Credit(_ context.Context, id int, amount decimal.Decimal) error {
	r.balances[id] = r.balances[id].Add(amount)
	return nil
}

type fakeRiskCache struct {
	snapshots map[int64]*model.RiskSnapshot
}

func newFakeRiskCache() *fakeRiskCache {
	return &fakeRiskCache{snapshots: make(map[int64]*model.RiskSnapshot)}
}

func (c *fakeRiskCache) Get(_ context.Context, roundID int64) (*model.RiskSnapshot, error) {
	return c.snapshots[roundID], nil
}

func (c *fakeRiskCache) Set(_ context.Context, snapshot *model.RiskSnapshot, _ time.Duration) error {
	c.snapshots[snapshot.RoundID] = snapshot
	return nil
}

type fakeAuditPublisher struct {
	records []audit.BetSettled
}

func (p *fakeAuditPublisher) PublishBetSettled(_ context.Context, rec audit.BetSettled) error {
	p.records = append(p.records, rec)
	return nil
}

type fakeWingoConfig struct {
	tracks []config.TrackConfig
	cutoff time.Duration
}

func (c fakeWingoConfig) Tracks() []config.TrackConfig  { return c.tracks }
func (c fakeWingoConfig) PreCloseCutoff() time.Duration { return c.cutoff }
func (c fakeWingoConfig) SweepInterval() time.Duration  { return 3 * time.Second }

type testDeps struct {
	roundRepo    *fakeRoundRepo
	betRepo      *fakeBetRepo
	overrideRepo *fakeOverrideRepo
	userRepo     *fakeUserRepo
	riskCache    *fakeRiskCache
	auditPub     *fakeAuditPublisher
}

// newTestServ - сервис на одной минутной дорожке с фиксированным временем
func newTestServ(now time.Time) (*serv, *testDeps) {
	deps := &testDeps{
		roundRepo:    newFakeRoundRepo(),
		betRepo:      newFakeBetRepo(),
		overrideRepo: newFakeOverrideRepo(),
		userRepo:     newFakeUserRepo(),
		riskCache:    newFakeRiskCache(),
		auditPub:     &fakeAuditPublisher{},
	}

	cfg := fakeWingoConfig{
		tracks: []config.TrackConfig{
			{Name: "wingo_1m", Suffix: "W1", Duration: time.Minute},
		},
		cutoff: 10 * time.Second,
	}

	s := NewWingoService(
		cfg,
		2*time.Second,
		deps.roundRepo,
		deps.betRepo,
		deps.overrideRepo,
		deps.userRepo,
		deps.riskCache,
		fakeTxManager{},
		deps.auditPub,
		zap.NewNop(),
	).(*serv)

	s.now = func() time.Time { return now }

	return s, deps
}
