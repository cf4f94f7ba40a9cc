package wingo

import (
	"context"
	"testing"
	"time"

	"wingo_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodLabel(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 30, 0, time.UTC)
	s, _ := newTestServ(now)

	round := openTestRound(t, s)

	// Минутная гранулярность плюс суффикс дорожки
	assert.Equal(t, "202605011200W1", round.Period)
	assert.Equal(t, now.Add(time.Minute), round.ClosesAt)
}

func TestGetOpenRoundUnknownTrack(t *testing.T) {
	s, _ := newTestServ(time.Now())

	_, err := s.GetOpenRound(context.Background(), "wingo_10m")
	assert.ErrorIs(t, err, model.ErrTrackNotFound)

	_, err = s.GetHistory(context.Background(), "wingo_10m", 10)
	assert.ErrorIs(t, err, model.ErrTrackNotFound)
}

func TestGetOpenRoundReusesExisting(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s, _ := newTestServ(now)

	first := openTestRound(t, s)
	second := openTestRound(t, s)

	assert.Equal(t, first.ID, second.ID)
}

func TestGetHistoryNewestFirst(t *testing.T) {
	start := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s, deps := newTestServ(start)
	s.randInt = func(int) int { return 4 }

	// Прогоняем три полных цикла раундов
	now := start
	for i := 0; i < 3; i++ {
		round, err := s.ensureOpenRound(context.Background(), s.tracks["wingo_1m"], now)
		require.NoError(t, err)
		now = round.ClosesAt.Add(time.Second)
	}
	require.NoError(t, s.Sweep(context.Background(), now))

	history, err := s.GetHistory(context.Background(), "wingo_1m", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].ID > history[1].ID)
	for _, round := range history {
		assert.Equal(t, model.RoundStatusSettled, round.Status)
		assert.NotNil(t, round.WinningNumber)
	}

	// Открытый раунд в историю не попадает
	open, err := deps.roundRepo.GetOpenRound(context.Background(), "wingo_1m")
	require.NoError(t, err)
	all, err := s.GetHistory(context.Background(), "wingo_1m", 0)
	require.NoError(t, err)
	for _, round := range all {
		assert.NotEqual(t, open.ID, round.ID)
	}
}

func TestDuplicateOpenRoundHaltsTrack(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s, deps := newTestServ(now)

	// Нарушение целостности: две открытые строки на одной дорожке
	deps.roundRepo.rounds[1] = &model.Round{
		ID: 1, Track: "wingo_1m", Period: "202605011200W1",
		Status: model.RoundStatusOpen, OpenedAt: now, ClosesAt: now.Add(time.Minute),
	}
	deps.roundRepo.rounds[2] = &model.Round{
		ID: 2, Track: "wingo_1m", Period: "202605011201W1",
		Status: model.RoundStatusOpen, OpenedAt: now, ClosesAt: now.Add(time.Minute),
	}
	deps.roundRepo.nextID = 2

	_, err := s.GetOpenRound(context.Background(), "wingo_1m")
	assert.ErrorIs(t, err, model.ErrDuplicateOpenRound)

	// Дорожка остановлена: даже после устранения дублей
	// автоматика не возобновляется без ручного вмешательства
	delete(deps.roundRepo.rounds, 2)
	_, err = s.GetOpenRound(context.Background(), "wingo_1m")
	assert.ErrorIs(t, err, model.ErrDuplicateOpenRound)

	// Sweep пропускает остановленную дорожку без ошибки
	assert.NoError(t, s.Sweep(context.Background(), now))
}
