package risk_cache_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wingo_backend/internal/model"
	"wingo_backend/internal/repository"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "wingo:risk:"

type repo struct {
	rdb *redis.Client
}

// NewRiskCacheRepository - кэш срезов риска в Redis.
// Консоль оператора опрашивает срез чаще, чем он успевает измениться,
// поэтому короткий TTL снимает нагрузку с пересчета
func NewRiskCacheRepository(rdb *redis.Client) repository.RiskCacheRepository {
	return &repo{
		rdb: rdb,
	}
}

func (r *repo) Get(ctx context.Context, roundID int64) (*model.RiskSnapshot, error) {
	raw, err := r.rdb.Get(ctx, key(roundID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snapshot model.RiskSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (r *repo) Set(ctx context.Context, snapshot *model.RiskSnapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return r.rdb.Set(ctx, key(snapshot.RoundID), raw, ttl).Err()
}

func key(roundID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, roundID)
}
