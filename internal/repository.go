package internal

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"commission-calculator/pkg/utils"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var RunsHashMap = "commission-runs"

type RunRepository interface {
	Add(ctx context.Context, run Run) error
	Find(ctx context.Context, from, to time.Time) ([]Run, error)
}

func NewRun(details []Commission) Run {
	var total float64
	for _, d := range details {
		total += d.Fee
	}

	return Run{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Commissions: Fees(details),
		Details:     details,
		TotalFee:    RoundCents(total),
	}
}

type RedisRunRepository struct {
	db *redis.Client
}

func NewRedisRunRepository(db *redis.Client) *RedisRunRepository {
	return &RedisRunRepository{
		db: db,
	}
}

func (r *RedisRunRepository) Add(ctx context.Context, run Run) error {
	raw, err := sonic.Marshal(run)
	if err != nil {
		slog.Error("failed to marshal run", "err", err)
		return err
	}

	err = r.db.HSet(ctx, RunsHashMap, run.ID, raw).Err()
	if err != nil {
		slog.Error("failed to save run in redis hashmap", "err", err)
	}

	return err
}

// Find returns the stored runs created within [from, to]. Zero bounds disable
// the filter.
func (r *RedisRunRepository) Find(ctx context.Context, from, to time.Time) ([]Run, error) {
	raw, err := r.db.HGetAll(ctx, RunsHashMap).Result()
	if err != nil {
		slog.Error("failed to get runs from redis hashmap", "err", err)
		return nil, err
	}

	filterByTime := !from.IsZero() && !to.IsZero()
	runs := make([]Run, 0, len(raw))
	for _, v := range raw {
		var run Run
		if err := sonic.ConfigFastest.UnmarshalFromString(v, &run); err != nil {
			slog.Error("failed to decode a run", "err", err)
			return nil, err
		}

		if filterByTime && !utils.IsWithInRange(run.CreatedAt, from, to) {
			continue
		}
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].CreatedAt.Before(runs[j].CreatedAt) })
	return runs, nil
}

func (r *RedisRunRepository) Purge(ctx context.Context) error {
	err := r.db.Del(ctx, RunsHashMap).Err()
	if err != nil {
		slog.Error("failed to delete runs hash", "err", err)
	}

	return err
}
