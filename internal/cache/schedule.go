// Package cache holds the redis-backed day-schedule cache used by the
// dashboard's appointment listing. Caching is best effort: every miss or
// redis failure falls through to Postgres, and any appointment write drops
// the affected day.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"bookwell/backend/internal/domain"
)

const dayKeyPrefix = "schedule:day:"

type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScheduleCache wraps client. A nil client yields a disabled cache whose
// methods are all no-ops, so callers never branch on configuration.
func NewScheduleCache(client *redis.Client, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{client: client, ttl: ttl}
}

func dayKey(day time.Time) string {
	return dayKeyPrefix + day.Format("2006-01-02")
}

func (c *ScheduleCache) GetDay(ctx context.Context, day time.Time) ([]domain.Appointment, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, dayKey(day)).Result()
	if err != nil {
		return nil, false
	}
	var appts []domain.Appointment
	if err := json.Unmarshal([]byte(payload), &appts); err != nil {
		return nil, false
	}
	return appts, true
}

func (c *ScheduleCache) SetDay(ctx context.Context, day time.Time, appts []domain.Appointment) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(appts)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, dayKey(day), payload, c.ttl).Err()
}

func (c *ScheduleCache) InvalidateDay(ctx context.Context, day time.Time) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, dayKey(day)).Err()
}
