package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const clockLayout = "15:04"

// SlotCache keeps availability results in Redis per (staff, date). A nil
// SlotCache or a missing client disables caching; callers never need to check.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSlotCache builds a cache with the given entry lifetime.
func NewSlotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SlotCache {
	return &SlotCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached slots for (staff, date). ok is false on miss,
// disabled cache, or any Redis failure.
func (c *SlotCache) Get(ctx context.Context, staffID string, date time.Time) ([]time.Time, bool) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key(staffID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("slot cache get failed", zap.Error(err))
		}
		return nil, false
	}
	var encoded []string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, false
	}
	slots := make([]time.Time, 0, len(encoded))
	for _, item := range encoded {
		slot, err := time.Parse(clockLayout, item)
		if err != nil {
			return nil, false
		}
		slots = append(slots, slot)
	}
	return slots, true
}

// Set stores the slots for (staff, date). Failures are logged, not returned.
func (c *SlotCache) Set(ctx context.Context, staffID string, date time.Time, slots []time.Time) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return
	}
	encoded := make([]string, 0, len(slots))
	for _, slot := range slots {
		encoded = append(encoded, slot.Format(clockLayout))
	}
	raw, err := json.Marshal(encoded)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(staffID, date), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("slot cache set failed", zap.Error(err))
	}
}

// Invalidate drops the cached entry for (staff, date) after a booking mutation.
func (c *SlotCache) Invalidate(ctx context.Context, staffID string, date time.Time) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key(staffID, date)).Err(); err != nil {
		c.logger.Warn("slot cache invalidate failed", zap.Error(err))
	}
}

func key(staffID string, date time.Time) string {
	return "availability:" + staffID + ":" + date.Format("2006-01-02")
}
