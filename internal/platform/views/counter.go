package views

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const keyPrefix = "video:views:"

// Counter buffers video view increments in Redis and flushes them into the
// videos table in the background. View counting is best-effort: a Redis
// failure drops the increment rather than failing the request.
type Counter struct {
	rdb      *redis.Client
	db       *gorm.DB
	interval time.Duration
}

func NewCounter(rdb *redis.Client, db *gorm.DB, interval time.Duration) *Counter {
	return &Counter{
		rdb:      rdb,
		db:       db,
		interval: interval,
	}
}

// Record increments the buffered view count for a video.
func (c *Counter) Record(ctx context.Context, videoExtID string) {
	if err := c.rdb.Incr(ctx, keyPrefix+videoExtID).Err(); err != nil {
		log.Warn().Err(err).Str("video", videoExtID).Msg("Failed to record view, dropping")
	}
}

// Start flushes buffered counts on a ticker until the context is cancelled.
func (c *Counter) Start(ctx context.Context) {
	log.Info().Msg("View counter flush worker starting")
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.flush(ctx)
		case <-ctx.Done():
			log.Info().Msg("View counter flush worker stopping")
			c.flush(context.Background())
			return
		}
	}
}

func (c *Counter) flush(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		val, err := c.rdb.GetDel(ctx, key).Result()
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("Failed to drain view counter")
			continue
		}

		count, err := strconv.ParseInt(val, 10, 64)
		if err != nil || count == 0 {
			continue
		}

		extID := strings.TrimPrefix(key, keyPrefix)
		err = c.db.WithContext(ctx).
			Table("videos").
			Where("ext_id = ?", extID).
			UpdateColumn("views", gorm.Expr("views + ?", count)).Error
		if err != nil {
			log.Error().Err(err).Str("video", extID).Msg("Failed to flush view count")
		}
	}
	if err := iter.Err(); err != nil {
		log.Error().Err(err).Msg("View counter scan failed")
	}
}
