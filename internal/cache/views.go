package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lightfieldlegal/lightfield-api/internal/models"
)

const viewKeyPrefix = "blog:views:"

// ViewCounter buffers blog post view increments in Redis and flushes them to
// Postgres on a fixed interval, so the hot read path never writes to the
// posts table. When Redis is unavailable the counter falls back to direct
// database increments.
type ViewCounter struct {
	rdb      *redis.Client
	db       *gorm.DB
	log      *zap.Logger
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewViewCounter(rdb *redis.Client, db *gorm.DB, log *zap.Logger) *ViewCounter {
	return &ViewCounter{
		rdb:      rdb,
		db:       db,
		log:      log,
		interval: 30 * time.Second,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Record registers one view for the given post slug. Counting is best effort
// and never fails the request that triggered it.
func (v *ViewCounter) Record(ctx context.Context, slug string) {
	if v.rdb == nil {
		v.bump(ctx, slug, 1)
		return
	}
	if err := v.rdb.Incr(ctx, viewKeyPrefix+slug).Err(); err != nil {
		v.log.Warn("view counter increment failed, falling back to db",
			zap.String("slug", slug),
			zap.Error(err),
		)
		v.bump(ctx, slug, 1)
	}
}

// Start launches the background flush worker. It is a no-op without Redis.
func (v *ViewCounter) Start() {
	if v.rdb == nil {
		close(v.done)
		return
	}
	go func() {
		defer close(v.done)
		ticker := time.NewTicker(v.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				v.flush(context.Background())
			case <-v.stop:
				v.flush(context.Background())
				return
			}
		}
	}()
}

// Stop drains pending counts into Postgres and shuts the worker down.
func (v *ViewCounter) Stop() {
	select {
	case <-v.done:
		return
	default:
	}
	close(v.stop)
	<-v.done
}

func (v *ViewCounter) flush(ctx context.Context) {
	var cursor uint64
	for {
		keys, next, err := v.rdb.Scan(ctx, cursor, viewKeyPrefix+"*", 100).Result()
		if err != nil {
			v.log.Warn("view counter scan failed", zap.Error(err))
			return
		}
		for _, key := range keys {
			raw, err := v.rdb.GetDel(ctx, key).Result()
			if err == redis.Nil {
				continue
			}
			if err != nil {
				v.log.Warn("view counter read failed", zap.String("key", key), zap.Error(err))
				continue
			}
			count, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || count <= 0 {
				continue
			}
			v.bump(ctx, key[len(viewKeyPrefix):], count)
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}

func (v *ViewCounter) bump(ctx context.Context, slug string, count int64) {
	err := v.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("slug = ?", slug).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", count)).Error
	if err != nil {
		v.log.Warn("view count persist failed",
			zap.String("slug", slug),
			zap.Int64("count", count),
			zap.Error(err),
		)
		return
	}

	v.rollup(ctx, count)
}

// rollup adds the counted views to today's row of the per-day totals the
// dashboard trend endpoint reads. Buffered views land on the day they are
// flushed.
func (v *ViewCounter) rollup(ctx context.Context, count int64) {
	stat := models.BlogViewStat{
		Date:  time.Now().UTC().Truncate(24 * time.Hour),
		Views: count,
	}
	err := v.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"views": gorm.Expr("blog_view_stats.views + EXCLUDED.views"),
			}),
		}).
		Create(&stat).Error
	if err != nil {
		v.log.Warn("view stat rollup failed", zap.Int64("count", count), zap.Error(err))
	}
}
