package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/harvard-cv/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RateLimitRepository stores accepted requests in Postgres. Consume runs the
// count and the insert in one transaction under an advisory lock keyed by
// client and route, so parallel requests from one client cannot overshoot.
type RateLimitRepository struct {
	db *gorm.DB
}

func NewRateLimitRepository(db *gorm.DB) *RateLimitRepository {
	return &RateLimitRepository{db}
}

func (r *RateLimitRepository) Consume(ctx context.Context, clientID, route string, limit int, window time.Duration, now time.Time) (int, bool, error) {
	var (
		used    int64
		allowed bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", clientID+"|"+route).Error; err != nil {
			return fmt.Errorf("acquire lock: %w", err)
		}

		err := tx.Model(&model.RateLimitRequest{}).
			Where("ip = ? AND route = ? AND ts > ?", clientID, route, now.Add(-window)).
			Count(&used).Error
		if err != nil {
			return fmt.Errorf("count requests: %w", err)
		}
		if int(used) >= limit {
			return nil
		}

		allowed = true
		used++
		return tx.Create(&model.RateLimitRequest{
			ID:    uuid.New(),
			IP:    clientID,
			Route: route,
			Ts:    now,
		}).Error
	})
	if err != nil {
		return 0, false, err
	}
	return int(used), allowed, nil
}
