package model

import (
	"time"

	"github.com/google/uuid"
)

// RateLimitRequest is one accepted request counted toward a client's window.
// Rows are never deleted by the application.
type RateLimitRequest struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IP    string    `gorm:"type:varchar(64);index:idx_rate_limit_ip_route_ts,priority:1" json:"ip"`
	Route string    `gorm:"type:varchar(255);index:idx_rate_limit_ip_route_ts,priority:2" json:"route"`
	Ts    time.Time `gorm:"index:idx_rate_limit_ip_route_ts,priority:3" json:"ts"`
}

func (r *RateLimitRequest) TableName() string {
	return "rate_limit_requests"
}
