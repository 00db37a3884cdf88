package admin

import (
	"context"
	"time"
)

// Config is the singleton bot admin record.
type Config struct {
	AdminID   int64     `bson:"adminId" json:"adminId"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Repository stores the admin config. Get returns NOT_FOUND while no admin
// was assigned.
type Repository interface {
	Get(ctx context.Context) (*Config, error)
	SetAdminID(ctx context.Context, id int64) error
}
