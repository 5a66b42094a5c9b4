package event

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// EventRepo returns fully loaded event graphs (campaign, location, tasks,
// skills and signup roster). GetRoster reloads just the roster.
type EventRepo interface {
	GetByID(ctx context.Context, id int) (*domain.Event, error)
	GetRoster(ctx context.Context, eventID int) (domain.Roster, error)
	ListByCampaign(ctx context.Context, campaignID int) ([]*domain.Event, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheObserver is notified of cache hits and misses. Optional.
type CacheObserver interface {
	CacheHit(kind string)
	CacheMiss(kind string)
}
