package event

import (
	"time"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/application/eventview"
)

type Service struct {
	repo   EventRepo
	users  eventview.DataAccess
	cache  Cache
	obs    CacheObserver
	mapper *eventview.Mapper

	ttlDetails time.Duration
}

func New(
	repo EventRepo,
	users eventview.DataAccess,
	clock Clock,
	cache Cache,
	ttlDetails time.Duration,
) *Service {
	if ttlDetails == 0 {
		ttlDetails = 5 * time.Minute
	}

	return &Service{
		repo:       repo,
		users:      users,
		cache:      cache,
		mapper:     eventview.New(clock),
		ttlDetails: ttlDetails,
	}
}

// WithCacheObserver attaches hit/miss reporting (metrics).
func (s *Service) WithCacheObserver(o CacheObserver) *Service {
	s.obs = o
	return s
}

func (s *Service) hit(kind string) {
	if s.obs != nil {
		s.obs.CacheHit(kind)
	}
}

func (s *Service) miss(kind string) {
	if s.obs != nil {
		s.obs.CacheMiss(kind)
	}
}
