package event

import (
	"context"
	"fmt"

	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/application/eventview"
	"github.com/baechuer/real-time-ressys/services/volunteer-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// GetDetails loads an event and builds the view for the caller.
// Derived and per-user fields are rebuilt on every call.
func (s *Service) GetDetails(ctx context.Context, id int, who eventview.Identity) (eventview.EventView, error) {
	if id <= 0 {
		return eventview.EventView{}, domain.ErrValidationMeta("invalid event id", map[string]string{
			"event_id": "must be a positive integer",
		})
	}

	e, err := s.loadEvent(ctx, id)
	if err != nil {
		return eventview.EventView{}, err
	}

	v, err := s.mapper.Map(e)
	if err != nil {
		return eventview.EventView{}, err
	}
	return s.mapper.WithUser(ctx, v, e, who, s.users)
}

// loadEvent serves the stable part of the graph from cache. The roster
// (signups and task assignments) is never cached and is reloaded on a hit.
func (s *Service) loadEvent(ctx context.Context, id int) (*domain.Event, error) {
	// 1. Try Cache
	key := cacheKeyEventGraph(id)
	var cached domain.Event

	if s.cache != nil {
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			zlog.Debug().Str("key", key).Msg("cache hit")
			s.hit(cacheKindEvent)

			roster, err := s.repo.GetRoster(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("load roster: %w", err)
			}
			cached.ApplyRoster(roster)
			return &cached, nil
		} else {
			zlog.Debug().Str("key", key).Msg("cache miss")
			s.miss(cacheKindEvent)
		}
	}

	// 2. DB Query
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Set Cache (Best Effort)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, e.WithoutRoster(), s.ttlDetails); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return e, nil
}

// ListByCampaign returns the anonymous views of every event in a campaign.
func (s *Service) ListByCampaign(ctx context.Context, campaignID int) ([]eventview.EventView, error) {
	if campaignID <= 0 {
		return nil, domain.ErrValidationMeta("invalid campaign id", map[string]string{
			"campaign_id": "must be a positive integer",
		})
	}
	events, err := s.repo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list campaign events: %w", err)
	}
	return s.mapper.MapAll(events)
}

// InvalidateEvent drops the cached graph so the next read goes to the DB.
func (s *Service) InvalidateEvent(ctx context.Context, id int) error {
	if s.cache == nil {
		return nil
	}
	key := cacheKeyEventGraph(id)
	if err := s.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidate %s: %w", key, err)
	}
	zlog.Info().Int("event_id", id).Msg("event cache invalidated")
	return nil
}
