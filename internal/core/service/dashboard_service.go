package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/route2rise/leaddesk/internal/core/ports"
)

const (
	upcomingCallsLimit = 5
	recentUpdatesLimit = 10
)

// DashboardService composes independent repository queries into one stats
// snapshot. An optional cache sits in front; cache failures degrade to a
// direct store read, but a failing sub-query fails the whole snapshot.
type DashboardService struct {
	repo   ports.LeadRepository
	cache  ports.StatsCache
	logger zerolog.Logger
}

// NewDashboardService creates a DashboardService. cache may be nil.
func NewDashboardService(repo ports.LeadRepository, cache ports.StatsCache, logger zerolog.Logger) *DashboardService {
	return &DashboardService{repo: repo, cache: cache, logger: logger}
}

// ComputeStats builds the dashboard snapshot, optionally scoped to one owner.
func (s *DashboardService) ComputeStats(ctx context.Context, assignedTo string) (*ports.DashboardStats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, assignedTo)
		if err != nil {
			s.logger.Warn().Err(err).Msg("stats cache read failed, querying store")
		} else if cached != nil {
			return cached, nil
		}
	}

	filter := ports.StatsFilter{AssignedTo: assignedTo}

	total, err := s.repo.CountLeads(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: total: %w", err)
	}

	byStatus, err := s.repo.GroupCount(ctx, ports.GroupByStatus, filter)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: by status: %w", err)
	}

	bySector, err := s.repo.GroupCount(ctx, ports.GroupBySector, filter)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: by sector: %w", err)
	}

	byOwner, err := s.repo.GroupCount(ctx, ports.GroupByOwner, filter)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: by owner: %w", err)
	}

	upcoming, err := s.repo.FindUpcomingFollowUps(ctx, filter, upcomingCallsLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: upcoming calls: %w", err)
	}

	recent, err := s.repo.FindRecentlyUpdated(ctx, filter, recentUpdatesLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: recent updates: %w", err)
	}

	stats := &ports.DashboardStats{
		TotalLeads:    total,
		LeadsByStatus: byStatus,
		LeadsBySector: bySector,
		LeadsByOwner:  byOwner,
		UpcomingCalls: upcoming,
		RecentUpdates: recent,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, assignedTo, stats); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}

	return stats, nil
}
