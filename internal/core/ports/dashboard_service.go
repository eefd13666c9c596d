package ports

import (
	"context"

	"github.com/route2rise/leaddesk/internal/core/domain"
)

// DashboardStats is a point-in-time aggregate snapshot over non-deleted leads.
type DashboardStats struct {
	TotalLeads    int64            `json:"total_leads"`
	LeadsByStatus map[string]int64 `json:"leads_by_status"`
	LeadsBySector map[string]int64 `json:"leads_by_sector"`
	LeadsByOwner  map[string]int64 `json:"leads_by_owner"`
	UpcomingCalls []*domain.Lead   `json:"upcoming_calls"`
	RecentUpdates []*domain.Lead   `json:"recent_updates"`
}

// StatsCache is a best-effort cache for dashboard snapshots. Get returns
// (nil, nil) on a miss; callers treat cache errors as misses.
type StatsCache interface {
	Get(ctx context.Context, assignedTo string) (*DashboardStats, error)
	Set(ctx context.Context, assignedTo string, stats *DashboardStats) error
}

// DashboardService composes repository-level grouping queries into a single
// statistics snapshot.
type DashboardService interface {
	// ComputeStats builds the snapshot, optionally filtered by owner. Any
	// failing sub-query fails the whole operation; a snapshot is never
	// partially populated.
	ComputeStats(ctx context.Context, assignedTo string) (*DashboardStats, error)
}
