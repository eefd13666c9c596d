package service

import (
	"context"
	"errors"
	"testing"

	"github.com/route2rise/leaddesk/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub cache
// ---------------------------------------------------------------------------

type stubStatsCache struct {
	entries  map[string]*ports.DashboardStats
	getErr   error
	setErr   error
	getCalls int
	setCalls int
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{entries: make(map[string]*ports.DashboardStats)}
}

func (c *stubStatsCache) Get(_ context.Context, assignedTo string) (*ports.DashboardStats, error) {
	c.getCalls++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[assignedTo], nil
}

func (c *stubStatsCache) Set(_ context.Context, assignedTo string, stats *ports.DashboardStats) error {
	c.setCalls++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[assignedTo] = stats
	return nil
}

// failingStatsRepo wraps the stub and fails a chosen query.
type failingStatsRepo struct {
	*stubLeadRepo
	failGroupCount bool
}

func (r *failingStatsRepo) GroupCount(ctx context.Context, field string, f ports.StatsFilter) (map[string]int64, error) {
	if r.failGroupCount {
		return nil, errors.New("aggregation failed")
	}
	return r.stubLeadRepo.GroupCount(ctx, field, f)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func seedDashboardData(t *testing.T, repo ports.LeadRepository) {
	t.Helper()
	svc := NewLeadService(repo, discardLogger)

	seedLead(t, svc, func(in *ports.CreateLeadInput) {
		in.Sector = "Logistics"
		in.Status = "New"
		in.AssignedTo = "Alice"
		in.NextFollowUpDate = "2026-09-02"
	})
	seedLead(t, svc, func(in *ports.CreateLeadInput) {
		in.CompanyName = "Globex"
		in.Sector = "Energy"
		in.Status = "Contacted"
		in.AssignedTo = "Bob"
		in.NextFollowUpDate = "2026-09-01"
	})
	seedLead(t, svc, func(in *ports.CreateLeadInput) {
		in.CompanyName = "Initech"
		in.Sector = "Logistics"
		in.Status = "New"
		in.AssignedTo = "Alice"
	})
}

func TestDashboardService_ComputeStats(t *testing.T) {
	repo := newStubLeadRepo()
	seedDashboardData(t, repo)
	svc := NewDashboardService(repo, nil, discardLogger)

	stats, err := svc.ComputeStats(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalLeads != 3 {
		t.Errorf("total: expected 3, got %d", stats.TotalLeads)
	}
	if stats.LeadsByStatus["New"] != 2 || stats.LeadsByStatus["Contacted"] != 1 {
		t.Errorf("by status wrong: %v", stats.LeadsByStatus)
	}
	if stats.LeadsBySector["Logistics"] != 2 || stats.LeadsBySector["Energy"] != 1 {
		t.Errorf("by sector wrong: %v", stats.LeadsBySector)
	}
	if stats.LeadsByOwner["Alice"] != 2 || stats.LeadsByOwner["Bob"] != 1 {
		t.Errorf("by owner wrong: %v", stats.LeadsByOwner)
	}
	if len(stats.UpcomingCalls) != 2 {
		t.Fatalf("upcoming: expected 2 leads with follow-up dates, got %d", len(stats.UpcomingCalls))
	}
	// Soonest first.
	if stats.UpcomingCalls[0].NextFollowUpDate != "2026-09-01" {
		t.Errorf("upcoming order wrong: first is %q", stats.UpcomingCalls[0].NextFollowUpDate)
	}
	if len(stats.RecentUpdates) != 3 {
		t.Errorf("recent: expected 3, got %d", len(stats.RecentUpdates))
	}
}

func TestDashboardService_ComputeStats_OwnerScoped(t *testing.T) {
	repo := newStubLeadRepo()
	seedDashboardData(t, repo)
	svc := NewDashboardService(repo, nil, discardLogger)

	stats, err := svc.ComputeStats(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalLeads != 2 {
		t.Errorf("scoped total: expected 2, got %d", stats.TotalLeads)
	}
	if _, ok := stats.LeadsByOwner["Bob"]; ok {
		t.Error("scoped snapshot must not contain other owners")
	}
}

func TestDashboardService_ComputeStats_ExcludesDeleted(t *testing.T) {
	repo := newStubLeadRepo()
	seedDashboardData(t, repo)
	leadSvc := NewLeadService(repo, discardLogger)

	res, err := leadSvc.List(context.Background(), ports.ListLeadsInput{Skip: 0, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := leadSvc.SoftDelete(context.Background(), res.Leads[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	svc := NewDashboardService(repo, nil, discardLogger)
	stats, err := svc.ComputeStats(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalLeads != 2 {
		t.Errorf("expected deleted lead excluded, got total %d", stats.TotalLeads)
	}
}

func TestDashboardService_ComputeStats_SubQueryErrorFailsWhole(t *testing.T) {
	repo := &failingStatsRepo{stubLeadRepo: newStubLeadRepo(), failGroupCount: true}
	seedDashboardData(t, repo.stubLeadRepo)
	svc := NewDashboardService(repo, nil, discardLogger)

	if _, err := svc.ComputeStats(context.Background(), ""); err == nil {
		t.Fatal("expected error when a sub-query fails, got nil")
	}
}

func TestDashboardService_ComputeStats_CacheHit(t *testing.T) {
	repo := newStubLeadRepo()
	cache := newStubStatsCache()
	cache.entries[""] = &ports.DashboardStats{TotalLeads: 42}
	svc := NewDashboardService(repo, cache, discardLogger)

	stats, err := svc.ComputeStats(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalLeads != 42 {
		t.Errorf("expected cached snapshot, got total %d", stats.TotalLeads)
	}
	if cache.setCalls != 0 {
		t.Error("cache hit must not rewrite the entry")
	}
}

func TestDashboardService_ComputeStats_CacheMissPopulates(t *testing.T) {
	repo := newStubLeadRepo()
	seedDashboardData(t, repo)
	cache := newStubStatsCache()
	svc := NewDashboardService(repo, cache, discardLogger)

	stats, err := svc.ComputeStats(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalLeads != 3 {
		t.Errorf("expected fresh snapshot, got total %d", stats.TotalLeads)
	}
	if cache.setCalls != 1 {
		t.Errorf("expected 1 cache write, got %d", cache.setCalls)
	}
	if cached := cache.entries[""]; cached == nil || cached.TotalLeads != 3 {
		t.Errorf("cache not populated: %+v", cache.entries[""])
	}
}

func TestDashboardService_ComputeStats_CacheErrorsDegrade(t *testing.T) {
	repo := newStubLeadRepo()
	seedDashboardData(t, repo)
	cache := newStubStatsCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := NewDashboardService(repo, cache, discardLogger)

	stats, err := svc.ComputeStats(context.Background(), "")
	if err != nil {
		t.Fatalf("cache failure must not fail the snapshot: %v", err)
	}
	if stats.TotalLeads != 3 {
		t.Errorf("expected store-backed snapshot, got total %d", stats.TotalLeads)
	}
}

func TestDashboardService_EmptyStore(t *testing.T) {
	repo := newStubLeadRepo()
	svc := NewDashboardService(repo, nil, discardLogger)

	stats, err := svc.ComputeStats(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalLeads != 0 {
		t.Errorf("expected 0 total, got %d", stats.TotalLeads)
	}
	if len(stats.LeadsByStatus) != 0 {
		t.Errorf("expected no status buckets, got %v", stats.LeadsByStatus)
	}
	if len(stats.UpcomingCalls) != 0 || len(stats.RecentUpdates) != 0 {
		t.Error("expected empty lead slices")
	}
}
