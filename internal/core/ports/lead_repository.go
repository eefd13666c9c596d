package ports

import (
	"context"

	"github.com/route2rise/leaddesk/internal/core/domain"
)

// ListLeadsFilter carries all query parameters for listing leads.
// Soft-deleted leads are always excluded from list results.
type ListLeadsFilter struct {
	Status     string // optional: exact match on status
	Sector     string // optional: exact match on sector
	AssignedTo string // optional: exact match on assigned owner
	Search     string // optional: case-insensitive substring match on company_name, email, or mobile_number
	Skip       int    // >= 0
	Limit      int    // [1,100], enforced by the service layer
}

// StatsFilter is the base filter shared by every dashboard sub-query.
// Soft-deleted leads are always excluded.
type StatsFilter struct {
	AssignedTo string // empty = all owners
}

// Grouping keys accepted by LeadRepository.GroupCount.
const (
	GroupByStatus = "status"
	GroupBySector = "sector"
	GroupByOwner  = "assigned_to"
)

// UpdateLeadFields is a partial update: only non-nil fields are applied.
type UpdateLeadFields struct {
	CompanyName      *string
	Email            *string
	MobileNumber     *string
	Sector           *string
	Status           *string
	Notes            *string
	NextFollowUpDate *string
	AssignedTo       *string
}

// LeadRepository defines persistence operations for leads.
//
// All mutators are single atomic find-and-modify calls: the store, not the
// application, serializes concurrent writes to the same lead. A malformed
// identifier resolves to domain.ErrLeadNotFound, never a storage error.
type LeadRepository interface {
	Insert(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)

	// FindByID retrieves a lead by identifier. Soft-deleted leads are
	// invisible unless includeDeleted is set.
	FindByID(ctx context.Context, id string, includeDeleted bool) (*domain.Lead, error)

	// List returns a page of leads sorted by created_at descending, plus the
	// total count of matches ignoring pagination.
	List(ctx context.Context, filter ListLeadsFilter) ([]*domain.Lead, int64, error)

	// UpdateFields applies the set fields atomically and refreshes
	// updated_at. Soft-deleted leads are treated as not found.
	UpdateFields(ctx context.Context, id string, fields UpdateLeadFields) (*domain.Lead, error)

	// AppendInteraction atomically appends an entry to the interaction
	// history and refreshes updated_at. Soft-deleted leads are treated as
	// not found.
	AppendInteraction(ctx context.Context, id string, entry domain.Interaction) (*domain.Lead, error)

	// SoftDelete marks the lead deleted and refreshes updated_at. The lookup
	// intentionally does not filter on is_deleted, so deleting an
	// already-deleted lead is an idempotent no-op returning current state.
	SoftDelete(ctx context.Context, id string) (*domain.Lead, error)

	// CountLeads returns the number of non-deleted leads matching the filter.
	CountLeads(ctx context.Context, filter StatsFilter) (int64, error)

	// GroupCount groups non-deleted matching leads by the given field and
	// returns value -> count. Absent values are not zero-filled.
	GroupCount(ctx context.Context, field string, filter StatsFilter) (map[string]int64, error)

	// FindUpcomingFollowUps returns up to limit leads with a non-empty
	// next_follow_up_date, soonest first.
	FindUpcomingFollowUps(ctx context.Context, filter StatsFilter, limit int64) ([]*domain.Lead, error)

	// FindRecentlyUpdated returns up to limit leads sorted by updated_at
	// descending.
	FindRecentlyUpdated(ctx context.Context, filter StatsFilter, limit int64) ([]*domain.Lead, error)
}
