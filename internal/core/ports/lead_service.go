package ports

import (
	"context"

	"github.com/route2rise/leaddesk/internal/core/domain"
)

// CreateLeadInput carries all data needed to create a new lead.
// CreatedBy and AssignedTo are the authenticated founder's display name.
type CreateLeadInput struct {
	CompanyName      string
	Email            string
	MobileNumber     string
	Sector           string
	Status           string // empty defaults to "New"
	Notes            string
	NextFollowUpDate string
	CreatedBy        string
	AssignedTo       string
}

// ListLeadsInput carries all parameters for the list operation.
type ListLeadsInput struct {
	Skip       int
	Limit      int
	Status     string
	Sector     string
	AssignedTo string
	Search     string
}

// ListLeadsResult is returned by List.
type ListLeadsResult struct {
	Leads []*domain.Lead
	Total int64
	Skip  int
	Limit int
}

// LeadService defines the lead lifecycle use-cases. Every operation assumes
// an already-authenticated caller.
type LeadService interface {
	Create(ctx context.Context, input CreateLeadInput) (*domain.Lead, error)
	Get(ctx context.Context, id string, includeDeleted bool) (*domain.Lead, error)
	List(ctx context.Context, input ListLeadsInput) (*ListLeadsResult, error)
	Update(ctx context.Context, id string, fields UpdateLeadFields) (*domain.Lead, error)
	AddInteraction(ctx context.Context, id, action, notes string) (*domain.Lead, error)
	SoftDelete(ctx context.Context, id string) (*domain.Lead, error)
}
