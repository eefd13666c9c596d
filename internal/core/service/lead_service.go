package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/route2rise/leaddesk/internal/core/domain"
	"github.com/route2rise/leaddesk/internal/core/ports"
)

const maxListLimit = 100

// LeadService implements the lead lifecycle use-cases on top of the
// repository. Input validation happens here, before any store access.
type LeadService struct {
	repo   ports.LeadRepository
	logger zerolog.Logger
}

func NewLeadService(repo ports.LeadRepository, logger zerolog.Logger) *LeadService {
	return &LeadService{repo: repo, logger: logger}
}

// Create validates input and inserts a new lead. The interaction history
// starts empty, both timestamps are set to now, and is_deleted is false.
func (s *LeadService) Create(ctx context.Context, input ports.CreateLeadInput) (*domain.Lead, error) {
	if input.CompanyName == "" || input.Email == "" || input.MobileNumber == "" || input.Sector == "" {
		return nil, fmt.Errorf("create lead: missing required field: %w", domain.ErrInvalidInput)
	}

	status := domain.LeadStatus(input.Status)
	if input.Status == "" {
		status = domain.StatusNew
	} else if !status.Valid() {
		return nil, fmt.Errorf("create lead: %q: %w", input.Status, domain.ErrInvalidStatus)
	}

	now := time.Now().UTC()
	lead := &domain.Lead{
		CompanyName:        input.CompanyName,
		Email:              input.Email,
		MobileNumber:       input.MobileNumber,
		Sector:             input.Sector,
		Status:             status,
		Notes:              input.Notes,
		NextFollowUpDate:   input.NextFollowUpDate,
		CreatedBy:          input.CreatedBy,
		AssignedTo:         input.AssignedTo,
		CreatedAt:          now,
		UpdatedAt:          now,
		InteractionHistory: []domain.Interaction{},
	}

	created, err := s.repo.Insert(ctx, lead)
	if err != nil {
		s.logger.Error().Err(err).Str("company", input.CompanyName).Msg("failed to create lead")
		return nil, err
	}

	s.logger.Info().Str("lead_id", created.ID).Str("company", created.CompanyName).Msg("lead created")
	return created, nil
}

// Get retrieves a single lead. Soft-deleted leads resolve to not-found
// unless includeDeleted is set.
func (s *LeadService) Get(ctx context.Context, id string, includeDeleted bool) (*domain.Lead, error) {
	return s.repo.FindByID(ctx, id, includeDeleted)
}

// List returns a filtered, paginated page of leads plus the total matching
// count. Limit must be within [1,100] and skip non-negative.
func (s *LeadService) List(ctx context.Context, input ports.ListLeadsInput) (*ports.ListLeadsResult, error) {
	if input.Skip < 0 {
		return nil, fmt.Errorf("list leads: skip must be >= 0: %w", domain.ErrInvalidInput)
	}
	if input.Limit < 1 || input.Limit > maxListLimit {
		return nil, fmt.Errorf("list leads: limit must be within [1,%d]: %w", maxListLimit, domain.ErrInvalidInput)
	}
	if input.Status != "" && !domain.LeadStatus(input.Status).Valid() {
		return nil, fmt.Errorf("list leads: %q: %w", input.Status, domain.ErrInvalidStatus)
	}

	leads, total, err := s.repo.List(ctx, ports.ListLeadsFilter{
		Status:     input.Status,
		Sector:     input.Sector,
		AssignedTo: input.AssignedTo,
		Search:     input.Search,
		Skip:       input.Skip,
		Limit:      input.Limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list leads")
		return nil, err
	}

	return &ports.ListLeadsResult{Leads: leads, Total: total, Skip: input.Skip, Limit: input.Limit}, nil
}

// Update applies a partial field update: only explicitly set fields change,
// everything else, including the interaction history, is untouched.
func (s *LeadService) Update(ctx context.Context, id string, fields ports.UpdateLeadFields) (*domain.Lead, error) {
	if fields.Status != nil && !domain.LeadStatus(*fields.Status).Valid() {
		return nil, fmt.Errorf("update lead: %q: %w", *fields.Status, domain.ErrInvalidStatus)
	}

	lead, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("lead_id", id).Msg("lead updated")
	return lead, nil
}

// AddInteraction appends a timestamped entry to the lead's history.
func (s *LeadService) AddInteraction(ctx context.Context, id, action, notes string) (*domain.Lead, error) {
	if action == "" {
		return nil, fmt.Errorf("add interaction: action is required: %w", domain.ErrInvalidInput)
	}

	entry := domain.Interaction{
		Timestamp: time.Now().UTC(),
		Action:    action,
		Notes:     notes,
	}

	lead, err := s.repo.AppendInteraction(ctx, id, entry)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("lead_id", id).Str("action", action).Msg("interaction logged")
	return lead, nil
}

// SoftDelete hides the lead from default reads without erasing it. Deleting
// an already-deleted lead is an idempotent no-op.
func (s *LeadService) SoftDelete(ctx context.Context, id string) (*domain.Lead, error) {
	lead, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("lead_id", id).Msg("lead soft-deleted")
	return lead, nil
}
