package handler

import (
	"github.com/route2rise/leaddesk/internal/core/domain"
	"github.com/route2rise/leaddesk/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createLeadRequest, founder string) ports.CreateLeadInput {
	return ports.CreateLeadInput{
		CompanyName:      req.CompanyName,
		Email:            req.Email,
		MobileNumber:     req.MobileNumber,
		Sector:           req.Sector,
		Status:           req.Status,
		Notes:            req.Notes,
		NextFollowUpDate: req.NextFollowUpDate,
		// The creating founder owns the lead until it is reassigned.
		CreatedBy:  founder,
		AssignedTo: founder,
	}
}

func toUpdateFields(req updateLeadRequest) ports.UpdateLeadFields {
	return ports.UpdateLeadFields{
		CompanyName:      req.CompanyName,
		Email:            req.Email,
		MobileNumber:     req.MobileNumber,
		Sector:           req.Sector,
		Status:           req.Status,
		Notes:            req.Notes,
		NextFollowUpDate: req.NextFollowUpDate,
		AssignedTo:       req.AssignedTo,
	}
}

// --- Service result → HTTP response ---

func toLeadResponse(l *domain.Lead) leadResponse {
	history := make([]interactionResponse, len(l.InteractionHistory))
	for i, e := range l.InteractionHistory {
		history[i] = interactionResponse{
			Timestamp: e.Timestamp.UTC(),
			Action:    e.Action,
			Notes:     e.Notes,
		}
	}
	return leadResponse{
		ID:                 l.ID,
		CompanyName:        l.CompanyName,
		Email:              l.Email,
		MobileNumber:       l.MobileNumber,
		Sector:             l.Sector,
		Status:             string(l.Status),
		Notes:              l.Notes,
		NextFollowUpDate:   l.NextFollowUpDate,
		CreatedBy:          l.CreatedBy,
		AssignedTo:         l.AssignedTo,
		CreatedAt:          l.CreatedAt.UTC(),
		UpdatedAt:          l.UpdatedAt.UTC(),
		IsDeleted:          l.IsDeleted,
		InteractionHistory: history,
	}
}

func toLeadResponses(leads []*domain.Lead) []leadResponse {
	out := make([]leadResponse, len(leads))
	for i, l := range leads {
		out[i] = toLeadResponse(l)
	}
	return out
}

func toListResponse(r *ports.ListLeadsResult) listLeadsResponse {
	return listLeadsResponse{
		Leads: toLeadResponses(r.Leads),
		Total: r.Total,
		Skip:  r.Skip,
		Limit: r.Limit,
	}
}

func toStatsResponse(s *ports.DashboardStats) dashboardStatsResponse {
	return dashboardStatsResponse{
		TotalLeads:    s.TotalLeads,
		LeadsByStatus: s.LeadsByStatus,
		LeadsBySector: s.LeadsBySector,
		LeadsByOwner:  s.LeadsByOwner,
		UpcomingCalls: toLeadResponses(s.UpcomingCalls),
		RecentUpdates: toLeadResponses(s.RecentUpdates),
	}
}
