package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createLeadRequest struct {
	CompanyName      string `json:"company_name"        validate:"required"`
	Email            string `json:"email"               validate:"required,email"`
	MobileNumber     string `json:"mobile_number"       validate:"required"`
	Sector           string `json:"sector"              validate:"required"`
	Status           string `json:"status"              validate:"omitempty,oneof=New Contacted Qualified Converted Lost"`
	Notes            string `json:"notes"`
	NextFollowUpDate string `json:"next_follow_up_date"`
}

// updateLeadRequest is a partial update: absent fields stay untouched, which
// is why every field is a pointer.
type updateLeadRequest struct {
	CompanyName      *string `json:"company_name"`
	Email            *string `json:"email"               validate:"omitempty,email"`
	MobileNumber     *string `json:"mobile_number"`
	Sector           *string `json:"sector"`
	Status           *string `json:"status"              validate:"omitempty,oneof=New Contacted Qualified Converted Lost"`
	Notes            *string `json:"notes"`
	NextFollowUpDate *string `json:"next_follow_up_date"`
	AssignedTo       *string `json:"assigned_to"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type interactionResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Notes     string    `json:"notes,omitempty"`
}

type leadResponse struct {
	ID                 string                `json:"id"`
	CompanyName        string                `json:"company_name"`
	Email              string                `json:"email"`
	MobileNumber       string                `json:"mobile_number"`
	Sector             string                `json:"sector"`
	Status             string                `json:"status"`
	Notes              string                `json:"notes,omitempty"`
	NextFollowUpDate   string                `json:"next_follow_up_date,omitempty"`
	CreatedBy          string                `json:"created_by"`
	AssignedTo         string                `json:"assigned_to"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
	IsDeleted          bool                  `json:"is_deleted"`
	InteractionHistory []interactionResponse `json:"interaction_history"`
}

type listLeadsResponse struct {
	Leads []leadResponse `json:"leads"`
	Total int64          `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

type deleteLeadResponse struct {
	Message string `json:"message"`
}

type dashboardStatsResponse struct {
	TotalLeads    int64            `json:"total_leads"`
	LeadsByStatus map[string]int64 `json:"leads_by_status"`
	LeadsBySector map[string]int64 `json:"leads_by_sector"`
	LeadsByOwner  map[string]int64 `json:"leads_by_owner"`
	UpcomingCalls []leadResponse   `json:"upcoming_calls"`
	RecentUpdates []leadResponse   `json:"recent_updates"`
}
