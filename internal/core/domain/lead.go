package domain

import (
	"errors"
	"time"
)

// LeadStatus represents the pipeline stage of a lead.
type LeadStatus string

const (
	StatusNew       LeadStatus = "New"
	StatusContacted LeadStatus = "Contacted"
	StatusQualified LeadStatus = "Qualified"
	StatusConverted LeadStatus = "Converted"
	StatusLost      LeadStatus = "Lost"
)

// leadStatuses is the closed set of accepted status values.
var leadStatuses = map[LeadStatus]struct{}{
	StatusNew:       {},
	StatusContacted: {},
	StatusQualified: {},
	StatusConverted: {},
	StatusLost:      {},
}

var ErrLeadNotFound = errors.New("lead not found")
var ErrInvalidStatus = errors.New("invalid lead status")
var ErrInvalidInput = errors.New("invalid input")

// Valid reports whether the status is one of the accepted values.
func (s LeadStatus) Valid() bool {
	_, ok := leadStatuses[s]
	return ok
}

// Interaction records a single action taken on a lead. Entries are
// append-only: once written they are never edited or removed.
type Interaction struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Notes     string    `json:"notes,omitempty"`
}

// Lead is the core aggregate root. The ID is the hex form of the store's
// document identifier and is assigned at creation.
type Lead struct {
	ID                 string        `json:"id"`
	CompanyName        string        `json:"company_name"`
	Email              string        `json:"email"`
	MobileNumber       string        `json:"mobile_number"`
	Sector             string        `json:"sector"`
	Status             LeadStatus    `json:"status"`
	Notes              string        `json:"notes,omitempty"`
	NextFollowUpDate   string        `json:"next_follow_up_date,omitempty"`
	CreatedBy          string        `json:"created_by"`
	AssignedTo         string        `json:"assigned_to"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	IsDeleted          bool          `json:"is_deleted"`
	InteractionHistory []Interaction `json:"interaction_history"`
}
