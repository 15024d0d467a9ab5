package models

import (
	"strings"
	"time"
)

// InquiryType is the capture source of a lead.
type InquiryType string

const (
	TypeGeneral        InquiryType = "GENERAL"
	TypePackageBooking InquiryType = "PACKAGE_BOOKING"
	TypePlanMyTrip     InquiryType = "PLAN_MY_TRIP"
	TypeAIWizardLead   InquiryType = "AI_WIZARD_LEAD"
)

// PublicInquiryTypes are the types accepted on the public lead form.
// AI_WIZARD_LEAD rows are created by the trip-wizard flow, not the form.
var PublicInquiryTypes = []InquiryType{TypeGeneral, TypePackageBooking, TypePlanMyTrip}

func (t InquiryType) Valid() bool {
	switch t {
	case TypeGeneral, TypePackageBooking, TypePlanMyTrip, TypeAIWizardLead:
		return true
	}
	return false
}

// Display humanizes the enum value for dashboards: underscores become
// spaces and each word is title-cased ("PLAN_MY_TRIP" -> "Plan My Trip").
func (t InquiryType) Display() string {
	words := strings.Split(strings.ToLower(string(t)), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// InquiryStatus is the pipeline stage of a lead.
type InquiryStatus string

const (
	StatusPending    InquiryStatus = "PENDING"
	StatusContacted  InquiryStatus = "CONTACTED"
	StatusInterested InquiryStatus = "INTERESTED"
	StatusBooked     InquiryStatus = "BOOKED"
	StatusClosed     InquiryStatus = "CLOSED"
)

// PipelineStatuses lists the board columns in pipeline order.
var PipelineStatuses = []InquiryStatus{
	StatusPending, StatusContacted, StatusInterested, StatusBooked, StatusClosed,
}

func (s InquiryStatus) Valid() bool {
	for _, ps := range PipelineStatuses {
		if s == ps {
			return true
		}
	}
	return false
}

// InquiryTransitions is the allowed-transition table of the pipeline.
// Every stage is reachable from every other: operators move leads backward
// (BOOKED back to PENDING on a cancelled plan) as a matter of course, so
// the table is deliberately all-to-all. It exists as data, not as an
// absence of checks, so narrowing it later is a one-map change.
var InquiryTransitions = map[InquiryStatus][]InquiryStatus{
	StatusPending:    {StatusContacted, StatusInterested, StatusBooked, StatusClosed},
	StatusContacted:  {StatusPending, StatusInterested, StatusBooked, StatusClosed},
	StatusInterested: {StatusPending, StatusContacted, StatusBooked, StatusClosed},
	StatusBooked:     {StatusPending, StatusContacted, StatusInterested, StatusClosed},
	StatusClosed:     {StatusPending, StatusContacted, StatusInterested, StatusBooked},
}

// CanTransition reports whether the pipeline allows moving from one stage
// to another. Staying in the same stage is always allowed.
func CanTransition(from, to InquiryStatus) bool {
	if from == to {
		return true
	}
	for _, next := range InquiryTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Inquiry is a captured lead moving through the sales pipeline.
type Inquiry struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email,omitempty"`
	Destination string        `json:"destination,omitempty"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	Travelers   *int          `json:"travelers,omitempty"`
	Budget      string        `json:"budget,omitempty"`
	Message     string        `json:"message,omitempty"`
	Type        InquiryType   `json:"type"`
	PackageID   *int          `json:"package_id,omitempty"`
	Status      InquiryStatus `json:"status"`
	IsRead      bool          `json:"is_read"`
	IsDeleted   bool          `json:"is_deleted"`
	DeletedAt   *time.Time    `json:"deleted_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// CreateInquiryRequest is the public lead-form payload.
type CreateInquiryRequest struct {
	Name         string      `json:"name"`
	Phone        string      `json:"phone"`
	Email        string      `json:"email"`
	Destination  string      `json:"destination"`
	StartDate    string      `json:"start_date"`
	Travelers    *int        `json:"travelers"`
	Budget       string      `json:"budget"`
	Message      string      `json:"message"`
	Type         InquiryType `json:"type"`
	PackageID    *int        `json:"package_id"`
	CaptchaToken string      `json:"captcha_token"`
}

// CreateInquiryResponse is returned to the public form. Duplicate
// submissions come back with Success=false and a polite message, not an
// HTTP error.
type CreateInquiryResponse struct {
	Success   bool   `json:"success"`
	InquiryID int    `json:"inquiry_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

type UpdateInquiryStatusRequest struct {
	Status InquiryStatus `json:"status"`
}

// InquirySummary is the compact view used by the dashboard activity feed.
type InquirySummary struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Destination string        `json:"destination,omitempty"`
	Type        InquiryType   `json:"type"`
	Status      InquiryStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}
