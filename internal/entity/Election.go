package entity

import "time"

type ElectionStatus string

const (
	ElectionStatusDraft     ElectionStatus = "DRAFT"
	ElectionStatusScheduled ElectionStatus = "SCHEDULED"
	ElectionStatusActive    ElectionStatus = "ACTIVE"
	ElectionStatusClosed    ElectionStatus = "CLOSED"
	ElectionStatusPublished ElectionStatus = "PUBLISHED"
)

func (s ElectionStatus) Valid() bool {
	switch s {
	case ElectionStatusDraft, ElectionStatusScheduled, ElectionStatusActive,
		ElectionStatusClosed, ElectionStatusPublished:
		return true
	}
	return false
}

// Editable reports whether the election metadata may still change.
func (s ElectionStatus) Editable() bool {
	return s == ElectionStatusDraft || s == ElectionStatusScheduled
}

type VotingType string

const (
	VotingTypeSingleChoice   VotingType = "SINGLE_CHOICE"
	VotingTypeMultipleChoice VotingType = "MULTIPLE_CHOICE"
	VotingTypeRanked         VotingType = "RANKED"
)

func (t VotingType) Valid() bool {
	switch t {
	case VotingTypeSingleChoice, VotingTypeMultipleChoice, VotingTypeRanked:
		return true
	}
	return false
}

type Election struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	StartDate      time.Time      `json:"startDate"`
	EndDate        time.Time      `json:"endDate"`
	Status         ElectionStatus `json:"status"`
	VotingType     VotingType     `json:"votingType"`
	IsAnonymous    bool           `json:"isAnonymous"`
	OrganizationID string         `json:"organizationId"`
	CreatedByID    string         `json:"createdById"`
	Settings       map[string]any `json:"settings,omitempty"`
	Candidates     []Candidate    `json:"candidates,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// InVotingWindow reports whether now falls within [StartDate, EndDate].
func (e Election) InVotingWindow(now time.Time) bool {
	return !now.Before(e.StartDate) && !now.After(e.EndDate)
}

type ElectionFilter struct {
	OrganizationID string
	Status         ElectionStatus
}
