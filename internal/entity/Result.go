package entity

import "time"

type CandidateResult struct {
	CandidateID string  `json:"candidateId"`
	Name        string  `json:"name"`
	Position    int     `json:"position"`
	VoteCount   int64   `json:"voteCount"`
	Percentage  float64 `json:"percentage"`
}

type Tally struct {
	VoteCount  int64   `json:"voteCount"`
	Percentage float64 `json:"percentage"`
}

// Result is the tally of one election. Results holds the same tallies as
// Candidates keyed by candidate id. Candidates are ordered by vote count
// descending, ties keep ascending position. PublishedAt is nil for a live
// (unpublished) computation.
type Result struct {
	ElectionID          string            `json:"electionId"`
	TotalVotes          int64             `json:"totalVotes"`
	TotalEligibleVoters int64             `json:"totalEligibleVoters"`
	ParticipationRate   float64           `json:"participationRate"`
	Results             map[string]Tally  `json:"results"`
	Candidates          []CandidateResult `json:"candidates"`
	WinnerID            *string           `json:"winnerId"`
	PublishedAt         *time.Time        `json:"publishedAt,omitempty"`
}
