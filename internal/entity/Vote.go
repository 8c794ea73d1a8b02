package entity

import "time"

// Vote is append-only. IPAddress and UserAgent are audit metadata and never
// take part in tallying.
type Vote struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ElectionID  string    `json:"electionId"`
	CandidateID string    `json:"candidateId"`
	Rank        *int      `json:"rank,omitempty"`
	VotedAt     time.Time `json:"votedAt"`
	IPAddress   string    `json:"-"`
	UserAgent   string    `json:"-"`
}

// ElectionVote is a vote as exposed to election administrators. Voter fields
// stay empty for anonymous elections.
type ElectionVote struct {
	ID            string    `json:"id"`
	CandidateID   string    `json:"candidateId"`
	CandidateName string    `json:"candidateName"`
	Rank          *int      `json:"rank,omitempty"`
	VotedAt       time.Time `json:"votedAt"`
	UserID        string    `json:"userId,omitempty"`
	VoterName     string    `json:"voterName,omitempty"`
	VoterEmail    string    `json:"voterEmail,omitempty"`
}

// VoteHistoryItem is one entry of a user's own voting history.
type VoteHistoryItem struct {
	VoteID         string         `json:"voteId"`
	ElectionID     string         `json:"electionId"`
	ElectionTitle  string         `json:"electionTitle"`
	ElectionStatus ElectionStatus `json:"electionStatus"`
	CandidateID    string         `json:"candidateId"`
	CandidateName  string         `json:"candidateName"`
	Rank           *int           `json:"rank,omitempty"`
	VotedAt        time.Time      `json:"votedAt"`
}
