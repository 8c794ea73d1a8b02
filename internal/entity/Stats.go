package entity

type Bucket struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
}

type ElectionStats struct {
	ElectionID          string            `json:"electionId"`
	Status              ElectionStatus    `json:"status"`
	TotalVotes          int64             `json:"totalVotes"`
	TotalEligibleVoters int64             `json:"totalEligibleVoters"`
	ParticipationRate   float64           `json:"participationRate"`
	Candidates          []CandidateResult `json:"candidates"`
	VotesByHour         []Bucket          `json:"votesByHour"`
	VotesByDay          []Bucket          `json:"votesByDay"`
}

type CanVote struct {
	CanVote bool   `json:"canVote"`
	Reason  string `json:"reason,omitempty"`
}
