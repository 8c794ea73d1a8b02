package repo

import "errors"

var (
	ErrElectionNotFound  = errors.New("election not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrResultNotFound    = errors.New("result not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrVoteNotFound      = errors.New("vote not found")

	// ErrVoteExists is returned when the (election, user) uniqueness
	// constraint rejects an insert.
	ErrVoteExists = errors.New("vote already exists")
	// ErrElectionNotActive is returned when a vote insert finds the election
	// no longer ACTIVE inside the insert transaction.
	ErrElectionNotActive = errors.New("election is not active")
	// ErrStatusConflict is returned when a conditional status write finds the
	// election in a status other than the expected ones.
	ErrStatusConflict   = errors.New("election status changed")
	ErrElectionHasVotes = errors.New("election has votes")
)
