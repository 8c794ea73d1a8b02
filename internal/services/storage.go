package services

//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks

import (
	"context"

	"github.com/14kear/online_elections/internal/entity"
)

type ElectionStorage interface {
	SaveElection(ctx context.Context, election entity.Election) error
	GetElectionByID(ctx context.Context, id string) (entity.Election, error)
	GetElections(ctx context.Context, filter entity.ElectionFilter) ([]entity.Election, error)
	UpdateElection(ctx context.Context, election entity.Election, replaceCandidates bool) error
	UpdateElectionStatus(ctx context.Context, id string, to entity.ElectionStatus, from ...entity.ElectionStatus) error
	DeleteElection(ctx context.Context, id string) error
}

type VoteStorage interface {
	SaveVote(ctx context.Context, vote entity.Vote) (int64, error)
	GetUserVote(ctx context.Context, electionID, userID string) (entity.Vote, error)
	CountVotes(ctx context.Context, electionID string) (int64, error)
	GetVotesByElection(ctx context.Context, electionID string) ([]entity.Vote, error)
	GetElectionVotes(ctx context.Context, electionID string, withVoters bool) ([]entity.ElectionVote, error)
	GetVoteHistory(ctx context.Context, userID string) ([]entity.VoteHistoryItem, error)
}

type ResultStorage interface {
	PublishResult(ctx context.Context, result entity.Result) error
	GetResult(ctx context.Context, electionID string) (entity.Result, error)
}

type MemberCounter interface {
	CountActiveUsers(ctx context.Context, organizationID string) (int64, error)
}

// Notifier is the one-way event port. Publish is called only after the state
// change it describes has been committed.
type Notifier interface {
	Publish(ctx context.Context, event entity.Event, payload any) error
}
