package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/14kear/online_elections/internal/repo"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/google/uuid"
)

// Voting records votes and serves vote reads.
type Voting struct {
	log       *slog.Logger
	lifecycle *Lifecycle
	votes     VoteStorage
	notifier  Notifier
	clock     Clock
}

type VoteInput struct {
	ElectionID  string
	CandidateID string
	Rank        *int
	IPAddress   string
	UserAgent   string
}

type VoteCastEvent struct {
	ElectionID string `json:"electionId"`
	TotalVotes int64  `json:"totalVotes"`
}

func NewVoting(
	log *slog.Logger,
	lifecycle *Lifecycle,
	votes VoteStorage,
	notifier Notifier,
	clock Clock,
) *Voting {
	return &Voting{
		log:       log,
		lifecycle: lifecycle,
		votes:     votes,
		notifier:  notifier,
		clock:     clock,
	}
}

// CastVote records the principal's single vote in an election. The lookup of
// an existing vote only produces an early error message; the store's
// (election, user) uniqueness is what rejects a concurrent duplicate.
func (v *Voting) CastVote(ctx context.Context, p entity.Principal, in VoteInput) (entity.Vote, error) {
	const op = "Voting.CastVote"

	log := v.log.With(slog.String("op", op), slog.String("election_id", in.ElectionID), slog.String("user_id", p.UserID))

	if !p.IsActive {
		return entity.Vote{}, AuthorizationError(msgInactiveAccount)
	}

	election, err := v.lifecycle.load(ctx, in.ElectionID, p.OrganizationID)
	if err != nil {
		return entity.Vote{}, fmt.Errorf("%s: %w", op, err)
	}

	now := v.clock.Now()
	if election.Status != entity.ElectionStatusActive {
		return entity.Vote{}, validationError(msgNotActive)
	}
	if !election.InVotingWindow(now) {
		return entity.Vote{}, validationError(msgOutsideVotingTime)
	}

	_, err = v.votes.GetUserVote(ctx, election.ID, p.UserID)
	switch {
	case err == nil:
		return entity.Vote{}, conflictError(msgAlreadyVoted)
	case !errors.Is(err, repo.ErrVoteNotFound):
		return entity.Vote{}, fmt.Errorf("%s: %w", op, err)
	}

	if !hasCandidate(election, in.CandidateID) {
		return entity.Vote{}, validationError(msgInvalidCandidate)
	}
	if in.Rank != nil && *in.Rank < 1 {
		return entity.Vote{}, validationError("Rank must be a positive integer")
	}

	vote := entity.Vote{
		ID:          uuid.NewString(),
		UserID:      p.UserID,
		ElectionID:  election.ID,
		CandidateID: in.CandidateID,
		Rank:        in.Rank,
		VotedAt:     now,
		IPAddress:   in.IPAddress,
		UserAgent:   in.UserAgent,
	}

	total, err := v.votes.SaveVote(ctx, vote)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrVoteExists):
			return entity.Vote{}, conflictError(msgAlreadyVoted)
		case errors.Is(err, repo.ErrElectionNotActive):
			return entity.Vote{}, validationError(msgNotActive)
		case errors.Is(err, repo.ErrCandidateNotFound):
			return entity.Vote{}, validationError(msgInvalidCandidate)
		case errors.Is(err, repo.ErrElectionNotFound):
			return entity.Vote{}, notFoundError(msgElectionNotFound)
		}
		log.Error("failed to save vote", sl.Err(err))
		return entity.Vote{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("vote cast", slog.Int64("total_votes", total))
	publish(ctx, v.log, v.notifier, entity.EventVoteCast, VoteCastEvent{ElectionID: election.ID, TotalVotes: total})

	return vote, nil
}

func (v *Voting) CheckIfUserVoted(ctx context.Context, p entity.Principal, electionID string) (bool, error) {
	const op = "Voting.CheckIfUserVoted"

	if _, err := v.lifecycle.load(ctx, electionID, p.OrganizationID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	_, err := v.votes.GetUserVote(ctx, electionID, p.UserID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repo.ErrVoteNotFound):
		return false, nil
	}
	return false, fmt.Errorf("%s: %w", op, err)
}

func (v *Voting) GetVoteCount(ctx context.Context, p entity.Principal, electionID string) (int64, error) {
	const op = "Voting.GetVoteCount"

	if _, err := v.lifecycle.load(ctx, electionID, p.OrganizationID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	total, err := v.votes.CountVotes(ctx, electionID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, nil
}

// GetUserVoteHistory lists the principal's own votes, newest first.
func (v *Voting) GetUserVoteHistory(ctx context.Context, p entity.Principal) ([]entity.VoteHistoryItem, error) {
	const op = "Voting.GetUserVoteHistory"

	items, err := v.votes.GetVoteHistory(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// GetElectionVotes lists an election's votes. Voter identity is never part of
// the output for an anonymous election, whatever includeVoterDetails says.
func (v *Voting) GetElectionVotes(ctx context.Context, p entity.Principal, electionID string, includeVoterDetails bool) ([]entity.ElectionVote, error) {
	const op = "Voting.GetElectionVotes"

	log := v.log.With(slog.String("op", op), slog.String("election_id", electionID))

	if err := authorize(log, p, OpListElectionVotes); err != nil {
		return nil, err
	}

	election, err := v.lifecycle.load(ctx, electionID, p.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	withVoters := includeVoterDetails && !election.IsAnonymous

	votes, err := v.votes.GetElectionVotes(ctx, electionID, withVoters)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !withVoters {
		for i := range votes {
			votes[i].UserID = ""
			votes[i].VoterName = ""
			votes[i].VoterEmail = ""
		}
	}

	return votes, nil
}

func hasCandidate(election entity.Election, candidateID string) bool {
	for _, c := range election.Candidates {
		if c.ID == candidateID {
			return true
		}
	}
	return false
}
