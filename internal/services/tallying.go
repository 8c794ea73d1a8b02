package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/14kear/online_elections/internal/lib/tally"
	"github.com/14kear/online_elections/internal/repo"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
)

// Tallying computes, publishes and serves election results.
type Tallying struct {
	log       *slog.Logger
	lifecycle *Lifecycle
	votes     VoteStorage
	results   ResultStorage
	members   MemberCounter
	notifier  Notifier
	clock     Clock
}

func NewTallying(
	log *slog.Logger,
	lifecycle *Lifecycle,
	votes VoteStorage,
	results ResultStorage,
	members MemberCounter,
	notifier Notifier,
	clock Clock,
) *Tallying {
	return &Tallying{
		log:       log,
		lifecycle: lifecycle,
		votes:     votes,
		results:   results,
		members:   members,
		notifier:  notifier,
		clock:     clock,
	}
}

// CalculateResults tallies the election from its stored candidates and votes.
// It has no side effects and works in any status. Participation is measured
// against the organization's active members at call time.
func (t *Tallying) CalculateResults(ctx context.Context, electionID string) (entity.Result, error) {
	const op = "Tallying.CalculateResults"

	election, err := t.lifecycle.elections.GetElectionByID(ctx, electionID)
	if err != nil {
		if errors.Is(err, repo.ErrElectionNotFound) {
			return entity.Result{}, notFoundError(msgElectionNotFound)
		}
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	return t.calculate(ctx, election)
}

func (t *Tallying) calculate(ctx context.Context, election entity.Election) (entity.Result, error) {
	const op = "Tallying.calculate"

	votes, err := t.votes.GetVotesByElection(ctx, election.ID)
	if err != nil {
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	eligible, err := t.members.CountActiveUsers(ctx, election.OrganizationID)
	if err != nil {
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	return tally.Compute(election.ID, election.Candidates, votes, eligible), nil
}

// PublishResults tallies a CLOSED election, then stores the result and marks
// the election PUBLISHED in one atomic store call. A failed store call is not
// retried here; calling PublishResults again is safe.
func (t *Tallying) PublishResults(ctx context.Context, p entity.Principal, electionID string) (entity.Result, error) {
	const op = "Tallying.PublishResults"

	log := t.log.With(slog.String("op", op), slog.String("election_id", electionID), slog.String("user_id", p.UserID))

	if err := authorize(log, p, OpPublishResults); err != nil {
		return entity.Result{}, err
	}

	election, err := t.lifecycle.load(ctx, electionID, p.OrganizationID)
	if err != nil {
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if election.Status != entity.ElectionStatusClosed {
		return entity.Result{}, validationError("Only closed elections can be published")
	}

	result, err := t.calculate(ctx, election)
	if err != nil {
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	publishedAt := t.clock.Now()
	result.PublishedAt = &publishedAt

	if err := t.results.PublishResult(ctx, result); err != nil {
		switch {
		case errors.Is(err, repo.ErrStatusConflict):
			return entity.Result{}, validationError(msgStatusChanged)
		case errors.Is(err, repo.ErrElectionNotFound):
			return entity.Result{}, notFoundError(msgElectionNotFound)
		}
		log.Error("failed to publish results", sl.Err(err))
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("results published", slog.Int64("total_votes", result.TotalVotes))
	publish(ctx, t.log, t.notifier, entity.EventResultsPublished, result)

	return result, nil
}

// GetResults serves administrators the stored result once published and a
// live tally before that. Voters only ever see the stored result.
func (t *Tallying) GetResults(ctx context.Context, p entity.Principal, electionID string) (entity.Result, error) {
	const op = "Tallying.GetResults"

	election, err := t.lifecycle.load(ctx, electionID, p.OrganizationID)
	if err != nil {
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if election.Status != entity.ElectionStatusPublished {
		if !Allowed(p, OpViewLiveResults) {
			return entity.Result{}, validationError(msgNotPublished)
		}
		result, err := t.calculate(ctx, election)
		if err != nil {
			return entity.Result{}, fmt.Errorf("%s: %w", op, err)
		}
		return result, nil
	}

	result, err := t.results.GetResult(ctx, electionID)
	if err != nil {
		if errors.Is(err, repo.ErrResultNotFound) {
			return entity.Result{}, notFoundError("Results not found")
		}
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// GetStats aggregates the election's votes for dashboards.
func (t *Tallying) GetStats(ctx context.Context, p entity.Principal, electionID string) (entity.ElectionStats, error) {
	const op = "Tallying.GetStats"

	log := t.log.With(slog.String("op", op), slog.String("election_id", electionID))

	if err := authorize(log, p, OpViewStats); err != nil {
		return entity.ElectionStats{}, err
	}

	election, err := t.lifecycle.load(ctx, electionID, p.OrganizationID)
	if err != nil {
		return entity.ElectionStats{}, fmt.Errorf("%s: %w", op, err)
	}

	votes, err := t.votes.GetVotesByElection(ctx, electionID)
	if err != nil {
		return entity.ElectionStats{}, fmt.Errorf("%s: %w", op, err)
	}

	eligible, err := t.members.CountActiveUsers(ctx, election.OrganizationID)
	if err != nil {
		return entity.ElectionStats{}, fmt.Errorf("%s: %w", op, err)
	}

	result := tally.Compute(election.ID, election.Candidates, votes, eligible)
	byHour, byDay := tally.Histograms(votes)

	return entity.ElectionStats{
		ElectionID:          election.ID,
		Status:              election.Status,
		TotalVotes:          result.TotalVotes,
		TotalEligibleVoters: eligible,
		ParticipationRate:   result.ParticipationRate,
		Candidates:          result.Candidates,
		VotesByHour:         byHour,
		VotesByDay:          byDay,
	}, nil
}
