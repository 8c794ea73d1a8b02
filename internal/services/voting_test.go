package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoting_CastVote_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.activeElection(t)
	voter := env.addUser(entity.RoleMember)

	vote, err := env.voting.CastVote(ctx, voter, VoteInput{
		ElectionID:  election.ID,
		CandidateID: election.Candidates[1].ID,
		IPAddress:   "10.0.0.7",
		UserAgent:   "test-agent",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, vote.ID)
	assert.Equal(t, voter.UserID, vote.UserID)
	assert.True(t, baseTime.Equal(vote.VotedAt))

	stored, err := env.store.GetUserVote(ctx, election.ID, voter.UserID)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", stored.IPAddress)
	assert.Equal(t, "test-agent", stored.UserAgent)

	events := env.events.Events()
	last := events[len(events)-1]
	assert.Equal(t, entity.EventVoteCast, last.Event)
	assert.Equal(t, VoteCastEvent{ElectionID: election.ID, TotalVotes: 1}, last.Payload)
}

func TestVoting_CastVote_RankedVote(t *testing.T) {
	env := newTestEnv(t)

	election := env.activeElection(t)
	rank := 2

	vote, err := env.voting.CastVote(context.Background(), env.treasurer, VoteInput{
		ElectionID:  election.ID,
		CandidateID: election.Candidates[0].ID,
		Rank:        &rank,
	})
	require.NoError(t, err)
	require.NotNil(t, vote.Rank)
	assert.Equal(t, 2, *vote.Rank)
}

func TestVoting_CastVote_ScheduledElection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election, err := env.lifecycle.CreateElection(ctx, env.president, electionInput(baseTime.Add(time.Hour)))
	require.NoError(t, err)
	_, err = env.lifecycle.StartElection(ctx, env.president, election.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ElectionStatusScheduled, env.status(t, election.ID))

	_, err = env.voting.CastVote(ctx, env.treasurer, VoteInput{ElectionID: election.ID, CandidateID: election.Candidates[0].ID})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Election is not active", Message(err))

	total, err := env.store.CountVotes(ctx, election.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestVoting_CastVote_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.activeElection(t)
	other := env.activeElection(t)
	voter := env.addUser(entity.RoleMember)

	_, err := env.voting.CastVote(ctx, voter, VoteInput{ElectionID: election.ID, CandidateID: other.Candidates[0].ID})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, msgInvalidCandidate, Message(err))

	zero := 0
	_, err = env.voting.CastVote(ctx, voter, VoteInput{ElectionID: election.ID, CandidateID: election.Candidates[0].ID, Rank: &zero})
	assert.ErrorIs(t, err, ErrValidation)

	inactive := voter
	inactive.IsActive = false
	_, err = env.voting.CastVote(ctx, inactive, VoteInput{ElectionID: election.ID, CandidateID: election.Candidates[0].ID})
	assert.ErrorIs(t, err, ErrAuthorization)

	outsider := voter
	outsider.OrganizationID = "another-org"
	_, err = env.voting.CastVote(ctx, outsider, VoteInput{ElectionID: election.ID, CandidateID: election.Candidates[0].ID})
	assert.ErrorIs(t, err, ErrNotFound)

	env.clock.Advance(49 * time.Hour)
	_, err = env.voting.CastVote(ctx, voter, VoteInput{ElectionID: election.ID, CandidateID: election.Candidates[0].ID})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, msgOutsideVotingTime, Message(err))

	total, err := env.store.CountVotes(ctx, election.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestVoting_CastVote_Twice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.activeElection(t)
	voter := env.addUser(entity.RoleMember)

	env.vote(t, voter, election.ID, election.Candidates[0].ID)

	_, err := env.voting.CastVote(ctx, voter, VoteInput{ElectionID: election.ID, CandidateID: election.Candidates[1].ID})
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "You have already voted", Message(err))

	stored, err := env.store.GetUserVote(ctx, election.ID, voter.UserID)
	require.NoError(t, err)
	assert.Equal(t, election.Candidates[0].ID, stored.CandidateID)
}

func TestVoting_CastVote_ConcurrentSameVoter(t *testing.T) {
	const attempts = 64

	env := newTestEnv(t)
	ctx := context.Background()

	election := env.activeElection(t)
	voter := env.addUser(entity.RoleMember)

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make(chan error, attempts)
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := env.voting.CastVote(ctx, voter, VoteInput{
				ElectionID:  election.ID,
				CandidateID: election.Candidates[i%2].ID,
			})
			errs <- err
		}(i)
	}
	close(start)
	wg.Wait()
	close(errs)

	var succeeded int
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrConflict)
	}
	assert.Equal(t, 1, succeeded)

	total, err := env.store.CountVotes(ctx, election.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestVoting_CastVote_ConcurrentDistinctVoters(t *testing.T) {
	const voters = 40

	env := newTestEnv(t)
	ctx := context.Background()

	election := env.activeElection(t)
	members := env.addMembers(voters)

	var wg sync.WaitGroup
	for _, m := range members {
		wg.Add(1)
		go func(m entity.Principal) {
			defer wg.Done()
			_, err := env.voting.CastVote(ctx, m, VoteInput{ElectionID: election.ID, CandidateID: election.Candidates[0].ID})
			assert.NoError(t, err)
		}(m)
	}
	wg.Wait()

	total, err := env.voting.GetVoteCount(ctx, env.president, election.ID)
	require.NoError(t, err)
	assert.EqualValues(t, voters, total)
}

func TestVoting_NoVotesAfterClose(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.closedElection(t)

	_, err := env.voting.CastVote(ctx, env.treasurer, VoteInput{ElectionID: election.ID, CandidateID: election.Candidates[0].ID})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, msgNotActive, Message(err))
}

func TestVoting_Reads(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.activeElection(t)
	env.clock.Advance(time.Minute)
	second := env.activeElection(t)
	voter := env.addUser(entity.RoleMember)

	voted, err := env.voting.CheckIfUserVoted(ctx, voter, first.ID)
	require.NoError(t, err)
	assert.False(t, voted)

	env.vote(t, voter, first.ID, first.Candidates[0].ID)
	env.clock.Advance(time.Minute)
	env.vote(t, voter, second.ID, second.Candidates[1].ID)

	voted, err = env.voting.CheckIfUserVoted(ctx, voter, first.ID)
	require.NoError(t, err)
	assert.True(t, voted)

	count, err := env.voting.GetVoteCount(ctx, voter, first.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	history, err := env.voting.GetUserVoteHistory(ctx, voter)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ElectionID)
	assert.Equal(t, second.Candidates[1].Name, history[0].CandidateName)
	assert.Equal(t, first.Title, history[1].ElectionTitle)
	assert.Equal(t, entity.ElectionStatusActive, history[1].ElectionStatus)
}

func TestVoting_GetElectionVotes_WithVoterDetails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.activeElection(t)
	voter := env.addUser(entity.RoleMember)
	env.vote(t, voter, election.ID, election.Candidates[0].ID)

	votes, err := env.voting.GetElectionVotes(ctx, env.treasurer, election.ID, true)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, voter.UserID, votes[0].UserID)
	assert.NotEmpty(t, votes[0].VoterName)
	assert.Equal(t, election.Candidates[0].Name, votes[0].CandidateName)

	votes, err = env.voting.GetElectionVotes(ctx, env.treasurer, election.ID, false)
	require.NoError(t, err)
	assert.Empty(t, votes[0].UserID)

	_, err = env.voting.GetElectionVotes(ctx, voter, election.ID, true)
	assert.ErrorIs(t, err, ErrAuthorization)
}

func TestVoting_GetElectionVotes_AnonymousNeverRevealsVoters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := electionInput(baseTime)
	in.IsAnonymous = true
	election, err := env.lifecycle.CreateElection(ctx, env.president, in)
	require.NoError(t, err)
	_, err = env.lifecycle.StartElection(ctx, env.president, election.ID)
	require.NoError(t, err)

	for _, m := range env.addMembers(3) {
		env.vote(t, m, election.ID, election.Candidates[0].ID)
	}

	for _, caller := range []entity.Principal{env.president, env.secretary, env.treasurer} {
		for _, include := range []bool{true, false} {
			votes, err := env.voting.GetElectionVotes(ctx, caller, election.ID, include)
			require.NoError(t, err)
			require.Len(t, votes, 3)

			for _, v := range votes {
				assert.Empty(t, v.UserID)
				assert.Empty(t, v.VoterName)
				assert.Empty(t, v.VoterEmail)
			}

			raw, err := json.Marshal(votes)
			require.NoError(t, err)
			assert.NotContains(t, string(raw), "userId")
			assert.NotContains(t, string(raw), "voterName")
			assert.NotContains(t, string(raw), "voterEmail")
		}
	}
}
