package services

import (
	"context"
	"testing"
	"time"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_CreateElection_Success(t *testing.T) {
	env := newTestEnv(t)

	in := electionInput(baseTime.Add(time.Hour), "Alice", "Bob")
	in.Candidates[0].Position = 3
	in.Candidates[1].Position = 7

	election, err := env.lifecycle.CreateElection(context.Background(), env.secretary, in)
	require.NoError(t, err)

	assert.NotEmpty(t, election.ID)
	assert.Equal(t, entity.ElectionStatusDraft, election.Status)
	assert.Equal(t, env.org, election.OrganizationID)
	assert.Equal(t, env.secretary.UserID, election.CreatedByID)
	require.Len(t, election.Candidates, 2)
	assert.Equal(t, 3, election.Candidates[0].Position)
	assert.Equal(t, 7, election.Candidates[1].Position)

	stored, err := env.lifecycle.GetElection(context.Background(), env.treasurer, election.ID)
	require.NoError(t, err)
	assert.Equal(t, election.Title, stored.Title)
	assert.Len(t, stored.Candidates, 2)

	assert.Equal(t, []entity.Event{entity.EventElectionCreated}, env.events.Names())
}

func TestLifecycle_CreateElection_DefaultsVotingType(t *testing.T) {
	env := newTestEnv(t)

	in := electionInput(baseTime)
	in.VotingType = ""

	election, err := env.lifecycle.CreateElection(context.Background(), env.president, in)
	require.NoError(t, err)
	assert.Equal(t, entity.VotingTypeSingleChoice, election.VotingType)
}

func TestLifecycle_CreateElection_DefaultPositionsFollowInputOrder(t *testing.T) {
	env := newTestEnv(t)

	election, err := env.lifecycle.CreateElection(context.Background(), env.president,
		electionInput(baseTime, "Alice", "Bob", "Carol"))
	require.NoError(t, err)

	require.Len(t, election.Candidates, 3)
	for i, c := range election.Candidates {
		assert.Equal(t, i+1, c.Position, c.Name)
	}
}

func TestLifecycle_CreateElection_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *ElectionInput)
	}{
		{"start after end", func(in *ElectionInput) { in.EndDate = in.StartDate.Add(-time.Minute) }},
		{"start equals end", func(in *ElectionInput) { in.EndDate = in.StartDate }},
		{"start in the past", func(in *ElectionInput) { in.StartDate = baseTime.Add(-time.Minute) }},
		{"single candidate", func(in *ElectionInput) { in.Candidates = in.Candidates[:1] }},
		{"no candidates", func(in *ElectionInput) { in.Candidates = nil }},
		{"empty title", func(in *ElectionInput) { in.Title = "   " }},
		{"blank candidate name", func(in *ElectionInput) { in.Candidates[0].Name = "" }},
		{"unknown voting type", func(in *ElectionInput) { in.VotingType = "APPROVAL" }},
		{"missing dates", func(in *ElectionInput) { in.StartDate = time.Time{} }},
		{"partial positions", func(in *ElectionInput) { in.Candidates[1].Position = 1 }},
		{"duplicate positions", func(in *ElectionInput) {
			in.Candidates[0].Position = 2
			in.Candidates[1].Position = 2
		}},
		{"negative position", func(in *ElectionInput) { in.Candidates[0].Position = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			in := electionInput(baseTime.Add(time.Hour))
			tt.mutate(&in)

			_, err := env.lifecycle.CreateElection(context.Background(), env.president, in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, env.events.Names())
		})
	}
}

func TestLifecycle_CreateElection_Forbidden(t *testing.T) {
	env := newTestEnv(t)

	for _, p := range []entity.Principal{env.treasurer, env.addUser(entity.RoleMember)} {
		_, err := env.lifecycle.CreateElection(context.Background(), p, electionInput(baseTime))
		require.ErrorIs(t, err, ErrAuthorization)

		msg := Message(err)
		assert.Equal(t, msgForbidden, msg)
		assert.NotContains(t, msg, string(entity.RolePresident))
		assert.NotContains(t, msg, string(entity.RoleSecretary))
	}
}

func TestLifecycle_InactivePrincipal(t *testing.T) {
	env := newTestEnv(t)

	inactive := env.president
	inactive.IsActive = false

	_, err := env.lifecycle.CreateElection(context.Background(), inactive, electionInput(baseTime))
	require.ErrorIs(t, err, ErrAuthorization)
	assert.Equal(t, msgInactiveAccount, Message(err))
}

func TestLifecycle_StartElection_SchedulesThenActivates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election, err := env.lifecycle.CreateElection(ctx, env.president, electionInput(baseTime.Add(2*time.Hour)))
	require.NoError(t, err)

	election, err = env.lifecycle.StartElection(ctx, env.secretary, election.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ElectionStatusScheduled, election.Status)

	// re-entering SCHEDULED is allowed
	election, err = env.lifecycle.StartElection(ctx, env.secretary, election.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ElectionStatusScheduled, election.Status)

	env.clock.Advance(2 * time.Hour)

	election, err = env.lifecycle.StartElection(ctx, env.secretary, election.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ElectionStatusActive, election.Status)
	assert.Equal(t, entity.ElectionStatusActive, env.status(t, election.ID))

	assert.Equal(t, []entity.Event{
		entity.EventElectionCreated,
		entity.EventElectionScheduled,
		entity.EventElectionScheduled,
		entity.EventElectionStarted,
	}, env.events.Names())
}

func TestLifecycle_StartElection_Rules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.draftElection(t)

	_, err := env.lifecycle.StartElection(ctx, env.treasurer, election.ID)
	assert.ErrorIs(t, err, ErrAuthorization)

	env.clock.Advance(72 * time.Hour)
	_, err = env.lifecycle.StartElection(ctx, env.president, election.ID)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, entity.ElectionStatusDraft, env.status(t, election.ID))

	_, err = env.lifecycle.StartElection(ctx, env.president, gofakeit.UUID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLifecycle_StartElection_RequiresTwoCandidates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.draftElection(t)
	// a row left with a single candidate, written straight to the store
	election.Candidates = election.Candidates[:1]
	require.NoError(t, env.store.SaveElection(ctx, election))

	_, err := env.lifecycle.StartElection(ctx, env.president, election.ID)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "At least 2 candidates are required", Message(err))
}

func TestLifecycle_UpdateElection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.draftElection(t)

	title := "Renamed"
	newEnd := election.EndDate.Add(24 * time.Hour)
	updated, err := env.lifecycle.UpdateElection(ctx, env.secretary, election.ID, ElectionPatch{
		Title:   &title,
		EndDate: &newEnd,
		Candidates: &[]CandidateInput{
			{Name: "Carol"}, {Name: "Dave"}, {Name: "Erin"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, newEnd.Equal(updated.EndDate))

	stored, err := env.lifecycle.GetElection(ctx, env.president, election.ID)
	require.NoError(t, err)
	require.Len(t, stored.Candidates, 3)
	assert.Equal(t, "Carol", stored.Candidates[0].Name)
	assert.Contains(t, env.events.Names(), entity.EventElectionUpdated)
}

func TestLifecycle_UpdateElection_CreatorAlwaysAllowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election, err := env.lifecycle.CreateElection(ctx, env.secretary, electionInput(baseTime))
	require.NoError(t, err)

	demoted := env.secretary
	demoted.Role = entity.RoleMember

	desc := "updated by creator"
	_, err = env.lifecycle.UpdateElection(ctx, demoted, election.ID, ElectionPatch{Description: &desc})
	require.NoError(t, err)

	_, err = env.lifecycle.UpdateElection(ctx, env.treasurer, election.ID, ElectionPatch{Description: &desc})
	assert.ErrorIs(t, err, ErrAuthorization)
}

func TestLifecycle_UpdateElection_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	draft := env.draftElection(t)

	badEnd := draft.StartDate.Add(-time.Hour)
	_, err := env.lifecycle.UpdateElection(ctx, env.president, draft.ID, ElectionPatch{EndDate: &badEnd})
	assert.ErrorIs(t, err, ErrValidation)

	past := baseTime.Add(-time.Hour)
	_, err = env.lifecycle.UpdateElection(ctx, env.president, draft.ID, ElectionPatch{StartDate: &past})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.lifecycle.UpdateElection(ctx, env.president, draft.ID, ElectionPatch{
		Candidates: &[]CandidateInput{{Name: "Solo"}},
	})
	assert.ErrorIs(t, err, ErrValidation)

	scheduled, err := env.lifecycle.CreateElection(ctx, env.president, electionInput(baseTime.Add(time.Hour)))
	require.NoError(t, err)
	_, err = env.lifecycle.StartElection(ctx, env.president, scheduled.ID)
	require.NoError(t, err)

	_, err = env.lifecycle.UpdateElection(ctx, env.president, scheduled.ID, ElectionPatch{
		Candidates: &[]CandidateInput{{Name: "A"}, {Name: "B"}},
	})
	require.ErrorIs(t, err, ErrValidation)

	active := env.activeElection(t)
	title := "too late"
	_, err = env.lifecycle.UpdateElection(ctx, env.president, active.ID, ElectionPatch{Title: &title})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Cannot update an active, closed or published election", Message(err))
}

func TestLifecycle_CloseElection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	draft := env.draftElection(t)
	_, err := env.lifecycle.CloseElection(ctx, env.president, draft.ID)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, msgNotActive, Message(err))

	active := env.activeElection(t)
	_, err = env.lifecycle.CloseElection(ctx, env.treasurer, active.ID)
	assert.ErrorIs(t, err, ErrAuthorization)

	closed, err := env.lifecycle.CloseElection(ctx, env.secretary, active.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ElectionStatusClosed, closed.Status)
	assert.Equal(t, entity.ElectionStatusClosed, env.status(t, active.ID))
}

func TestLifecycle_MonotonicTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.closedElection(t)

	backward := func() {
		_, err := env.lifecycle.StartElection(ctx, env.president, election.ID)
		assert.ErrorIs(t, err, ErrValidation)

		_, err = env.lifecycle.CloseElection(ctx, env.president, election.ID)
		assert.ErrorIs(t, err, ErrValidation)

		desc := "reopen"
		_, err = env.lifecycle.UpdateElection(ctx, env.president, election.ID, ElectionPatch{Description: &desc})
		assert.ErrorIs(t, err, ErrValidation)

		assert.ErrorIs(t, env.lifecycle.DeleteElection(ctx, env.president, election.ID), ErrValidation)
	}

	backward()
	assert.Equal(t, entity.ElectionStatusClosed, env.status(t, election.ID))

	_, err := env.tallying.PublishResults(ctx, env.president, election.ID)
	require.NoError(t, err)

	backward()
	_, err = env.tallying.PublishResults(ctx, env.president, election.ID)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, entity.ElectionStatusPublished, env.status(t, election.ID))
}

func TestLifecycle_StoreRejectsStaleTransition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.activeElection(t)

	// another request closes the election behind this one's back
	require.NoError(t, env.store.UpdateElectionStatus(ctx, election.ID, entity.ElectionStatusClosed, entity.ElectionStatusActive))

	err := env.lifecycle.transition(ctx, election.ID, entity.ElectionStatusClosed, entity.ElectionStatusActive)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, msgStatusChanged, Message(err))
}

func TestLifecycle_DeleteElection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	draft := env.draftElection(t)

	assert.ErrorIs(t, env.lifecycle.DeleteElection(ctx, env.secretary, draft.ID), ErrAuthorization)
	require.NoError(t, env.lifecycle.DeleteElection(ctx, env.president, draft.ID))

	_, err := env.lifecycle.GetElection(ctx, env.president, draft.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, env.events.Names(), entity.EventElectionDeleted)

	active := env.activeElection(t)
	err = env.lifecycle.DeleteElection(ctx, env.president, active.ID)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Cannot delete an active election", Message(err))
}

func TestLifecycle_DeleteElection_WithVotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.activeElection(t)
	env.vote(t, env.treasurer, election.ID, election.Candidates[0].ID)

	// force the election back to a deletable status underneath the service
	require.NoError(t, env.store.UpdateElectionStatus(ctx, election.ID, entity.ElectionStatusScheduled, entity.ElectionStatusActive))

	err := env.lifecycle.DeleteElection(ctx, env.president, election.ID)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Cannot delete an election that has votes", Message(err))

	_, err = env.store.GetElectionByID(ctx, election.ID)
	assert.NoError(t, err)
}

func TestLifecycle_OtherOrganizationIsHidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	election := env.draftElection(t)

	outsider := entity.Principal{
		UserID:         gofakeit.UUID(),
		OrganizationID: gofakeit.UUID(),
		Role:           entity.RolePresident,
		IsActive:       true,
	}

	_, err := env.lifecycle.GetElection(ctx, outsider, election.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.lifecycle.StartElection(ctx, outsider, election.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, env.lifecycle.DeleteElection(ctx, outsider, election.ID), ErrNotFound)

	list, err := env.lifecycle.ListElections(ctx, outsider, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLifecycle_ListElections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	early, err := env.lifecycle.CreateElection(ctx, env.president, electionInput(baseTime.Add(time.Hour)))
	require.NoError(t, err)
	late, err := env.lifecycle.CreateElection(ctx, env.president, electionInput(baseTime.Add(5*time.Hour)))
	require.NoError(t, err)
	active := env.activeElection(t)

	all, err := env.lifecycle.ListElections(ctx, env.addUser(entity.RoleMember), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{late.ID, early.ID, active.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	drafts, err := env.lifecycle.ListElections(ctx, env.president, entity.ElectionStatusDraft)
	require.NoError(t, err)
	assert.Len(t, drafts, 2)

	_, err = env.lifecycle.ListElections(ctx, env.president, "OPEN")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLifecycle_CheckCanVote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	voter := env.addUser(entity.RoleMember)
	active := env.activeElection(t)
	draft := env.draftElection(t)

	check := func(id string, p entity.Principal) entity.CanVote {
		t.Helper()
		res, err := env.lifecycle.CheckCanVote(ctx, id, p.UserID, p.OrganizationID)
		require.NoError(t, err)
		return res
	}

	assert.Equal(t, entity.CanVote{CanVote: true}, check(active.ID, voter))
	assert.Equal(t, msgNotActive, check(draft.ID, voter).Reason)
	assert.Equal(t, msgElectionNotFound, check(gofakeit.UUID(), voter).Reason)

	outsider := voter
	outsider.OrganizationID = gofakeit.UUID()
	assert.False(t, check(active.ID, outsider).CanVote)

	env.vote(t, voter, active.ID, active.Candidates[0].ID)
	assert.Equal(t, entity.CanVote{Reason: msgAlreadyVoted}, check(active.ID, voter))

	env.clock.Advance(49 * time.Hour)
	other := env.addUser(entity.RoleMember)
	assert.Equal(t, "Election has ended", check(active.ID, other).Reason)
}
