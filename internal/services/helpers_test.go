package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/14kear/online_elections/internal/notify"
	"github.com/14kear/online_elections/internal/repo/memory"
	"github.com/14kear/online_elections/utils"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	store     *memory.Store
	events    *notify.Recorder
	clock     *fakeClock
	lifecycle *Lifecycle
	voting    *Voting
	tallying  *Tallying

	org       string
	president entity.Principal
	secretary entity.Principal
	treasurer entity.Principal
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	events := notify.NewRecorder()
	clock := &fakeClock{now: baseTime}
	log := utils.Discard()

	lifecycle := NewLifecycle(log, store, store, events, clock)
	env := &testEnv{
		store:     store,
		events:    events,
		clock:     clock,
		lifecycle: lifecycle,
		voting:    NewVoting(log, lifecycle, store, events, clock),
		tallying:  NewTallying(log, lifecycle, store, store, store, events, clock),
		org:       gofakeit.UUID(),
	}
	env.president = env.addUser(entity.RolePresident)
	env.secretary = env.addUser(entity.RoleSecretary)
	env.treasurer = env.addUser(entity.RoleTreasurer)

	return env
}

func (e *testEnv) addUser(role entity.Role) entity.Principal {
	user := entity.User{
		ID:             gofakeit.UUID(),
		OrganizationID: e.org,
		Name:           gofakeit.Name(),
		Email:          gofakeit.Email(),
		Role:           role,
		IsActive:       true,
	}
	e.store.PutUser(user)

	return entity.Principal{UserID: user.ID, OrganizationID: e.org, Role: role, IsActive: true}
}

func (e *testEnv) addMembers(n int) []entity.Principal {
	members := make([]entity.Principal, 0, n)
	for i := 0; i < n; i++ {
		members = append(members, e.addUser(entity.RoleMember))
	}
	return members
}

func electionInput(start time.Time, candidates ...string) ElectionInput {
	if len(candidates) == 0 {
		candidates = []string{gofakeit.Name(), gofakeit.Name()}
	}

	in := ElectionInput{
		Title:       gofakeit.Company() + " board election",
		Description: gofakeit.Word(),
		StartDate:   start,
		EndDate:     start.Add(48 * time.Hour),
		VotingType:  entity.VotingTypeSingleChoice,
	}
	for _, name := range candidates {
		in.Candidates = append(in.Candidates, CandidateInput{Name: name})
	}
	return in
}

// draftElection creates a DRAFT election starting at the current clock time.
func (e *testEnv) draftElection(t *testing.T, candidates ...string) entity.Election {
	t.Helper()

	election, err := e.lifecycle.CreateElection(context.Background(), e.president, electionInput(e.clock.Now(), candidates...))
	require.NoError(t, err)
	return election
}

func (e *testEnv) activeElection(t *testing.T, candidates ...string) entity.Election {
	t.Helper()

	election := e.draftElection(t, candidates...)
	election, err := e.lifecycle.StartElection(context.Background(), e.president, election.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ElectionStatusActive, election.Status)
	return election
}

func (e *testEnv) closedElection(t *testing.T, candidates ...string) entity.Election {
	t.Helper()

	election := e.activeElection(t, candidates...)
	election, err := e.lifecycle.CloseElection(context.Background(), e.president, election.ID)
	require.NoError(t, err)
	return election
}

func (e *testEnv) vote(t *testing.T, voter entity.Principal, electionID, candidateID string) {
	t.Helper()

	_, err := e.voting.CastVote(context.Background(), voter, VoteInput{ElectionID: electionID, CandidateID: candidateID})
	require.NoError(t, err)
}

func (e *testEnv) status(t *testing.T, id string) entity.ElectionStatus {
	t.Helper()

	election, err := e.store.GetElectionByID(context.Background(), id)
	require.NoError(t, err)
	return election.Status
}
