// Package memory is an in-process election store. It keeps the same
// guarantees as the Postgres store: the vote uniqueness check and insert run
// under one lock, and status writes are compare-and-set.
package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/14kear/online_elections/internal/repo"
)

type Store struct {
	mu sync.RWMutex

	elections map[string]entity.Election
	votes     map[string][]entity.Vote
	voted     map[voteKey]struct{}
	results   map[string]entity.Result
	users     map[string]entity.User
}

type voteKey struct {
	electionID string
	userID     string
}

func NewStore() *Store {
	return &Store{
		elections: make(map[string]entity.Election),
		votes:     make(map[string][]entity.Vote),
		voted:     make(map[voteKey]struct{}),
		results:   make(map[string]entity.Result),
		users:     make(map[string]entity.User),
	}
}

// PutUser adds or replaces a user.
func (s *Store) PutUser(user entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = user
}

func (s *Store) SaveElection(_ context.Context, election entity.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elections[election.ID] = cloneElection(election)
	return nil
}

func (s *Store) GetElectionByID(_ context.Context, id string) (entity.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	election, ok := s.elections[id]
	if !ok {
		return entity.Election{}, repo.ErrElectionNotFound
	}
	return cloneElection(election), nil
}

func (s *Store) GetElections(_ context.Context, filter entity.ElectionFilter) ([]entity.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entity.Election, 0)
	for _, e := range s.elections {
		if e.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		e.Candidates = nil
		items = append(items, e)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].StartDate.Equal(items[j].StartDate) {
			return items[i].ID < items[j].ID
		}
		return items[i].StartDate.After(items[j].StartDate)
	})
	return items, nil
}

func (s *Store) UpdateElection(_ context.Context, election entity.Election, replaceCandidates bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.elections[election.ID]
	if !ok {
		return repo.ErrElectionNotFound
	}
	if !current.Status.Editable() || (replaceCandidates && current.Status != entity.ElectionStatusDraft) {
		return repo.ErrStatusConflict
	}

	current.Title = election.Title
	current.Description = election.Description
	current.StartDate = election.StartDate
	current.EndDate = election.EndDate
	current.VotingType = election.VotingType
	current.IsAnonymous = election.IsAnonymous
	current.Settings = election.Settings
	current.UpdatedAt = election.UpdatedAt
	if replaceCandidates {
		current.Candidates = election.Candidates
	}

	s.elections[election.ID] = cloneElection(current)
	return nil
}

func (s *Store) UpdateElectionStatus(_ context.Context, id string, to entity.ElectionStatus, from ...entity.ElectionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	election, ok := s.elections[id]
	if !ok {
		return repo.ErrElectionNotFound
	}
	if !slices.Contains(from, election.Status) {
		return repo.ErrStatusConflict
	}

	election.Status = to
	election.UpdatedAt = time.Now().UTC()
	s.elections[id] = election
	return nil
}

func (s *Store) DeleteElection(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	election, ok := s.elections[id]
	if !ok {
		return repo.ErrElectionNotFound
	}
	if len(s.votes[id]) > 0 {
		return repo.ErrElectionHasVotes
	}
	if !election.Status.Editable() {
		return repo.ErrStatusConflict
	}

	delete(s.elections, id)
	delete(s.results, id)
	return nil
}

func (s *Store) SaveVote(_ context.Context, vote entity.Vote) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	election, ok := s.elections[vote.ElectionID]
	if !ok {
		return 0, repo.ErrElectionNotFound
	}
	if election.Status != entity.ElectionStatusActive {
		return 0, repo.ErrElectionNotActive
	}

	key := voteKey{electionID: vote.ElectionID, userID: vote.UserID}
	if _, exists := s.voted[key]; exists {
		return 0, repo.ErrVoteExists
	}
	if !slices.ContainsFunc(election.Candidates, func(c entity.Candidate) bool { return c.ID == vote.CandidateID }) {
		return 0, repo.ErrCandidateNotFound
	}

	s.voted[key] = struct{}{}
	s.votes[vote.ElectionID] = append(s.votes[vote.ElectionID], vote)
	return int64(len(s.votes[vote.ElectionID])), nil
}

func (s *Store) GetUserVote(_ context.Context, electionID, userID string) (entity.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.votes[electionID] {
		if v.UserID == userID {
			return v, nil
		}
	}
	return entity.Vote{}, repo.ErrVoteNotFound
}

func (s *Store) CountVotes(_ context.Context, electionID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.votes[electionID])), nil
}

func (s *Store) GetVotesByElection(_ context.Context, electionID string) ([]entity.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.votes[electionID]), nil
}

func (s *Store) GetElectionVotes(_ context.Context, electionID string, withVoters bool) ([]entity.ElectionVote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make(map[string]string)
	for _, c := range s.elections[electionID].Candidates {
		names[c.ID] = c.Name
	}

	out := make([]entity.ElectionVote, 0, len(s.votes[electionID]))
	for _, v := range s.votes[electionID] {
		item := entity.ElectionVote{
			ID:            v.ID,
			CandidateID:   v.CandidateID,
			CandidateName: names[v.CandidateID],
			Rank:          v.Rank,
			VotedAt:       v.VotedAt,
		}
		if withVoters {
			item.UserID = v.UserID
			item.VoterName = s.users[v.UserID].Name
			item.VoterEmail = s.users[v.UserID].Email
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *Store) GetVoteHistory(_ context.Context, userID string) ([]entity.VoteHistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entity.VoteHistoryItem, 0)
	for electionID, votes := range s.votes {
		election := s.elections[electionID]
		for _, v := range votes {
			if v.UserID != userID {
				continue
			}
			item := entity.VoteHistoryItem{
				VoteID:         v.ID,
				ElectionID:     electionID,
				ElectionTitle:  election.Title,
				ElectionStatus: election.Status,
				CandidateID:    v.CandidateID,
				Rank:           v.Rank,
				VotedAt:        v.VotedAt,
			}
			for _, c := range election.Candidates {
				if c.ID == v.CandidateID {
					item.CandidateName = c.Name
				}
			}
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].VotedAt.Equal(items[j].VotedAt) {
			return items[i].VoteID < items[j].VoteID
		}
		return items[i].VotedAt.After(items[j].VotedAt)
	})
	return items, nil
}

func (s *Store) PublishResult(_ context.Context, result entity.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	election, ok := s.elections[result.ElectionID]
	if !ok {
		return repo.ErrElectionNotFound
	}
	if election.Status != entity.ElectionStatusClosed {
		return repo.ErrStatusConflict
	}

	election.Status = entity.ElectionStatusPublished
	election.UpdatedAt = time.Now().UTC()
	s.elections[result.ElectionID] = election

	result.Candidates = slices.Clone(result.Candidates)
	result.Results = maps.Clone(result.Results)
	s.results[result.ElectionID] = result
	return nil
}

func (s *Store) GetResult(_ context.Context, electionID string) (entity.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[electionID]
	if !ok {
		return entity.Result{}, repo.ErrResultNotFound
	}
	result.Candidates = slices.Clone(result.Candidates)
	result.Results = maps.Clone(result.Results)
	return result, nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return entity.User{}, repo.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) CountActiveUsers(_ context.Context, organizationID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, u := range s.users {
		if u.OrganizationID == organizationID && u.IsActive {
			n++
		}
	}
	return n, nil
}

func cloneElection(e entity.Election) entity.Election {
	e.Candidates = slices.Clone(e.Candidates)
	sort.SliceStable(e.Candidates, func(i, j int) bool {
		if e.Candidates[i].Position == e.Candidates[j].Position {
			return e.Candidates[i].ID < e.Candidates[j].ID
		}
		return e.Candidates[i].Position < e.Candidates[j].Position
	})
	return e
}
