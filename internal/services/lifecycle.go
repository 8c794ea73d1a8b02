package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/14kear/online_elections/internal/repo"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/google/uuid"
)

const minCandidates = 2

// Lifecycle owns elections and the legality of their status transitions.
type Lifecycle struct {
	log       *slog.Logger
	elections ElectionStorage
	votes     VoteStorage
	notifier  Notifier
	clock     Clock
}

type CandidateInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	PhotoURL    string         `json:"photoUrl"`
	Position    int            `json:"position"`
	Metadata    map[string]any `json:"metadata"`
}

type ElectionInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	StartDate   time.Time         `json:"startDate"`
	EndDate     time.Time         `json:"endDate"`
	VotingType  entity.VotingType `json:"votingType"`
	IsAnonymous bool              `json:"isAnonymous"`
	Settings    map[string]any    `json:"settings"`
	Candidates  []CandidateInput  `json:"candidates"`
}

// ElectionPatch holds the fields to change; nil fields are left untouched.
type ElectionPatch struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	StartDate   *time.Time         `json:"startDate"`
	EndDate     *time.Time         `json:"endDate"`
	VotingType  *entity.VotingType `json:"votingType"`
	IsAnonymous *bool              `json:"isAnonymous"`
	Settings    map[string]any     `json:"settings"`
	Candidates  *[]CandidateInput  `json:"candidates"`
}

func NewLifecycle(
	log *slog.Logger,
	elections ElectionStorage,
	votes VoteStorage,
	notifier Notifier,
	clock Clock,
) *Lifecycle {
	return &Lifecycle{
		log:       log,
		elections: elections,
		votes:     votes,
		notifier:  notifier,
		clock:     clock,
	}
}

// CreateElection validates the input and stores the election with its
// candidates in DRAFT.
func (l *Lifecycle) CreateElection(ctx context.Context, p entity.Principal, in ElectionInput) (entity.Election, error) {
	const op = "Lifecycle.CreateElection"

	log := l.log.With(slog.String("op", op), slog.String("user_id", p.UserID))

	if err := authorize(log, p, OpCreateElection); err != nil {
		return entity.Election{}, err
	}

	now := l.clock.Now()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return entity.Election{}, validationError("Title is required")
	}
	if err := validateDates(in.StartDate, in.EndDate); err != nil {
		return entity.Election{}, err
	}
	if in.StartDate.Before(now) {
		return entity.Election{}, validationError("Start date cannot be in the past")
	}

	votingType := in.VotingType
	if votingType == "" {
		votingType = entity.VotingTypeSingleChoice
	}
	if !votingType.Valid() {
		return entity.Election{}, validationError("Invalid voting type")
	}

	election := entity.Election{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    in.Description,
		StartDate:      in.StartDate.UTC(),
		EndDate:        in.EndDate.UTC(),
		Status:         entity.ElectionStatusDraft,
		VotingType:     votingType,
		IsAnonymous:    in.IsAnonymous,
		OrganizationID: p.OrganizationID,
		CreatedByID:    p.UserID,
		Settings:       in.Settings,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	candidates, err := buildCandidates(election.ID, in.Candidates)
	if err != nil {
		return entity.Election{}, err
	}
	election.Candidates = candidates

	if err := l.elections.SaveElection(ctx, election); err != nil {
		log.Error("failed to save election", sl.Err(err))
		return entity.Election{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("election created", slog.String("election_id", election.ID))
	l.publish(ctx, entity.EventElectionCreated, election)

	return election, nil
}

// GetElection returns an election of the principal's organization with its
// candidates ordered by position.
func (l *Lifecycle) GetElection(ctx context.Context, p entity.Principal, id string) (entity.Election, error) {
	const op = "Lifecycle.GetElection"

	election, err := l.load(ctx, id, p.OrganizationID)
	if err != nil {
		return entity.Election{}, fmt.Errorf("%s: %w", op, err)
	}

	return election, nil
}

// ListElections returns the organization's elections, newest start first.
func (l *Lifecycle) ListElections(ctx context.Context, p entity.Principal, status entity.ElectionStatus) ([]entity.Election, error) {
	const op = "Lifecycle.ListElections"

	if status != "" && !status.Valid() {
		return nil, validationError("Invalid status filter")
	}

	elections, err := l.elections.GetElections(ctx, entity.ElectionFilter{
		OrganizationID: p.OrganizationID,
		Status:         status,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return elections, nil
}

// UpdateElection applies patch while the election is DRAFT or SCHEDULED. The
// creator may always edit; otherwise the lifecycle roles are required.
func (l *Lifecycle) UpdateElection(ctx context.Context, p entity.Principal, id string, patch ElectionPatch) (entity.Election, error) {
	const op = "Lifecycle.UpdateElection"

	log := l.log.With(slog.String("op", op), slog.String("election_id", id), slog.String("user_id", p.UserID))

	election, err := l.load(ctx, id, p.OrganizationID)
	if err != nil {
		return entity.Election{}, fmt.Errorf("%s: %w", op, err)
	}

	if !p.IsActive {
		return entity.Election{}, AuthorizationError(msgInactiveAccount)
	}
	if p.UserID != election.CreatedByID {
		if err := authorize(log, p, OpUpdateElection); err != nil {
			return entity.Election{}, err
		}
	}

	if !election.Status.Editable() {
		return entity.Election{}, validationError("Cannot update an active, closed or published election")
	}

	startChanged := patch.StartDate != nil && !patch.StartDate.Equal(election.StartDate)

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return entity.Election{}, validationError("Title is required")
		}
		election.Title = title
	}
	if patch.Description != nil {
		election.Description = *patch.Description
	}
	if patch.StartDate != nil {
		election.StartDate = patch.StartDate.UTC()
	}
	if patch.EndDate != nil {
		election.EndDate = patch.EndDate.UTC()
	}
	if patch.VotingType != nil {
		if !patch.VotingType.Valid() {
			return entity.Election{}, validationError("Invalid voting type")
		}
		election.VotingType = *patch.VotingType
	}
	if patch.IsAnonymous != nil {
		election.IsAnonymous = *patch.IsAnonymous
	}
	if patch.Settings != nil {
		election.Settings = patch.Settings
	}

	if err := validateDates(election.StartDate, election.EndDate); err != nil {
		return entity.Election{}, err
	}
	if startChanged && election.StartDate.Before(l.clock.Now()) {
		return entity.Election{}, validationError("Start date cannot be in the past")
	}

	replace := patch.Candidates != nil
	if replace {
		if election.Status != entity.ElectionStatusDraft {
			return entity.Election{}, validationError("Candidates can only be changed while the election is a draft")
		}
		candidates, err := buildCandidates(election.ID, *patch.Candidates)
		if err != nil {
			return entity.Election{}, err
		}
		election.Candidates = candidates
	}

	election.UpdatedAt = l.clock.Now()

	if err := l.elections.UpdateElection(ctx, election, replace); err != nil {
		if errors.Is(err, repo.ErrStatusConflict) {
			return entity.Election{}, validationError(msgStatusChanged)
		}
		if errors.Is(err, repo.ErrElectionNotFound) {
			return entity.Election{}, notFoundError(msgElectionNotFound)
		}
		log.Error("failed to update election", sl.Err(err))
		return entity.Election{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("election updated")
	l.publish(ctx, entity.EventElectionUpdated, election)

	return election, nil
}

// StartElection moves a DRAFT or SCHEDULED election to SCHEDULED when its
// start date is still ahead, otherwise straight to ACTIVE.
func (l *Lifecycle) StartElection(ctx context.Context, p entity.Principal, id string) (entity.Election, error) {
	const op = "Lifecycle.StartElection"

	log := l.log.With(slog.String("op", op), slog.String("election_id", id), slog.String("user_id", p.UserID))

	if err := authorize(log, p, OpStartElection); err != nil {
		return entity.Election{}, err
	}

	election, err := l.load(ctx, id, p.OrganizationID)
	if err != nil {
		return entity.Election{}, fmt.Errorf("%s: %w", op, err)
	}

	if !election.Status.Editable() {
		return entity.Election{}, validationError("Only draft or scheduled elections can be started")
	}
	if len(election.Candidates) < minCandidates {
		return entity.Election{}, validationError("At least 2 candidates are required")
	}

	now := l.clock.Now()
	if !now.Before(election.EndDate) {
		return entity.Election{}, validationError("Election end date has already passed")
	}

	to, event := entity.ElectionStatusActive, entity.EventElectionStarted
	if election.StartDate.After(now) {
		to, event = entity.ElectionStatusScheduled, entity.EventElectionScheduled
	}

	if err := l.transition(ctx, id, to, entity.ElectionStatusDraft, entity.ElectionStatusScheduled); err != nil {
		if !isBusinessError(err) {
			log.Error("failed to start election", sl.Err(err))
		}
		return entity.Election{}, fmt.Errorf("%s: %w", op, err)
	}

	election.Status = to
	election.UpdatedAt = now

	log.Info("election status changed", slog.String("status", string(to)))
	l.publish(ctx, event, election)

	return election, nil
}

// CloseElection stops vote acceptance.
func (l *Lifecycle) CloseElection(ctx context.Context, p entity.Principal, id string) (entity.Election, error) {
	const op = "Lifecycle.CloseElection"

	log := l.log.With(slog.String("op", op), slog.String("election_id", id), slog.String("user_id", p.UserID))

	if err := authorize(log, p, OpCloseElection); err != nil {
		return entity.Election{}, err
	}

	election, err := l.load(ctx, id, p.OrganizationID)
	if err != nil {
		return entity.Election{}, fmt.Errorf("%s: %w", op, err)
	}

	if election.Status != entity.ElectionStatusActive {
		return entity.Election{}, validationError(msgNotActive)
	}

	if err := l.transition(ctx, id, entity.ElectionStatusClosed, entity.ElectionStatusActive); err != nil {
		if !isBusinessError(err) {
			log.Error("failed to close election", sl.Err(err))
		}
		return entity.Election{}, fmt.Errorf("%s: %w", op, err)
	}

	election.Status = entity.ElectionStatusClosed
	election.UpdatedAt = l.clock.Now()

	log.Info("election closed")
	l.publish(ctx, entity.EventElectionClosed, election)

	return election, nil
}

// DeleteElection removes a DRAFT or SCHEDULED election nobody has voted in.
func (l *Lifecycle) DeleteElection(ctx context.Context, p entity.Principal, id string) error {
	const op = "Lifecycle.DeleteElection"

	log := l.log.With(slog.String("op", op), slog.String("election_id", id), slog.String("user_id", p.UserID))

	if err := authorize(log, p, OpDeleteElection); err != nil {
		return err
	}

	election, err := l.load(ctx, id, p.OrganizationID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case election.Status == entity.ElectionStatusActive:
		return validationError("Cannot delete an active election")
	case !election.Status.Editable():
		return validationError("Only draft or scheduled elections can be deleted")
	}

	total, err := l.votes.CountVotes(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if total > 0 {
		return validationError("Cannot delete an election that has votes")
	}

	if err := l.elections.DeleteElection(ctx, id); err != nil {
		switch {
		case errors.Is(err, repo.ErrElectionHasVotes):
			return validationError("Cannot delete an election that has votes")
		case errors.Is(err, repo.ErrStatusConflict):
			return validationError(msgStatusChanged)
		case errors.Is(err, repo.ErrElectionNotFound):
			return notFoundError(msgElectionNotFound)
		}
		log.Error("failed to delete election", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("election deleted")
	l.publish(ctx, entity.EventElectionDeleted, map[string]string{"electionId": id})

	return nil
}

// CheckCanVote reports whether userID could vote right now. Ineligibility is
// returned as a reason, not as an error.
func (l *Lifecycle) CheckCanVote(ctx context.Context, id, userID, organizationID string) (entity.CanVote, error) {
	const op = "Lifecycle.CheckCanVote"

	election, err := l.elections.GetElectionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrElectionNotFound) {
			return entity.CanVote{Reason: msgElectionNotFound}, nil
		}
		return entity.CanVote{}, fmt.Errorf("%s: %w", op, err)
	}

	if election.OrganizationID != organizationID {
		return entity.CanVote{Reason: "You are not eligible to vote in this election"}, nil
	}
	if election.Status != entity.ElectionStatusActive {
		return entity.CanVote{Reason: msgNotActive}, nil
	}

	now := l.clock.Now()
	if now.Before(election.StartDate) {
		return entity.CanVote{Reason: "Election has not started yet"}, nil
	}
	if now.After(election.EndDate) {
		return entity.CanVote{Reason: "Election has ended"}, nil
	}

	_, err = l.votes.GetUserVote(ctx, id, userID)
	switch {
	case err == nil:
		return entity.CanVote{Reason: msgAlreadyVoted}, nil
	case !errors.Is(err, repo.ErrVoteNotFound):
		return entity.CanVote{}, fmt.Errorf("%s: %w", op, err)
	}

	return entity.CanVote{CanVote: true}, nil
}

// load reads the election and hides elections of other organizations.
func (l *Lifecycle) load(ctx context.Context, id, organizationID string) (entity.Election, error) {
	election, err := l.elections.GetElectionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrElectionNotFound) {
			return entity.Election{}, notFoundError(msgElectionNotFound)
		}
		return entity.Election{}, err
	}
	if election.OrganizationID != organizationID {
		return entity.Election{}, notFoundError(msgElectionNotFound)
	}
	return election, nil
}

func (l *Lifecycle) transition(ctx context.Context, id string, to entity.ElectionStatus, from ...entity.ElectionStatus) error {
	err := l.elections.UpdateElectionStatus(ctx, id, to, from...)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrStatusConflict):
		return validationError(msgStatusChanged)
	case errors.Is(err, repo.ErrElectionNotFound):
		return notFoundError(msgElectionNotFound)
	}
	return err
}

func (l *Lifecycle) publish(ctx context.Context, event entity.Event, payload any) {
	publish(ctx, l.log, l.notifier, event, payload)
}

// publish hands the event to the notifier. Failures are logged and dropped.
func publish(ctx context.Context, log *slog.Logger, notifier Notifier, event entity.Event, payload any) {
	if notifier == nil {
		return
	}
	if err := notifier.Publish(ctx, event, payload); err != nil {
		log.Warn("failed to publish event", slog.String("event", string(event)), sl.Err(err))
	}
}

func validateDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return validationError("Start date and end date are required")
	}
	if !start.Before(end) {
		return validationError("Start date must be before end date")
	}
	return nil
}

// buildCandidates assigns ids and positions. Positions are either given for
// every candidate, unique and positive, or for none, in which case they
// follow input order starting at 1.
func buildCandidates(electionID string, in []CandidateInput) ([]entity.Candidate, error) {
	if len(in) < minCandidates {
		return nil, validationError("At least 2 candidates are required")
	}

	explicit := 0
	for _, c := range in {
		if c.Position < 0 {
			return nil, validationError("Candidate position must be positive")
		}
		if c.Position > 0 {
			explicit++
		}
	}
	if explicit != 0 && explicit != len(in) {
		return nil, validationError("Candidate positions must be set for all candidates or none")
	}

	seen := make(map[int]struct{}, len(in))
	candidates := make([]entity.Candidate, 0, len(in))
	for i, c := range in {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, validationError("Candidate name is required")
		}
		position := c.Position
		if explicit == 0 {
			position = i + 1
		}
		if _, dup := seen[position]; dup {
			return nil, validationError("Candidate positions must be unique")
		}
		seen[position] = struct{}{}

		candidates = append(candidates, entity.Candidate{
			ID:          uuid.NewString(),
			ElectionID:  electionID,
			Name:        name,
			Description: c.Description,
			PhotoURL:    c.PhotoURL,
			Position:    position,
			Metadata:    c.Metadata,
		})
	}
	return candidates, nil
}

func isBusinessError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
