package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/14kear/online_elections/internal/repo"
	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"

	defaultTimeout = 5 * time.Second
)

type Storage struct {
	db      *sql.DB
	timeout time.Duration
}

// New opens a connection pool and verifies it. Every storage call is bounded
// by timeout (5s when zero).
func New(postgresURL string, timeout time.Duration) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewWithDB(db, timeout), nil
}

func NewWithDB(db *sql.DB, timeout time.Duration) *Storage {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Storage{db: db, timeout: timeout}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// SaveElection inserts the election and its candidates in one transaction.
func (s *Storage) SaveElection(ctx context.Context, election entity.Election) error {
	const op = "storage.postgres.SaveElection"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	settings, err := marshalBag(election.Settings)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback()

	const query = `INSERT INTO elections (id, title, description, start_date, end_date, status, voting_type,
		is_anonymous, organization_id, created_by_id, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = tx.ExecContext(ctx, query,
		election.ID, election.Title, election.Description, election.StartDate, election.EndDate,
		election.Status, election.VotingType, election.IsAnonymous, election.OrganizationID,
		election.CreatedByID, settings, election.CreatedAt, election.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := insertCandidates(ctx, tx, election.Candidates); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func insertCandidates(ctx context.Context, tx *sql.Tx, candidates []entity.Candidate) error {
	const query = `INSERT INTO candidates (id, election_id, name, description, photo_url, position, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range candidates {
		metadata, err := marshalBag(c.Metadata)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, c.ID, c.ElectionID, c.Name, c.Description, c.PhotoURL, c.Position, metadata); err != nil {
			return err
		}
	}

	return nil
}

// GetElectionByID returns the election with its candidates ordered by position.
func (s *Storage) GetElectionByID(ctx context.Context, id string) (entity.Election, error) {
	const op = "storage.postgres.GetElectionByID"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT id, title, description, start_date, end_date, status, voting_type, is_anonymous,
		organization_id, created_by_id, settings, created_at, updated_at FROM elections WHERE id = $1`

	election, err := scanElection(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Election{}, fmt.Errorf("%s: %w", op, repo.ErrElectionNotFound)
		}
		return entity.Election{}, fmt.Errorf("%s: %w", op, err)
	}

	candidates, err := s.candidates(ctx, id)
	if err != nil {
		return entity.Election{}, fmt.Errorf("%s: %w", op, err)
	}
	election.Candidates = candidates

	return election, nil
}

func (s *Storage) candidates(ctx context.Context, electionID string) ([]entity.Candidate, error) {
	query := `SELECT id, election_id, name, description, photo_url, position, metadata
		FROM candidates WHERE election_id = $1 ORDER BY position, id`

	rows, err := s.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []entity.Candidate
	for rows.Next() {
		var (
			c        entity.Candidate
			metadata []byte
		)
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Description, &c.PhotoURL, &c.Position, &metadata); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if c.Metadata, err = unmarshalBag(metadata); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return candidates, nil
}

// GetElections lists elections of one organization, newest start first.
func (s *Storage) GetElections(ctx context.Context, filter entity.ElectionFilter) ([]entity.Election, error) {
	const op = "storage.postgres.GetElections"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT id, title, description, start_date, end_date, status, voting_type, is_anonymous,
		organization_id, created_by_id, settings, created_at, updated_at FROM elections
		WHERE organization_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY start_date DESC, id`

	rows, err := s.db.QueryContext(ctx, query, filter.OrganizationID, string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	elections := []entity.Election{}
	for rows.Next() {
		election, err := scanElection(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		elections = append(elections, election)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return elections, nil
}

// UpdateElection rewrites the election metadata while it is still DRAFT or
// SCHEDULED. With replaceCandidates the candidate set is swapped in the same
// transaction.
func (s *Storage) UpdateElection(ctx context.Context, election entity.Election, replaceCandidates bool) error {
	const op = "storage.postgres.UpdateElection"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	settings, err := marshalBag(election.Settings)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback()

	const query = `UPDATE elections SET title = $1, description = $2, start_date = $3, end_date = $4,
		voting_type = $5, is_anonymous = $6, settings = $7, updated_at = $8
		WHERE id = $9 AND status = ANY($10)`

	editable := pq.Array([]string{string(entity.ElectionStatusDraft), string(entity.ElectionStatusScheduled)})
	if replaceCandidates {
		editable = pq.Array([]string{string(entity.ElectionStatusDraft)})
	}

	res, err := tx.ExecContext(ctx, query,
		election.Title, election.Description, election.StartDate, election.EndDate, election.VotingType,
		election.IsAnonymous, settings, election.UpdatedAt, election.ID, editable,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, s.missingOrConflict(ctx, tx, election.ID))
	}

	if replaceCandidates {
		if _, err := tx.ExecContext(ctx, `DELETE FROM candidates WHERE election_id = $1`, election.ID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := insertCandidates(ctx, tx, election.Candidates); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

// UpdateElectionStatus moves the election to status `to` only if its current
// status is one of from.
func (s *Storage) UpdateElectionStatus(ctx context.Context, id string, to entity.ElectionStatus, from ...entity.ElectionStatus) error {
	const op = "storage.postgres.UpdateElectionStatus"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	const query = `UPDATE elections SET status = $1, updated_at = $2 WHERE id = $3 AND status = ANY($4)`

	res, err := s.db.ExecContext(ctx, query, to, time.Now().UTC(), id, pq.Array(statusStrings(from)))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, s.missingOrConflict(ctx, s.db, id))
	}

	return nil
}

// DeleteElection removes a DRAFT or SCHEDULED election without votes. The
// vote foreign key backs the zero-vote rule.
func (s *Storage) DeleteElection(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteElection"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	const query = `DELETE FROM elections WHERE id = $1 AND status = ANY($2)
		AND NOT EXISTS (SELECT 1 FROM votes WHERE election_id = $1)`

	deletable := pq.Array([]string{string(entity.ElectionStatusDraft), string(entity.ElectionStatusScheduled)})
	res, err := s.db.ExecContext(ctx, query, id, deletable)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, repo.ErrElectionHasVotes)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var votes int64
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE election_id = $1`, id).Scan(&votes)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if votes > 0 {
		return fmt.Errorf("%s: %w", op, repo.ErrElectionHasVotes)
	}

	return fmt.Errorf("%s: %w", op, s.missingOrConflict(ctx, s.db, id))
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Storage) missingOrConflict(ctx context.Context, q queryer, id string) error {
	var exists bool
	if err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM elections WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repo.ErrElectionNotFound
	}
	return repo.ErrStatusConflict
}

// SaveVote inserts the vote and returns the election's vote count as seen by
// the same transaction. The election row is share-locked so that a concurrent
// close waits for the insert, and the insert is rejected once the election is
// no longer ACTIVE. The (election_id, user_id) unique constraint rejects a
// second vote.
func (s *Storage) SaveVote(ctx context.Context, vote entity.Vote) (int64, error) {
	const op = "storage.postgres.SaveVote"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback()

	var status entity.ElectionStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM elections WHERE id = $1 FOR SHARE`, vote.ElectionID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, repo.ErrElectionNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if status != entity.ElectionStatusActive {
		return 0, fmt.Errorf("%s: %w", op, repo.ErrElectionNotActive)
	}

	const query = `INSERT INTO votes (id, user_id, election_id, candidate_id, rank, voted_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = tx.ExecContext(ctx, query,
		vote.ID, vote.UserID, vote.ElectionID, vote.CandidateID, nullInt(vote.Rank), vote.VotedAt,
		vote.IPAddress, vote.UserAgent,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case codeUniqueViolation:
				return 0, fmt.Errorf("%s: %w", op, repo.ErrVoteExists)
			case codeForeignKeyViolation:
				return 0, fmt.Errorf("%s: %w", op, repo.ErrCandidateNotFound)
			}
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE election_id = $1`, vote.ElectionID).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: count: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: commit: %w", op, err)
	}

	return total, nil
}

func (s *Storage) GetUserVote(ctx context.Context, electionID, userID string) (entity.Vote, error) {
	const op = "storage.postgres.GetUserVote"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT id, user_id, election_id, candidate_id, rank, voted_at, ip_address, user_agent
		FROM votes WHERE election_id = $1 AND user_id = $2`

	vote, err := scanVote(s.db.QueryRowContext(ctx, query, electionID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Vote{}, fmt.Errorf("%s: %w", op, repo.ErrVoteNotFound)
		}
		return entity.Vote{}, fmt.Errorf("%s: %w", op, err)
	}

	return vote, nil
}

func (s *Storage) CountVotes(ctx context.Context, electionID string) (int64, error) {
	const op = "storage.postgres.CountVotes"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE election_id = $1`, electionID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, nil
}

func (s *Storage) GetVotesByElection(ctx context.Context, electionID string) ([]entity.Vote, error) {
	const op = "storage.postgres.GetVotesByElection"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT id, user_id, election_id, candidate_id, rank, voted_at, ip_address, user_agent
		FROM votes WHERE election_id = $1 ORDER BY voted_at, id`

	rows, err := s.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var votes []entity.Vote
	for rows.Next() {
		vote, err := scanVote(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		votes = append(votes, vote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return votes, nil
}

// GetElectionVotes lists votes with candidate names. Voter columns are only
// selected when withVoters is set.
func (s *Storage) GetElectionVotes(ctx context.Context, electionID string, withVoters bool) ([]entity.ElectionVote, error) {
	const op = "storage.postgres.GetElectionVotes"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT v.id, v.candidate_id, c.name, v.rank, v.voted_at, '', '', ''
		FROM votes v JOIN candidates c ON c.id = v.candidate_id
		WHERE v.election_id = $1 ORDER BY v.voted_at, v.id`
	if withVoters {
		query = `SELECT v.id, v.candidate_id, c.name, v.rank, v.voted_at, v.user_id,
			COALESCE(u.name, ''), COALESCE(u.email, '')
			FROM votes v JOIN candidates c ON c.id = v.candidate_id
			LEFT JOIN users u ON u.id = v.user_id
			WHERE v.election_id = $1 ORDER BY v.voted_at, v.id`
	}

	rows, err := s.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	votes := []entity.ElectionVote{}
	for rows.Next() {
		var (
			v    entity.ElectionVote
			rank sql.NullInt64
		)
		if err := rows.Scan(&v.ID, &v.CandidateID, &v.CandidateName, &rank, &v.VotedAt, &v.UserID, &v.VoterName, &v.VoterEmail); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		v.Rank = intPtr(rank)
		votes = append(votes, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return votes, nil
}

func (s *Storage) GetVoteHistory(ctx context.Context, userID string) ([]entity.VoteHistoryItem, error) {
	const op = "storage.postgres.GetVoteHistory"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT v.id, v.election_id, e.title, e.status, v.candidate_id, c.name, v.rank, v.voted_at
		FROM votes v
		JOIN elections e ON e.id = v.election_id
		JOIN candidates c ON c.id = v.candidate_id
		WHERE v.user_id = $1 ORDER BY v.voted_at DESC, v.id`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := []entity.VoteHistoryItem{}
	for rows.Next() {
		var (
			item entity.VoteHistoryItem
			rank sql.NullInt64
		)
		if err := rows.Scan(&item.VoteID, &item.ElectionID, &item.ElectionTitle, &item.ElectionStatus,
			&item.CandidateID, &item.CandidateName, &rank, &item.VotedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		item.Rank = intPtr(rank)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return items, nil
}

// resultPayload is the JSONB body of a results row.
type resultPayload struct {
	Candidates []entity.CandidateResult `json:"candidates"`
	Results    map[string]entity.Tally  `json:"results"`
}

// PublishResult upserts the result row and moves the election from CLOSED to
// PUBLISHED in a single transaction. An election that is already PUBLISHED
// fails with ErrStatusConflict, so concurrent publishers cannot both commit.
func (s *Storage) PublishResult(ctx context.Context, result entity.Result) error {
	const op = "storage.postgres.PublishResult"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if result.PublishedAt == nil {
		return fmt.Errorf("%s: published_at is required", op)
	}

	payload, err := json.Marshal(resultPayload{Candidates: result.Candidates, Results: result.Results})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback()

	const statusQuery = `UPDATE elections SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	res, err := tx.ExecContext(ctx, statusQuery, entity.ElectionStatusPublished, *result.PublishedAt, result.ElectionID,
		entity.ElectionStatusClosed)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, s.missingOrConflict(ctx, tx, result.ElectionID))
	}

	const resultQuery = `INSERT INTO results (election_id, total_votes, total_eligible_voters, participation_rate,
		results, winner_id, published_at) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (election_id) DO UPDATE SET total_votes = EXCLUDED.total_votes,
		total_eligible_voters = EXCLUDED.total_eligible_voters, participation_rate = EXCLUDED.participation_rate,
		results = EXCLUDED.results, winner_id = EXCLUDED.winner_id, published_at = EXCLUDED.published_at`

	_, err = tx.ExecContext(ctx, resultQuery,
		result.ElectionID, result.TotalVotes, result.TotalEligibleVoters, result.ParticipationRate,
		string(payload), result.WinnerID, *result.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func (s *Storage) GetResult(ctx context.Context, electionID string) (entity.Result, error) {
	const op = "storage.postgres.GetResult"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT election_id, total_votes, total_eligible_voters, participation_rate, results, winner_id,
		published_at FROM results WHERE election_id = $1`

	var (
		result      entity.Result
		payload     []byte
		winnerID    sql.NullString
		publishedAt time.Time
	)
	err := s.db.QueryRowContext(ctx, query, electionID).Scan(&result.ElectionID, &result.TotalVotes,
		&result.TotalEligibleVoters, &result.ParticipationRate, &payload, &winnerID, &publishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Result{}, fmt.Errorf("%s: %w", op, repo.ErrResultNotFound)
		}
		return entity.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	var body resultPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return entity.Result{}, fmt.Errorf("%s: decode results: %w", op, err)
	}
	result.Candidates, result.Results = body.Candidates, body.Results
	if winnerID.Valid {
		result.WinnerID = &winnerID.String
	}
	publishedAt = publishedAt.UTC()
	result.PublishedAt = &publishedAt

	return result, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (entity.User, error) {
	const op = "storage.postgres.GetUserByID"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT id, organization_id, name, email, role, is_active FROM users WHERE id = $1`

	var user entity.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.OrganizationID, &user.Name, &user.Email,
		&user.Role, &user.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, fmt.Errorf("%s: %w", op, repo.ErrUserNotFound)
		}
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) CountActiveUsers(ctx context.Context, organizationID string) (int64, error) {
	const op = "storage.postgres.CountActiveUsers"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE organization_id = $1 AND is_active`,
		organizationID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanElection(row scanner) (entity.Election, error) {
	var (
		e        entity.Election
		settings []byte
	)
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.Status, &e.VotingType,
		&e.IsAnonymous, &e.OrganizationID, &e.CreatedByID, &settings, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return entity.Election{}, err
	}
	if e.Settings, err = unmarshalBag(settings); err != nil {
		return entity.Election{}, err
	}
	e.StartDate, e.EndDate = e.StartDate.UTC(), e.EndDate.UTC()
	e.CreatedAt, e.UpdatedAt = e.CreatedAt.UTC(), e.UpdatedAt.UTC()
	return e, nil
}

func scanVote(row scanner) (entity.Vote, error) {
	var (
		v    entity.Vote
		rank sql.NullInt64
	)
	if err := row.Scan(&v.ID, &v.UserID, &v.ElectionID, &v.CandidateID, &rank, &v.VotedAt, &v.IPAddress, &v.UserAgent); err != nil {
		return entity.Vote{}, err
	}
	v.Rank = intPtr(rank)
	v.VotedAt = v.VotedAt.UTC()
	return v, nil
}

// marshalBag renders a JSONB argument. lib/pq would send []byte as bytea.
func marshalBag(bag map[string]any) (string, error) {
	if bag == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(bag)
	return string(raw), err
}

func unmarshalBag(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var bag map[string]any
	if err := json.Unmarshal(raw, &bag); err != nil {
		return nil, err
	}
	if len(bag) == 0 {
		return nil, nil
	}
	return bag, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func statusStrings(statuses []entity.ElectionStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
