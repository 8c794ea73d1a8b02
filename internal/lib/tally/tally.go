// Package tally holds the pure arithmetic behind election results: exact
// half-up percentage rounding, deterministic winner selection and vote
// histograms. Nothing here touches storage or the clock.
package tally

import (
	"sort"
	"time"

	"github.com/14kear/online_elections/internal/entity"
)

const (
	hourLayout = "2006-01-02T15:00:00Z"
	dayLayout  = "2006-01-02"
)

// Percent returns part/whole*100 rounded half-up to two decimals. It works on
// integers so that values such as 1.005 never fall victim to binary floating
// point. A non-positive whole yields 0.
func Percent(part, whole int64) float64 {
	if whole <= 0 || part <= 0 {
		return 0
	}
	// basis points, rounded half up: floor((part*10000)/whole + 1/2)
	bp := (part*20000 + whole) / (2 * whole)
	return float64(bp) / 100
}

// ParticipationRate is Percent clamped to 100: membership can shrink after
// votes were cast.
func ParticipationRate(votes, eligible int64) float64 {
	rate := Percent(votes, eligible)
	if rate > 100 {
		return 100
	}
	return rate
}

// SortCandidates orders candidates by ascending position, falling back to id
// so that duplicated positions still give a stable order.
func SortCandidates(candidates []entity.Candidate) []entity.Candidate {
	out := make([]entity.Candidate, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position == out[j].Position {
			return out[i].ID < out[j].ID
		}
		return out[i].Position < out[j].Position
	})
	return out
}

// Compute tallies votes for the given candidates. Votes for candidates outside
// the set are ignored, so the per-candidate counts always sum to TotalVotes.
//
// The winner is the first candidate, in ascending position order, holding the
// strictly greatest vote count. No votes means no winner.
func Compute(electionID string, candidates []entity.Candidate, votes []entity.Vote, eligible int64) entity.Result {
	ordered := SortCandidates(candidates)

	counts := make(map[string]int64, len(ordered))
	for _, c := range ordered {
		counts[c.ID] = 0
	}

	var total int64
	for _, v := range votes {
		if _, ok := counts[v.CandidateID]; !ok {
			continue
		}
		counts[v.CandidateID]++
		total++
	}

	results := make([]entity.CandidateResult, 0, len(ordered))
	byCandidate := make(map[string]entity.Tally, len(ordered))
	var (
		winner   *string
		maxVotes int64
	)
	for _, c := range ordered {
		n := counts[c.ID]
		pct := Percent(n, total)
		results = append(results, entity.CandidateResult{
			CandidateID: c.ID,
			Name:        c.Name,
			Position:    c.Position,
			VoteCount:   n,
			Percentage:  pct,
		})
		byCandidate[c.ID] = entity.Tally{VoteCount: n, Percentage: pct}
		if n > maxVotes {
			id := c.ID
			winner = &id
			maxVotes = n
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].VoteCount > results[j].VoteCount
	})

	return entity.Result{
		ElectionID:          electionID,
		TotalVotes:          total,
		TotalEligibleVoters: eligible,
		ParticipationRate:   ParticipationRate(total, eligible),
		Results:             byCandidate,
		Candidates:          results,
		WinnerID:            winner,
	}
}

// Histograms buckets votes by UTC hour and UTC day, both in ascending order.
func Histograms(votes []entity.Vote) (byHour, byDay []entity.Bucket) {
	return bucket(votes, func(t time.Time) string { return t.Truncate(time.Hour).Format(hourLayout) }),
		bucket(votes, func(t time.Time) string { return t.Format(dayLayout) })
}

func bucket(votes []entity.Vote, key func(time.Time) string) []entity.Bucket {
	counts := make(map[string]int64)
	for _, v := range votes {
		counts[key(v.VotedAt.UTC())]++
	}

	out := make([]entity.Bucket, 0, len(counts))
	for k, n := range counts {
		out = append(out, entity.Bucket{Bucket: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out
}
