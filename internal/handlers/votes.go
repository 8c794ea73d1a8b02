package handlers

import (
	"net/http"
	"strconv"

	"github.com/14kear/online_elections/internal/lib/response"
	"github.com/14kear/online_elections/internal/services"
	"github.com/gin-gonic/gin"
)

type CastVoteRequest struct {
	CandidateID string `json:"candidateId" binding:"required"`
	Rank        *int   `json:"rank"`
}

func (h *ElectionHandler) CastVote(c *gin.Context) {
	const op = "handlers.CastVote"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	vote, err := h.voting.CastVote(c.Request.Context(), p, services.VoteInput{
		ElectionID:  c.Param("id"),
		CandidateID: req.CandidateID,
		Rank:        req.Rank,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusCreated, "Vote cast successfully", vote)
}

func (h *ElectionHandler) HasVoted(c *gin.Context) {
	const op = "handlers.HasVoted"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	voted, err := h.voting.CheckIfUserVoted(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusOK, "Vote status retrieved", gin.H{"hasVoted": voted})
}

func (h *ElectionHandler) VoteCount(c *gin.Context) {
	const op = "handlers.VoteCount"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	total, err := h.voting.GetVoteCount(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusOK, "Vote count retrieved", gin.H{"totalVotes": total})
}

func (h *ElectionHandler) ElectionVotes(c *gin.Context) {
	const op = "handlers.ElectionVotes"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	include := false
	if raw := c.Query("includeVoterDetails"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid includeVoterDetails value")
			return
		}
		include = v
	}

	votes, err := h.voting.GetElectionVotes(c.Request.Context(), p, c.Param("id"), include)
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusOK, "Votes retrieved successfully", votes)
}

func (h *ElectionHandler) VoteHistory(c *gin.Context) {
	const op = "handlers.VoteHistory"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	history, err := h.voting.GetUserVoteHistory(c.Request.Context(), p)
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusOK, "Vote history retrieved successfully", history)
}
