package handlers

import (
	"net/http"
	"time"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/14kear/online_elections/internal/lib/response"
	"github.com/14kear/online_elections/internal/services"
	"github.com/gin-gonic/gin"
)

type CandidateRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	PhotoURL    string         `json:"photoUrl"`
	Position    int            `json:"position" binding:"gte=0"`
	Metadata    map[string]any `json:"metadata"`
}

type CreateElectionRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	StartDate   time.Time          `json:"startDate" binding:"required"`
	EndDate     time.Time          `json:"endDate" binding:"required"`
	VotingType  string             `json:"votingType" binding:"omitempty,oneof=SINGLE_CHOICE MULTIPLE_CHOICE RANKED"`
	IsAnonymous bool               `json:"isAnonymous"`
	Settings    map[string]any     `json:"settings"`
	Candidates  []CandidateRequest `json:"candidates" binding:"required,dive"`
}

type UpdateElectionRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	StartDate   *time.Time          `json:"startDate"`
	EndDate     *time.Time          `json:"endDate"`
	VotingType  *string             `json:"votingType" binding:"omitempty,oneof=SINGLE_CHOICE MULTIPLE_CHOICE RANKED"`
	IsAnonymous *bool               `json:"isAnonymous"`
	Settings    map[string]any      `json:"settings"`
	Candidates  *[]CandidateRequest `json:"candidates" binding:"omitempty,dive"`
}

func toCandidateInputs(in []CandidateRequest) []services.CandidateInput {
	out := make([]services.CandidateInput, 0, len(in))
	for _, c := range in {
		out = append(out, services.CandidateInput{
			Name:        c.Name,
			Description: c.Description,
			PhotoURL:    c.PhotoURL,
			Position:    c.Position,
			Metadata:    c.Metadata,
		})
	}
	return out
}

func (h *ElectionHandler) CreateElection(c *gin.Context) {
	const op = "handlers.CreateElection"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	var req CreateElectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	election, err := h.lifecycle.CreateElection(c.Request.Context(), p, services.ElectionInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		VotingType:  entity.VotingType(req.VotingType),
		IsAnonymous: req.IsAnonymous,
		Settings:    req.Settings,
		Candidates:  toCandidateInputs(req.Candidates),
	})
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusCreated, "Election created successfully", election)
}

func (h *ElectionHandler) ListElections(c *gin.Context) {
	const op = "handlers.ListElections"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	elections, err := h.lifecycle.ListElections(c.Request.Context(), p, entity.ElectionStatus(c.Query("status")))
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusOK, "Elections retrieved successfully", elections)
}

func (h *ElectionHandler) GetElection(c *gin.Context) {
	const op = "handlers.GetElection"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	election, err := h.lifecycle.GetElection(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusOK, "Election retrieved successfully", election)
}

func (h *ElectionHandler) UpdateElection(c *gin.Context) {
	const op = "handlers.UpdateElection"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	var req UpdateElectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	patch := services.ElectionPatch{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsAnonymous: req.IsAnonymous,
		Settings:    req.Settings,
	}
	if req.VotingType != nil {
		vt := entity.VotingType(*req.VotingType)
		patch.VotingType = &vt
	}
	if req.Candidates != nil {
		candidates := toCandidateInputs(*req.Candidates)
		patch.Candidates = &candidates
	}

	election, err := h.lifecycle.UpdateElection(c.Request.Context(), p, c.Param("id"), patch)
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusOK, "Election updated successfully", election)
}

func (h *ElectionHandler) DeleteElection(c *gin.Context) {
	const op = "handlers.DeleteElection"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.lifecycle.DeleteElection(c.Request.Context(), p, c.Param("id")); err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusOK, "Election deleted successfully", nil)
}

func (h *ElectionHandler) StartElection(c *gin.Context) {
	const op = "handlers.StartElection"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	election, err := h.lifecycle.StartElection(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.fail(c, op, err)
		return
	}

	message := "Election started successfully"
	if election.Status == entity.ElectionStatusScheduled {
		message = "Election scheduled successfully"
	}
	response.OK(c, http.StatusOK, message, election)
}

func (h *ElectionHandler) CloseElection(c *gin.Context) {
	const op = "handlers.CloseElection"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	election, err := h.lifecycle.CloseElection(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusOK, "Election closed successfully", election)
}

func (h *ElectionHandler) CheckCanVote(c *gin.Context) {
	const op = "handlers.CheckCanVote"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	res, err := h.lifecycle.CheckCanVote(c.Request.Context(), c.Param("id"), p.UserID, p.OrganizationID)
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusOK, "Eligibility checked", res)
}
