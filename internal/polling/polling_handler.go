package polling

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WaqarAhmad321/smart-city-sol/internal/auth"
	"github.com/WaqarAhmad321/smart-city-sol/pkg/response"
)

type PollingHandler struct {
	pollingService *PollingService
}

func NewPollingHandler(pollingService *PollingService) *PollingHandler {
	return &PollingHandler{pollingService: pollingService}
}

func votingError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", "1")
	}
	response.Error(c, status, err.Error())
}

// @Summary Create a new proposal
// @Description Create a voting proposal with at least two options and a future deadline
// @Tags proposals
// @Accept json
// @Produce json
// @Param request body polling.CreateProposalRequest true "Create Proposal Request"
// @Success 201 {object} polling.Proposal
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /proposals [post]
// @Security BearerAuth
func (h *PollingHandler) CreateProposal(c *gin.Context) {
	user, err := auth.GetUserFromContext(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	proposal, err := h.pollingService.CreateProposal(c.Request.Context(), user.ID, req)
	if err != nil {
		votingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, proposal)
}

// @Summary List proposals
// @Description Get all proposals with current tallies, newest first
// @Tags proposals
// @Produce json
// @Success 200 {array} polling.Proposal
// @Failure 500 {object} map[string]string
// @Router /proposals [get]
func (h *PollingHandler) ListProposals(c *gin.Context) {
	proposals, err := h.pollingService.ListProposals(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, proposals)
}

// @Summary Get a proposal
// @Description Get a proposal with its current option tallies
// @Tags proposals
// @Produce json
// @Param proposal_id path string true "Proposal ID"
// @Success 200 {object} polling.Proposal
// @Failure 404 {object} map[string]string
// @Router /proposals/{proposal_id} [get]
func (h *PollingHandler) GetProposal(c *gin.Context) {
	proposal, err := h.pollingService.GetProposal(c.Request.Context(), c.Param("proposal_id"))
	if err != nil {
		votingError(c, err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// @Summary Cast a vote
// @Description Record the caller's vote for one option of a proposal
// @Tags proposals
// @Accept json
// @Produce json
// @Param proposal_id path string true "Proposal ID"
// @Param request body polling.CastVoteRequest true "Cast Vote Request"
// @Success 200 {object} polling.VoteResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /proposals/{proposal_id}/votes [post]
// @Security BearerAuth
func (h *PollingHandler) CastVote(c *gin.Context) {
	user, err := auth.GetUserFromContext(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.pollingService.CastVote(c.Request.Context(), user.ID, c.Param("proposal_id"), req.OptionID)
	if err != nil {
		votingError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Get the caller's vote
// @Description Return the caller's recorded vote on a proposal, if any
// @Tags proposals
// @Produce json
// @Param proposal_id path string true "Proposal ID"
// @Success 200 {object} polling.Vote
// @Failure 404 {object} map[string]string
// @Router /proposals/{proposal_id}/votes/me [get]
// @Security BearerAuth
func (h *PollingHandler) GetMyVote(c *gin.Context) {
	user, err := auth.GetUserFromContext(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	vote, err := h.pollingService.GetUserVote(c.Request.Context(), c.Param("proposal_id"), user.ID)
	if err != nil {
		votingError(c, err)
		return
	}
	if vote == nil {
		response.Error(c, http.StatusNotFound, "no vote recorded")
		return
	}

	c.JSON(http.StatusOK, vote)
}
