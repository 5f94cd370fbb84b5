package controllers

import (
	"log/slog"
	"net/http"

	"communityhub/internal/delivery/http/helpers"
	"communityhub/internal/domain"
)

// UpdateProposalStatusRequest is the request body for PATCH /proposals/{proposalID}/status.
type UpdateProposalStatusRequest struct {
	Status domain.ProposalStatus `json:"status"`
}

// Validate implements Validator.
func (u UpdateProposalStatusRequest) Validate() []string {
	if !u.Status.Valid() {
		return []string{"status must be one of proposed, accepted, rejected"}
	}
	return nil
}

// ProposalListResponse is one page of proposals, newest first.
type ProposalListResponse struct {
	Items      []*domain.TalkProposal `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ProposalListSuccessResponse is the success envelope for GET /proposals.
type ProposalListSuccessResponse struct {
	Data  ProposalListResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ProposalSuccessResponse is the success envelope for a single proposal.
type ProposalSuccessResponse struct {
	Data  *domain.TalkProposal `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// AcceptProposalSuccessResponse is the success envelope for the accept workflow.
type AcceptProposalSuccessResponse struct {
	Data  *domain.AcceptProposalResult `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

type ProposalController struct {
	Logger  *slog.Logger
	Service domain.ProposalService
}

func NewProposalController(logger *slog.Logger, svc domain.ProposalService) *ProposalController {
	return &ProposalController{Logger: logger, Service: svc}
}

// SubmitProposal godoc
// @Summary Submit a talk proposal
// @Description Public form. The proposal always starts as proposed; a status in the body is ignored.
// @Tags proposals
// @Accept json
// @Produce json
// @Param proposal body domain.CreateProposalDTO true "Proposal"
// @Success 201 {object} controllers.ProposalSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /proposals [post]
func (c *ProposalController) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	var dto domain.CreateProposalDTO
	if !helpers.DecodeAndValidate(w, r, &dto) {
		return
	}
	proposal, err := c.Service.Submit(r.Context(), dto)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, proposal)
}

// ListProposals godoc
// @Summary List talk proposals
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} controllers.ProposalListSuccessResponse
// @Router /proposals [get]
func (c *ProposalController) ListProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := c.Service.List(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	items, meta := helpers.Paginate(proposals, helpers.ParsePagination(r))
	helpers.WriteJSONSuccess(w, http.StatusOK, ProposalListResponse{Items: items, Pagination: meta})
}

// UpdateProposalStatus godoc
// @Summary Set a proposal's status
// @Description Sets the status without running the accept workflow.
// @Tags proposals
// @Accept json
// @Security BearerAuth
// @Param proposalID path string true "Proposal ID"
// @Param body body UpdateProposalStatusRequest true "New status"
// @Success 204
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /proposals/{proposalID}/status [patch]
func (c *ProposalController) UpdateProposalStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateProposalStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.UpdateStatus(r.Context(), r.PathValue("proposalID"), req.Status); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AcceptProposal godoc
// @Summary Accept a proposal into an event agenda
// @Description Reuses or creates the speaker, uses or creates the event, appends the talk to the agenda and marks the proposal accepted. The steps are not transactional.
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param proposalID path string true "Proposal ID"
// @Param body body domain.AcceptProposalInput true "Target event and speaker"
// @Success 200 {object} controllers.AcceptProposalSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /proposals/{proposalID}/accept [post]
func (c *ProposalController) AcceptProposal(w http.ResponseWriter, r *http.Request) {
	var in domain.AcceptProposalInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	result, err := c.Service.Accept(r.Context(), r.PathValue("proposalID"), in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// RejectProposal godoc
// @Summary Reject a proposal
// @Tags proposals
// @Security BearerAuth
// @Param proposalID path string true "Proposal ID"
// @Success 204
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /proposals/{proposalID}/reject [post]
func (c *ProposalController) RejectProposal(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Reject(r.Context(), r.PathValue("proposalID")); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
