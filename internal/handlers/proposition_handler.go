package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dhouhaelaouni/tunimed/internal/models"
	"github.com/dhouhaelaouni/tunimed/internal/service"
	"github.com/dhouhaelaouni/tunimed/internal/utils"
)

// PropositionHandler handles proposition listing and request HTTP requests
type PropositionHandler struct {
	propositionService *service.PropositionService
}

// NewPropositionHandler creates a new proposition handler instance
func NewPropositionHandler(propositionService *service.PropositionService) *PropositionHandler {
	return &PropositionHandler{propositionService: propositionService}
}

// List handles GET /propositions
func (h *PropositionHandler) List(c *gin.Context) {
	limit, offset := utils.ParsePagination(c)
	filters := models.PropositionFilters{
		City:         c.Query("city"),
		SortByExpiry: c.Query("sort") == "expiry",
		Limit:        limit,
		Offset:       offset,
	}

	responses, svcErr := h.propositionService.ListAvailable(c.Request.Context(), filters)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, gin.H{"propositions": responses, "count": len(responses)})
}

// Get handles GET /propositions/:propositionId
func (h *PropositionHandler) Get(c *gin.Context) {
	propositionID := c.Param("propositionId")

	response, svcErr := h.propositionService.GetProposition(c.Request.Context(), propositionID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, response)
}

// Request handles POST /propositions/:propositionId/request
func (h *PropositionHandler) Request(c *gin.Context) {
	actorID := utils.GetUserIDFromContext(c)
	propositionID := c.Param("propositionId")

	response, svcErr := h.propositionService.Request(c.Request.Context(), actorID, propositionID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, response)
}
