package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dhouhaelaouni/tunimed/internal/service"
	"github.com/dhouhaelaouni/tunimed/internal/utils"
)

// AuditHandler handles audit trail HTTP requests
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler instance
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// GetUserTrail handles GET /audit/users/:userId
func (h *AuditHandler) GetUserTrail(c *gin.Context) {
	actorID := utils.GetUserIDFromContext(c)
	userID := c.Param("userId")
	limit, offset := utils.ParsePagination(c)

	entries, svcErr := h.auditService.GetUserTrail(c.Request.Context(), actorID, userID, limit, offset)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, gin.H{"entries": entries, "count": len(entries)})
}
