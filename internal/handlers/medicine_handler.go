package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dhouhaelaouni/tunimed/internal/models"
	"github.com/dhouhaelaouni/tunimed/internal/service"
	"github.com/dhouhaelaouni/tunimed/internal/utils"
)

// MedicineHandler handles declaration lifecycle HTTP requests
type MedicineHandler struct {
	medicineService *service.MedicineService
	auditService    *service.AuditService
}

// NewMedicineHandler creates a new medicine handler instance
func NewMedicineHandler(medicineService *service.MedicineService, auditService *service.AuditService) *MedicineHandler {
	return &MedicineHandler{
		medicineService: medicineService,
		auditService:    auditService,
	}
}

// Declare handles POST /declarations
func (h *MedicineHandler) Declare(c *gin.Context) {
	var req models.MedicineAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequestError(c, "Invalid request body")
		return
	}

	actorID := utils.GetUserIDFromContext(c)
	response, svcErr := h.medicineService.Declare(c.Request.Context(), actorID, &req)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendCreatedResponse(c, response)
}

// ListMine handles GET /declarations
func (h *MedicineHandler) ListMine(c *gin.Context) {
	actorID := utils.GetUserIDFromContext(c)
	limit, offset := utils.ParsePagination(c)

	responses, svcErr := h.medicineService.ListMyDeclarations(c.Request.Context(), actorID, limit, offset)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, gin.H{"declarations": responses, "count": len(responses)})
}

// ListPendingReview handles GET /declarations/pending-pharmacy-review
func (h *MedicineHandler) ListPendingReview(c *gin.Context) {
	actorID := utils.GetUserIDFromContext(c)
	limit, offset := utils.ParsePagination(c)

	responses, svcErr := h.medicineService.ListPendingPharmacyReview(c.Request.Context(), actorID, limit, offset)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, gin.H{"declarations": responses, "count": len(responses)})
}

// Get handles GET /declarations/:medicineId
func (h *MedicineHandler) Get(c *gin.Context) {
	actorID := utils.GetUserIDFromContext(c)
	medicineID := c.Param("medicineId")

	response, svcErr := h.medicineService.GetDeclaration(c.Request.Context(), actorID, medicineID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, response)
}

// Verify handles POST /declarations/:medicineId/verify
func (h *MedicineHandler) Verify(c *gin.Context) {
	var req models.MedicineVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequestError(c, "approved is required")
		return
	}

	actorID := utils.GetUserIDFromContext(c)
	medicineID := c.Param("medicineId")

	response, svcErr := h.medicineService.Verify(c.Request.Context(), actorID, medicineID, &req)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, response)
}

// Validate handles POST /declarations/:medicineId/validate
func (h *MedicineHandler) Validate(c *gin.Context) {
	var req models.MedicineValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequestError(c, "decision is required")
		return
	}

	actorID := utils.GetUserIDFromContext(c)
	medicineID := c.Param("medicineId")

	response, svcErr := h.medicineService.Validate(c.Request.Context(), actorID, medicineID, &req)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, response)
}

// Cancel handles POST /declarations/:medicineId/cancel
func (h *MedicineHandler) Cancel(c *gin.Context) {
	actorID := utils.GetUserIDFromContext(c)
	medicineID := c.Param("medicineId")

	response, svcErr := h.medicineService.Cancel(c.Request.Context(), actorID, medicineID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, response)
}

// CheckEligibility handles GET /declarations/:medicineId/eligibility
func (h *MedicineHandler) CheckEligibility(c *gin.Context) {
	medicineID := c.Param("medicineId")

	response, svcErr := h.medicineService.CheckEligibility(c.Request.Context(), medicineID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, response)
}

// GetAuditTrail handles GET /declarations/:medicineId/audit
func (h *MedicineHandler) GetAuditTrail(c *gin.Context) {
	actorID := utils.GetUserIDFromContext(c)
	medicineID := c.Param("medicineId")
	limit, offset := utils.ParsePagination(c)

	entries, svcErr := h.auditService.GetEntityTrail(c.Request.Context(), actorID,
		service.EntityTypeMedicine, medicineID, limit, offset)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	utils.SendOKResponse(c, gin.H{"entries": entries, "count": len(entries)})
}
