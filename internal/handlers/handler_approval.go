package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
	"github.com/zhurnal-erp/zhurnal_backend/internal/middleware"
)

// approvalHandler drives the tiered approval workflow over HTTP.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

func newApprovalHandler(as portssvc.ApprovalSvcFacade) *approvalHandler {
	return &approvalHandler{approvalService: as}
}

// registerApprovalRoutes registers approval routes under a company group.
func registerApprovalRoutes(group *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade) {
	h := newApprovalHandler(approvalService)

	approvals := group.Group("/approvals")
	{
		approvals.GET("/in-process", h.listInProcess)
		approvals.GET("/my-tier", h.getMyTier)
		approvals.POST("/:entityType/:entityID/approve", h.approve)
		approvals.POST("/:entityType/:entityID/reject", h.reject)
	}
}

// approve godoc
// @Summary Approve a pending entity
// @Description Advances the entity one tier toward level 0; approval at level 0 is terminal. The caller's tier must match the entity's current pending level.
// @Tags approvals
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entityType path string true "Entity type" Enums(PARTNER, GOOD, DOCUMENT, JOURNAL_PARTNER_LINK, JOURNAL_GOOD_LINK, JOURNAL_PARTNER_GOOD_LINK)
// @Param entityID path string true "Entity ID"
// @Success 200 {object} dto.ApprovalStateResponse
// @Failure 400 {object} ErrorResponse "Unknown entity type"
// @Failure 403 {object} ErrorResponse "Tier mismatch"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not pending or concurrently changed"
// @Security BearerAuth
// @Router /companies/{companyID}/approvals/{entityType}/{entityID}/approve [post]
func (h *approvalHandler) approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	entityType := domain.ApprovableType(c.Param("entityType"))
	entityID := c.Param("entityID")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	item, err := h.approvalService.Approve(c.Request.Context(), companyID, entityType, entityID, actingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to approve entity")
		return
	}

	logger.Info("Entity approved",
		slog.String("entity_type", string(entityType)),
		slog.String("entity_id", entityID),
		slog.String("status", string(item.ApprovalStatus)))
	c.JSON(http.StatusOK, dto.ToApprovalStateResponse(item))
}

// reject godoc
// @Summary Reject a pending entity
// @Description Terminally rejects the entity at its current pending level. The caller's tier must match that level.
// @Tags approvals
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entityType path string true "Entity type" Enums(PARTNER, GOOD, DOCUMENT, JOURNAL_PARTNER_LINK, JOURNAL_GOOD_LINK, JOURNAL_PARTNER_GOOD_LINK)
// @Param entityID path string true "Entity ID"
// @Success 200 {object} dto.ApprovalStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Tier mismatch"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not pending or concurrently changed"
// @Security BearerAuth
// @Router /companies/{companyID}/approvals/{entityType}/{entityID}/reject [post]
func (h *approvalHandler) reject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	entityType := domain.ApprovableType(c.Param("entityType"))
	entityID := c.Param("entityID")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	item, err := h.approvalService.Reject(c.Request.Context(), companyID, entityType, entityID, actingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reject entity")
		return
	}

	logger.Info("Entity rejected",
		slog.String("entity_type", string(entityType)),
		slog.String("entity_id", entityID))
	c.JSON(http.StatusOK, dto.ToApprovalStateResponse(item))
}

// listInProcess godoc
// @Summary List pending entities at the caller's tier
// @Description Pages the pending approval queue visible to the caller, oldest first. Restricted users only see rows at their own tier.
// @Tags approvals
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entityTypes query []string false "Entity type filter"
// @Param journalID query string false "Scope journal"
// @Param includeDescendants query bool false "Include the journal's subtree"
// @Param take query int false "Page size"
// @Param skip query int false "Page offset"
// @Success 200 {object} dto.ListInProcessResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/approvals/in-process [get]
func (h *approvalHandler) listInProcess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var params dto.ListInProcessParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	items, err := h.approvalService.ListInProcessItems(c.Request.Context(), companyID, params, actingUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list pending approvals")
		return
	}

	responses := make([]dto.ApprovableItemResponse, len(items))
	for i := range items {
		responses[i] = dto.ToApprovableItemResponse(&items[i])
	}
	c.JSON(http.StatusOK, dto.ListInProcessResponse{Items: responses, Take: params.Take, Skip: params.Skip})
}

// getMyTier godoc
// @Summary Get the caller's approval tier
// @Tags approvals
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} domain.ApprovalTier
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/approvals/my-tier [get]
func (h *approvalHandler) getMyTier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tier, err := h.approvalService.GetUserTier(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to derive approval tier")
		return
	}
	c.JSON(http.StatusOK, tier)
}
