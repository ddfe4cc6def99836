package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
	"github.com/zhurnal-erp/zhurnal_backend/internal/middleware"
)

// partnerHandler handles HTTP requests related to partners.
type partnerHandler struct {
	partnerService portssvc.PartnerSvcFacade
}

func newPartnerHandler(ps portssvc.PartnerSvcFacade) *partnerHandler {
	return &partnerHandler{partnerService: ps}
}

// registerPartnerRoutes registers partner routes under a company group.
func registerPartnerRoutes(group *gin.RouterGroup, partnerService portssvc.PartnerSvcFacade) {
	h := newPartnerHandler(partnerService)

	partners := group.Group("/partners")
	{
		partners.POST("", h.createPartner)
		partners.GET("", h.listPartners)
		partners.GET("/:partnerID", h.getPartner)
		partners.PUT("/:partnerID", h.updatePartner)
	}
}

// createPartner godoc
// @Summary Register a partner
// @Description Creates a partner pending approval at the tier of its creation journal.
// @Tags partners
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param partner body dto.CreatePartnerRequest true "Partner details"
// @Success 201 {object} dto.PartnerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Creation journal not found"
// @Security BearerAuth
// @Router /companies/{companyID}/partners [post]
func (h *partnerHandler) createPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	partner, err := h.partnerService.CreatePartner(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create partner")
		return
	}

	logger.Info("Partner created", slog.String("partner_id", partner.PartnerID))
	c.JSON(http.StatusCreated, dto.ToPartnerResponse(partner))
}

// getPartner godoc
// @Summary Get a partner
// @Tags partners
// @Produce json
// @Param companyID path string true "Company ID"
// @Param partnerID path string true "Partner ID"
// @Success 200 {object} dto.PartnerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/partners/{partnerID} [get]
func (h *partnerHandler) getPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	partnerID := c.Param("partnerID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	partner, err := h.partnerService.GetPartnerByID(c.Request.Context(), companyID, partnerID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get partner")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// updatePartner godoc
// @Summary Update a partner
// @Tags partners
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param partnerID path string true "Partner ID"
// @Param partner body dto.UpdatePartnerRequest true "Updatable fields"
// @Success 200 {object} dto.PartnerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/partners/{partnerID} [put]
func (h *partnerHandler) updatePartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	partnerID := c.Param("partnerID")

	var req dto.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	partner, err := h.partnerService.UpdatePartner(c.Request.Context(), companyID, partnerID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update partner")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// listPartners godoc
// @Summary List partners
// @Description Lists partners, optionally scoped to those linked under a journal subtree.
// @Tags partners
// @Produce json
// @Param companyID path string true "Company ID"
// @Param journalID query string false "Scope journal"
// @Param includeDescendants query bool false "Include the journal's subtree"
// @Success 200 {object} dto.ListPartnersResponse
// @Security BearerAuth
// @Router /companies/{companyID}/partners [get]
func (h *partnerHandler) listPartners(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var params dto.ListEntitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	partners, err := h.partnerService.ListPartners(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list partners")
		return
	}

	responses := make([]dto.PartnerResponse, len(partners))
	for i := range partners {
		responses[i] = dto.ToPartnerResponse(&partners[i])
	}
	c.JSON(http.StatusOK, dto.ListPartnersResponse{Partners: responses})
}
