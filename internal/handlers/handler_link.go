package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
	"github.com/zhurnal-erp/zhurnal_backend/internal/middleware"
)

// linkHandler handles HTTP requests for the three cross-entity link variants.
type linkHandler struct {
	linkService portssvc.LinkSvcFacade
}

func newLinkHandler(ls portssvc.LinkSvcFacade) *linkHandler {
	return &linkHandler{linkService: ls}
}

// RegisterLinkRoutes registers link routes under a company group.
func RegisterLinkRoutes(group *gin.RouterGroup, linkService portssvc.LinkSvcFacade) {
	h := newLinkHandler(linkService)

	partnerLinks := group.Group("/partner-links")
	{
		partnerLinks.POST("", h.createPartnerLink)
		partnerLinks.GET("", h.listPartnerLinks)
		partnerLinks.DELETE("/:linkID", h.deletePartnerLink)
	}

	goodLinks := group.Group("/good-links")
	{
		goodLinks.POST("", h.createGoodLink)
		goodLinks.GET("", h.listGoodLinks)
		goodLinks.DELETE("/:linkID", h.deleteGoodLink)
	}

	partnerGoodLinks := group.Group("/partner-good-links")
	{
		partnerGoodLinks.POST("", h.createPartnerGoodLink)
		partnerGoodLinks.GET("", h.listPartnerGoodLinks)
		partnerGoodLinks.DELETE("/:linkID", h.deletePartnerGoodLink)
	}
}

// createPartnerLink godoc
// @Summary Link a partner to a journal
// @Description Creates a journal-partner link. On non-root journals an equivalent link must exist on the parent journal.
// @Tags links
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param link body dto.CreatePartnerLinkRequest true "Link details"
// @Success 201 {object} dto.PartnerLinkResponse
// @Failure 404 {object} ErrorResponse "Journal or partner not found"
// @Failure 422 {object} ErrorResponse "Parent journal lacks an equivalent link"
// @Security BearerAuth
// @Router /companies/{companyID}/partner-links [post]
func (h *linkHandler) createPartnerLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreatePartnerLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	link, err := h.linkService.CreatePartnerLink(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create partner link")
		return
	}

	logger.Info("Partner link created", slog.String("link_id", link.LinkID), slog.String("journal_id", link.JournalID))
	c.JSON(http.StatusCreated, dto.ToPartnerLinkResponse(link))
}

// createGoodLink godoc
// @Summary Link a good to a journal
// @Tags links
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param link body dto.CreateGoodLinkRequest true "Link details"
// @Success 201 {object} dto.GoodLinkResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Parent journal lacks an equivalent link"
// @Security BearerAuth
// @Router /companies/{companyID}/good-links [post]
func (h *linkHandler) createGoodLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateGoodLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	link, err := h.linkService.CreateGoodLink(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create good link")
		return
	}

	logger.Info("Good link created", slog.String("link_id", link.LinkID), slog.String("journal_id", link.JournalID))
	c.JSON(http.StatusCreated, dto.ToGoodLinkResponse(link))
}

// createPartnerGoodLink godoc
// @Summary Scope a partner+good pair to a journal
// @Tags links
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param link body dto.CreatePartnerGoodLinkRequest true "Link details"
// @Success 201 {object} dto.PartnerGoodLinkResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Parent journal lacks an equivalent link"
// @Security BearerAuth
// @Router /companies/{companyID}/partner-good-links [post]
func (h *linkHandler) createPartnerGoodLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreatePartnerGoodLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	link, err := h.linkService.CreatePartnerGoodLink(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create partner-good link")
		return
	}

	logger.Info("Partner-good link created", slog.String("link_id", link.LinkID), slog.String("journal_id", link.JournalID))
	c.JSON(http.StatusCreated, dto.ToPartnerGoodLinkResponse(link))
}

// listPartnerLinks godoc
// @Summary List partner links
// @Description Lists journal-partner links, optionally scoped to a journal subtree.
// @Tags links
// @Produce json
// @Param companyID path string true "Company ID"
// @Param journalID query string false "Scope journal"
// @Param includeDescendants query bool false "Include the journal's subtree"
// @Success 200 {array} dto.PartnerLinkResponse
// @Security BearerAuth
// @Router /companies/{companyID}/partner-links [get]
func (h *linkHandler) listPartnerLinks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var params dto.ListLinksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	links, err := h.linkService.ListPartnerLinks(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list partner links")
		return
	}

	responses := make([]dto.PartnerLinkResponse, len(links))
	for i := range links {
		responses[i] = dto.ToPartnerLinkResponse(&links[i])
	}
	c.JSON(http.StatusOK, responses)
}

// listGoodLinks godoc
// @Summary List good links
// @Tags links
// @Produce json
// @Param companyID path string true "Company ID"
// @Param journalID query string false "Scope journal"
// @Param includeDescendants query bool false "Include the journal's subtree"
// @Success 200 {array} dto.GoodLinkResponse
// @Security BearerAuth
// @Router /companies/{companyID}/good-links [get]
func (h *linkHandler) listGoodLinks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var params dto.ListLinksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	links, err := h.linkService.ListGoodLinks(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list good links")
		return
	}

	responses := make([]dto.GoodLinkResponse, len(links))
	for i := range links {
		responses[i] = dto.ToGoodLinkResponse(&links[i])
	}
	c.JSON(http.StatusOK, responses)
}

// listPartnerGoodLinks godoc
// @Summary List partner-good links
// @Tags links
// @Produce json
// @Param companyID path string true "Company ID"
// @Param journalID query string false "Scope journal"
// @Param includeDescendants query bool false "Include the journal's subtree"
// @Success 200 {array} dto.PartnerGoodLinkResponse
// @Security BearerAuth
// @Router /companies/{companyID}/partner-good-links [get]
func (h *linkHandler) listPartnerGoodLinks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var params dto.ListLinksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	links, err := h.linkService.ListPartnerGoodLinks(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list partner-good links")
		return
	}

	responses := make([]dto.PartnerGoodLinkResponse, len(links))
	for i := range links {
		responses[i] = dto.ToPartnerGoodLinkResponse(&links[i])
	}
	c.JSON(http.StatusOK, responses)
}

// deletePartnerLink godoc
// @Summary Delete a partner link
// @Description Removes a journal-partner link. Links on descendant journals are not re-validated.
// @Tags links
// @Produce json
// @Param companyID path string true "Company ID"
// @Param linkID path string true "Link ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/partner-links/{linkID} [delete]
func (h *linkHandler) deletePartnerLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	linkID := c.Param("linkID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.linkService.DeletePartnerLink(c.Request.Context(), companyID, linkID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete partner link")
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteGoodLink godoc
// @Summary Delete a good link
// @Tags links
// @Produce json
// @Param companyID path string true "Company ID"
// @Param linkID path string true "Link ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/good-links/{linkID} [delete]
func (h *linkHandler) deleteGoodLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	linkID := c.Param("linkID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.linkService.DeleteGoodLink(c.Request.Context(), companyID, linkID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete good link")
		return
	}
	c.Status(http.StatusNoContent)
}

// deletePartnerGoodLink godoc
// @Summary Delete a partner-good link
// @Tags links
// @Produce json
// @Param companyID path string true "Company ID"
// @Param linkID path string true "Link ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/partner-good-links/{linkID} [delete]
func (h *linkHandler) deletePartnerGoodLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	linkID := c.Param("linkID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.linkService.DeletePartnerGoodLink(c.Request.Context(), companyID, linkID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete partner-good link")
		return
	}
	c.Status(http.StatusNoContent)
}
