package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
	"github.com/zhurnal-erp/zhurnal_backend/internal/middleware"
)

// journalHandler handles HTTP requests related to the journal hierarchy.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// RegisterJournalRoutes registers journal routes under a company group.
func RegisterJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := group.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.POST("/descendants", h.getDescendants)
		journals.GET("/:journalID", h.getJournal)
		journals.PUT("/:journalID", h.updateJournal)
		journals.DELETE("/:journalID", h.deleteJournal)
		journals.GET("/:journalID/children", h.listChildren)
	}
}

// createJournal godoc
// @Summary Create a journal node
// @Description Creates a journal under an optional parent. Terminal journals cannot take children.
// @Tags journals
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param journal body dto.CreateJournalRequest true "Journal details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse "Terminal parent or invalid input"
// @Failure 404 {object} ErrorResponse "Parent not found"
// @Security BearerAuth
// @Router /companies/{companyID}/journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create journal")
		return
	}

	logger.Info("Journal created", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal node
// @Tags journals
// @Produce json
// @Param companyID path string true "Company ID"
// @Param journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	journalID := c.Param("journalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), companyID, journalID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// updateJournal godoc
// @Summary Update a journal node
// @Description Updates name, parent, terminal flag and extra data. Flipping a journal with children to terminal is refused, as is moving a journal into its own subtree.
// @Tags journals
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param journalID path string true "Journal ID"
// @Param journal body dto.UpdateJournalRequest true "Updatable fields"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Journal has children, or the move would create a cycle"
// @Security BearerAuth
// @Router /companies/{companyID}/journals/{journalID} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	journalID := c.Param("journalID")

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	journal, err := h.journalService.UpdateJournal(c.Request.Context(), companyID, journalID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// deleteJournal godoc
// @Summary Delete a journal node
// @Description Deletes a journal. Refused while child journals or dependent links exist.
// @Tags journals
// @Produce json
// @Param companyID path string true "Company ID"
// @Param journalID path string true "Journal ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Journal has children or links"
// @Security BearerAuth
// @Router /companies/{companyID}/journals/{journalID} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	journalID := c.Param("journalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.journalService.DeleteJournal(c.Request.Context(), companyID, journalID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete journal")
		return
	}

	logger.Info("Journal deleted", slog.String("journal_id", journalID))
	c.Status(http.StatusNoContent)
}

// listChildren godoc
// @Summary List direct children of a journal
// @Tags journals
// @Produce json
// @Param companyID path string true "Company ID"
// @Param journalID path string true "Journal ID"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/journals/{journalID}/children [get]
func (h *journalHandler) listChildren(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	journalID := c.Param("journalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	children, err := h.journalService.ListChildJournals(c.Request.Context(), companyID, journalID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list child journals")
		return
	}
	c.JSON(http.StatusOK, dto.ListJournalsResponse{Journals: dto.ToJournalResponses(children)})
}

// getDescendants godoc
// @Summary Compute the descendant closure of a root set
// @Description Returns all journal IDs below the given roots. Unknown roots contribute nothing.
// @Tags journals
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param roots body dto.DescendantsRequest true "Root journal IDs"
// @Success 200 {object} dto.DescendantsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/journals/descendants [post]
func (h *journalHandler) getDescendants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.DescendantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	ids, err := h.journalService.GetDescendantJournalIDs(c.Request.Context(), companyID, req.JournalIDs, req.IncludeRoots, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute descendants")
		return
	}
	c.JSON(http.StatusOK, dto.DescendantsResponse{JournalIDs: ids})
}
