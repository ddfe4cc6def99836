package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
	"github.com/zhurnal-erp/zhurnal_backend/internal/middleware"
)

// loopHandler handles HTTP requests related to journal loops.
type loopHandler struct {
	loopService portssvc.LoopSvcFacade
}

func newLoopHandler(ls portssvc.LoopSvcFacade) *loopHandler {
	return &loopHandler{loopService: ls}
}

// registerLoopRoutes registers loop routes under a company group.
func registerLoopRoutes(group *gin.RouterGroup, loopService portssvc.LoopSvcFacade) {
	h := newLoopHandler(loopService)

	loops := group.Group("/loops")
	{
		loops.POST("", h.createLoop)
		loops.GET("", h.listLoops)
		loops.GET("/detect-connection", h.detectConnection)
		loops.GET("/:loopID", h.getLoop)
		loops.POST("/:loopID/insert-chain", h.insertChain)
		loops.DELETE("/:loopID", h.deactivateLoop)
	}
}

// createLoop godoc
// @Summary Create a loop
// @Description Builds a closed cycle from an ordered sequence of at least three distinct journals.
// @Tags loops
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param loop body dto.CreateLoopRequest true "Loop details"
// @Success 201 {object} dto.LoopResponse
// @Failure 400 {object} ErrorResponse "Too few, duplicate or unknown journals"
// @Security BearerAuth
// @Router /companies/{companyID}/loops [post]
func (h *loopHandler) createLoop(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateLoopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loop, connections, err := h.loopService.CreateLoop(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create loop")
		return
	}

	logger.Info("Loop created", slog.String("loop_id", loop.LoopID), slog.Int("edges", len(connections)))
	c.JSON(http.StatusCreated, dto.ToLoopResponse(loop, connections))
}

// getLoop godoc
// @Summary Get a loop
// @Description Retrieves a loop with its edges ordered by position.
// @Tags loops
// @Produce json
// @Param companyID path string true "Company ID"
// @Param loopID path string true "Loop ID"
// @Success 200 {object} dto.LoopResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/loops/{loopID} [get]
func (h *loopHandler) getLoop(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	loopID := c.Param("loopID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loop, connections, err := h.loopService.GetLoopByID(c.Request.Context(), companyID, loopID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get loop")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoopResponse(loop, connections))
}

// listLoops godoc
// @Summary List loops
// @Tags loops
// @Produce json
// @Param companyID path string true "Company ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.LoopResponse
// @Security BearerAuth
// @Router /companies/{companyID}/loops [get]
func (h *loopHandler) listLoops(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loops, err := h.loopService.ListLoops(c.Request.Context(), companyID, limit, offset, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list loops")
		return
	}

	responses := make([]dto.LoopResponse, len(loops))
	for i := range loops {
		responses[i] = dto.ToLoopResponse(&loops[i], nil)
	}
	c.JSON(http.StatusOK, responses)
}

// detectConnection godoc
// @Summary Detect a direct loop connection
// @Description Reports whether the "after" journal is the immediate successor of the "before" journal in any active loop. This is a direct-edge check, not transitive reachability.
// @Tags loops
// @Produce json
// @Param companyID path string true "Company ID"
// @Param before query string true "Predecessor journal ID"
// @Param after query string true "Successor journal ID"
// @Success 200 {object} dto.ConnectionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/loops/detect-connection [get]
func (h *loopHandler) detectConnection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	before := c.Query("before")
	after := c.Query("after")
	if before == "" || after == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Both before and after journal IDs are required"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.loopService.DetectConnection(c.Request.Context(), companyID, before, after, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to detect connection")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// insertChain godoc
// @Summary Insert a chain into a loop
// @Description Replaces the edge insertAfter -> insertBefore with a path through the chain journals, atomically.
// @Tags loops
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param loopID path string true "Loop ID"
// @Param chain body dto.InsertChainRequest true "Insertion point and chain"
// @Success 200 {object} dto.LoopResponse
// @Failure 400 {object} ErrorResponse "Edge missing, unknown journals or members already in loop"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Loop is not active"
// @Security BearerAuth
// @Router /companies/{companyID}/loops/{loopID}/insert-chain [post]
func (h *loopHandler) insertChain(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	loopID := c.Param("loopID")

	var req dto.InsertChainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	loop, connections, err := h.loopService.InsertChain(c.Request.Context(), companyID, loopID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to insert chain")
		return
	}

	logger.Info("Chain inserted into loop", slog.String("loop_id", loopID), slog.Int("chain_length", len(req.JournalChain)))
	c.JSON(http.StatusOK, dto.ToLoopResponse(loop, connections))
}

// deactivateLoop godoc
// @Summary Deactivate a loop
// @Description Soft-deletes a loop; its edges stop participating in connection detection.
// @Tags loops
// @Produce json
// @Param companyID path string true "Company ID"
// @Param loopID path string true "Loop ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Loop already inactive"
// @Security BearerAuth
// @Router /companies/{companyID}/loops/{loopID} [delete]
func (h *loopHandler) deactivateLoop(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	loopID := c.Param("loopID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.loopService.DeactivateLoop(c.Request.Context(), companyID, loopID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate loop")
		return
	}

	logger.Info("Loop deactivated", slog.String("loop_id", loopID))
	c.Status(http.StatusNoContent)
}
