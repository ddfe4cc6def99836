package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
	"github.com/zhurnal-erp/zhurnal_backend/internal/middleware"
)

// goodHandler handles HTTP requests related to goods.
type goodHandler struct {
	goodService portssvc.GoodSvcFacade
}

func newGoodHandler(gs portssvc.GoodSvcFacade) *goodHandler {
	return &goodHandler{goodService: gs}
}

// registerGoodRoutes registers good routes under a company group.
func registerGoodRoutes(group *gin.RouterGroup, goodService portssvc.GoodSvcFacade) {
	h := newGoodHandler(goodService)

	goods := group.Group("/goods")
	{
		goods.POST("", h.createGood)
		goods.GET("", h.listGoods)
		goods.GET("/:goodID", h.getGood)
		goods.PUT("/:goodID", h.updateGood)
	}
}

// createGood godoc
// @Summary Register a good
// @Description Creates a good pending approval at the tier of its creation journal.
// @Tags goods
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param good body dto.CreateGoodRequest true "Good details"
// @Success 201 {object} dto.GoodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Creation journal not found"
// @Security BearerAuth
// @Router /companies/{companyID}/goods [post]
func (h *goodHandler) createGood(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateGoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	good, err := h.goodService.CreateGood(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create good")
		return
	}

	logger.Info("Good created", slog.String("good_id", good.GoodID))
	c.JSON(http.StatusCreated, dto.ToGoodResponse(good))
}

// getGood godoc
// @Summary Get a good
// @Tags goods
// @Produce json
// @Param companyID path string true "Company ID"
// @Param goodID path string true "Good ID"
// @Success 200 {object} dto.GoodResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/goods/{goodID} [get]
func (h *goodHandler) getGood(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	goodID := c.Param("goodID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	good, err := h.goodService.GetGoodByID(c.Request.Context(), companyID, goodID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get good")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoodResponse(good))
}

// updateGood godoc
// @Summary Update a good
// @Tags goods
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param goodID path string true "Good ID"
// @Param good body dto.UpdateGoodRequest true "Updatable fields"
// @Success 200 {object} dto.GoodResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/goods/{goodID} [put]
func (h *goodHandler) updateGood(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	goodID := c.Param("goodID")

	var req dto.UpdateGoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	good, err := h.goodService.UpdateGood(c.Request.Context(), companyID, goodID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update good")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoodResponse(good))
}

// listGoods godoc
// @Summary List goods
// @Description Lists goods, optionally scoped to those linked under a journal subtree.
// @Tags goods
// @Produce json
// @Param companyID path string true "Company ID"
// @Param journalID query string false "Scope journal"
// @Param includeDescendants query bool false "Include the journal's subtree"
// @Success 200 {object} dto.ListGoodsResponse
// @Security BearerAuth
// @Router /companies/{companyID}/goods [get]
func (h *goodHandler) listGoods(c *gin.Context) {
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

	goods, err := h.goodService.ListGoods(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list goods")
		return
	}

	responses := make([]dto.GoodResponse, len(goods))
	for i := range goods {
		responses[i] = dto.ToGoodResponse(&goods[i])
	}
	c.JSON(http.StatusOK, dto.ListGoodsResponse{Goods: responses})
}
