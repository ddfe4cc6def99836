package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
	"github.com/zhurnal-erp/zhurnal_backend/internal/middleware"
)

// documentHandler handles HTTP requests related to documents.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

// registerDocumentRoutes registers document routes under a company group.
func registerDocumentRoutes(group *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := group.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:documentID", h.getDocument)
		documents.PUT("/:documentID", h.updateDocument)
	}
}

// createDocument godoc
// @Summary Register a document
// @Description Creates a document pending approval at the tier of its journal.
// @Tags documents
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Journal or partner not found"
// @Security BearerAuth
// @Router /companies/{companyID}/documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	document, err := h.documentService.CreateDocument(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create document")
		return
	}

	logger.Info("Document created", slog.String("document_id", document.DocumentID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(document))
}

// getDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param companyID path string true "Company ID"
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/documents/{documentID} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	document, err := h.documentService.GetDocumentByID(c.Request.Context(), companyID, documentID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

// updateDocument godoc
// @Summary Update a document
// @Description Updates a document; refused once the document has left the PENDING state.
// @Tags documents
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param documentID path string true "Document ID"
// @Param document body dto.UpdateDocumentRequest true "Updatable fields"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Document no longer pending"
// @Security BearerAuth
// @Router /companies/{companyID}/documents/{documentID} [put]
func (h *documentHandler) updateDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	document, err := h.documentService.UpdateDocument(c.Request.Context(), companyID, documentID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

// listDocuments godoc
// @Summary List documents
// @Description Lists documents, optionally scoped to a journal subtree, newest first.
// @Tags documents
// @Produce json
// @Param companyID path string true "Company ID"
// @Param journalID query string false "Scope journal"
// @Param includeDescendants query bool false "Include the journal's subtree"
// @Success 200 {object} dto.ListDocumentsResponse
// @Security BearerAuth
// @Router /companies/{companyID}/documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
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

	documents, err := h.documentService.ListDocuments(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list documents")
		return
	}

	responses := make([]dto.DocumentResponse, len(documents))
	for i := range documents {
		responses[i] = dto.ToDocumentResponse(&documents[i])
	}
	c.JSON(http.StatusOK, dto.ListDocumentsResponse{Documents: responses})
}
