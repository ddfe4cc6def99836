package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zhurnal-erp/zhurnal_backend/internal/apperrors"
	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	portsrepo "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/repositories"
	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
)

// DocumentService handles business logic for accounting documents.
type DocumentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	partnerRepo  portsrepo.PartnerRepositoryFacade
	journalRepo  portsrepo.JournalReader
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(dr portsrepo.DocumentRepositoryFacade, pr portsrepo.PartnerRepositoryFacade, jr portsrepo.JournalReader, authorizer portssvc.CompanyAuthorizerSvc) portssvc.DocumentSvcFacade {
	return &DocumentService{
		BaseService:  BaseService{CompanyAuthorizer: authorizer},
		documentRepo: dr,
		partnerRepo:  pr,
		journalRepo:  jr,
	}
}

var _ portssvc.DocumentSvcFacade = (*DocumentService)(nil)

// CreateDocument registers a document pending approval at the depth of its
// journal.
func (s *DocumentService) CreateDocument(ctx context.Context, companyID string, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	depth, err := journalDepth(ctx, s.journalRepo, companyID, req.JournalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, req.JournalID)
		}
		return nil, err
	}

	if req.PartnerID != nil {
		if _, err := s.partnerRepo.FindPartnerByID(ctx, companyID, *req.PartnerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: partner %s", apperrors.ErrNotFound, *req.PartnerID)
			}
			return nil, fmt.Errorf("failed to load partner: %w", err)
		}
	}

	now := time.Now()
	document := domain.Document{
		DocumentID:   uuid.NewString(),
		CompanyID:    companyID,
		JournalID:    req.JournalID,
		PartnerID:    req.PartnerID,
		DocType:      domain.DocumentType(req.DocType),
		DocumentDate: req.DocumentDate,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		Description:  req.Description,
		Approval:     domain.NewPendingApproval(depth),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, document); err != nil {
		s.LogError(ctx, err, "Failed to save document", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.LogInfo(ctx, "Document created", slog.String("document_id", document.DocumentID), slog.Int("creation_level", depth))
	return &document, nil
}

// GetDocumentByID retrieves a document.
func (s *DocumentService) GetDocumentByID(ctx context.Context, companyID, documentID string, requestingUserID string) (*domain.Document, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.documentRepo.FindDocumentByID(ctx, companyID, documentID)
}

// UpdateDocument updates the mutable fields of a document.
func (s *DocumentService) UpdateDocument(ctx context.Context, companyID, documentID string, req dto.UpdateDocumentRequest, requestingUserID string) (*domain.Document, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	document, err := s.documentRepo.FindDocumentByID(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}

	// Approved and rejected documents are frozen.
	if document.ApprovalStatus != domain.ApprovalPending {
		return nil, fmt.Errorf("%w: document %s is %s and cannot be modified", apperrors.ErrConflict, documentID, document.ApprovalStatus)
	}

	if req.DocumentDate != nil {
		document.DocumentDate = *req.DocumentDate
	}
	if req.Description != nil {
		document.Description = *req.Description
	}
	document.LastUpdatedAt = time.Now()
	document.LastUpdatedBy = requestingUserID

	if err := s.documentRepo.UpdateDocument(ctx, *document); err != nil {
		s.LogError(ctx, err, "Failed to update document", slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	return document, nil
}

// ListDocuments pages documents, optionally scoped to a journal subtree.
func (s *DocumentService) ListDocuments(ctx context.Context, companyID string, params dto.ListEntitiesParams, requestingUserID string) ([]domain.Document, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	journalIDs, err := expandJournalScope(ctx, s.journalRepo, companyID, params.JournalID, params.IncludeDescendants)
	if err != nil {
		return nil, err
	}
	limit, offset := normalizePage(params.Limit, params.Offset)
	return s.documentRepo.ListDocumentsByJournals(ctx, companyID, journalIDs, limit, offset)
}
